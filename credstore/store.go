package credstore

import "fmt"

// Store is the credential store used by the session holder and the request
// gateway. None of its methods fail: backend errors and panics are reported to
// the Diagnostics sink and the operation degrades to a no-op (Set, Remove) or
// an absent value (Get). Callers cannot tell "absent" from "storage broken"
// and must treat both as logged out.
type Store struct {
	backend Backend
	diag    Diagnostics
}

// New wraps backend. A nil diag discards warnings.
func New(backend Backend, diag Diagnostics) *Store {
	if diag == nil {
		diag = DiscardDiagnostics{}
	}
	return &Store{backend: backend, diag: diag}
}

// Get returns the value for key, or false if it is absent or unreadable
func (s *Store) Get(key string) (value string, ok bool) {
	defer s.recoverTo(fmt.Sprintf("Failed to get %s from storage", key), func() {
		value, ok = "", false
	})

	if s == nil || s.backend == nil {
		return "", false
	}
	v, found, err := s.backend.Read(key)
	if err != nil {
		s.diag.Warn(fmt.Sprintf("Failed to get %s from storage", key), err)
		return "", false
	}
	return v, found
}

// Set stores value under key
func (s *Store) Set(key, value string) {
	defer s.recoverTo(fmt.Sprintf("Failed to set %s in storage", key), nil)

	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Write(key, value); err != nil {
		s.diag.Warn(fmt.Sprintf("Failed to set %s in storage", key), err)
	}
}

// Remove deletes key
func (s *Store) Remove(key string) {
	defer s.recoverTo(fmt.Sprintf("Failed to remove %s from storage", key), nil)

	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Delete(key); err != nil {
		s.diag.Warn(fmt.Sprintf("Failed to remove %s from storage", key), err)
	}
}

func (s *Store) recoverTo(message string, reset func()) {
	r := recover()
	if r == nil {
		return
	}
	if s != nil && s.diag != nil {
		s.diag.Warn(message, fmt.Errorf("backend panic: %v", r))
	}
	if reset != nil {
		reset()
	}
}

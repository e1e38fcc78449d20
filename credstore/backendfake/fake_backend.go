package backendfake

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-ticketing-client/credstore"
)

var _ credstore.Backend = (*FakeBackend)(nil)

// ErrUnavailable is returned by a failing FakeBackend
var ErrUnavailable = errors.New("storage unavailable")

// FakeBackend is an in-memory backend that can be told to fail or panic
type FakeBackend struct {
	lock   sync.RWMutex
	values map[string]string

	FailReads   bool
	FailWrites  bool
	FailDeletes bool
	Panic       bool

	Writes  []string // keys written, in order
	Deletes []string // keys deleted, in order
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{values: make(map[string]string)}
}

// Seed sets a value without recording a write
func (f *FakeBackend) Seed(key, value string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values[key] = value
}

// Value reads a value without going through failure injection
func (f *FakeBackend) Value(key string) (string, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FakeBackend) Read(key string) (string, bool, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if f.Panic {
		panic("fake backend read")
	}
	if f.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FakeBackend) Write(key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Panic {
		panic("fake backend write")
	}
	if f.FailWrites {
		return ErrUnavailable
	}
	f.values[key] = value
	f.Writes = append(f.Writes, key)
	return nil
}

func (f *FakeBackend) Delete(key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Panic {
		panic("fake backend delete")
	}
	if f.FailDeletes {
		return ErrUnavailable
	}
	delete(f.values, key)
	f.Deletes = append(f.Deletes, key)
	return nil
}

// Warning is one recorded diagnostic
type Warning struct {
	Message string
	Err     error
}

// RecordingDiagnostics collects warnings for assertions
type RecordingDiagnostics struct {
	lock     sync.Mutex
	warnings []Warning
}

var _ credstore.Diagnostics = (*RecordingDiagnostics)(nil)

func (r *RecordingDiagnostics) Warn(message string, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.warnings = append(r.warnings, Warning{Message: message, Err: err})
}

func (r *RecordingDiagnostics) Warnings() []Warning {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

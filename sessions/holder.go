package sessions

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-ticketing-client/credstore"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/users"
)

// Storage is the credential store the holder mirrors itself to
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// State is a point-in-time copy of the session. Empty tokens are absent.
type State struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
	IsLoading    bool
}

// Authenticated reports whether a user is present
func (s State) Authenticated() bool {
	return s.User != nil
}

// Holder is the single source of truth for the current authentication state.
// It is hydrated once from storage and writes every later change back.
//
// The user and token fields can be set independently, so a holder may briefly
// carry a user without a token (or the reverse). SetSession changes all three
// at once for callers that need the transition to be atomic.
type Holder struct {
	lock    sync.RWMutex
	once    sync.Once
	storage Storage
	diag    credstore.Diagnostics

	user         *users.User
	accessToken  string
	refreshToken string
	loading      bool
	closed       bool
}

// NewHolder returns an unhydrated holder; IsLoading is true until Hydrate
// runs. A nil diag discards warnings.
func NewHolder(storage Storage, diag credstore.Diagnostics) *Holder {
	if diag == nil {
		diag = credstore.DiscardDiagnostics{}
	}
	return &Holder{
		storage: storage,
		diag:    diag,
		loading: true,
	}
}

// Open creates and hydrates a holder
func Open(storage Storage, diag credstore.Diagnostics) *Holder {
	h := NewHolder(storage, diag)
	h.Hydrate()
	return h
}

// Hydrate reads the persisted session. It runs once; later calls do nothing.
// A user record that does not parse is reported and the whole session is
// dropped: no user and no tokens are loaded. Nothing is written back during
// hydration, so the stored values stay as they were.
func (h *Holder) Hydrate() {
	h.once.Do(func() {
		h.lock.Lock()
		defer h.lock.Unlock()
		defer func() { h.loading = false }()

		if savedUser, ok := h.storage.Get(credstore.KeyUser); ok && savedUser != "" {
			var u *users.User
			if err := json.Unmarshal([]byte(savedUser), &u); err != nil {
				h.diag.Warn("Error initializing session from storage", err)
				return
			}
			h.user = u
		}
		if savedAccessToken, ok := h.storage.Get(credstore.KeyAccessToken); ok {
			h.accessToken = savedAccessToken
		}
		if savedRefreshToken, ok := h.storage.Get(credstore.KeyRefreshToken); ok {
			h.refreshToken = savedRefreshToken
		}
	})
}

func (h *Holder) IsLoading() bool {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.loading
}

// User returns a copy of the current user, or nil
func (h *Holder) User() *users.User {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return cloneUser(h.user)
}

func (h *Holder) AccessToken() string {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.accessToken
}

func (h *Holder) RefreshToken() string {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.refreshToken
}

// State returns a snapshot of every field
func (h *Holder) State() State {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return State{
		User:         cloneUser(h.user),
		AccessToken:  h.accessToken,
		RefreshToken: h.refreshToken,
		IsLoading:    h.loading,
	}
}

// SetUser replaces the user; nil clears it
func (h *Holder) SetUser(u *users.User) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.rejectClosed("user") {
		return
	}
	h.user = cloneUser(u)
	h.syncUser()
}

// SetAccessToken replaces the access token; "" clears it
func (h *Holder) SetAccessToken(accessToken string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.rejectClosed("access token") {
		return
	}
	h.accessToken = accessToken
	h.syncToken(credstore.KeyAccessToken, h.accessToken)
}

// SetRefreshToken replaces the refresh token; "" clears it
func (h *Holder) SetRefreshToken(refreshToken string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.rejectClosed("refresh token") {
		return
	}
	h.refreshToken = refreshToken
	h.syncToken(credstore.KeyRefreshToken, h.refreshToken)
}

// SetSession replaces the user and both tokens in one step
func (h *Holder) SetSession(u *users.User, accessToken, refreshToken string) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.rejectClosed("session") {
		return
	}
	h.user = cloneUser(u)
	h.accessToken = accessToken
	h.refreshToken = refreshToken
	h.syncUser()
	h.syncToken(credstore.KeyAccessToken, h.accessToken)
	h.syncToken(credstore.KeyRefreshToken, h.refreshToken)
}

// ClearAuth drops the user and both tokens. Safe to call with no session.
func (h *Holder) ClearAuth() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.rejectClosed("session") {
		return
	}
	log.Debug().Msg("Clearing authentication state")
	h.user = nil
	h.accessToken = ""
	h.refreshToken = ""
	h.syncUser()
	h.syncToken(credstore.KeyAccessToken, "")
	h.syncToken(credstore.KeyRefreshToken, "")
}

// Close ends the holder's lifetime. Later changes are ignored; reads still
// return the last state.
func (h *Holder) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.closed = true
}

func (h *Holder) rejectClosed(field string) bool {
	if h.closed {
		h.diag.Warn("Ignoring "+field+" change on a closed session", apperrors.ErrSessionClosed)
	}
	return h.closed
}

// syncUser and syncToken must be called with the lock held. They do nothing
// while the holder is still hydrating.
func (h *Holder) syncUser() {
	if h.loading {
		return
	}
	if h.user == nil {
		h.storage.Remove(credstore.KeyUser)
		return
	}
	data, err := json.Marshal(h.user)
	if err != nil {
		h.diag.Warn("Failed to encode user", err)
		return
	}
	h.storage.Set(credstore.KeyUser, string(data))
}

func (h *Holder) syncToken(key, value string) {
	if h.loading {
		return
	}
	if value == "" {
		h.storage.Remove(key)
		return
	}
	h.storage.Set(key, value)
}

func cloneUser(u *users.User) *users.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	"github.com/jrsteele09/go-ticketing-client/auth"
	"github.com/jrsteele09/go-ticketing-client/credstore"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/sessions"
	"github.com/jrsteele09/go-ticketing-client/token"
	"github.com/jrsteele09/go-ticketing-client/users"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Path          string
	Authorization string
	Body          map[string]any
}

// fakeBackend answers the auth endpoints and records every request
type fakeBackend struct {
	lock     sync.Mutex
	requests []recorded
	failWith int
}

func (b *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)

		b.lock.Lock()
		b.requests = append(b.requests, recorded{Path: r.URL.Path, Authorization: r.Header.Get("Authorization"), Body: body})
		failWith := b.failWith
		b.lock.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if failWith != 0 {
			w.WriteHeader(failWith)
			_, _ = io.WriteString(w, `{"message":"backend says no"}`)
			return
		}

		switch r.URL.Path {
		case "/auth/login":
			_, _ = io.WriteString(w, `{"user":{"id":1,"email":"a@b.com","role":"CLIENT"},"accessToken":"T1","refreshToken":"R1"}`)
		case "/auth/refresh-token":
			_, _ = io.WriteString(w, `{"accessToken":"T2"}`)
		default:
			_, _ = io.WriteString(w, `{"message":"ok"}`)
		}
	})
}

func (b *fakeBackend) last() recorded {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.requests[len(b.requests)-1]
}

func (b *fakeBackend) count() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.requests)
}

type testFixture struct {
	backend *fakeBackend
	store   *credstore.Store
	memory  *credstore.MemoryBackend
	holder  *sessions.Holder
	gateway *apiclient.Gateway
	service *auth.Service
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	backend := &fakeBackend{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	memory := credstore.NewMemoryBackend()
	store := credstore.New(memory, nil)
	holder := sessions.Open(store, nil)
	gateway := apiclient.New(server.URL, token.NewStoreSource(store))

	return &testFixture{
		backend: backend,
		store:   store,
		memory:  memory,
		holder:  holder,
		gateway: gateway,
		service: auth.NewService(gateway, holder),
	}
}

func TestService_Login(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	resp, err := f.service.Login(ctx, auth.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "T1", resp.AccessToken)

	login := f.backend.last()
	require.Equal(t, "/auth/login", login.Path)
	require.Empty(t, login.Authorization)
	require.Equal(t, "a@b.com", login.Body["email"])

	rawUser, ok := f.store.Get(credstore.KeyUser)
	require.True(t, ok)
	var stored users.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &stored))
	require.Equal(t, users.User{ID: 1, Email: "a@b.com", Role: users.RoleClient}, stored)

	v, _ := f.store.Get(credstore.KeyAccessToken)
	require.Equal(t, "T1", v)
	v, _ = f.store.Get(credstore.KeyRefreshToken)
	require.Equal(t, "R1", v)

	require.NoError(t, f.gateway.Call(ctx, "/reservations/user/1", apiclient.Get(), nil))
	require.Equal(t, "Bearer T1", f.backend.last().Authorization)
}

func TestService_LoginTrimsEmail(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.service.Login(context.Background(), auth.Credentials{Email: "  a@b.com\t", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "a@b.com", f.backend.last().Body["email"])
}

func TestService_LoginValidation(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.service.Login(context.Background(), auth.Credentials{Email: "nope", Password: "secret1"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Zero(t, f.backend.count())
	require.Nil(t, f.holder.User())
}

func TestService_LoginRejected(t *testing.T) {
	f := newTestFixture(t)
	f.backend.failWith = http.StatusUnauthorized

	_, err := f.service.Login(context.Background(), auth.Credentials{Email: "a@b.com", Password: "wrongpw"})
	require.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
	require.Nil(t, f.holder.User())
	_, ok := f.store.Get(credstore.KeyAccessToken)
	require.False(t, ok)
}

func TestService_Logout(t *testing.T) {
	t.Run("revokes and clears", func(t *testing.T) {
		f := newTestFixture(t)
		f.holder.SetSession(&users.User{ID: 1, Email: "a@b.com", Role: users.RoleClient}, "T1", "R1")

		require.NoError(t, f.service.Logout(context.Background()))
		last := f.backend.last()
		require.Equal(t, "/auth/logout", last.Path)
		require.Equal(t, "Bearer T1", last.Authorization)
		require.Equal(t, "R1", last.Body["refreshToken"])
		require.False(t, f.holder.State().Authenticated())
		_, ok := f.store.Get(credstore.KeyRefreshToken)
		require.False(t, ok)
	})

	t.Run("clears even when the backend fails", func(t *testing.T) {
		f := newTestFixture(t)
		f.holder.SetSession(&users.User{ID: 1, Email: "a@b.com", Role: users.RoleClient}, "T1", "R1")
		f.backend.failWith = http.StatusInternalServerError

		err := f.service.Logout(context.Background())
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "backend says no", apiErr.Message)
		require.Nil(t, f.holder.User())
		require.Empty(t, f.holder.AccessToken())
	})

	t.Run("no refresh token skips the call", func(t *testing.T) {
		f := newTestFixture(t)
		f.holder.SetUser(&users.User{ID: 1, Email: "a@b.com", Role: users.RoleClient})

		require.NoError(t, f.service.Logout(context.Background()))
		require.Zero(t, f.backend.count())
		require.Nil(t, f.holder.User())
	})
}

func TestService_Refresh(t *testing.T) {
	t.Run("stores the new access token", func(t *testing.T) {
		f := newTestFixture(t)
		f.holder.SetSession(&users.User{ID: 1, Email: "a@b.com", Role: users.RoleClient}, "T1", "R1")

		accessToken, err := f.service.Refresh(context.Background())
		require.NoError(t, err)
		require.Equal(t, "T2", accessToken)
		require.Empty(t, f.backend.last().Authorization)
		require.Equal(t, "R1", f.backend.last().Body["refreshToken"])

		v, _ := f.store.Get(credstore.KeyAccessToken)
		require.Equal(t, "T2", v)
	})

	t.Run("needs a refresh token", func(t *testing.T) {
		f := newTestFixture(t)
		_, err := f.service.Refresh(context.Background())
		require.ErrorIs(t, err, auth.MissingRefreshTokenErr)
		require.Zero(t, f.backend.count())
	})
}

func TestService_ForgotPassword(t *testing.T) {
	f := newTestFixture(t)
	f.store.Set(credstore.KeyAccessToken, "T1")

	require.NoError(t, f.service.ForgotPassword(context.Background(), 42, "secret1", "secret1"))
	last := f.backend.last()
	require.Equal(t, "/auth/forgot-password/42", last.Path)
	require.Empty(t, last.Authorization)
	require.Equal(t, "secret1", last.Body["password"])

	err := f.service.ForgotPassword(context.Background(), 42, "secret1", "secret2")
	require.ErrorIs(t, err, auth.PasswordsDontMatchErr)
}

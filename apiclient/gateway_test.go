package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	"github.com/jrsteele09/go-ticketing-client/credstore"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/token"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method  string
	path    string
	query   string
	headers http.Header
	body    []byte
}

type testServer struct {
	*httptest.Server
	last     chan captured
	status   int
	ctype    string
	response string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{last: make(chan captured, 16), status: http.StatusOK, ctype: "application/json; charset=utf-8", response: `{}`}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ts.last <- captured{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, headers: r.Header.Clone(), body: body}
		if ts.ctype != "" {
			w.Header().Set("Content-Type", ts.ctype)
		}
		w.WriteHeader(ts.status)
		_, _ = io.WriteString(w, ts.response)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newGateway(ts *testServer) (*apiclient.Gateway, *credstore.Store) {
	store := credstore.New(credstore.NewMemoryBackend(), nil)
	return apiclient.New(ts.URL, token.NewStoreSource(store)), store
}

func TestGateway_Headers(t *testing.T) {
	ts := newTestServer(t)
	g, store := newGateway(ts)
	ctx := context.Background()

	t.Run("no token means no authorization header", func(t *testing.T) {
		require.NoError(t, g.Call(ctx, "/events", apiclient.Get(), nil))
		req := <-ts.last
		require.Empty(t, req.headers.Get("Authorization"))
		require.Equal(t, "application/json", req.headers.Get("Content-Type"))
		require.NotEmpty(t, req.headers.Get("X-Request-ID"))
	})

	t.Run("bearer token read from the store on each call", func(t *testing.T) {
		store.Set(credstore.KeyAccessToken, "T1")
		require.NoError(t, g.Call(ctx, "/events", apiclient.Get(), nil))
		require.Equal(t, "Bearer T1", (<-ts.last).headers.Get("Authorization"))

		store.Set(credstore.KeyAccessToken, "T2")
		require.NoError(t, g.Call(ctx, "/events", apiclient.Get(), nil))
		require.Equal(t, "Bearer T2", (<-ts.last).headers.Get("Authorization"))
	})

	t.Run("public requests skip the token", func(t *testing.T) {
		store.Set(credstore.KeyAccessToken, "T1")
		require.NoError(t, g.Call(ctx, "/auth/login", apiclient.Post(map[string]string{"a": "b"}).AsPublic(), nil))
		require.Empty(t, (<-ts.last).headers.Get("Authorization"))
	})

	t.Run("caller headers override defaults", func(t *testing.T) {
		req := apiclient.Get().WithHeader("Content-Type", "text/plain").WithHeader("X-Request-ID", "fixed")
		require.NoError(t, g.Call(ctx, "/events", req, nil))
		got := <-ts.last
		require.Equal(t, "text/plain", got.headers.Get("Content-Type"))
		require.Equal(t, "fixed", got.headers.Get("X-Request-ID"))
	})
}

func TestGateway_Body(t *testing.T) {
	ts := newTestServer(t)
	g, _ := newGateway(ts)
	ctx := context.Background()

	t.Run("body is JSON encoded", func(t *testing.T) {
		require.NoError(t, g.Call(ctx, "/reviews", apiclient.Post(map[string]any{"rating": 5}), nil))
		got := <-ts.last
		require.Equal(t, http.MethodPost, got.method)
		require.JSONEq(t, `{"rating":5}`, string(got.body))
	})

	t.Run("no body when none is given", func(t *testing.T) {
		require.NoError(t, g.Call(ctx, "/reviews/3", apiclient.Delete(), nil))
		got := <-ts.last
		require.Equal(t, http.MethodDelete, got.method)
		require.Equal(t, "/reviews/3", got.path)
		require.Empty(t, got.body)
	})
}

func TestGateway_Responses(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes success into the caller's type", func(t *testing.T) {
		ts := newTestServer(t)
		ts.response = `{"id":7,"name":"Concert"}`
		g, _ := newGateway(ts)

		type event struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		got, err := apiclient.Do[event](ctx, g, "/events/7", apiclient.Get())
		require.NoError(t, err)
		require.Equal(t, event{ID: 7, Name: "Concert"}, got)
	})

	t.Run("401 is authentication required whatever the body", func(t *testing.T) {
		for _, tc := range []struct{ ctype, body string }{
			{"application/json", `{"message":"jwt expired"}`},
			{"application/json", `not json`},
			{"text/html", `<html></html>`},
			{"", ``},
		} {
			ts := newTestServer(t)
			ts.status = http.StatusUnauthorized
			ts.ctype = tc.ctype
			ts.response = tc.body
			g, _ := newGateway(ts)

			err := g.Call(ctx, "/users", apiclient.Get(), nil)
			require.ErrorIs(t, err, apperrors.ErrAuthenticationRequired)
			require.Equal(t, "Authentication required", err.Error())
		}
	})

	t.Run("non-JSON content type is invalid even on 200", func(t *testing.T) {
		ts := newTestServer(t)
		ts.ctype = "text/html"
		ts.response = `<html></html>`
		g, _ := newGateway(ts)

		err := g.Call(ctx, "/events", apiclient.Get(), nil)
		require.ErrorIs(t, err, apperrors.ErrInvalidResponseFormat)
		require.Equal(t, "Invalid response format", err.Error())
	})

	t.Run("undecodable JSON body is invalid", func(t *testing.T) {
		ts := newTestServer(t)
		ts.response = `{"id":`
		g, _ := newGateway(ts)

		err := g.Call(ctx, "/events", apiclient.Get(), &map[string]any{})
		require.ErrorIs(t, err, apperrors.ErrInvalidResponseFormat)
	})

	t.Run("server message and status on failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.status = http.StatusConflict
		ts.response = `{"message":"Event is full","statusCode":409}`
		g, _ := newGateway(ts)

		err := g.Call(ctx, "/reservations", apiclient.Post(map[string]int{"eventId": 1}), nil)
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Event is full", apiErr.Message)
		require.Equal(t, http.StatusConflict, apiErr.Status)
	})

	t.Run("message list is joined", func(t *testing.T) {
		ts := newTestServer(t)
		ts.status = http.StatusBadRequest
		ts.response = `{"message":["name should not be empty","price must be a number"]}`
		g, _ := newGateway(ts)

		err := g.Call(ctx, "/events", apiclient.Post(map[string]string{}), nil)
		require.EqualError(t, err, "name should not be empty; price must be a number")
	})

	t.Run("generic message when server gives none", func(t *testing.T) {
		ts := newTestServer(t)
		ts.status = http.StatusInternalServerError
		ts.response = `{}`
		g, _ := newGateway(ts)

		err := g.Call(ctx, "/events", apiclient.Get(), nil)
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "An error occurred", apiErr.Message)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})

	t.Run("no content succeeds", func(t *testing.T) {
		ts := newTestServer(t)
		ts.status = http.StatusNoContent
		ts.response = ``
		g, _ := newGateway(ts)

		require.NoError(t, g.Call(ctx, "/reviews/1", apiclient.Delete(), &map[string]any{}))
	})
}

func TestGateway_TransportFailure(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL
	ts.Close()

	g := apiclient.New(url, nil)
	err := g.Call(context.Background(), "/events", apiclient.Get(), nil)
	require.ErrorIs(t, err, apperrors.ErrTransport)
	require.Contains(t, err.Error(), "request failed")
}

func TestGateway_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer slow.Close()

	g := apiclient.New(slow.URL, nil, apiclient.WithTimeout(50*time.Millisecond))
	err := g.Call(context.Background(), "/events", apiclient.Get(), nil)
	require.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestChainTransport_Order(t *testing.T) {
	var order []string
	mw := func(name string) apiclient.Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return apiclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := apiclient.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Header: http.Header{}}, nil
	})

	rt := apiclient.ChainTransport(base, mw("first"), mw("second"))
	req, err := http.NewRequest(http.MethodGet, "http://example.invalid/", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "base"}, order)
}

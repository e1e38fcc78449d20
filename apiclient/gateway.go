package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

const contentTypeJSON = "application/json"

// Caller is the gateway surface used by the resource services
type Caller interface {
	Call(ctx context.Context, endpoint string, req Request, out any) error
}

// Gateway sends JSON requests to the ticketing backend. The bearer token is
// read from the token source on every call, so it always reflects the latest
// persisted credentials. There is no automatic refresh on 401.
type Gateway struct {
	baseURL   string
	client    *http.Client
	tokens    oauth2.TokenSource
	userAgent string
	logger    zerolog.Logger
}

var _ Caller = (*Gateway)(nil)

type Option func(*Gateway)

// WithHTTPClient replaces the underlying client. Its transport is still
// wrapped with the gateway middleware.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		c := *client
		g.client = &c
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.client.Timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(g *Gateway) {
		g.userAgent = userAgent
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithMiddleware adds transport middleware after the built-in ones
func WithMiddleware(mw ...Middleware) Option {
	return func(g *Gateway) {
		g.client.Transport = ChainTransport(g.client.Transport, mw...)
	}
}

// New builds a gateway for baseURL. tokens may be nil when no call needs
// authentication.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		tokens:  tokens,
		logger:  log.Logger.With().Str("component", "apiclient").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.client.Transport = ChainTransport(g.client.Transport, RequestIDMiddleware, LoggingMiddleware(g.logger))
	return g
}

// BaseURL returns the backend root every endpoint is appended to
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Call sends req to endpoint and decodes a successful JSON body into out
// (which may be nil). Errors:
//   - ErrAuthenticationRequired for any 401
//   - ErrInvalidResponseFormat for non-JSON responses or undecodable bodies
//   - *APIError for any other non-2xx status
//   - ErrTransport wrapping the cause for network failures
func (g *Gateway) Call(ctx context.Context, endpoint string, req Request, out any) error {
	httpReq, err := g.newRequest(ctx, endpoint, req)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	return g.handleResponse(resp, out)
}

// Do is Call with the result typed by the caller. The shape is trusted, not
// validated.
func Do[T any](ctx context.Context, c Caller, endpoint string, req Request) (T, error) {
	var result T
	if err := c.Call(ctx, endpoint, req, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (g *Gateway) newRequest(ctx context.Context, endpoint string, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), g.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTransport, err)
	}

	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)
	if g.userAgent != "" {
		httpReq.Header.Set("User-Agent", g.userAgent)
	}
	// Caller headers win over the defaults
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if req.RequiresAuth() {
		g.attachToken(httpReq)
	}
	return httpReq, nil
}

// attachToken sets the bearer header when a token exists. A missing token is
// not an error here; the backend decides whether the call needed one.
func (g *Gateway) attachToken(httpReq *http.Request) {
	if g.tokens == nil {
		return
	}
	tok, err := g.tokens.Token()
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNoToken) {
			g.logger.Warn().Err(err).Msg("Failed to get access token")
		}
		return
	}
	if tok == nil || tok.AccessToken == "" {
		return
	}
	tok.SetAuthHeader(httpReq)
}

func (g *Gateway) handleResponse(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		// Token might be expired or invalid; the caller decides what to do
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.ErrAuthenticationRequired
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, contentTypeJSON) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.ErrInvalidResponseFormat
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if success && resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", apperrors.ErrTransport, err)
	}
	if !json.Valid(body) {
		return apperrors.ErrInvalidResponseFormat
	}

	if !success {
		return &APIError{
			Message: serverMessage(body),
			Status:  resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidResponseFormat, err)
	}
	return nil
}

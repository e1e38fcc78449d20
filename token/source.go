package token

import (
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-ticketing-client/credstore"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

// Reader is the read side of the credential store
type Reader interface {
	Get(key string) (string, bool)
}

// StoreSource reads the access token from the credential store on every call
// rather than from the in-memory session, so requests always carry the latest
// persisted value.
type StoreSource struct {
	store Reader
}

var _ oauth2.TokenSource = (*StoreSource)(nil)

func NewStoreSource(store Reader) *StoreSource {
	return &StoreSource{store: store}
}

// Token returns ErrNoToken when nothing is stored
func (s *StoreSource) Token() (*oauth2.Token, error) {
	accessToken, ok := s.store.Get(credstore.KeyAccessToken)
	if !ok || accessToken == "" {
		return nil, apperrors.ErrNoToken
	}
	return &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}, nil
}

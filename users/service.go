package users

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

// Service wraps the user management endpoints
type Service struct {
	api apiclient.Caller
}

func NewService(api apiclient.Caller) *Service {
	return &Service{api: api}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Account, error) {
	if !input.Role.Valid() {
		return Account{}, apperrors.Validationf("unknown role %q", input.Role)
	}
	account, err := apiclient.Do[Account](ctx, s.api, "/users", apiclient.Post(input))
	if err != nil {
		return Account{}, fmt.Errorf("create user: %w", err)
	}
	return account, nil
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	accounts, err := apiclient.Do[[]Account](ctx, s.api, "/users", apiclient.Get())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return accounts, nil
}

func (s *Service) ListByRole(ctx context.Context, role Role) ([]Account, error) {
	if !role.Valid() {
		return nil, apperrors.Validationf("unknown role %q", role)
	}
	endpoint := "/users?" + url.Values{"role": {string(role)}}.Encode()
	accounts, err := apiclient.Do[[]Account](ctx, s.api, endpoint, apiclient.Get())
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	return accounts, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	account, err := apiclient.Do[Account](ctx, s.api, fmt.Sprintf("/users/%d", id), apiclient.Get())
	if err != nil {
		return Account{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return account, nil
}

// FindByEmail looks a user up by email address
func (s *Service) FindByEmail(ctx context.Context, email string) (Account, error) {
	endpoint := "/users/email/" + url.PathEscape(email)
	account, err := apiclient.Do[Account](ctx, s.api, endpoint, apiclient.Get())
	if err != nil {
		return Account{}, fmt.Errorf("find user by email: %w", err)
	}
	return account, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Account, error) {
	account, err := apiclient.Do[Account](ctx, s.api, fmt.Sprintf("/users/%d", id), apiclient.Put(input))
	if err != nil {
		return Account{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return account, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	resp, err := apiclient.Do[DeleteResponse](ctx, s.api, fmt.Sprintf("/users/%d", id), apiclient.Delete())
	if err != nil {
		return DeleteResponse{}, fmt.Errorf("delete user %d: %w", id, err)
	}
	return resp, nil
}

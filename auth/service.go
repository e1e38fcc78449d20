package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	"github.com/jrsteele09/go-ticketing-client/sessions"
	"github.com/jrsteele09/go-ticketing-client/users"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         *users.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Service wraps the auth endpoints and keeps the session holder in step with
// their results.
type Service struct {
	api       apiclient.Caller
	session   *sessions.Holder
	validator *Validator
}

func NewService(api apiclient.Caller, session *sessions.Holder) *Service {
	return &Service{
		api:       api,
		session:   session,
		validator: NewValidator(),
	}
}

// Login validates the credentials, authenticates and stores the new session.
// The email is sent trimmed, the same form the validator accepted.
func (s *Service) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := s.validator.ValidateLogin(creds.Email, creds.Password); err != nil {
		return LoginResponse{}, err
	}

	resp, err := apiclient.Do[LoginResponse](ctx, s.api, "/auth/login", apiclient.Post(creds).AsPublic())
	if err != nil {
		return LoginResponse{}, fmt.Errorf("login: %w", err)
	}
	if resp.User == nil || resp.AccessToken == "" {
		return LoginResponse{}, MissingLoginResponseErr
	}

	s.session.SetSession(resp.User, resp.AccessToken, resp.RefreshToken)
	return resp, nil
}

// Logout tells the backend to revoke the refresh token and then clears the
// local session. The session is cleared even when the call fails.
func (s *Service) Logout(ctx context.Context) error {
	defer s.session.ClearAuth()

	refreshToken := s.session.RefreshToken()
	if refreshToken == "" {
		return nil
	}

	req := apiclient.Post(map[string]string{"refreshToken": refreshToken})
	if err := s.api.Call(ctx, "/auth/logout", req, nil); err != nil {
		log.Warn().Err(err).Msg("Logout failed, clearing local session anyway")
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token. Nothing
// calls this automatically.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	refreshToken := s.session.RefreshToken()
	if refreshToken == "" {
		return "", MissingRefreshTokenErr
	}

	resp, err := apiclient.Do[RefreshTokenResponse](ctx, s.api, "/auth/refresh-token", apiclient.Post(map[string]string{"refreshToken": refreshToken}).AsPublic())
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", MissingRefreshedTokenErr
	}

	s.session.SetAccessToken(resp.AccessToken)
	return resp.AccessToken, nil
}

// ForgotPassword sets a new password for the user with id. It needs no
// session.
func (s *Service) ForgotPassword(ctx context.Context, id int64, password, confirmPassword string) error {
	if err := s.validator.ValidatePasswordChange(password, confirmPassword); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("/auth/forgot-password/%d", id)
	req := apiclient.Post(map[string]string{"password": password}).AsPublic()
	if err := s.api.Call(ctx, endpoint, req, nil); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

package reservations

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

// Service wraps the reservation endpoints
type Service struct {
	api apiclient.Caller
}

func NewService(api apiclient.Caller) *Service {
	return &Service{api: api}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Reservation, error) {
	reservation, err := apiclient.Do[Reservation](ctx, s.api, "/reservations", apiclient.Post(input))
	if err != nil {
		return Reservation{}, fmt.Errorf("create reservation: %w", err)
	}
	return reservation, nil
}

// CreateMany books quantity seats for the same user and event with one
// concurrent request per seat. Every request runs to completion; the first
// failure is returned once all have finished. Reservations that succeeded are
// kept; nothing is rolled back.
func (s *Service) CreateMany(ctx context.Context, input CreateInput, quantity int) ([]Reservation, error) {
	if quantity < 1 {
		return nil, apperrors.Validationf("quantity must be at least 1, got %d", quantity)
	}

	created := make([]Reservation, quantity)
	var g errgroup.Group
	for i := range quantity {
		g.Go(func() error {
			reservation, err := s.Create(ctx, input)
			if err != nil {
				return err
			}
			created[i] = reservation
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Int64("eventId", input.EventID).Int("quantity", quantity).Msg("Bulk reservation failed part way")
		return nil, err
	}
	return created, nil
}

func (s *Service) Cancel(ctx context.Context, id int64) (CancelResponse, error) {
	endpoint := fmt.Sprintf("/reservations/%d/cancel", id)
	resp, err := apiclient.Do[CancelResponse](ctx, s.api, endpoint, apiclient.Patch(nil))
	if err != nil {
		return CancelResponse{}, fmt.Errorf("cancel reservation %d: %w", id, err)
	}
	return resp, nil
}

func (s *Service) ListByEvent(ctx context.Context, eventID int64, opts ListOptions) ([]Reservation, error) {
	endpoint := withOptions(fmt.Sprintf("/reservations/event/%d", eventID), opts)
	list, err := apiclient.Do[[]Reservation](ctx, s.api, endpoint, apiclient.Get())
	if err != nil {
		return nil, fmt.Errorf("list reservations for event %d: %w", eventID, err)
	}
	return list, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]Reservation, error) {
	endpoint := withOptions(fmt.Sprintf("/reservations/user/%d", userID), opts)
	list, err := apiclient.Do[[]Reservation](ctx, s.api, endpoint, apiclient.Get())
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	return list, nil
}

func withOptions(path string, opts ListOptions) string {
	if !opts.IncludeCancelled {
		return path
	}
	return path + "?" + url.Values{"includeCancelled": {strconv.FormatBool(true)}}.Encode()
}

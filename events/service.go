package events

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/internal/utils"
)

// Service wraps the event endpoints
type Service struct {
	api apiclient.Caller
}

func NewService(api apiclient.Caller) *Service {
	return &Service{api: api}
}

func (s *Service) Create(ctx context.Context, input Input) (Event, error) {
	if err := validateInput(input); err != nil {
		return Event{}, err
	}
	event, err := apiclient.Do[Event](ctx, s.api, "/events", apiclient.Post(input))
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// List returns events visible to staff, filtered by params
func (s *Service) List(ctx context.Context, params ListParams) ([]Event, error) {
	endpoint, err := withQuery("/events", params)
	if err != nil {
		return nil, err
	}
	list, err := apiclient.Do[[]Event](ctx, s.api, endpoint, apiclient.Get())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return list, nil
}

// ListPublicSorted returns the public catalogue ordered by status. It needs
// no session.
func (s *Service) ListPublicSorted(ctx context.Context, params ListParams) ([]Event, error) {
	endpoint, err := withQuery("/events/public/sorted", params)
	if err != nil {
		return nil, err
	}
	list, err := apiclient.Do[[]Event](ctx, s.api, endpoint, apiclient.Get().AsPublic())
	if err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	event, err := apiclient.Do[Event](ctx, s.api, fmt.Sprintf("/events/%d", id), apiclient.Get())
	if err != nil {
		return Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (Event, error) {
	if err := validateInput(input); err != nil {
		return Event{}, err
	}
	event, err := apiclient.Do[Event](ctx, s.api, fmt.Sprintf("/events/%d", id), apiclient.Put(input))
	if err != nil {
		return Event{}, fmt.Errorf("update event %d: %w", id, err)
	}
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	resp, err := apiclient.Do[DeleteResponse](ctx, s.api, fmt.Sprintf("/events/%d", id), apiclient.Delete())
	if err != nil {
		return DeleteResponse{}, fmt.Errorf("delete event %d: %w", id, err)
	}
	return resp, nil
}

func validateInput(input Input) error {
	if input.Name == "" {
		return apperrors.Validationf("event name is required")
	}
	if input.Status != nil && !input.Status.Valid() {
		return apperrors.Validationf("unknown event status %q", utils.Value(input.Status))
	}
	if input.MaxCapacity < 1 {
		return apperrors.Validationf("max capacity must be at least 1")
	}
	if input.Price < 0 {
		return apperrors.Validationf("price cannot be negative")
	}
	return nil
}

func withQuery(path string, params ListParams) (string, error) {
	query := url.Values{}
	if params.Status != nil {
		if !params.Status.Valid() {
			return "", apperrors.Validationf("unknown event status %q", utils.Value(params.Status))
		}
		query.Set("status", string(*params.Status))
	}
	if params.Country != "" {
		query.Set("country", params.Country)
	}
	if params.City != "" {
		query.Set("city", params.City)
	}
	if len(query) == 0 {
		return path, nil
	}
	return path + "?" + query.Encode(), nil
}

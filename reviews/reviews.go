package reviews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	"github.com/jrsteele09/go-ticketing-client/events"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/users"
)

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID         int64           `json:"id"`
	ReviewText string          `json:"reviewText"`
	Rating     int             `json:"rating"`
	EventID    int64           `json:"eventId"`
	UserID     int64           `json:"userId"`
	IsDeleted  bool            `json:"isDeleted"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	User       *users.Summary  `json:"user,omitempty"`
	Event      *events.Summary `json:"event,omitempty"`
}

type CreateInput struct {
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
	EventID    int64  `json:"eventId"`
	UserID     int64  `json:"userId"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	Review  Review `json:"review"`
}

// Service wraps the review endpoints
type Service struct {
	api apiclient.Caller
}

func NewService(api apiclient.Caller) *Service {
	return &Service{api: api}
}

// Create posts a review. Ratings outside 0..5 and empty text are rejected
// before any request is made.
func (s *Service) Create(ctx context.Context, input CreateInput) (Review, error) {
	if input.Rating < MinRating || input.Rating > MaxRating {
		return Review{}, apperrors.Validationf("rating must be between %d and %d, got %d", MinRating, MaxRating, input.Rating)
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		return Review{}, apperrors.Validationf("review text is required")
	}

	review, err := apiclient.Do[Review](ctx, s.api, "/reviews", apiclient.Post(input))
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	resp, err := apiclient.Do[DeleteResponse](ctx, s.api, fmt.Sprintf("/reviews/%d", id), apiclient.Delete())
	if err != nil {
		return DeleteResponse{}, fmt.Errorf("delete review %d: %w", id, err)
	}
	return resp, nil
}

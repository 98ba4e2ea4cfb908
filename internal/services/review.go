package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type CreateReviewRequest struct {
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	TrackingCode string `json:"tracking_code"`
}

type ReviewListing struct {
	Reviews   []*types.Review        `json:"reviews"`
	Aggregate *repos.ReviewAggregate `json:"aggregate"`
}

type ReviewService interface {
	Create(ctx context.Context, req CreateReviewRequest) (*types.Review, error)
	List(ctx context.Context, limit, offset int) (*ReviewListing, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
}

type reviewService struct {
	db         *gorm.DB
	log        *logger.Logger
	reviewRepo repos.ReviewRepo
	orderRepo  repos.OrderRepo
}

func NewReviewService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo, orderRepo repos.OrderRepo) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{db: db, log: serviceLog, reviewRepo: reviewRepo, orderRepo: orderRepo}
}

func (rs *reviewService) Create(ctx context.Context, req CreateReviewRequest) (*types.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apierr.BadRequest("invalid_rating", fmt.Errorf("rating must be between 1 and 5"))
	}

	review := &types.Review{
		ID:      uuid.New(),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}

	// An optional tracking code ties the review to a real order.
	if code := NormalizeCode(req.TrackingCode); code != "" {
		orders, err := rs.orderRepo.GetByTrackingCodes(ctx, nil, []string{code})
		if err != nil {
			return nil, fmt.Errorf("failed to look up order for review: %w", err)
		}
		if len(orders) == 0 {
			return nil, apierr.NotFound("order_not_found", fmt.Errorf("no order for this tracking code"))
		}
		review.TrackingCode = code
		review.OrderID = &orders[0].ID
	}

	if _, err := rs.reviewRepo.Create(ctx, nil, []*types.Review{review}); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (rs *reviewService) List(ctx context.Context, limit, offset int) (*ReviewListing, error) {
	reviews, err := rs.reviewRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	agg, err := rs.reviewRepo.Aggregate(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return &ReviewListing{Reviews: reviews, Aggregate: agg}, nil
}

func (rs *reviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	rows, err := rs.reviewRepo.GetByIDs(ctx, nil, []uuid.UUID{reviewID})
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if len(rows) == 0 {
		return apierr.NotFound("review_not_found", fmt.Errorf("unknown review"))
	}
	return rs.reviewRepo.Delete(ctx, nil, []uuid.UUID{reviewID})
}

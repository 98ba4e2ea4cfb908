package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type ReviewAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Review, error)
	Delete(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) error
	Aggregate(ctx context.Context, tx *gorm.DB) (*ReviewAggregate, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(reviews) == 0 {
		return []*types.Review{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

func (rr *reviewRepo) GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Review

	if len(reviewIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", reviewIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *reviewRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Review{})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var results []*types.Review
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(reviewIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", reviewIDs).
		Delete(&types.Review{}).Error; err != nil {
		return err
	}

	return nil
}

func (rr *reviewRepo) Aggregate(ctx context.Context, tx *gorm.DB) (*ReviewAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var agg ReviewAggregate
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	return &agg, nil
}

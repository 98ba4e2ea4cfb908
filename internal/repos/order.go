package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type OrderFilter struct {
	Status *types.OrderStatus
	Limit  int
	Offset int
}

type StatusCount struct {
	Status types.OrderStatus `json:"status"`
	Count  int64             `json:"count"`
}

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error)
	GetByTrackingCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Order, error)
	List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, from, to types.OrderStatus, completedAt *time.Time) (int64, error)
	ListCreatedBetween(ctx context.Context, tx *gorm.DB, fromAt, toAt time.Time) ([]*types.Order, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, fromAt, toAt time.Time) ([]StatusCount, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if len(orders) == 0 {
		return []*types.Order{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (or *orderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Order

	if len(orderIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (or *orderRepo) GetByTrackingCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Order

	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("tracking_code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	q := transaction.WithContext(ctx).Model(&types.Order{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.Order
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateStatus applies one guarded state-machine step. The WHERE clause pins
// the expected current status so concurrent transitions cannot skip states:
// zero rows affected means somebody else moved the order first.
func (or *orderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, from, to types.OrderStatus, completedAt *time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	updates := map[string]interface{}{"status": to}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}

	res := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (or *orderRepo) ListCreatedBetween(ctx context.Context, tx *gorm.DB, fromAt, toAt time.Time) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", fromAt, toAt).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) CountByStatus(ctx context.Context, tx *gorm.DB, fromAt, toAt time.Time) ([]StatusCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []StatusCount
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", fromAt, toAt).
		Group("status").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

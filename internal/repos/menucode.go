package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

// MenuCodeFilter narrows admin code listings.
type MenuCodeFilter struct {
	Used    *bool
	Expired *bool
	Limit   int
	Offset  int
}

type MenuCodeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, codes []*types.MenuCode) ([]*types.MenuCode, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, codeIDs []uuid.UUID) ([]*types.MenuCode, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.MenuCode, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter MenuCodeFilter) ([]*types.MenuCode, error)
	MarkRedeemed(ctx context.Context, tx *gorm.DB, codeID uuid.UUID, orderID uuid.UUID, now time.Time) (int64, error)
	DeleteExpiredBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type menuCodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMenuCodeRepo(db *gorm.DB, baseLog *logger.Logger) MenuCodeRepo {
	repoLog := baseLog.With("repo", "MenuCodeRepo")
	return &menuCodeRepo{db: db, log: repoLog}
}

func (mcr *menuCodeRepo) Create(ctx context.Context, tx *gorm.DB, codes []*types.MenuCode) ([]*types.MenuCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	if len(codes) == 0 {
		return []*types.MenuCode{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&codes).Error; err != nil {
		return nil, err
	}

	return codes, nil
}

func (mcr *menuCodeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, codeIDs []uuid.UUID) ([]*types.MenuCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	var results []*types.MenuCode

	if len(codeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", codeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (mcr *menuCodeRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.MenuCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	var results []*types.MenuCode

	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (mcr *menuCodeRepo) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.MenuCode{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mcr *menuCodeRepo) List(ctx context.Context, tx *gorm.DB, filter MenuCodeFilter) ([]*types.MenuCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	q := transaction.WithContext(ctx).Model(&types.MenuCode{})
	if filter.Used != nil {
		q = q.Where("used = ?", *filter.Used)
	}
	if filter.Expired != nil {
		if *filter.Expired {
			q = q.Where("expires_at <= ?", time.Now())
		} else {
			q = q.Where("expires_at > ?", time.Now())
		}
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.MenuCode
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkRedeemed flips the single-use flag. The WHERE clause is the
// authoritative guard: it only matches an unused, unexpired code, so a
// concurrent double redemption affects zero rows and the caller rolls back.
func (mcr *menuCodeRepo) MarkRedeemed(ctx context.Context, tx *gorm.DB, codeID uuid.UUID, orderID uuid.UUID, now time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.MenuCode{}).
		Where("id = ? AND used = ? AND expires_at > ?", codeID, false, now).
		Updates(map[string]interface{}{
			"used":     true,
			"used_at":  now,
			"order_id": orderID,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DeleteExpiredBefore removes unused codes that expired before cutoff. Used
// codes stay forever because they double as order tracking identifiers.
func (mcr *menuCodeRepo) DeleteExpiredBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mcr.db
	}

	res := transaction.WithContext(ctx).
		Where("used = ? AND expires_at < ?", false, cutoff).
		Delete(&types.MenuCode{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

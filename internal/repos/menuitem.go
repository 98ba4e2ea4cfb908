package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type MenuItemFilter struct {
	Kind          *types.MenuItemKind
	OnlyOrderable bool
}

type MenuItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.MenuItem) ([]*types.MenuItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.MenuItem, error)
	List(ctx context.Context, tx *gorm.DB, filter MenuItemFilter) ([]*types.MenuItem, error)
	Update(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error
	DecrementStock(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error)
	UpsertByKindName(ctx context.Context, tx *gorm.DB, items []*types.MenuItem) error
}

type menuItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMenuItemRepo(db *gorm.DB, baseLog *logger.Logger) MenuItemRepo {
	repoLog := baseLog.With("repo", "MenuItemRepo")
	return &menuItemRepo{db: db, log: repoLog}
}

func (mir *menuItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.MenuItem) ([]*types.MenuItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	if len(items) == 0 {
		return []*types.MenuItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (mir *menuItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.MenuItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	var results []*types.MenuItem

	if len(itemIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (mir *menuItemRepo) List(ctx context.Context, tx *gorm.DB, filter MenuItemFilter) ([]*types.MenuItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	q := transaction.WithContext(ctx).Model(&types.MenuItem{})
	if filter.Kind != nil {
		q = q.Where("kind = ?", *filter.Kind)
	}
	if filter.OnlyOrderable {
		q = q.Where("available = ? AND stock > 0", true)
	}

	var results []*types.MenuItem
	if err := q.Order("kind ASC, name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mir *menuItemRepo) Update(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	if len(updates) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.MenuItem{}).
		Where("id = ?", itemID).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (mir *menuItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	if len(itemIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Delete(&types.MenuItem{}).Error; err != nil {
		return err
	}

	return nil
}

// DecrementStock takes one unit off an orderable item. Zero rows affected
// means the item sold out (or went unavailable) under the caller.
func (mir *menuItemRepo) DecrementStock(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.MenuItem{}).
		Where("id = ? AND available = ? AND stock > 0", itemID, true).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UpsertByKindName seeds the catalog: existing (kind, name) rows get price,
// availability and stock refreshed, new rows are inserted.
func (mir *menuItemRepo) UpsertByKindName(ctx context.Context, tx *gorm.DB, items []*types.MenuItem) error {
	transaction := tx
	if transaction == nil {
		transaction = mir.db
	}

	if len(items) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "available", "stock"}),
		}).
		Create(&items).Error
}

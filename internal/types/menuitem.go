package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type MenuItemKind string

const (
	MenuItemFlavor  MenuItemKind = "flavor"
	MenuItemTopping MenuItemKind = "topping"
)

func ParseMenuItemKind(raw string) (MenuItemKind, bool) {
	kind := MenuItemKind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case MenuItemFlavor, MenuItemTopping:
		return kind, true
	}
	return "", false
}

// MenuItem is a catalog row: a shaved-ice flavor or a topping. Price is the
// surcharge added on top of the cup-size base price.
type MenuItem struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      MenuItemKind `gorm:"not null;index:idx_menu_item_kind_name,unique;column:kind" json:"kind"`
	Name      string       `gorm:"not null;index:idx_menu_item_kind_name,unique;column:name" json:"name"`
	Price     int64        `gorm:"not null;default:0;column:price" json:"price"`
	Available bool         `gorm:"not null;default:true;column:available" json:"available"`
	Stock     int          `gorm:"not null;default:0;column:stock" json:"stock"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_item"
}

// Orderable reports whether the item can go into a new order right now.
func (mi *MenuItem) Orderable() bool {
	return mi.Available && mi.Stock > 0
}

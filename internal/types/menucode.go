package types

import (
	"time"

	"github.com/google/uuid"
)

// MenuCode is a staff-issued one-time code. It unlocks the ordering flow for
// a single order and afterwards doubles as that order's tracking identifier.
type MenuCode struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string     `gorm:"uniqueIndex;not null;size:5;column:code" json:"code"`
	CupSize     CupSize    `gorm:"not null;column:cup_size" json:"cup_size"`
	Used        bool       `gorm:"not null;default:false;column:used" json:"used"`
	UsedAt      *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index;column:order_id" json:"order_id,omitempty"`
	ExpiresAt   time.Time  `gorm:"not null;index;column:expires_at" json:"expires_at"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;index;column:created_by_id" json:"created_by_id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (MenuCode) TableName() string {
	return "menu_code"
}

func (mc *MenuCode) Expired(now time.Time) bool {
	return now.After(mc.ExpiresAt)
}

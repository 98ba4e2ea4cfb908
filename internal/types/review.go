package types

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Rating       int        `gorm:"not null;column:rating" json:"rating"`
	Comment      string     `gorm:"column:comment" json:"comment"`
	TrackingCode string     `gorm:"index;size:5;column:tracking_code" json:"tracking_code,omitempty"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index;column:order_id" json:"order_id,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Review) TableName() string {
	return "review"
}

package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// orderTransitions is the status state machine. Completed and Cancelled are
// terminal; cancellation is only possible before the dessert is made.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

func ParseOrderStatus(raw string) (OrderStatus, bool) {
	want := strings.ToLower(strings.TrimSpace(raw))
	for status := range orderTransitions {
		if strings.ToLower(string(status)) == want {
			return status, true
		}
	}
	return "", false
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ToppingSnapshot freezes a topping's name and surcharge at order time, so
// later catalog edits never rewrite order history.
type ToppingSnapshot struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Price  int64     `json:"price"`
}

type Order struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingCode string         `gorm:"uniqueIndex;not null;size:5;column:tracking_code" json:"tracking_code"`
	MenuCodeID   uuid.UUID      `gorm:"type:uuid;index;not null;column:menu_code_id" json:"menu_code_id"`
	CupSize      CupSize        `gorm:"not null;column:cup_size" json:"cup_size"`
	FlavorID     uuid.UUID      `gorm:"type:uuid;not null;column:flavor_id" json:"flavor_id"`
	FlavorName   string         `gorm:"not null;column:flavor_name" json:"flavor_name"`
	FlavorPrice  int64          `gorm:"not null;default:0;column:flavor_price" json:"flavor_price"`
	Toppings     datatypes.JSON `gorm:"column:toppings" json:"toppings"`
	Note         string         `gorm:"column:note" json:"note"`
	TotalPrice   int64          `gorm:"not null;column:total_price" json:"total_price"`
	Status       OrderStatus    `gorm:"not null;index;default:Pending;column:status" json:"status"`
	CompletedAt  *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (Order) TableName() string {
	return "order"
}

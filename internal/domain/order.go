package domain

import (
	"context"
	"time"
)

// Order lifecycle. Completed and cancelled are terminal only by
// convention; any known status can be set on any order.
const (
	OrderPending   = "pending"
	OrderOngoing   = "ongoing"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Order is a purchase request against a catalog entry. ProductName is
// denormalized at creation time so the order survives catalog edits.
type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	ProductName string    `gorm:"size:128;not null" json:"product_name"`
	Quantity    string    `gorm:"size:50" json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `gorm:"index;size:16;not null;default:pending" json:"status"`
	Priority    string    `gorm:"size:16;not null;default:medium" json:"priority"`
	Notes       string    `gorm:"size:500" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderOngoing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrderFilter narrows a listing. Zero values mean "no filter".
type OrderFilter struct {
	Status    string
	ProductID uint
	Offset    int
	Limit     int
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context, f OrderFilter) ([]Order, error)
	// UpdateStatus reports the number of rows touched; zero means the
	// order does not exist.
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// CountOpen counts orders still pending or ongoing.
	CountOpen(ctx context.Context) (int64, error)
	// Revenue sums the total amount of completed orders.
	Revenue(ctx context.Context) (float64, error)
}

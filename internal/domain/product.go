package domain

import (
	"context"
	"time"
)

// Product is a catalog entry. Price is a free-form display string
// ("KSh 120 / kg"), not a numeric amount.
type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Price     string    `gorm:"size:64;not null" json:"price"`
	ImageURL  string    `gorm:"size:1024;not null" json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	// Seed inserts the given products, skipping any whose name already
	// exists. Running it twice leaves one row per name.
	Seed(ctx context.Context, ps []Product) error
	List(ctx context.Context, search string, offset, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
}

package repo

import (
	"context"

	"gorm.io/gorm"

	"agritradehub/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Order{})
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.ProductID != 0 {
		tx = tx.Where("product_id = ?", f.ProductID)
	}
	var os []domain.Order
	err := tx.Order("created_at desc").Offset(f.Offset).Limit(f.Limit).Find(&os).Error
	return os, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error
	return total, err
}

func (r *OrderRepo) CountOpen(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status IN ?", []string{domain.OrderPending, domain.OrderOngoing}).
		Count(&total).Error
	return total, err
}

func (r *OrderRepo) Revenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agritradehub/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil && isDupKey(err) {
		return domain.ErrDuplicateProduct
	}
	return err
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Seed inserts the catalog, skipping names that already exist.
func (r *ProductRepo) Seed(ctx context.Context, ps []domain.Product) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&ps).Error
}

func (r *ProductRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Product, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Product{})
	if search != "" {
		tx = tx.Where("name LIKE ?", "%"+search+"%")
	}
	var ps []domain.Product
	err := tx.Order("name").Offset(offset).Limit(limit).Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, err
}

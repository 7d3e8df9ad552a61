package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
)

type Products interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpsertProductByName(ctx context.Context, p *models.Product) (bool, error)
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

// UpsertProductByName creates p unless a product with the same name exists, in
// which case p is filled from the stored row. It reports whether a row was created.
func (r *GormRepo) UpsertProductByName(ctx context.Context, p *models.Product) (bool, error) {
	var existing models.Product
	err := r.DB.WithContext(ctx).Where("name = ?", p.Name).Order("id ASC").First(&existing).Error
	switch {
	case err == nil:
		*p = existing
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
			return false, translate(err)
		}
		return true, nil
	default:
		return false, err
	}
}

package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
)

type Orders interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	SetOrderTotal(ctx context.Context, orderID uint, total decimal.Decimal) error
	ListOrdersByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)

	// InTx runs fn against a repository bound to a single transaction. Any error
	// returned by fn rolls the whole transaction back.
	InTx(ctx context.Context, fn func(tx Orders) error) error
}

func (r *GormRepo) InTx(ctx context.Context, fn func(tx Orders) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(o).Error)
}

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (r *GormRepo) SetOrderTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListOrdersByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.Product").
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

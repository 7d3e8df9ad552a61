package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	"github.com/Skotchmaster/online_pharmacy/pkg/search"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/repo"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

type ProductIndex interface {
	Enabled() bool
	IndexProduct(ctx context.Context, p search.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []search.Product, error)
}

type CatalogService struct {
	Repo  repo.Products
	Index ProductIndex
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_error", "svc", "catalog.list", "error", err)
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	price := decimal.NewFromFloat(req.Price).Round(2)
	if price.GreaterThan(models.MaxProductPrice) {
		return nil, fmt.Errorf("%w: price must be <= %s", ErrValidation, models.MaxProductPrice.StringFixed(2))
	}

	p := &models.Product{
		Name:        name,
		Description: req.Description,
		Price:       price,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		l.Error("create_product_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return nil, err
	}

	s.index(ctx, p)
	l.Info("create_product_success", "product_id", p.ID)
	return p, nil
}

// SearchProducts runs a full-text query against the product index.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []search.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: q is required", ErrValidation)
	}
	if s.Index == nil || !s.Index.Enabled() {
		return 0, nil, search.ErrDisabled
	}
	return s.Index.Search(ctx, query, from, size)
}

// index is best effort: the product row is the source of truth.
func (s *CatalogService) index(ctx context.Context, p *models.Product) {
	if s.Index == nil || !s.Index.Enabled() {
		return
	}
	if err := s.Index.IndexProduct(ctx, ToSearchProduct(*p)); err != nil {
		logging.FromContext(ctx).Warn("index_product_failed", "product_id", p.ID, "error", err)
	}
}

func ToSearchProduct(p models.Product) search.Product {
	return search.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
	}
}

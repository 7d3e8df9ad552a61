package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/online_pharmacy/pkg/logging"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/service"
)

//go:embed products.yaml
var defaultCatalog []byte

type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
}

type Catalog struct {
	Products []Item `yaml:"products"`
}

type Store interface {
	UpsertProductByName(ctx context.Context, p *models.Product) (bool, error)
}

type Result struct {
	Created  int
	Existing int
}

func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from path, or the built-in catalog when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("invalid catalog file: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Products))
	for i, it := range c.Products {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return fmt.Errorf("products[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("products[%d]: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}

		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return fmt.Errorf("products[%d]: invalid price %q", i, it.Price)
		}
		if price.IsNegative() {
			return fmt.Errorf("products[%d]: price must be >= 0", i)
		}
		if price.Round(2).GreaterThan(models.MaxProductPrice) {
			return fmt.Errorf("products[%d]: price must be <= %s", i, models.MaxProductPrice.StringFixed(2))
		}
	}
	return nil
}

// Apply inserts every catalog product whose name is not stored yet. Products
// that already exist are left untouched, so running it twice is a no-op.
func Apply(ctx context.Context, store Store, idx service.ProductIndex, cat *Catalog) (Result, error) {
	l := logging.FromContext(ctx).With("svc", "seed.apply")

	var res Result
	for _, it := range cat.Products {
		p := &models.Product{
			Name:        strings.TrimSpace(it.Name),
			Description: it.Description,
			Price:       decimal.RequireFromString(it.Price).Round(2),
			Category:    it.Category,
		}
		created, err := store.UpsertProductByName(ctx, p)
		if err != nil {
			return res, fmt.Errorf("seed %q: %w", p.Name, err)
		}
		if !created {
			res.Existing++
			continue
		}
		res.Created++

		if idx != nil && idx.Enabled() {
			if err := idx.IndexProduct(ctx, service.ToSearchProduct(*p)); err != nil {
				l.Warn("index_product_failed", "product_id", p.ID, "error", err)
			}
		}
	}

	l.Info("seed_done", "created", res.Created, "existing", res.Existing)
	return res, nil
}

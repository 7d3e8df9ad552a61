package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	"github.com/Skotchmaster/online_pharmacy/pkg/search"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/service"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
	"github.com/Skotchmaster/online_pharmacy/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func toProduct(p models.Product) transport.Product {
	return transport.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
	}
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	items, err := h.Svc.ListProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
	}

	out := make([]transport.Product, 0, len(items))
	for _, p := range items {
		out = append(out, toProduct(p))
	}
	return c.JSON(http.StatusOK, transport.ProductListResponse{Products: out})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "reason", "invalid fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
	}

	return c.JSON(http.StatusCreated, toProduct(*p))
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Window(page, size)

	total, hits, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), from, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
		case errors.Is(err, search.ErrDisabled):
			l.Warn("search_error", "status", 503, "reason", "search is not configured")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
		}
	}

	out := make([]transport.Product, 0, len(hits))
	for _, p := range hits {
		out = append(out, transport.Product(p))
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: out})
}

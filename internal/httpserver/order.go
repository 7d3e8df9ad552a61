package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	middleware "github.com/Skotchmaster/online_pharmacy/pkg/middleware/auth"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/service"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

const createdAtLayout = "2006-01-02 15:04:05"

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, reason(err, service.ErrNotFound))
		case errors.Is(err, service.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
		}
	}

	items := make([]transport.PlacedItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, transport.PlacedItem{Product: it.Product.Name, Quantity: it.Quantity})
	}

	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{
		Message: "Order placed successfully",
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.TotalAmount.InexactFloat64(),
		Items:   items,
	})
}

func (h *OrderHTTP) History(c echo.Context) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orders, err := h.Svc.History(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
	}

	out := make([]transport.HistoryOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, toHistoryOrder(o))
	}
	return c.JSON(http.StatusOK, transport.OrderHistoryResponse{Orders: out})
}

// toHistoryOrder reports each item at the product's current price; the order
// total is the amount charged at placement.
func toHistoryOrder(o models.Order) transport.HistoryOrder {
	items := make([]transport.HistoryItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, transport.HistoryItem{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			Price:       it.Product.Price.InexactFloat64(),
		})
	}
	return transport.HistoryOrder{
		OrderID:   o.ID,
		CreatedAt: o.CreatedAt.UTC().Format(createdAtLayout),
		Status:    o.Status,
		Total:     o.TotalAmount.InexactFloat64(),
		Items:     items,
	}
}

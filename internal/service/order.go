package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/online_pharmacy/pkg/events"
	"github.com/Skotchmaster/online_pharmacy/pkg/logging"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
	"github.com/Skotchmaster/online_pharmacy/internal/repo"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

type OrderService struct {
	Repo   repo.Orders
	Events events.Publisher
	Now    func() time.Time
}

type orderLine struct {
	productID uint
	quantity  uint
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validateLines(items []transport.PlaceOrderItem) ([]orderLine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: No items provided", ErrValidation)
	}

	lines := make([]orderLine, 0, len(items))
	for i, it := range items {
		if it.ProductID <= 0 {
			return nil, fmt.Errorf("%w: items[%d].product_id must be a positive integer", ErrValidation, i)
		}
		qty := int64(1)
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if qty < 1 {
			return nil, fmt.Errorf("%w: items[%d].quantity must be >= 1", ErrValidation, i)
		}
		lines = append(lines, orderLine{productID: uint(it.ProductID), quantity: uint(qty)})
	}
	return lines, nil
}

// PlaceOrder writes the order, its items and its total in one transaction. The
// returned order carries its items with their products resolved.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uint, req transport.PlaceOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "customer_id", customerID)

	if customerID == 0 {
		return nil, ErrUnauthorized
	}

	lines, err := validateLines(req.Items)
	if err != nil {
		l.Warn("place_order_failed", "status", 400, "reason", "invalid items", "error", err)
		return nil, err
	}

	order := &models.Order{
		CustomerID:           customerID,
		FullName:             req.Address.FullName,
		Address:              req.Address.Address,
		City:                 req.Address.City,
		State:                req.Address.State,
		ZipCode:              req.Address.ZipCode,
		Country:              req.Address.Country,
		PaymentMethod:        req.PaymentMethod,
		RequiresPrescription: req.RequiresPrescription,
		Status:               models.OrderStatusConfirmed,
		CreatedAt:            s.now(),
	}

	err = s.Repo.InTx(ctx, func(tx repo.Orders) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			p, err := tx.GetProduct(ctx, line.productID)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return fmt.Errorf("%w: Product ID %d not found", ErrNotFound, line.productID)
				}
				return fmt.Errorf("get product %d: %w", line.productID, err)
			}

			item := models.OrderItem{OrderID: order.ID, ProductID: p.ID, Quantity: line.quantity}
			if err := tx.CreateOrderItem(ctx, &item); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			item.Product = *p
			items = append(items, item)

			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
			if total.GreaterThan(models.MaxOrderTotal) {
				return fmt.Errorf("%w: order total must be <= %s", ErrValidation, models.MaxOrderTotal.StringFixed(2))
			}
		}

		if err := tx.SetOrderTotal(ctx, order.ID, total); err != nil {
			return fmt.Errorf("set order total: %w", err)
		}
		order.TotalAmount = total
		order.Items = items
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			l.Warn("place_order_failed", "status", 404, "reason", "unknown product", "error", err)
		case errors.Is(err, ErrValidation):
			l.Warn("place_order_failed", "status", 400, "reason", "total out of range", "error", err)
		default:
			l.Error("place_order_failed", "status", 500, "reason", "transaction failed", "error", err)
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrderEvents, strconv.FormatUint(uint64(order.ID), 10), orderPlacedEvent(order))

	l.Info("place_order_success", "order_id", order.ID, "total", order.TotalAmount.StringFixed(2))
	return order, nil
}

// History returns the customer's orders, newest first.
func (s *OrderService) History(ctx context.Context, customerID uint) ([]models.Order, error) {
	if customerID == 0 {
		return nil, ErrUnauthorized
	}
	orders, err := s.Repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		logging.FromContext(ctx).Error("order_history_error", "svc", "order.history", "customer_id", customerID, "error", err)
		return nil, err
	}
	return orders, nil
}

func orderPlacedEvent(o *models.Order) events.OrderPlaced {
	lines := make([]events.OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, events.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return events.OrderPlaced{
		Type:                 events.TypeOrderPlaced,
		OrderID:              o.ID,
		UserID:               o.CustomerID,
		Total:                o.TotalAmount,
		RequiresPrescription: o.RequiresPrescription,
		Items:                lines,
		At:                   o.CreatedAt,
	}
}

package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeUserRegistered = "user_registered"
	TypeOrderPlaced    = "order_placed"
)

type UserRegistered struct {
	Type   string    `json:"type"`
	UserID uint      `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

type OrderPlaced struct {
	Type                 string          `json:"type"`
	OrderID              uint            `json:"order_id"`
	UserID               uint            `json:"user_id"`
	Total                decimal.Decimal `json:"total"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Items                []OrderLine     `json:"items"`
	At                   time.Time       `json:"at"`
}

type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

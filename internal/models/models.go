package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Largest amounts the decimal(8,2) and decimal(10,2) columns hold.
var (
	MaxProductPrice = decimal.RequireFromString("999999.99")
	MaxOrderTotal   = decimal.RequireFromString("99999999.99")
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	Email        string    `gorm:"size:254;uniqueIndex;not null"       json:"email"`
	Name         string    `gorm:"size:150;not null"                   json:"name"`
	Mobile       string    `gorm:"size:20"                             json:"mobile"`
	Address      string    `gorm:"type:text"                           json:"address"`
	PasswordHash string    `gorm:"not null"                            json:"-"`
	Role         string    `gorm:"size:20;not null;default:user"       json:"role"`
	CreatedAt    time.Time `gorm:"not null"                            json:"created_at"`
	Orders       []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string          `gorm:"size:100;not null"          json:"name"`
	Description string          `gorm:"type:text"                  json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
	Category    string          `gorm:"size:50"                    json:"category"`
}

type Order struct {
	ID                   uint            `gorm:"primaryKey;autoIncrement"                   json:"id"`
	CustomerID           uint            `gorm:"index;not null"                             json:"customer_id"`
	FullName             string          `gorm:"size:100"                                   json:"full_name"`
	Address              string          `gorm:"type:text"                                  json:"address"`
	City                 string          `gorm:"size:50"                                    json:"city"`
	State                string          `gorm:"size:50"                                    json:"state"`
	ZipCode              string          `gorm:"size:20"                                    json:"zip_code"`
	Country              string          `gorm:"size:50"                                    json:"country"`
	PaymentMethod        string          `gorm:"size:50"                                    json:"payment_method"`
	RequiresPrescription bool            `gorm:"not null;default:false"                     json:"requires_prescription"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"      json:"total_amount"`
	Status               string          `gorm:"size:20;not null;default:pending"           json:"status"`
	CreatedAt            time.Time       `gorm:"index;not null"                             json:"created_at"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"             json:"id"`
	OrderID   uint    `gorm:"index;not null"                       json:"order_id"`
	ProductID uint    `gorm:"index;not null"                       json:"product_id"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"          json:"product"`
	Quantity  uint    `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
}

// All lists every model in migration order.
func All() []any {
	return []any{&User{}, &Product{}, &Order{}, &OrderItem{}}
}

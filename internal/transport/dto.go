package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
}

type SearchResponse struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type ShippingAddress struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
}

// PlaceOrderItem.Quantity is a pointer so an omitted quantity can default to 1
// while an explicit 0 is still rejected.
type PlaceOrderItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  *int64 `json:"quantity"`
}

type PlaceOrderRequest struct {
	Address              ShippingAddress  `json:"address"`
	PaymentMethod        string           `json:"payment_method"`
	RequiresPrescription bool             `json:"requires_prescription"`
	Items                []PlaceOrderItem `json:"items"`
}

type PlacedItem struct {
	Product  string `json:"product"`
	Quantity uint   `json:"quantity"`
}

type PlaceOrderResponse struct {
	Message string       `json:"message"`
	OrderID uint         `json:"order_id"`
	Status  string       `json:"status"`
	Total   float64      `json:"total"`
	Items   []PlacedItem `json:"items"`
}

type HistoryItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    uint    `json:"quantity"`
	Price       float64 `json:"price"`
}

type HistoryOrder struct {
	OrderID   uint          `json:"order_id"`
	CreatedAt string        `json:"created_at"`
	Status    string        `json:"status"`
	Total     float64       `json:"total"`
	Items     []HistoryItem `json:"items"`
}

type OrderHistoryResponse struct {
	Orders []HistoryOrder `json:"orders"`
}

package command

// Cart commands
type AddItemToCart struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type RemoveItemFromCart struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
}

type UpdateCartItem struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
}

type ClearCart struct {
	CustomerID string `json:"customer_id"`
}

// Order commands
type CreateOrder struct {
	CustomerID string          `json:"customer_id"`
	CartID     string          `json:"cart_id"`
	Shipping   ShippingDetails `json:"shipping"`
}

type ShippingDetails struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type ConfirmOrder struct {
	OrderID string `json:"order_id"`
}

type ProcessOrder struct {
	OrderID string `json:"order_id"`
}

type ShipOrder struct {
	OrderID        string `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
}

type DeliverOrder struct {
	OrderID string `json:"order_id"`
}

type CancelOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Product commands
type CreateProduct struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Sku          string `json:"sku"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	CategoryName string `json:"category_name"`
	CategorySlug string `json:"category_slug"`
	Stock        int    `json:"stock"`
}

type UpdateProduct struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateProductPrice struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
}

type AdjustStock struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SetProductActive struct {
	ProductID string `json:"product_id"`
	Active    bool   `json:"active"`
}

type DeleteProduct struct {
	ProductID string `json:"product_id"`
}

// User commands
type RegisterUser struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Salesforce commands
type SyncCartToSalesforce struct {
	CustomerID string `json:"customer_id"`
}

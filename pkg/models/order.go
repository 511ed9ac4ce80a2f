package models

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated statuses. Transitions
// between valid statuses are unrestricted: any status may move to any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a snapshot of a product taken at order time. Later catalog
// edits never touch it.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image" json:"image"`
	Category  string  `bson:"category" json:"category"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type Customer struct {
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phone_number" json:"phoneNumber"`
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Pincode     string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

type Order struct {
	ID             string      `bson:"_id,omitempty" json:"id"`
	UserID         string      `bson:"user_id" json:"userId"`
	Items          []OrderItem `bson:"items" json:"items"`
	Subtotal       float64     `bson:"subtotal" json:"subtotal"`
	Tax            float64     `bson:"tax" json:"tax"`
	DiscountAmount float64     `bson:"discount_amount" json:"discountAmount"`
	PromoCode      string      `bson:"promo_code,omitempty" json:"promoCode,omitempty"`
	Total          float64     `bson:"total" json:"total"`
	Customer       Customer    `bson:"user_profile" json:"userProfile"`
	Status         OrderStatus `bson:"status" json:"status"`
	CreatedAt      FlexTime    `bson:"created_at" json:"createdAt"`
	UpdatedAt      FlexTime    `bson:"updated_at" json:"updatedAt"`
}

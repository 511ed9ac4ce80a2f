package models

import (
	"time"
)

// Product categories offered by the storefront.
const (
	CategoryCakes    = "Cakes"
	CategoryPastries = "Pastries"
	CategoryBreads   = "Breads"
	CategoryCookies  = "Cookies"
	CategoryMuffins  = "Muffins"
	CategoryBrownies = "Brownies"
)

// Product type buckets used by the home page sections.
const (
	ProductTypeRegular     = "regular"
	ProductTypeJustArrived = "just-arrived"
	ProductTypeJustBaked   = "just-baked"
)

type Product struct {
	ID               string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name             string            `gorm:"type:varchar(150);not null" json:"name"`
	Category         string            `gorm:"type:varchar(50);not null;index" json:"category"`
	Price            float64           `gorm:"type:decimal(10,2)" json:"price"`
	OriginalPrice    float64           `gorm:"type:decimal(10,2)" json:"originalPrice"`
	Discount         float64           `json:"discount"`
	Rating           float64           `json:"rating"`
	Reviews          int               `json:"reviews"`
	Image            string            `gorm:"type:varchar(500)" json:"image"`
	ShortDescription string            `gorm:"type:varchar(500)" json:"shortDescription"`
	FullDescription  string            `gorm:"type:text" json:"fullDescription"`
	Features         []string          `gorm:"serializer:json" json:"features"`
	Specifications   map[string]string `gorm:"serializer:json" json:"specifications"`
	Featured         bool              `gorm:"index" json:"featured"`
	ProductType      string            `gorm:"type:varchar(20);default:'regular';index" json:"productType"`
	InStock          bool              `gorm:"default:true" json:"inStock"`
	FreshnessTag     string            `gorm:"type:varchar(100)" json:"freshnessTag,omitempty"`
	IsFresh          bool              `json:"isFresh"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog
type Product struct {
	SKU           string          `db:"sku" json:"sku"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price"`
}

// Seller represents a seller in the catalog
type Seller struct {
	SellerID    string          `db:"seller_id" json:"seller_id"`
	FirstName   string          `db:"first_name" json:"first_name"`
	LastName    string          `db:"last_name" json:"last_name"`
	Department  string          `db:"department" json:"department"`
	PlanRevenue decimal.Decimal `db:"plan_revenue" json:"plan_revenue"`
}

// Name returns the seller display name
func (s Seller) Name() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// PurchaseRecord represents a single sale with its line items
type PurchaseRecord struct {
	PurchaseID   int64      `db:"purchase_id" json:"purchase_id"`
	SellerID     string     `db:"seller_id" json:"seller_id"`
	PurchaseDate time.Time  `db:"purchase_date" json:"purchase_date"`
	Items        []LineItem `json:"items"`
}

// LineItem represents one product position inside a purchase record
type LineItem struct {
	ItemID     int64           `db:"item_id" json:"item_id"`
	PurchaseID int64           `db:"purchase_id" json:"purchase_id"`
	SKU        string          `db:"sku" json:"sku"`
	Quantity   int             `db:"quantity" json:"quantity"`
	SalePrice  decimal.Decimal `db:"sale_price" json:"sale_price"`
	Discount   decimal.Decimal `db:"discount" json:"discount"`
}

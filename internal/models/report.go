package models

import "github.com/shopspring/decimal"

// SellerReport is the per-seller output of one aggregation run
type SellerReport struct {
	SellerID   string          `json:"seller_id"`
	Name       string          `json:"name"`
	Department string          `json:"department,omitempty"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	SalesCount int             `json:"sales_count"`
	Bonus      decimal.Decimal `json:"bonus"`
	KPIPercent int64           `json:"kpi_percent"`
	KPIBonus   decimal.Decimal `json:"kpi_bonus"`
	AvgCheck   decimal.Decimal `json:"avg_check"`
	AvgProfit  decimal.Decimal `json:"avg_profit"`

	TopProducts       []ProductSales    `json:"top_products"`
	CategoryBreakdown []CategoryRevenue `json:"category_breakdown"`
	SalesByDay        []DailySales      `json:"sales_by_day,omitempty"`
}

// ProductSales is a quantity rollup for one SKU
type ProductSales struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// TopProduct is a global rollup entry for one SKU across all sellers
type TopProduct struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int             `json:"quantity"`
	Sellers  []string        `json:"contributing_sellers"`
}

// CategoryRevenue is revenue attributed to one product category
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailySales is a revenue/profit bucket for one calendar day
type DailySales struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// DashboardTotals is the run-level rollup shown on the dashboard
type DashboardTotals struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	SellerCount  int             `json:"seller_count"`
	RecordCount  int             `json:"record_count"`
}

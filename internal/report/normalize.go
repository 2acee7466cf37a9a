package report

import (
	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

// normalizedLine is one line item resolved against the catalog, with its
// monetary contributions already computed
type normalizedLine struct {
	sku        string
	name       string
	category   string
	quantity   int
	netRevenue decimal.Decimal
	cost       decimal.Decimal
}

// normalizedPurchase is one purchase record attributed to a known seller
type normalizedPurchase struct {
	sellerID string
	day      string
	lines    []normalizedLine
}

// normalizeRecords validates raw purchase records against the catalog and
// coerces them into a canonical form. Records with an unknown seller and
// line items with an unknown SKU are skipped and counted; nothing here is
// fatal. Returns the normalized purchases and the warning count.
func normalizeRecords(cat *catalog, records []models.PurchaseRecord, logger *zap.Logger) ([]normalizedPurchase, int) {
	purchases := make([]normalizedPurchase, 0, len(records))
	warnings := 0

	for _, rec := range records {
		seller, ok := cat.seller(rec.SellerID)
		if !ok {
			warnings++
			logger.Warn("Skipping record with unknown seller",
				zap.Int64("purchase_id", rec.PurchaseID),
				zap.String("seller_id", rec.SellerID))
			continue
		}

		lines := make([]normalizedLine, 0, len(rec.Items))
		for _, item := range rec.Items {
			product, ok := cat.product(item.SKU)
			if !ok {
				warnings++
				logger.Warn("Skipping line item with unknown SKU",
					zap.Int64("purchase_id", rec.PurchaseID),
					zap.String("sku", item.SKU))
				continue
			}
			lines = append(lines, normalizeLine(item, product))
		}

		// A record that ends up with zero valid line items contributes
		// nothing and is excluded entirely.
		if len(lines) == 0 {
			warnings++
			logger.Warn("Skipping record without valid line items",
				zap.Int64("purchase_id", rec.PurchaseID))
			continue
		}

		purchases = append(purchases, normalizedPurchase{
			sellerID: seller.SellerID,
			day:      rec.PurchaseDate.Format("2006-01-02"),
			lines:    lines,
		})
	}

	return purchases, warnings
}

// normalizeLine coerces one line item and computes its net revenue and
// cost. Quantity and discount are clamped to non-negative values, the
// discount additionally to at most 100 percent. The unit price is the
// line's own sale price when positive, else the product's configured one.
func normalizeLine(item models.LineItem, product models.Product) normalizedLine {
	quantity := item.Quantity
	if quantity < 0 {
		quantity = 0
	}

	discount := item.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(oneHundred) {
		discount = oneHundred
	}

	unitPrice := item.SalePrice
	if !unitPrice.IsPositive() {
		unitPrice = product.SalePrice
	}

	qty := decimal.NewFromInt(int64(quantity))
	factor := decimal.NewFromInt(1).Sub(discount.Div(oneHundred))

	return normalizedLine{
		sku:        product.SKU,
		name:       product.Name,
		category:   product.Category,
		quantity:   quantity,
		netRevenue: unitPrice.Mul(qty).Mul(factor),
		cost:       product.PurchasePrice.Mul(qty),
	}
}

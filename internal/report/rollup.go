package report

import (
	"sort"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/shopspring/decimal"
)

// topProductsForSeller sorts a seller's per-SKU quantities descending and
// keeps the top entries. SKU ascending is the secondary key, so equal
// quantities order deterministically.
func topProductsForSeller(agg *sellerAggregate, limit int) []models.ProductSales {
	products := make([]models.ProductSales, 0, len(agg.productSales))
	for sku, quantity := range agg.productSales {
		products = append(products, models.ProductSales{SKU: sku, Quantity: quantity})
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity > products[j].Quantity
		}
		return products[i].SKU < products[j].SKU
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

// categoryBreakdown sorts a category revenue map descending, category
// name ascending on equal revenue. No cap is applied.
func categoryBreakdown(revenue map[string]decimal.Decimal) []models.CategoryRevenue {
	categories := make([]models.CategoryRevenue, 0, len(revenue))
	for category, rev := range revenue {
		categories = append(categories, models.CategoryRevenue{Category: category, Revenue: rev})
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Revenue.Equal(categories[j].Revenue) {
			return categories[i].Revenue.GreaterThan(categories[j].Revenue)
		}
		return categories[i].Category < categories[j].Category
	})

	return categories
}

// mergeCategoryRevenue sums category revenue across all sellers
func mergeCategoryRevenue(aggs map[string]*sellerAggregate) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal)
	for _, agg := range aggs {
		for category, rev := range agg.categoryRevenue {
			merged[category] = merged[category].Add(rev)
		}
	}
	return merged
}

// salesByDay flattens a seller's daily buckets into a series sorted by day
func salesByDay(agg *sellerAggregate) []models.DailySales {
	days := make([]models.DailySales, 0, len(agg.revenueByDay))
	for day, rev := range agg.revenueByDay {
		days = append(days, models.DailySales{
			Day:     day,
			Revenue: rev,
			Profit:  agg.profitByDay[day],
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

type globalProduct struct {
	revenue  decimal.Decimal
	quantity int
	sellers  map[string]struct{}
}

// globalTopProducts aggregates quantity and revenue per SKU across every
// normalized purchase and keeps the top entries by revenue, SKU ascending
// on ties. Contributing seller names are a distinct set, never repeated.
func globalTopProducts(cat *catalog, purchases []normalizedPurchase, limit int) []models.TopProduct {
	bySKU := make(map[string]*globalProduct)
	for _, purchase := range purchases {
		sellerName := purchase.sellerID
		if seller, ok := cat.seller(purchase.sellerID); ok {
			sellerName = seller.Name()
		}
		for _, line := range purchase.lines {
			gp := bySKU[line.sku]
			if gp == nil {
				gp = &globalProduct{sellers: make(map[string]struct{})}
				bySKU[line.sku] = gp
			}
			gp.revenue = gp.revenue.Add(line.netRevenue)
			gp.quantity += line.quantity
			gp.sellers[sellerName] = struct{}{}
		}
	}

	products := make([]models.TopProduct, 0, len(bySKU))
	for sku, gp := range bySKU {
		sellers := make([]string, 0, len(gp.sellers))
		for name := range gp.sellers {
			sellers = append(sellers, name)
		}
		sort.Strings(sellers)

		name := sku
		if product, ok := cat.product(sku); ok {
			name = product.Name
		}

		products = append(products, models.TopProduct{
			SKU:      sku,
			Name:     name,
			Revenue:  gp.revenue,
			Quantity: gp.quantity,
			Sellers:  sellers,
		})
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].Revenue.Equal(products[j].Revenue) {
			return products[i].Revenue.GreaterThan(products[j].Revenue)
		}
		return products[i].SKU < products[j].SKU
	})

	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

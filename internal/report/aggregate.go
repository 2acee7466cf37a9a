package report

import (
	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/shopspring/decimal"
)

// sellerAggregate accumulates one seller's statistics during the fold and
// is frozen once the fold completes. Only associative sums are used, so
// the result does not depend on record order.
type sellerAggregate struct {
	seller models.Seller
	plan   decimal.Decimal

	revenue    decimal.Decimal
	cost       decimal.Decimal
	profit     decimal.Decimal
	salesCount int

	productSales    map[string]int
	categoryRevenue map[string]decimal.Decimal
	revenueByDay    map[string]decimal.Decimal
	profitByDay     map[string]decimal.Decimal

	bonus      decimal.Decimal
	kpiPercent int64
	kpiBonus   decimal.Decimal
}

func newSellerAggregate(seller models.Seller, defaultPlan decimal.Decimal) *sellerAggregate {
	plan := seller.PlanRevenue
	if !plan.IsPositive() {
		plan = defaultPlan
	}
	return &sellerAggregate{
		seller:          seller,
		plan:            plan,
		productSales:    make(map[string]int),
		categoryRevenue: make(map[string]decimal.Decimal),
		revenueByDay:    make(map[string]decimal.Decimal),
		profitByDay:     make(map[string]decimal.Decimal),
	}
}

// foldPurchases builds one accumulator per catalog seller and folds every
// normalized purchase into its owner. Sellers without any transactions
// stay in the result with all-zero statistics. Profit is derived once
// from revenue and cost after the fold.
func foldPurchases(cat *catalog, purchases []normalizedPurchase, defaultPlan decimal.Decimal) map[string]*sellerAggregate {
	aggs := make(map[string]*sellerAggregate, len(cat.sellers))
	for id, seller := range cat.sellers {
		aggs[id] = newSellerAggregate(seller, defaultPlan)
	}

	for _, purchase := range purchases {
		agg := aggs[purchase.sellerID]
		if agg == nil {
			continue
		}

		agg.salesCount++

		var purchaseRevenue, purchaseProfit decimal.Decimal
		for _, line := range purchase.lines {
			agg.revenue = agg.revenue.Add(line.netRevenue)
			agg.cost = agg.cost.Add(line.cost)
			agg.productSales[line.sku] += line.quantity
			if line.category != "" {
				agg.categoryRevenue[line.category] = agg.categoryRevenue[line.category].Add(line.netRevenue)
			}
			purchaseRevenue = purchaseRevenue.Add(line.netRevenue)
			purchaseProfit = purchaseProfit.Add(line.netRevenue.Sub(line.cost))
		}

		agg.revenueByDay[purchase.day] = agg.revenueByDay[purchase.day].Add(purchaseRevenue)
		agg.profitByDay[purchase.day] = agg.profitByDay[purchase.day].Add(purchaseProfit)
	}

	for _, agg := range aggs {
		agg.profit = agg.revenue.Sub(agg.cost)
	}

	return aggs
}

func (a *sellerAggregate) rankingValue(key RankingKey) decimal.Decimal {
	if key == RankByRevenue {
		return a.revenue
	}
	return a.profit
}

func (a *sellerAggregate) avgCheck() decimal.Decimal {
	if a.salesCount == 0 {
		return decimal.Zero
	}
	return a.revenue.Div(decimal.NewFromInt(int64(a.salesCount))).Round(2)
}

func (a *sellerAggregate) avgProfit() decimal.Decimal {
	if a.salesCount == 0 {
		return decimal.Zero
	}
	return a.profit.Div(decimal.NewFromInt(int64(a.salesCount))).Round(2)
}

package report

import (
	"github.com/ArishaMak/sales-bonus/internal/models"
	"github.com/ArishaMak/sales-bonus/internal/util"
)

// Result is the immutable output of one aggregation run. Reports are
// ordered by rank; Warnings counts the rows and line items skipped while
// normalizing input.
type Result struct {
	Reports           []models.SellerReport    `json:"reports"`
	TopProducts       []models.TopProduct      `json:"top_products"`
	CategoryBreakdown []models.CategoryRevenue `json:"category_breakdown"`
	Totals            models.DashboardTotals   `json:"totals"`
	Warnings          int                      `json:"warnings"`
}

// Aggregate runs the full engine over an in-memory snapshot of catalog
// and transaction data: index, normalize, fold, rank, bonus, KPI and
// rollups. It is a pure batch pass; the same inputs always produce the
// same output, and per-row problems surface only in Result.Warnings.
// Configuration problems fail with ErrConfig before any work starts.
func Aggregate(products []models.Product, sellers []models.Seller, records []models.PurchaseRecord, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := util.GetLogger()

	cat := buildCatalog(products, sellers, logger)
	purchases, warnings := normalizeRecords(cat, records, logger)
	warnings += cat.warnings

	aggs := foldPurchases(cat, purchases, opts.DefaultPlan)
	ranked := rankSellers(aggs, opts.RankingKey)
	assignBonuses(ranked, opts.RankingKey, opts.BonusTiers)
	applyKPI(aggs, opts.KPIBonusRate)

	result := &Result{
		Reports:           make([]models.SellerReport, 0, len(ranked)),
		TopProducts:       globalTopProducts(cat, purchases, opts.TopProductLimit),
		CategoryBreakdown: categoryBreakdown(mergeCategoryRevenue(aggs)),
		Warnings:          warnings,
	}

	for _, agg := range ranked {
		result.Reports = append(result.Reports, buildSellerReport(agg, opts.TopProductLimit))
		result.Totals.TotalRevenue = result.Totals.TotalRevenue.Add(agg.revenue)
		result.Totals.TotalProfit = result.Totals.TotalProfit.Add(agg.profit)
		result.Totals.RecordCount += agg.salesCount
	}
	result.Totals.SellerCount = len(ranked)

	return result, nil
}

// TopProducts is the standalone global rollup: quantity, net revenue and
// the distinct contributing seller names per SKU, best sellers first.
// Returns the rollup together with the warning count of skipped input.
func TopProducts(products []models.Product, sellers []models.Seller, records []models.PurchaseRecord, limit int) ([]models.TopProduct, int, error) {
	if limit < 0 {
		return nil, 0, ErrConfig
	}
	if limit == 0 {
		limit = defaultTopProductLimit
	}

	logger := util.GetLogger()

	cat := buildCatalog(products, sellers, logger)
	purchases, warnings := normalizeRecords(cat, records, logger)
	warnings += cat.warnings

	return globalTopProducts(cat, purchases, limit), warnings, nil
}

func buildSellerReport(agg *sellerAggregate, topLimit int) models.SellerReport {
	return models.SellerReport{
		SellerID:          agg.seller.SellerID,
		Name:              agg.seller.Name(),
		Department:        agg.seller.Department,
		Revenue:           agg.revenue,
		Cost:              agg.cost,
		Profit:            agg.profit,
		SalesCount:        agg.salesCount,
		Bonus:             agg.bonus,
		KPIPercent:        agg.kpiPercent,
		KPIBonus:          agg.kpiBonus,
		AvgCheck:          agg.avgCheck(),
		AvgProfit:         agg.avgProfit(),
		TopProducts:       topProductsForSeller(agg, topLimit),
		CategoryBreakdown: categoryBreakdown(agg.categoryRevenue),
		SalesByDay:        salesByDay(agg),
	}
}

package report

import "github.com/shopspring/decimal"

// kpiPercent computes plan attainment as a rounded percentage. A zero or
// missing plan resolves to 0%, never a division error.
func kpiPercent(revenue, plan decimal.Decimal) int64 {
	if !plan.IsPositive() {
		return 0
	}
	return revenue.Div(plan).Mul(oneHundred).Round(0).IntPart()
}

// applyKPI computes attainment and the qualifying bonus for every
// aggregate. The qualifying bonus is a share of profit paid on top of the
// rank bonus when attainment reaches 100%; the two channels stay additive.
func applyKPI(aggs map[string]*sellerAggregate, bonusRate decimal.Decimal) {
	for _, agg := range aggs {
		agg.kpiPercent = kpiPercent(agg.revenue, agg.plan)
		agg.kpiBonus = decimal.Zero
		if agg.kpiPercent >= 100 && bonusRate.IsPositive() {
			agg.kpiBonus = agg.profit.Mul(bonusRate)
		}
	}
}

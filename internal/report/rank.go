package report

import "sort"

// rankSellers orders aggregates strictly descending by the configured
// ranking key. The sort is stable: sellers with an exactly equal key keep
// their relative order, ties are not broken by name or ID.
func rankSellers(aggs map[string]*sellerAggregate, key RankingKey) []*sellerAggregate {
	ranked := make([]*sellerAggregate, 0, len(aggs))
	for _, agg := range aggs {
		ranked = append(ranked, agg)
	}

	// Map iteration order is random; fix the pre-sort order by seller ID
	// so the stable tie-break is reproducible across runs.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].seller.SellerID < ranked[j].seller.SellerID
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rankingValue(key).GreaterThan(ranked[j].rankingValue(key))
	})

	return ranked
}

// assignBonuses applies the tier table by rank position. Rank 0 gets the
// top rate even when it is also the last rank (N = 1). Negative ranking
// values multiply through unclamped, so a loss-making top seller receives
// a negative bonus.
func assignBonuses(ranked []*sellerAggregate, key RankingKey, tiers BonusTiers) {
	total := len(ranked)
	for i, agg := range ranked {
		value := agg.rankingValue(key)
		switch {
		case i == 0:
			agg.bonus = value.Mul(tiers.Top)
		case i == 1 || i == 2:
			agg.bonus = value.Mul(tiers.High)
		case i == total-1:
			agg.bonus = value.Mul(tiers.Last)
		default:
			agg.bonus = value.Mul(tiers.Mid)
		}
	}
}

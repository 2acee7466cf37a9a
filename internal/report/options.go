package report

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RankingKey selects the metric sellers are ranked by
type RankingKey string

const (
	RankByProfit  RankingKey = "profit"
	RankByRevenue RankingKey = "revenue"
)

// ErrConfig indicates a caller bug in the run configuration. It is
// returned before any aggregation work starts.
var ErrConfig = errors.New("invalid report configuration")

// BonusTiers holds the rank-based bonus rates applied to the ranking key.
// Top applies to rank 0, High to ranks 1 and 2, Last to rank N-1 when
// N > 1, Mid to every other rank. A single seller gets the Top rate.
type BonusTiers struct {
	Top  decimal.Decimal `json:"top"`
	High decimal.Decimal `json:"high"`
	Mid  decimal.Decimal `json:"mid"`
	Last decimal.Decimal `json:"last"`
}

// DefaultBonusTiers returns the standard 15/10/5/0 percent tier table
func DefaultBonusTiers() BonusTiers {
	return BonusTiers{
		Top:  decimal.NewFromFloat(0.15),
		High: decimal.NewFromFloat(0.10),
		Mid:  decimal.NewFromFloat(0.05),
		Last: decimal.Zero,
	}
}

// Options configures a single aggregation run
type Options struct {
	// RankingKey is required; there is no hidden default.
	RankingKey RankingKey
	BonusTiers BonusTiers
	// DefaultPlan is applied when a seller has no positive plan revenue.
	DefaultPlan decimal.Decimal
	// KPIBonusRate, when positive, pays an additional profit share to
	// sellers at or above 100% attainment. Independent of BonusTiers.
	KPIBonusRate decimal.Decimal
	// TopProductLimit caps per-seller and global top product lists.
	TopProductLimit int
}

const defaultTopProductLimit = 10

func (o *Options) validate() error {
	switch o.RankingKey {
	case RankByProfit, RankByRevenue:
	case "":
		return fmt.Errorf("%w: ranking key is required", ErrConfig)
	default:
		return fmt.Errorf("%w: unknown ranking key %q", ErrConfig, o.RankingKey)
	}

	if o.DefaultPlan.IsNegative() {
		return fmt.Errorf("%w: default plan must not be negative", ErrConfig)
	}
	if o.KPIBonusRate.IsNegative() {
		return fmt.Errorf("%w: kpi bonus rate must not be negative", ErrConfig)
	}
	if o.TopProductLimit < 0 {
		return fmt.Errorf("%w: top product limit must not be negative", ErrConfig)
	}
	if o.TopProductLimit == 0 {
		o.TopProductLimit = defaultTopProductLimit
	}

	for _, rate := range []decimal.Decimal{o.BonusTiers.Top, o.BonusTiers.High, o.BonusTiers.Mid, o.BonusTiers.Last} {
		if rate.IsNegative() {
			return fmt.Errorf("%w: bonus tier rates must not be negative", ErrConfig)
		}
	}

	return nil
}

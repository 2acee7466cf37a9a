package report

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testProducts() []models.Product {
	return []models.Product{
		{SKU: "SOFA-1", Name: "Sofa", Category: "Furniture", PurchasePrice: dec("50"), SalePrice: dec("100")},
		{SKU: "LAMP-2", Name: "Lamp", Category: "Lighting", PurchasePrice: dec("10"), SalePrice: dec("40")},
		{SKU: "RUG-3", Name: "Rug", Category: "Furniture", PurchasePrice: dec("20"), SalePrice: dec("60")},
	}
}

func testSellers() []models.Seller {
	return []models.Seller{
		{SellerID: "s1", FirstName: "Anna", LastName: "Petrova", Department: "floor", PlanRevenue: dec("1000")},
		{SellerID: "s2", FirstName: "Boris", LastName: "Ivanov", Department: "floor", PlanRevenue: decimal.Zero},
		{SellerID: "s3", FirstName: "Vera", LastName: "Sidorova", Department: "online", PlanRevenue: dec("500")},
	}
}

func testRecords() []models.PurchaseRecord {
	return []models.PurchaseRecord{
		{
			PurchaseID: 1, SellerID: "s1", PurchaseDate: day("2024-01-10"),
			Items: []models.LineItem{
				{SKU: "SOFA-1", Quantity: 2, SalePrice: dec("100"), Discount: dec("10")},
				{SKU: "LAMP-2", Quantity: 1},
			},
		},
		{
			PurchaseID: 2, SellerID: "s1", PurchaseDate: day("2024-01-11"),
			Items: []models.LineItem{
				{SKU: "LAMP-2", Quantity: 5, SalePrice: dec("40")},
			},
		},
		{
			PurchaseID: 3, SellerID: "s2", PurchaseDate: day("2024-01-10"),
			Items: []models.LineItem{
				{SKU: "RUG-3", Quantity: 3, SalePrice: dec("60")},
				{SKU: "UNKNOWN-9", Quantity: 1},
			},
		},
		{
			PurchaseID: 4, SellerID: "s2", PurchaseDate: day("2024-01-12"),
			Items: []models.LineItem{
				{SKU: "SOFA-1", Quantity: 1, SalePrice: dec("100"), Discount: dec("100")},
			},
		},
		{
			PurchaseID: 5, SellerID: "ghost", PurchaseDate: day("2024-01-12"),
			Items: []models.LineItem{
				{SKU: "SOFA-1", Quantity: 1},
			},
		},
	}
}

func testOptions() Options {
	return Options{
		RankingKey:   RankByProfit,
		BonusTiers:   DefaultBonusTiers(),
		DefaultPlan:  dec("100"),
		KPIBonusRate: dec("0.01"),
	}
}

func reportByID(t *testing.T, result *Result, sellerID string) models.SellerReport {
	t.Helper()
	for _, rep := range result.Reports {
		if rep.SellerID == sellerID {
			return rep
		}
	}
	t.Fatalf("seller %s not in result", sellerID)
	return models.SellerReport{}
}

func TestAggregate(t *testing.T) {
	result, err := Aggregate(testProducts(), testSellers(), testRecords(), testOptions())
	require.NoError(t, err)
	require.Len(t, result.Reports, 3)

	// One unknown SKU line, one unknown seller record.
	assert.Equal(t, 2, result.Warnings)

	s1 := reportByID(t, result, "s1")
	assert.Equal(t, "Anna Petrova", s1.Name)
	// 2x100 minus 10% + 1x40 + 5x40 = 180 + 40 + 200
	assert.True(t, s1.Revenue.Equal(dec("420")), "revenue = %s", s1.Revenue)
	assert.True(t, s1.Cost.Equal(dec("160")), "cost = %s", s1.Cost)
	assert.True(t, s1.Profit.Equal(dec("260")), "profit = %s", s1.Profit)
	assert.Equal(t, 2, s1.SalesCount)
	assert.True(t, s1.AvgCheck.Equal(dec("210")))

	s2 := reportByID(t, result, "s2")
	assert.True(t, s2.Revenue.Equal(dec("180")), "revenue = %s", s2.Revenue)
	assert.True(t, s2.Cost.Equal(dec("110")), "cost = %s", s2.Cost)
	assert.True(t, s2.Profit.Equal(dec("70")), "profit = %s", s2.Profit)
	// The 100% discount sale still counts as a sale.
	assert.Equal(t, 2, s2.SalesCount)

	// Catalog sellers without transactions stay in the output with zeros.
	s3 := reportByID(t, result, "s3")
	assert.True(t, s3.Revenue.IsZero())
	assert.True(t, s3.Profit.IsZero())
	assert.Equal(t, 0, s3.SalesCount)
	assert.Empty(t, s3.TopProducts)

	// Ranked by profit descending.
	assert.Equal(t, "s1", result.Reports[0].SellerID)
	assert.Equal(t, "s2", result.Reports[1].SellerID)
	assert.Equal(t, "s3", result.Reports[2].SellerID)

	// Tier table over profit: 260*0.15, 70*0.10, 0.
	assert.True(t, result.Reports[0].Bonus.Equal(dec("39")), "bonus = %s", result.Reports[0].Bonus)
	assert.True(t, result.Reports[1].Bonus.Equal(dec("7")), "bonus = %s", result.Reports[1].Bonus)
	assert.True(t, result.Reports[2].Bonus.IsZero())

	// KPI: s1 420/1000 = 42%; s2 falls back to the default plan of 100,
	// 180% attainment pays the qualifying profit share on top.
	assert.Equal(t, int64(42), s1.KPIPercent)
	assert.True(t, s1.KPIBonus.IsZero())
	assert.Equal(t, int64(180), s2.KPIPercent)
	assert.True(t, s2.KPIBonus.Equal(dec("0.7")), "kpi bonus = %s", s2.KPIBonus)
	assert.Equal(t, int64(0), s3.KPIPercent)
}

func TestAggregateDiscountArithmetic(t *testing.T) {
	products := []models.Product{
		{SKU: "A", Name: "A", Category: "c", PurchasePrice: dec("0"), SalePrice: dec("100")},
	}
	sellers := []models.Seller{{SellerID: "s1"}}
	records := []models.PurchaseRecord{
		{
			PurchaseID: 1, SellerID: "s1", PurchaseDate: day("2024-01-01"),
			Items: []models.LineItem{
				{SKU: "A", Quantity: 3, SalePrice: dec("100"), Discount: dec("10")},
			},
		},
	}

	result, err := Aggregate(products, sellers, records, testOptions())
	require.NoError(t, err)

	s1 := reportByID(t, result, "s1")
	assert.True(t, s1.Revenue.Equal(dec("270")), "revenue = %s", s1.Revenue)
}

func TestAggregateUnknownSKUTolerance(t *testing.T) {
	records := []models.PurchaseRecord{
		{
			PurchaseID: 1, SellerID: "s1", PurchaseDate: day("2024-01-01"),
			Items: []models.LineItem{
				{SKU: "LAMP-2", Quantity: 1, SalePrice: dec("40")},
				{SKU: "NOPE", Quantity: 10, SalePrice: dec("999")},
			},
		},
	}

	result, err := Aggregate(testProducts(), testSellers(), records, testOptions())
	require.NoError(t, err)

	s1 := reportByID(t, result, "s1")
	assert.True(t, s1.Revenue.Equal(dec("40")), "revenue = %s", s1.Revenue)
	assert.Equal(t, 1, s1.SalesCount)
	assert.Equal(t, 1, result.Warnings)
}

func TestAggregateOrderIndependence(t *testing.T) {
	base, err := Aggregate(testProducts(), testSellers(), testRecords(), testOptions())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		records := testRecords()
		rng.Shuffle(len(records), func(a, b int) {
			records[a], records[b] = records[b], records[a]
		})
		for r := range records {
			items := records[r].Items
			rng.Shuffle(len(items), func(a, b int) {
				items[a], items[b] = items[b], items[a]
			})
		}

		shuffled, err := Aggregate(testProducts(), testSellers(), records, testOptions())
		require.NoError(t, err)
		require.Len(t, shuffled.Reports, len(base.Reports))

		for j, want := range base.Reports {
			got := shuffled.Reports[j]
			assert.Equal(t, want.SellerID, got.SellerID)
			assert.True(t, want.Revenue.Equal(got.Revenue))
			assert.True(t, want.Profit.Equal(got.Profit))
			assert.True(t, want.Bonus.Equal(got.Bonus))
			assert.Equal(t, want.SalesCount, got.SalesCount)
			assert.Equal(t, want.TopProducts, got.TopProducts)
		}
	}
}

func TestAggregateIdempotence(t *testing.T) {
	first, err := Aggregate(testProducts(), testSellers(), testRecords(), testOptions())
	require.NoError(t, err)
	second, err := Aggregate(testProducts(), testSellers(), testRecords(), testOptions())
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAggregateConservation(t *testing.T) {
	opts := testOptions()
	opts.TopProductLimit = 100

	result, err := Aggregate(testProducts(), testSellers(), testRecords(), opts)
	require.NoError(t, err)

	var sellerTotal, productTotal decimal.Decimal
	for _, rep := range result.Reports {
		sellerTotal = sellerTotal.Add(rep.Revenue)
	}
	for _, tp := range result.TopProducts {
		productTotal = productTotal.Add(tp.Revenue)
	}

	assert.True(t, sellerTotal.Equal(productTotal),
		"seller total %s != product total %s", sellerTotal, productTotal)
	assert.True(t, result.Totals.TotalRevenue.Equal(sellerTotal))
}

func TestAggregateConfigErrors(t *testing.T) {
	products, sellers, records := testProducts(), testSellers(), testRecords()

	cases := []struct {
		name string
		opts Options
	}{
		{"missing ranking key", Options{}},
		{"unknown ranking key", Options{RankingKey: "charisma"}},
		{"negative default plan", Options{RankingKey: RankByProfit, DefaultPlan: dec("-1")}},
		{"negative kpi bonus rate", Options{RankingKey: RankByProfit, KPIBonusRate: dec("-0.1")}},
		{"negative top product limit", Options{RankingKey: RankByProfit, TopProductLimit: -1}},
		{"negative tier rate", Options{RankingKey: RankByProfit, BonusTiers: BonusTiers{Top: dec("-0.15")}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Aggregate(products, sellers, records, tc.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestTopProducts(t *testing.T) {
	products, warnings, err := TopProducts(testProducts(), testSellers(), testRecords(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, warnings)
	require.Len(t, products, 3)

	// Revenue descending; the 180/180 tie breaks on SKU.
	assert.Equal(t, "LAMP-2", products[0].SKU)
	assert.True(t, products[0].Revenue.Equal(dec("240")))
	assert.Equal(t, 6, products[0].Quantity)
	assert.Equal(t, []string{"Anna Petrova"}, products[0].Sellers)

	assert.Equal(t, "RUG-3", products[1].SKU)
	assert.Equal(t, "SOFA-1", products[2].SKU)
	assert.Equal(t, []string{"Anna Petrova", "Boris Ivanov"}, products[2].Sellers)

	_, _, err = TopProducts(testProducts(), testSellers(), testRecords(), -1)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestTopProductsLimit(t *testing.T) {
	products, _, err := TopProducts(testProducts(), testSellers(), testRecords(), 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "LAMP-2", products[0].SKU)
}

package report

import (
	"testing"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeLineCoercion(t *testing.T) {
	product := models.Product{SKU: "A", Name: "A", Category: "c", PurchasePrice: dec("10"), SalePrice: dec("50")}

	cases := []struct {
		name        string
		item        models.LineItem
		wantQty     int
		wantRevenue string
		wantCost    string
	}{
		{
			name:        "declared price and discount",
			item:        models.LineItem{SKU: "A", Quantity: 3, SalePrice: dec("100"), Discount: dec("10")},
			wantQty:     3,
			wantRevenue: "270",
			wantCost:    "30",
		},
		{
			name:        "missing price falls back to catalog",
			item:        models.LineItem{SKU: "A", Quantity: 2},
			wantQty:     2,
			wantRevenue: "100",
			wantCost:    "20",
		},
		{
			name:        "negative price falls back to catalog",
			item:        models.LineItem{SKU: "A", Quantity: 1, SalePrice: dec("-5")},
			wantQty:     1,
			wantRevenue: "50",
			wantCost:    "10",
		},
		{
			name:        "negative quantity coerced to zero",
			item:        models.LineItem{SKU: "A", Quantity: -4, SalePrice: dec("100")},
			wantQty:     0,
			wantRevenue: "0",
			wantCost:    "0",
		},
		{
			name:        "negative discount coerced to zero",
			item:        models.LineItem{SKU: "A", Quantity: 1, SalePrice: dec("100"), Discount: dec("-20")},
			wantQty:     1,
			wantRevenue: "100",
			wantCost:    "10",
		},
		{
			name:        "discount clamped to one hundred",
			item:        models.LineItem{SKU: "A", Quantity: 2, SalePrice: dec("100"), Discount: dec("150")},
			wantQty:     2,
			wantRevenue: "0",
			wantCost:    "20",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := normalizeLine(tc.item, product)
			assert.Equal(t, tc.wantQty, line.quantity)
			assert.True(t, line.netRevenue.Equal(dec(tc.wantRevenue)), "revenue = %s", line.netRevenue)
			assert.True(t, line.cost.Equal(dec(tc.wantCost)), "cost = %s", line.cost)
			assert.Equal(t, "c", line.category)
		})
	}
}

func TestNormalizeRecordsSkipsUnknownSeller(t *testing.T) {
	cat := buildCatalog(testProducts(), testSellers(), zap.NewNop())
	records := []models.PurchaseRecord{
		{PurchaseID: 1, SellerID: "ghost", PurchaseDate: day("2024-01-01"),
			Items: []models.LineItem{{SKU: "SOFA-1", Quantity: 1}}},
		{PurchaseID: 2, SellerID: "s1", PurchaseDate: day("2024-01-01"),
			Items: []models.LineItem{{SKU: "SOFA-1", Quantity: 1}}},
	}

	purchases, warnings := normalizeRecords(cat, records, zap.NewNop())
	require.Len(t, purchases, 1)
	assert.Equal(t, "s1", purchases[0].sellerID)
	assert.Equal(t, 1, warnings)
}

func TestNormalizeRecordsDropsRecordWithoutValidLines(t *testing.T) {
	cat := buildCatalog(testProducts(), testSellers(), zap.NewNop())
	records := []models.PurchaseRecord{
		{PurchaseID: 1, SellerID: "s1", PurchaseDate: day("2024-01-01"),
			Items: []models.LineItem{{SKU: "NOPE-1", Quantity: 1}, {SKU: "NOPE-2", Quantity: 2}}},
		{PurchaseID: 2, SellerID: "s1", PurchaseDate: day("2024-01-01")},
	}

	purchases, warnings := normalizeRecords(cat, records, zap.NewNop())
	assert.Empty(t, purchases)
	// Two unknown SKUs plus two empty records.
	assert.Equal(t, 4, warnings)
}

func TestNormalizeRecordsResolvesUntrimmedReferences(t *testing.T) {
	cat := buildCatalog(testProducts(), testSellers(), zap.NewNop())
	records := []models.PurchaseRecord{
		{PurchaseID: 1, SellerID: " s1 ", PurchaseDate: day("2024-01-03"),
			Items: []models.LineItem{{SKU: " SOFA-1 ", Quantity: 1, SalePrice: dec("100")}}},
	}

	purchases, warnings := normalizeRecords(cat, records, zap.NewNop())
	require.Len(t, purchases, 1)
	assert.Equal(t, 0, warnings)
	assert.Equal(t, "s1", purchases[0].sellerID)
	assert.Equal(t, "2024-01-03", purchases[0].day)
	require.Len(t, purchases[0].lines, 1)
	assert.Equal(t, "SOFA-1", purchases[0].lines[0].sku)
}

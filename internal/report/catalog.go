package report

import (
	"strings"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"go.uber.org/zap"
)

// catalog holds the lookup indexes built from reference data for one run
type catalog struct {
	products map[string]models.Product
	sellers  map[string]models.Seller
	warnings int
}

// buildCatalog indexes products by SKU and sellers by seller ID.
// Keys are trimmed strings. Duplicate keys are last-write-wins; entries
// without a key are dropped and counted as warnings, never an error.
func buildCatalog(products []models.Product, sellers []models.Seller, logger *zap.Logger) *catalog {
	cat := &catalog{
		products: make(map[string]models.Product, len(products)),
		sellers:  make(map[string]models.Seller, len(sellers)),
	}

	for _, p := range products {
		sku := strings.TrimSpace(p.SKU)
		if sku == "" {
			cat.warnings++
			logger.Warn("Dropping product without SKU", zap.String("name", p.Name))
			continue
		}
		p.SKU = sku
		cat.products[sku] = p
	}

	for _, s := range sellers {
		id := strings.TrimSpace(s.SellerID)
		if id == "" {
			cat.warnings++
			logger.Warn("Dropping seller without ID", zap.String("name", s.Name()))
			continue
		}
		s.SellerID = id
		cat.sellers[id] = s
	}

	return cat
}

func (c *catalog) product(sku string) (models.Product, bool) {
	p, ok := c.products[strings.TrimSpace(sku)]
	return p, ok
}

func (c *catalog) seller(id string) (models.Seller, bool) {
	s, ok := c.sellers[strings.TrimSpace(id)]
	return s, ok
}

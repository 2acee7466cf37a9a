package store

import (
	"context"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/jmoiron/sqlx"
)

// RecordFilter narrows which purchase records are loaded for a run.
// Zero values leave the corresponding dimension unfiltered.
type RecordFilter struct {
	SellerID string
	From     time.Time
	To       time.Time
}

// ListPurchaseRecords retrieves purchase records with their line items
// embedded. Records come back oldest first; line items keep their
// insertion order within each record.
func (s *Store) ListPurchaseRecords(ctx context.Context, filter RecordFilter) ([]models.PurchaseRecord, error) {
	query := "SELECT purchase_id, seller_id, purchase_date FROM purchase_records WHERE 1=1"
	args := []interface{}{}

	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		query += " AND seller_id = ?"
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += " AND purchase_date >= ?"
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += " AND purchase_date < ?"
	}
	query += " ORDER BY purchase_date, purchase_id"
	query = s.db.Rebind(query)

	var records []models.PurchaseRecord
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int64, len(records))
	byID := make(map[int64]*models.PurchaseRecord, len(records))
	for i := range records {
		ids[i] = records[i].PurchaseID
		byID[records[i].PurchaseID] = &records[i]
	}

	itemQuery, itemArgs, err := sqlx.In(
		"SELECT item_id, purchase_id, sku, quantity, COALESCE(sale_price, 0) AS sale_price, COALESCE(discount, 0) AS discount FROM purchase_items WHERE purchase_id IN (?) ORDER BY item_id", ids)
	if err != nil {
		return nil, err
	}
	itemQuery = s.db.Rebind(itemQuery)

	var items []models.LineItem
	if err := s.db.SelectContext(ctx, &items, itemQuery, itemArgs...); err != nil {
		return nil, err
	}

	for _, item := range items {
		if rec, ok := byID[item.PurchaseID]; ok {
			rec.Items = append(rec.Items, item)
		}
	}

	return records, nil
}

// CountPurchaseRecords returns the total number of purchase records
func (s *Store) CountPurchaseRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM purchase_records")
	return count, err
}

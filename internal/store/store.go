package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// ListProducts retrieves the full product catalog
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT sku, name, category, purchase_price, sale_price FROM products ORDER BY sku")
	return products, err
}

// GetProductBySKU retrieves a product by SKU
func (s *Store) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT sku, name, category, purchase_price, sale_price FROM products WHERE sku = $1", sku)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", sku)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListSellers retrieves the full seller catalog
func (s *Store) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	err := s.db.SelectContext(ctx, &sellers,
		"SELECT seller_id, first_name, last_name, department, COALESCE(plan_revenue, 0) AS plan_revenue FROM sellers ORDER BY seller_id")
	return sellers, err
}

// GetSellerByID retrieves a seller by ID
func (s *Store) GetSellerByID(ctx context.Context, sellerID string) (*models.Seller, error) {
	var seller models.Seller
	err := s.db.GetContext(ctx, &seller,
		"SELECT seller_id, first_name, last_name, department, COALESCE(plan_revenue, 0) AS plan_revenue FROM sellers WHERE seller_id = $1", sellerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("seller not found: %s", sellerID)
	}
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client for the report cache
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func sellerReportKey(sellerID string) string {
	return fmt.Sprintf("report:seller:%s", sellerID)
}

// GetSellerReport fetches a memoized seller report. The second return
// value reports whether the cache held an entry; a miss is not an error,
// callers recompute from source.
func (c *Client) GetSellerReport(ctx context.Context, sellerID string) (*models.SellerReport, bool, error) {
	data, err := c.rdb.Get(ctx, sellerReportKey(sellerID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("report cache get failed: %w", err)
	}

	var report models.SellerReport
	if err := json.Unmarshal(data, &report); err != nil {
		// A corrupt entry behaves like a miss; the next recompute overwrites it.
		return nil, false, nil
	}
	return &report, true, nil
}

// SetSellerReport memoizes a seller report with a TTL. The cache is
// advisory only; entries carry no invalidation guarantee.
func (c *Client) SetSellerReport(ctx context.Context, report *models.SellerReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("report cache marshal failed: %w", err)
	}
	return c.rdb.Set(ctx, sellerReportKey(report.SellerID), data, ttl).Err()
}

// InvalidateSellerReport drops a memoized seller report
func (c *Client) InvalidateSellerReport(ctx context.Context, sellerID string) error {
	return c.rdb.Del(ctx, sellerReportKey(sellerID)).Err()
}

// AcquireRunLock takes a best-effort lock so concurrent workers do not
// recompute the same run at once
func (c *Client) AcquireRunLock(ctx context.Context, runKey string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("lock:report:%s", runKey), "1", ttl).Result()
}

// ReleaseRunLock releases a run lock
func (c *Client) ReleaseRunLock(ctx context.Context, runKey string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("lock:report:%s", runKey)).Err()
}

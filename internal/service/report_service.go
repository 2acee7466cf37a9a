package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ArishaMak/sales-bonus/config"
	"github.com/ArishaMak/sales-bonus/internal/broker"
	"github.com/ArishaMak/sales-bonus/internal/models"
	"github.com/ArishaMak/sales-bonus/internal/redisclient"
	"github.com/ArishaMak/sales-bonus/internal/report"
	"github.com/ArishaMak/sales-bonus/internal/store"
	"github.com/ArishaMak/sales-bonus/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService orchestrates aggregation runs: it loads the source
// snapshot from the store, hands it to the engine, memoizes per-seller
// results in Redis and publishes run events.
type ReportService struct {
	store          *store.Store
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	opts           report.Options
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	store *store.Store,
	cache *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	opts report.Options,
	cacheTTL time.Duration,
) *ReportService {
	return &ReportService{
		store:          store,
		cache:          cache,
		eventPublisher: eventPublisher,
		opts:           opts,
		cacheTTL:       cacheTTL,
		logger:         util.NamedLogger("report"),
	}
}

// OptionsFromConfig translates the report section of the environment
// config into engine options. Malformed values are caller bugs and fail
// here, before the service starts serving.
func OptionsFromConfig(cfg config.ReportConfig) (report.Options, error) {
	defaultPlan, err := decimal.NewFromString(cfg.DefaultPlan)
	if err != nil {
		return report.Options{}, fmt.Errorf("invalid REPORT_DEFAULT_PLAN %q: %w", cfg.DefaultPlan, err)
	}
	kpiBonusRate, err := decimal.NewFromString(cfg.KPIBonusRate)
	if err != nil {
		return report.Options{}, fmt.Errorf("invalid REPORT_KPI_BONUS_RATE %q: %w", cfg.KPIBonusRate, err)
	}

	return report.Options{
		RankingKey:      report.RankingKey(cfg.RankingKey),
		BonusTiers:      report.DefaultBonusTiers(),
		DefaultPlan:     defaultPlan,
		KPIBonusRate:    kpiBonusRate,
		TopProductLimit: cfg.TopProductLimit,
	}, nil
}

// Dashboard is the combined rollup view served on the dashboard endpoint
type Dashboard struct {
	Totals      models.DashboardTotals   `json:"totals"`
	TopSellers  []models.SellerReport    `json:"top_sellers"`
	Categories  []models.CategoryRevenue `json:"categories"`
	TopProducts []models.TopProduct      `json:"top_products"`
	Warnings    int                      `json:"warnings"`
}

// ComputeReport runs one full aggregation pass over the current source
// snapshot and publishes a ReportComputed event. Each call builds the
// result from scratch; there is no incremental update path.
func (s *ReportService) ComputeReport(ctx context.Context, filter store.RecordFilter) (*report.Result, error) {
	runID := uuid.New().String()
	ctx, span := util.StartRunSpan(ctx, "ReportService.ComputeReport", runID)
	defer span.End()

	start := time.Now()

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("store_error").Inc()
		s.publishFailed(ctx, runID, err)
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("store_error").Inc()
		s.publishFailed(ctx, runID, err)
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}
	records, err := s.store.ListPurchaseRecords(ctx, filter)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("store_error").Inc()
		s.publishFailed(ctx, runID, err)
		return nil, fmt.Errorf("failed to load purchase records: %w", err)
	}

	result, err := report.Aggregate(products, sellers, records, s.opts)
	if err != nil {
		util.ReportsFailedTotal.WithLabelValues("config_error").Inc()
		s.publishFailed(ctx, runID, err)
		return nil, err
	}

	duration := time.Since(start)
	util.ReportsComputedTotal.Inc()
	util.ReportComputeLatency.Observe(duration.Seconds())
	if result.Warnings > 0 {
		util.ReportWarningsTotal.Add(float64(result.Warnings))
	}

	s.logger.Info("Report computed",
		zap.String("run_id", runID),
		zap.Int("sellers", len(result.Reports)),
		zap.Int("records", len(records)),
		zap.Int("warnings", result.Warnings),
		zap.Duration("duration", duration))

	if s.eventPublisher != nil {
		event := &models.ReportComputedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReportComputed,
				Timestamp: time.Now(),
			},
			RunID:       runID,
			SellerCount: len(result.Reports),
			RecordCount: len(records),
			Warnings:    result.Warnings,
			DurationMS:  duration.Milliseconds(),
		}
		if err := s.eventPublisher.PublishReportComputed(ctx, event); err != nil {
			s.logger.Error("Failed to publish ReportComputed event", zap.Error(err))
		}
	}

	return result, nil
}

// RequestReport asks the background worker to precompute a run by
// publishing a ReportRequested event. Returns the run ID for tracking.
func (s *ReportService) RequestReport(ctx context.Context) (string, error) {
	if s.eventPublisher == nil {
		return "", fmt.Errorf("event publisher not configured")
	}

	runID := uuid.New().String()
	event := &models.ReportRequestedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReportRequested,
			Timestamp: time.Now(),
		},
		RunID: runID,
	}
	if err := s.eventPublisher.PublishReportRequested(ctx, event); err != nil {
		return "", fmt.Errorf("failed to publish ReportRequested event: %w", err)
	}

	s.logger.Info("Report run requested", zap.String("run_id", runID))
	return runID, nil
}

func (s *ReportService) publishFailed(ctx context.Context, runID string, cause error) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.ReportFailedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReportFailed,
			Timestamp: time.Now(),
		},
		RunID:  runID,
		Reason: cause.Error(),
	}
	if err := s.eventPublisher.PublishReportFailed(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReportFailed event", zap.Error(err))
	}
}

// GetSellerReports returns the ranked per-seller reports for the filter
func (s *ReportService) GetSellerReports(ctx context.Context, filter store.RecordFilter) ([]models.SellerReport, int, error) {
	result, err := s.ComputeReport(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return result.Reports, result.Warnings, nil
}

// GetSellerReport returns one seller's report, served from the Redis
// memoization when possible. A miss is resolved by recomputing the full
// run and warming every seller's entry; the cache is never authoritative.
func (s *ReportService) GetSellerReport(ctx context.Context, sellerID string) (*models.SellerReport, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.GetSellerReport")
	defer span.End()

	if s.cache != nil {
		cached, ok, err := s.cache.GetSellerReport(ctx, sellerID)
		if err != nil {
			s.logger.Warn("Report cache lookup failed", zap.Error(err))
		}
		if ok {
			util.ReportCacheHitsTotal.Inc()
			return cached, nil
		}
		util.ReportCacheMissesTotal.Inc()
	}

	// Recompute over the whole population so rank bonus and KPI stay
	// consistent with the full report.
	result, err := s.ComputeReport(ctx, store.RecordFilter{})
	if err != nil {
		return nil, err
	}

	var found *models.SellerReport
	for i := range result.Reports {
		rep := result.Reports[i]
		if s.cache != nil {
			if err := s.cache.SetSellerReport(ctx, &rep, s.cacheTTL); err != nil {
				s.logger.Warn("Report cache store failed",
					zap.String("seller_id", rep.SellerID), zap.Error(err))
			}
		}
		if rep.SellerID == sellerID {
			found = &rep
		}
	}

	if found == nil {
		return nil, fmt.Errorf("seller not found: %s", sellerID)
	}
	return found, nil
}

// GetTopProducts returns the global top product rollup
func (s *ReportService) GetTopProducts(ctx context.Context, limit int) ([]models.TopProduct, int, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.GetTopProducts")
	defer span.End()

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load products: %w", err)
	}
	sellers, err := s.store.ListSellers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load sellers: %w", err)
	}
	records, err := s.store.ListPurchaseRecords(ctx, store.RecordFilter{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load purchase records: %w", err)
	}

	return report.TopProducts(products, sellers, records, limit)
}

// GetDashboard returns the combined dashboard view for the filter
func (s *ReportService) GetDashboard(ctx context.Context, filter store.RecordFilter) (*Dashboard, error) {
	result, err := s.ComputeReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	topSellers := result.Reports
	if len(topSellers) > 5 {
		topSellers = topSellers[:5]
	}

	return &Dashboard{
		Totals:      result.Totals,
		TopSellers:  topSellers,
		Categories:  result.CategoryBreakdown,
		TopProducts: result.TopProducts,
		Warnings:    result.Warnings,
	}, nil
}

// WarmCache recomputes the full report and refreshes every seller's
// memoized entry. Used by the background worker.
func (s *ReportService) WarmCache(ctx context.Context) error {
	result, err := s.ComputeReport(ctx, store.RecordFilter{})
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	for i := range result.Reports {
		rep := result.Reports[i]
		if err := s.cache.SetSellerReport(ctx, &rep, s.cacheTTL); err != nil {
			s.logger.Warn("Report cache store failed",
				zap.String("seller_id", rep.SellerID), zap.Error(err))
		}
	}
	return nil
}

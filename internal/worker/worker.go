package worker

import (
	"context"
	"log"
	"time"

	"github.com/ArishaMak/sales-bonus/internal/broker"
	"github.com/ArishaMak/sales-bonus/internal/models"
	"github.com/ArishaMak/sales-bonus/internal/redisclient"
	"github.com/ArishaMak/sales-bonus/internal/service"
)

const runLockTTL = time.Minute

// ReportWorker precomputes reports in the background. It consumes
// ReportRequested events and warms the seller report cache so interactive
// requests hit memoized entries.
type ReportWorker struct {
	consumer      *broker.Consumer
	eventHandler  *broker.EventHandler
	reportService *service.ReportService
	cache         *redisclient.Client
}

// NewReportWorker creates a new report worker
func NewReportWorker(
	consumer *broker.Consumer,
	reportService *service.ReportService,
	cache *redisclient.Client,
) *ReportWorker {
	w := &ReportWorker{
		consumer:      consumer,
		reportService: reportService,
		cache:         cache,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnReportRequested(w.handleReportRequested)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *ReportWorker) Start(ctx context.Context) error {
	log.Println("Starting report worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *ReportWorker) Stop() error {
	log.Println("Stopping report worker...")
	return w.consumer.Close()
}

func (w *ReportWorker) handleReportRequested(ctx context.Context, event *models.ReportRequestedEvent) error {
	log.Printf("Processing report request: run=%s", event.RunID)

	// Skip the run when another worker already holds it; the duplicate
	// request would only recompute identical output.
	if w.cache != nil {
		acquired, err := w.cache.AcquireRunLock(ctx, event.RunID, runLockTTL)
		if err != nil {
			log.Printf("Run lock error for %s: %v", event.RunID, err)
		} else if !acquired {
			log.Printf("Run %s already in progress, skipping", event.RunID)
			return nil
		} else {
			defer func() {
				if err := w.cache.ReleaseRunLock(ctx, event.RunID); err != nil {
					log.Printf("Failed to release run lock %s: %v", event.RunID, err)
				}
			}()
		}
	}

	return w.reportService.WarmCache(ctx)
}

package models

import "time"

// Event types
const (
	EventTypeReportRequested = "REPORT_REQUESTED"
	EventTypeReportComputed  = "REPORT_COMPUTED"
	EventTypeReportFailed    = "REPORT_FAILED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportRequestedEvent asks the worker to precompute a report run
type ReportRequestedEvent struct {
	BaseEvent
	RunID    string `json:"run_id"`
	SellerID string `json:"seller_id,omitempty"`
}

// ReportComputedEvent published after a successful aggregation run
type ReportComputedEvent struct {
	BaseEvent
	RunID       string `json:"run_id"`
	SellerCount int    `json:"seller_count"`
	RecordCount int    `json:"record_count"`
	Warnings    int    `json:"warnings"`
	DurationMS  int64  `json:"duration_ms"`
}

// ReportFailedEvent published when a requested run could not be computed
type ReportFailedEvent struct {
	BaseEvent
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

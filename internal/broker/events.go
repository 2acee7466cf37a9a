package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ArishaMak/sales-bonus/internal/models"
	"github.com/ArishaMak/sales-bonus/internal/util"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing report domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishReportRequested publishes a ReportRequested event
func (ep *EventPublisher) PublishReportRequested(ctx context.Context, event *models.ReportRequestedEvent) error {
	util.ReportEventsPublishedTotal.WithLabelValues(models.EventTypeReportRequested).Inc()
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("run-%s", event.RunID), event)
}

// PublishReportComputed publishes a ReportComputed event
func (ep *EventPublisher) PublishReportComputed(ctx context.Context, event *models.ReportComputedEvent) error {
	util.ReportEventsPublishedTotal.WithLabelValues(models.EventTypeReportComputed).Inc()
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("run-%s", event.RunID), event)
}

// PublishReportFailed publishes a ReportFailed event
func (ep *EventPublisher) PublishReportFailed(ctx context.Context, event *models.ReportFailedEvent) error {
	util.ReportEventsPublishedTotal.WithLabelValues(models.EventTypeReportFailed).Inc()
	return ep.producer.PublishEvent(ctx, fmt.Sprintf("run-%s", event.RunID), event)
}

// EventHandler handles incoming events
type EventHandler struct {
	onReportRequested func(context.Context, *models.ReportRequestedEvent) error
	onReportComputed  func(context.Context, *models.ReportComputedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnReportRequested registers a handler for ReportRequested events
func (eh *EventHandler) OnReportRequested(handler func(context.Context, *models.ReportRequestedEvent) error) {
	eh.onReportRequested = handler
}

// OnReportComputed registers a handler for ReportComputed events
func (eh *EventHandler) OnReportComputed(handler func(context.Context, *models.ReportComputedEvent) error) {
	eh.onReportComputed = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeReportRequested:
		if eh.onReportRequested != nil {
			var event models.ReportRequestedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ReportRequested event: %w", err)
			}
			return eh.onReportRequested(ctx, &event)
		}

	case models.EventTypeReportComputed:
		if eh.onReportComputed != nil {
			var event models.ReportComputedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ReportComputed event: %w", err)
			}
			return eh.onReportComputed(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}

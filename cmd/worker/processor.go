package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
)

// Metric names recorded per storefront event.
const (
	MetricOrdersCreated   = "OrdersCreated"
	MetricOrderRevenue    = "OrderRevenue"
	MetricBookingsCreated = "BookingsCreated"
	MetricBookingValue    = "BookingValue"
	MetricContactMessages = "ContactMessagesReceived"
)

// Processor turns storefront events into CloudWatch metrics.
type Processor struct {
	metrics *aws.Metrics
}

// NewProcessor creates a new worker processor.
func NewProcessor(metrics *aws.Metrics) *Processor {
	return &Processor{metrics: metrics}
}

// Handle receives an SQS batch and processes each message. The first failure
// is returned so Lambda retries the batch and eventually moves it to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	zap.L().Debug("received SQS batch", zap.Int("records", len(ev.Records)))
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			zap.L().Error("worker error", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev notify.Event
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if ev.Type == "" || ev.EntityID == "" {
		return fmt.Errorf("invalid message body: missing type or entity_id")
	}

	log := zap.L().With(
		zap.String("event_type", ev.Type),
		zap.String("entity_id", ev.EntityID),
		zap.String("correlation_id", ev.CorrelationID),
	)

	data := datums(ev)
	if len(data) == 0 {
		// acknowledged, not redriven
		log.Warn("ignoring unknown event type")
		return nil
	}
	if err := p.metrics.Put(ctx, data...); err != nil {
		return fmt.Errorf("record %s: %w", ev.Type, err)
	}
	log.Info("recorded event", zap.String("reference", ev.Reference))
	return nil
}

func datums(ev notify.Event) []aws.Datum {
	switch ev.Type {
	case notify.TypeOrderCreated:
		return []aws.Datum{
			{Name: MetricOrdersCreated, Value: 1, Unit: cwtypes.StandardUnitCount},
			{Name: MetricOrderRevenue, Value: ev.Amount, Unit: cwtypes.StandardUnitNone},
		}
	case notify.TypeBookingCreated:
		return []aws.Datum{
			{Name: MetricBookingsCreated, Value: 1, Unit: cwtypes.StandardUnitCount},
			{Name: MetricBookingValue, Value: ev.Amount, Unit: cwtypes.StandardUnitNone},
		}
	case notify.TypeContactCreated:
		return []aws.Datum{
			{Name: MetricContactMessages, Value: 1, Unit: cwtypes.StandardUnitCount},
		}
	}
	return nil
}

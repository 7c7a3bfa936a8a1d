package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/notify"
)

// --- mock implementations ---

type mockCloudWatch struct {
	calls []*cloudwatch.PutMetricDataInput
	err   error
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.calls = append(m.calls, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

// recorded flattens every datum sent so far into name -> value.
func (m *mockCloudWatch) recorded() map[string]float64 {
	out := map[string]float64{}
	for _, in := range m.calls {
		for _, d := range in.MetricData {
			out[*d.MetricName] += *d.Value
		}
	}
	return out
}

func message(t *testing.T, ev notify.Event) events.SQSMessage {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	return events.SQSMessage{MessageId: ev.EntityID, Body: string(body)}
}

// --- test cases ---

func TestProcessor_RecordsMetricsPerEvent(t *testing.T) {
	cw := &mockCloudWatch{}
	p := NewProcessor(aws.NewMetrics(cw, "Storefront"))
	at := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	batch := events.SQSEvent{Records: []events.SQSMessage{
		message(t, notify.Event{Type: notify.TypeOrderCreated, EntityID: "o1", Reference: "ORD-20240131-000001", Amount: 39.98, OccurredAt: at}),
		message(t, notify.Event{Type: notify.TypeOrderCreated, EntityID: "o2", Amount: 10, OccurredAt: at}),
		message(t, notify.Event{Type: notify.TypeBookingCreated, EntityID: "b1", Amount: 60, OccurredAt: at}),
		message(t, notify.Event{Type: notify.TypeContactCreated, EntityID: "m1", OccurredAt: at}),
	}}
	require.NoError(t, p.Handle(context.Background(), batch))

	require.Len(t, cw.calls, 4)
	assert.Equal(t, "Storefront", *cw.calls[0].Namespace)
	got := cw.recorded()
	assert.Equal(t, 2.0, got[MetricOrdersCreated])
	assert.InDelta(t, 49.98, got[MetricOrderRevenue], 1e-9)
	assert.Equal(t, 1.0, got[MetricBookingsCreated])
	assert.Equal(t, 60.0, got[MetricBookingValue])
	assert.Equal(t, 1.0, got[MetricContactMessages])
}

func TestProcessor_UnknownTypeIsSkipped(t *testing.T) {
	cw := &mockCloudWatch{}
	p := NewProcessor(aws.NewMetrics(cw, "Storefront"))

	err := p.Handle(context.Background(), events.SQSEvent{Records: []events.SQSMessage{
		message(t, notify.Event{Type: "product.viewed", EntityID: "p1"}),
	}})
	require.NoError(t, err)
	assert.Empty(t, cw.calls)
}

func TestProcessor_Failures(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		cwErr error
	}{
		{"malformed json", `{"type":`, nil},
		{"missing entity", `{"type":"order.created"}`, nil},
		{"cloudwatch down", `{"type":"order.created","entity_id":"o1","amount":5}`, errors.New("throttled")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw := &mockCloudWatch{err: tt.cwErr}
			p := NewProcessor(aws.NewMetrics(cw, "Storefront"))

			err := p.Handle(context.Background(), events.SQSEvent{Records: []events.SQSMessage{{MessageId: "x", Body: tt.body}}})
			require.Error(t, err)
			assert.Empty(t, cw.calls)
		})
	}
}

package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics records custom CloudWatch metrics under a single namespace.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

// NewMetrics returns a Metrics recorder for namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{
		CloudWatch: cw,
		Namespace:  namespace,
		nowFunc:    time.Now,
	}
}

// Datum is one metric observation.
type Datum struct {
	Name  string
	Value float64
	Unit  cwtypes.StandardUnit
}

// Put sends all data points in a single PutMetricData call.
func (m *Metrics) Put(ctx context.Context, data ...Datum) error {
	if len(data) == 0 {
		return nil
	}
	now := m.nowFunc()
	datums := make([]cwtypes.MetricDatum, 0, len(data))
	for _, d := range data {
		d := d
		datums = append(datums, cwtypes.MetricDatum{
			MetricName: awsString(d.Name),
			Value:      &d.Value,
			Unit:       d.Unit,
			Timestamp:  &now,
		})
	}
	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: datums,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

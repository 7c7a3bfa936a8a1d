package aws

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCloudWatch struct {
	calls []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.calls = append(m.calls, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func TestMetrics_Put(t *testing.T) {
	cw := &mockCloudWatch{}
	m := NewMetrics(cw, "Storefront")
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	m.nowFunc = func() time.Time { return now }

	require.NoError(t, m.Put(context.Background()))
	assert.Empty(t, cw.calls)

	err := m.Put(context.Background(),
		Datum{Name: "OrdersCreated", Value: 1, Unit: cwtypes.StandardUnitCount},
		Datum{Name: "OrderRevenue", Value: 39.98, Unit: cwtypes.StandardUnitNone},
	)
	require.NoError(t, err)
	require.Len(t, cw.calls, 1)

	in := cw.calls[0]
	assert.Equal(t, "Storefront", *in.Namespace)
	require.Len(t, in.MetricData, 2)
	assert.Equal(t, "OrdersCreated", *in.MetricData[0].MetricName)
	assert.Equal(t, 1.0, *in.MetricData[0].Value)
	assert.Equal(t, 39.98, *in.MetricData[1].Value)
	assert.Equal(t, now, *in.MetricData[1].Timestamp)
}

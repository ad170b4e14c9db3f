package linkedin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type brokenMeter struct {
	noop.Meter
}

func (brokenMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("instrument name is invalid")
}

func TestNewCounterFallsBackToNoop(t *testing.T) {
	counter := newCounter(brokenMeter{}, "linkedin.fetches", "requests sent upstream")
	require.NotNil(t, counter)
	require.NotPanics(t, func() {
		counter.Add(context.Background(), 1)
	})

	counter = newCounter(noop.Meter{}, "linkedin.fetches", "requests sent upstream")
	require.NotNil(t, counter)
}

package metrics

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/metric"
)

const (
	SWAP_TTL = time.Minute * 30
)

type EngineMetrics struct {
	startTimeGauge     metric.Int64ObservableGauge
	activePollersGauge metric.Int64ObservableGauge
	activePollerCount  *int64

	swapCounter       metric.Int64Counter
	swapTimeHistogram metric.Float64Histogram
	swapStartCache    *ttlcache.Cache[string, time.Time]
}

// NewEngineMetrics initializes metrics related to the swap engine
func NewEngineMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*EngineMetrics, error) {
	startTime := time.Now().Unix()
	startTimeGauge, err := meter.Int64ObservableGauge(
		"engine.StartTimeSeconds",
		metric.WithDescription("Start time of the engine"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(startTime, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	activePollerCount := new(int64)
	activePollersGauge, err := meter.Int64ObservableGauge(
		"engine.ActivePollers",
		metric.WithDescription("Number of intents currently tracked against the settlement service"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(*activePollerCount, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	swapCounter, err := meter.Int64Counter(
		"engine.Swaps",
		metric.WithDescription("Number of executed swaps"),
	)
	if err != nil {
		return nil, err
	}

	swapTimeHistogram, err := meter.Float64Histogram("engine.SwapTime")
	if err != nil {
		return nil, err
	}

	swapStartCache := ttlcache.New(
		ttlcache.WithTTL[string, time.Time](SWAP_TTL),
	)
	go swapStartCache.Start()

	return &EngineMetrics{
		startTimeGauge:     startTimeGauge,
		activePollersGauge: activePollersGauge,
		activePollerCount:  activePollerCount,
		swapCounter:        swapCounter,
		swapTimeHistogram:  swapTimeHistogram,
		swapStartCache:     swapStartCache,
	}, nil
}

func (m *EngineMetrics) TrackPollerCount(count int64) {
	*m.activePollerCount = count
}

func (m *EngineMetrics) StartSwap(requestID string) {
	m.swapCounter.Add(context.Background(), 1)
	m.swapStartCache.Set(requestID, time.Now(), ttlcache.DefaultTTL)
}

func (m *EngineMetrics) EndSwap(requestID string) {
	startTime := m.swapStartCache.Get(requestID)
	if startTime == nil {
		log.Warn().Msgf("Swap start time with ID %s not found", requestID)
		return
	}

	m.swapTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds())
}

// internal/service/predict/detector.go

package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"orbitfield/internal/domain/trend"
)

// DetectorConfig contains configuration for the trend detector.
type DetectorConfig struct {
	ScanInterval time.Duration
	Interests    []string
	EventsTopic  string
}

// TrendDetector implements the trend.Detector interface. It runs the
// generator on a schedule, persists new trends and fans them out to the
// event bus and registered handlers.
type TrendDetector struct {
	generator *Generator
	store     trend.Store
	eventBus  *nats.Conn
	config    DetectorConfig
	logger    *zap.Logger

	handlers []func(trend.Trend) error
	mu       sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTrendDetector creates a new trend detector. The event bus may be
// nil, in which case detected trends are not published.
func NewTrendDetector(
	generator *Generator,
	store trend.Store,
	eventBus *nats.Conn,
	config DetectorConfig,
	logger *zap.Logger,
) *TrendDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &TrendDetector{
		generator: generator,
		store:     store,
		eventBus:  eventBus,
		config:    config,
		logger:    logger,
		handlers:  []func(trend.Trend) error{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the periodic discovery loop.
func (td *TrendDetector) Start(ctx context.Context) error {
	if td.config.ScanInterval <= 0 {
		return fmt.Errorf("scan interval must be positive")
	}

	td.wg.Add(1)
	go td.scanLoop(ctx)
	return nil
}

// Generate runs one discovery pass without touching the scan loop.
func (td *TrendDetector) Generate(ctx context.Context, interests []string) ([]trend.Trend, error) {
	return td.generator.Generate(ctx, interests)
}

// RegisterTrendHandler registers a callback invoked for each newly
// detected trend.
func (td *TrendDetector) RegisterTrendHandler(handler func(trend.Trend) error) error {
	td.mu.Lock()
	defer td.mu.Unlock()

	td.handlers = append(td.handlers, handler)
	return nil
}

func (td *TrendDetector) scanLoop(ctx context.Context) {
	defer td.wg.Done()

	ticker := time.NewTicker(td.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-td.ctx.Done():
			return
		case <-ticker.C:
			td.scan(ctx)
		}
	}
}

func (td *TrendDetector) scan(ctx context.Context) {
	trends, err := td.generator.Generate(ctx, td.config.Interests)
	if err != nil {
		td.logger.Error("trend generation failed", zap.Error(err))
		return
	}

	for i := range trends {
		t := trends[i]

		if td.store != nil {
			if err := td.store.SaveTrend(ctx, t); err != nil {
				td.logger.Error("failed to save trend",
					zap.String("trend_id", t.ID), zap.Error(err))
				continue
			}
		}

		if err := td.publishTrendEvent(t); err != nil {
			td.logger.Warn("failed to publish trend event",
				zap.String("trend_id", t.ID), zap.Error(err))
		}

		td.callHandlers(t)
	}

	td.logger.Info("trend scan complete", zap.Int("trends", len(trends)))
}

// publishTrendEvent publishes a trend detected event to the bus.
func (td *TrendDetector) publishTrendEvent(t trend.Trend) error {
	if td.eventBus == nil {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"id":          t.ID,
		"title":       t.Title,
		"category":    t.Category,
		"source":      t.Source,
		"probability": t.Probability,
		"marketable":  t.Marketable,
	})
	if err != nil {
		return fmt.Errorf("marshaling trend event: %w", err)
	}

	topic := fmt.Sprintf("%s.detected", td.config.EventsTopic)
	return td.eventBus.Publish(topic, payload)
}

func (td *TrendDetector) callHandlers(t trend.Trend) {
	td.mu.RLock()
	handlers := make([]func(trend.Trend) error, len(td.handlers))
	copy(handlers, td.handlers)
	td.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(t); err != nil {
			td.logger.Warn("trend handler failed",
				zap.String("trend_id", t.ID), zap.Error(err))
		}
	}
}

// Stop gracefully stops the discovery loop.
func (td *TrendDetector) Stop(ctx context.Context) error {
	td.cancel()

	done := make(chan struct{})
	go func() {
		td.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

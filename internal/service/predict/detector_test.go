package predict

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/trend"
)

type memStore struct {
	mu     sync.Mutex
	trends map[string]trend.Trend
}

func newMemStore() *memStore {
	return &memStore{trends: make(map[string]trend.Trend)}
}

func (s *memStore) SaveTrend(ctx context.Context, t trend.Trend) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends[t.ID] = t
	return nil
}

func (s *memStore) GetTrend(ctx context.Context, id string) (*trend.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trends[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *memStore) FindTrends(ctx context.Context, filter trend.Filter) ([]trend.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trend.Trend, 0, len(s.trends))
	for _, t := range s.trends {
		out = append(out, t)
	}
	return out, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trends)
}

func TestDetectorScansAndNotifies(t *testing.T) {
	markets := &stubMarkets{events: []market.CandidateEvent{{
		ID:        "1",
		Slug:      "gpt-5-release",
		Title:     "Will the next GPT model ship this year?",
		Liquidity: 5000,
	}}}
	g := NewGenerator(nil, nil, nil, markets, nil, nil)
	store := newMemStore()

	detector := NewTrendDetector(g, store, nil, DetectorConfig{
		ScanInterval: 10 * time.Millisecond,
		Interests:    []string{"AI"},
		EventsTopic:  "trends",
	}, nil)

	var handled sync.Map
	require.NoError(t, detector.RegisterTrendHandler(func(tr trend.Trend) error {
		handled.Store(tr.ID, tr)
		return nil
	}))

	require.NoError(t, detector.Start(context.Background()))

	require.Eventually(t, func() bool {
		return store.count() > 0
	}, 2*time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, detector.Stop(stopCtx))

	handledAny := false
	handled.Range(func(_, _ interface{}) bool {
		handledAny = true
		return false
	})
	assert.True(t, handledAny)
}

func TestDetectorStartRejectsZeroInterval(t *testing.T) {
	g := NewGenerator(nil, nil, nil, nil, nil, nil)
	detector := NewTrendDetector(g, nil, nil, DetectorConfig{}, nil)

	assert.Error(t, detector.Start(context.Background()))
}

func TestDetectorGeneratePassthrough(t *testing.T) {
	markets := &stubMarkets{events: []market.CandidateEvent{{
		ID:    "1",
		Title: "Will solar energy capacity double this year?",
	}}}
	g := NewGenerator(nil, nil, nil, markets, nil, nil)
	detector := NewTrendDetector(g, nil, nil, DetectorConfig{ScanInterval: time.Minute}, nil)

	trends, err := detector.Generate(context.Background(), []string{"Energy"})
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, market.CategoryEnergy, trends[0].Category)
}

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/service/match"
)

type stubSource struct {
	events []market.CandidateEvent
	err    error
}

func (s *stubSource) OpenEvents(ctx context.Context) ([]market.CandidateEvent, error) {
	return s.events, s.err
}

type stubRanker struct {
	ranked []market.CandidateEvent
	err    error
	called bool
}

func (s *stubRanker) Rank(ctx context.Context, events []market.CandidateEvent, title, summary string, category market.Category, limit int) ([]market.CandidateEvent, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.ranked, nil
}

func semiconductorPool() []market.CandidateEvent {
	return []market.CandidateEvent{
		{
			ID:        "1",
			Slug:      "tsmc-q3-revenue",
			Title:     "Will TSMC beat Q3 revenue estimates?",
			Liquidity: 50000,
		},
		{
			ID:        "2",
			Slug:      "nvidia-market-cap",
			Title:     "Will Nvidia reach a 5 trillion market cap?",
			Liquidity: 90000,
		},
		{
			ID:    "3",
			Title: "Will the Rangers win the Stanley Cup?",
		},
	}
}

func TestSimilarEventsNoKeywords(t *testing.T) {
	svc := NewService(&stubSource{}, nil, nil, nil)

	res, err := svc.SimilarEvents(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Equal(t, match.StrategyNone, res.Strategy)
}

func TestSimilarEventsSourceError(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("gamma api down")}, nil, nil, nil)

	_, err := svc.SimilarEvents(context.Background(), Query{
		Category: market.CategorySemiconductors,
		Title:    "TSMC earnings preview",
	})
	assert.Error(t, err)
}

func TestSimilarEventsKeywordMatch(t *testing.T) {
	svc := NewService(&stubSource{events: semiconductorPool()}, nil, nil, nil)

	res, err := svc.SimilarEvents(context.Background(), Query{
		Category: market.CategorySemiconductors,
		Title:    "TSMC revenue surges on AI chip demand",
		Limit:    5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, match.StrategyScored, res.Strategy)

	assert.Equal(t, "Will TSMC beat Q3 revenue estimates?", res.Events[0].Title)
	assert.Equal(t, "https://polymarket.com/event/tsmc-q3-revenue", res.Events[0].URL)

	for _, link := range res.Events {
		assert.NotContains(t, link.Title, "Rangers")
	}
}

func TestSimilarEventsRankerReorders(t *testing.T) {
	pool := semiconductorPool()
	ranker := &stubRanker{ranked: []market.CandidateEvent{pool[1], pool[0]}}
	svc := NewService(&stubSource{events: pool}, nil, ranker, nil)

	res, err := svc.SimilarEvents(context.Background(), Query{
		Category: market.CategorySemiconductors,
		Title:    "TSMC and Nvidia drive semiconductor rally",
	})
	require.NoError(t, err)
	require.True(t, ranker.called)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "Will Nvidia reach a 5 trillion market cap?", res.Events[0].Title)
}

func TestSimilarEventsRankerFailureFallsBack(t *testing.T) {
	ranker := &stubRanker{err: errors.New("model overloaded")}
	svc := NewService(&stubSource{events: semiconductorPool()}, nil, ranker, nil)

	res, err := svc.SimilarEvents(context.Background(), Query{
		Category: market.CategorySemiconductors,
		Title:    "TSMC revenue surges on AI chip demand",
		Limit:    1,
	})
	require.NoError(t, err)
	require.True(t, ranker.called)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Will TSMC beat Q3 revenue estimates?", res.Events[0].Title)
}

func TestSimilarEventsDefaultLimit(t *testing.T) {
	events := make([]market.CandidateEvent, 0, 12)
	for i := 0; i < 12; i++ {
		events = append(events, market.CandidateEvent{
			ID:    string(rune('a' + i)),
			Title: "Will TSMC expand chip capacity this year?",
		})
	}
	svc := NewService(&stubSource{events: events}, nil, nil, nil)

	res, err := svc.SimilarEvents(context.Background(), Query{
		Category: market.CategorySemiconductors,
		Title:    "TSMC capacity expansion",
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Events), defaultLimit)
	assert.NotEmpty(t, res.Events)
}

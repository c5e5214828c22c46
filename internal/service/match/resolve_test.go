package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/domain/market"
)

func TestResolveEmptyPool(t *testing.T) {
	engine := NewEngine(nil)

	res := engine.Resolve([]string{"nvidia"}, market.CategorySemiconductors, "", nil, 8)

	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Empty(t, res.Events)
}

func TestResolveEmptyKeywordsUnknownCategory(t *testing.T) {
	engine := NewEngine(nil)

	pool := []market.CandidateEvent{{ID: "1", Title: "Anything"}}
	res := engine.Resolve(nil, market.CategoryUnknown, "", pool, 8)

	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Empty(t, res.Events)
}

func TestResolveStrictWins(t *testing.T) {
	engine := NewEngine(nil)

	pool := []market.CandidateEvent{
		{ID: "1", Slug: "tsmc-q3", Title: "TSMC Q3 earnings beat forecast"},
		{ID: "2", Slug: "fed-rates", Title: "Federal Reserve holds rates steady"},
	}

	res := engine.Resolve(
		[]string{"taiwan semiconductor", "tsmc"},
		market.CategorySemiconductors, "", pool, 8,
	)

	assert.Equal(t, StrategyScored, res.Strategy)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "1", res.Events[0].ID)
	assert.Equal(t, "https://polymarket.com/event/tsmc-q3", res.Events[0].URL())
}

func TestResolveGamingDisambiguation(t *testing.T) {
	engine := NewEngine(nil)

	pool := []market.CandidateEvent{
		{ID: "esport", Title: "Valorant Champions Tour finals"},
		{ID: "sport", Title: "NHL Eastern Conference Final"},
	}

	res := engine.Resolve([]string{"nhl", "rangers"}, market.CategoryGaming, "", pool, 8)

	require.Len(t, res.Events, 1)
	assert.Equal(t, "sport", res.Events[0].ID)
}

func TestResolveLenientFallback(t *testing.T) {
	engine := NewEngine(nil)

	// The four-word phrase never matches strictly (one word missing)
	// but clears the lenient two-thirds threshold.
	pool := []market.CandidateEvent{
		{ID: "1", Title: "Alpha beta gamma showdown", Liquidity: 10},
	}

	res := engine.Resolve(
		[]string{"alpha beta gamma delta"},
		market.CategoryUnknown, "", pool, 8,
	)

	assert.Equal(t, StrategyLenient, res.Strategy)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "1", res.Events[0].ID)
}

func TestResolveLenientRanksByLiquidity(t *testing.T) {
	engine := NewEngine(nil)

	pool := []market.CandidateEvent{
		{ID: "thin", Title: "Alpha beta gamma showdown", Liquidity: 10},
		{ID: "deep", Title: "Alpha beta gamma rematch", Liquidity: 5000},
	}

	res := engine.Resolve(
		[]string{"alpha beta gamma delta"},
		market.CategoryUnknown, "", pool, 8,
	)

	assert.Equal(t, StrategyLenient, res.Strategy)
	require.Len(t, res.Events, 2)
	assert.Equal(t, "deep", res.Events[0].ID)
}

func TestResolveDetectedTypeFallback(t *testing.T) {
	engine := NewEngine(nil)

	// "chatgpt" appears nowhere in the pool, so the strict and lenient
	// tiers fail, but it marks the trend as AI and the dedicated AI term
	// list picks up the event.
	pool := []market.CandidateEvent{
		{ID: "1", Title: "OpenAI releases new model"},
	}

	res := engine.Resolve([]string{"chatgpt"}, market.CategoryAI, "", pool, 8)

	assert.Equal(t, StrategyDetectedType, res.Strategy)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "1", res.Events[0].ID)
}

func TestResolvePureCategoryFallback(t *testing.T) {
	engine := NewEngine(nil)

	// Only category keywords from the start, so the chain may fall all
	// the way to the tag-only tier.
	pool := []market.CandidateEvent{
		{ID: "1", Title: "Xbox exclusive announced"},
	}

	res := engine.Resolve([]string{"gaming", "esports"}, market.CategoryGaming, "", pool, 8)

	assert.Equal(t, StrategyCategory, res.Strategy)
	require.Len(t, res.Events, 1)
}

func TestResolvePureCategoryTitleVeto(t *testing.T) {
	engine := NewEngine(nil)

	// The original trend title names a sport, so esports events are
	// vetoed even at the tag-only tier.
	pool := []market.CandidateEvent{
		{ID: "esport", Title: "Esports tournament on xbox"},
		{ID: "sport", Title: "Xbox party at the arena"},
	}

	res := engine.Resolve(
		[]string{"video game"},
		market.CategoryGaming,
		"Rangers chase NHL playoff spot",
		pool, 8,
	)

	assert.Equal(t, StrategyCategory, res.Strategy)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "sport", res.Events[0].ID)
}

func TestResolveNoCategoryFallbackWithTrendKeywords(t *testing.T) {
	engine := NewEngine(nil)

	// Trend keywords exist but match nothing; the chain must return
	// empty rather than surface unrelated category events.
	pool := []market.CandidateEvent{
		{ID: "1", Title: "Esports gaming major announced"},
	}

	res := engine.Resolve(
		[]string{"zzyzx unmatched phrase"},
		market.CategoryUnknown, "", pool, 8,
	)

	assert.Equal(t, StrategyNone, res.Strategy)
	assert.Empty(t, res.Events)
}

func TestResolveMonotonicFallback(t *testing.T) {
	engine := NewEngine(nil)

	// As the pool loses its best matches, the strategy only moves down
	// the chain, never up.
	strict := market.CandidateEvent{ID: "strict", Title: "Alpha beta gamma delta final"}
	lenient := market.CandidateEvent{ID: "lenient", Title: "Alpha beta gamma showdown"}

	keywords := []string{"alpha beta gamma delta"}

	res := engine.Resolve(keywords, market.CategoryUnknown, "", []market.CandidateEvent{strict, lenient}, 8)
	assert.Equal(t, StrategyScored, res.Strategy)

	res = engine.Resolve(keywords, market.CategoryUnknown, "", []market.CandidateEvent{lenient}, 8)
	assert.Equal(t, StrategyLenient, res.Strategy)

	res = engine.Resolve(keywords, market.CategoryUnknown, "", nil, 8)
	assert.Equal(t, StrategyNone, res.Strategy)
}

func TestResolveLimit(t *testing.T) {
	engine := NewEngine(nil)

	var pool []market.CandidateEvent
	for i := 0; i < 10; i++ {
		pool = append(pool, market.CandidateEvent{
			ID:    string(rune('a' + i)),
			Title: "Nvidia Blackwell update",
		})
	}

	res := engine.Resolve([]string{"nvidia", "blackwell"}, market.CategorySemiconductors, "", pool, 3)

	assert.Equal(t, StrategyScored, res.Strategy)
	assert.Len(t, res.Events, 3)
}

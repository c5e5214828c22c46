package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orbitfield/internal/domain/market"
)

func TestExpandKeywordsSuperset(t *testing.T) {
	engine := NewEngine(nil)

	input := []string{"nhl", "quarterfinals", "unrelatedword"}
	expanded := engine.ExpandKeywords(input, market.CategoryUnknown)

	for _, k := range input {
		assert.Contains(t, expanded, k)
	}
	assert.Contains(t, expanded, "hockey")
	assert.Contains(t, expanded, "stanley cup")
	assert.Contains(t, expanded, "playoffs")
}

func TestExpandKeywordsGamingTableOnlyForGaming(t *testing.T) {
	engine := NewEngine(nil)

	expanded := engine.ExpandKeywords([]string{"valorant"}, market.CategoryUnknown)
	assert.NotContains(t, expanded, "riot games")

	expanded = engine.ExpandKeywords([]string{"valorant"}, market.CategoryGaming)
	assert.Contains(t, expanded, "riot games")
}

func TestExpandKeywordsDeduplicated(t *testing.T) {
	engine := NewEngine(nil)

	expanded := engine.ExpandKeywords([]string{"nhl", "hockey"}, market.CategoryUnknown)

	seen := make(map[string]int)
	for _, k := range expanded {
		seen[k]++
		assert.Equal(t, 1, seen[k], "duplicate keyword %q", k)
	}
}

func TestExpandKeywordsDeterministic(t *testing.T) {
	engine := NewEngine(nil)

	first := engine.ExpandKeywords([]string{"finals", "soccer"}, market.CategoryGaming)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.ExpandKeywords([]string{"finals", "soccer"}, market.CategoryGaming))
	}
}

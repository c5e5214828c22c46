package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitfield/internal/domain/market"
)

func TestClassifyKeywordsPartition(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name     string
		keywords []string
		category market.Category
	}{
		{
			name:     "gaming mix",
			keywords: []string{"nhl", "rangers", "gaming", "esports", "stanley cup", "video game"},
			category: market.CategoryGaming,
		},
		{
			name:     "semiconductors",
			keywords: []string{"tsmc", "taiwan semiconductor", "chips", "technology", "blackwell"},
			category: market.CategorySemiconductors,
		},
		{
			name:     "unknown category keeps everything trend specific",
			keywords: []string{"anything", "at all"},
			category: market.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := engine.ClassifyKeywords(tt.keywords, tt.category)

			// Every keyword lands in exactly one of the two sets.
			total := len(classified.TrendKeywords) + len(classified.CategoryKeywords)
			require.Equal(t, len(tt.keywords), total)

			seen := make(map[string]int)
			for _, k := range classified.TrendKeywords {
				seen[k]++
			}
			for _, k := range classified.CategoryKeywords {
				seen[k]++
			}
			for _, k := range tt.keywords {
				assert.Equal(t, 1, seen[k], "keyword %q should appear exactly once", k)
			}
		})
	}
}

func TestClassifyKeywordsGamingTags(t *testing.T) {
	engine := NewEngine(nil)

	classified := engine.ClassifyKeywords(
		[]string{"nhl", "gaming", "esports", "rangers"},
		market.CategoryGaming,
	)

	assert.ElementsMatch(t, []string{"nhl", "rangers"}, classified.TrendKeywords)
	assert.ElementsMatch(t, []string{"gaming", "esports"}, classified.CategoryKeywords)
}

func TestDetectType(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name     string
		keywords []string
		category market.Category
		want     string
	}{
		{
			name:     "hockey for gaming trends",
			keywords: []string{"nhl", "stanley cup"},
			category: market.CategoryGaming,
			want:     "sport:hockey",
		},
		{
			name:     "semiconductor keywords",
			keywords: []string{"nvidia", "blackwell"},
			category: market.CategorySemiconductors,
			want:     "category:semiconductors",
		},
		{
			name:     "category fallback when no terms hit",
			keywords: []string{"zzz"},
			category: market.CategoryHealthcare,
			want:     "category:healthcare",
		},
		{
			name:     "nothing without category",
			keywords: []string{"zzz"},
			category: market.CategoryUnknown,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.DetectType(tt.keywords, tt.category))
		})
	}
}

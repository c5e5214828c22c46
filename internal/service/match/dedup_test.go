package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "nvidia blackwell gpu launch",
		NormalizeTitle("  NVIDIA: Blackwell GPU launch!  "))
}

func TestTitlesSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "high word overlap",
			a:    "nvidia blackwell gpu launch expected tuesday",
			b:    "blackwell nvidia gpu launch expected tuesday",
			want: true,
		},
		{
			name: "containment with close lengths",
			a:    "fed holds interest rates",
			b:    "fed holds interest rates now",
			want: true,
		},
		{
			name: "containment but very different lengths",
			a:    "fed",
			b:    "fed holds interest rates steady amid inflation concerns",
			want: false,
		},
		{
			name: "unrelated titles",
			a:    "nvidia blackwell gpu launch",
			b:    "senate votes on climate bill",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitlesSimilar(tt.a, tt.b))
		})
	}
}

func TestDeduplicateTitles(t *testing.T) {
	titles := []string{
		"Nvidia Blackwell GPU launch expected soon",
		"NVIDIA Blackwell GPU launch expected soon!",
		"Senate votes on climate bill",
		"Nvidia Blackwell GPU launch expected soon today",
	}

	kept := DeduplicateTitles(len(titles), func(i int) string { return titles[i] })

	// First occurrence of each similar group survives.
	assert.Equal(t, []int{0, 2}, kept)
}

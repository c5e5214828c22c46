package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMarketable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "regulatory decision with deadline",
			text: "FDA expected to approve the new treatment by March 2025",
			want: true,
		},
		{
			name: "scheduled vote",
			text: "Senate vote on the infrastructure bill this month",
			want: true,
		},
		{
			name: "job posting",
			text: "We are hiring a senior engineer, apply now",
			want: false,
		},
		{
			name: "help question",
			text: "How do I configure my graphics card for this game",
			want: false,
		},
		{
			name: "personal opinion without major event",
			text: "I think this game is going to be great this year",
			want: false,
		},
		{
			name: "opinion about a major event still counts",
			text: "I think the SEC will approve the bitcoin ETF decision by January 2025",
			want: true,
		},
		{
			name: "package release chatter",
			text: "v2.3.1 update for the library is available, pip install to upgrade",
			want: false,
		},
		{
			name: "plain discussion",
			text: "Thoughts on the new console lineup, what do you think",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarketable(tt.text))
		})
	}
}

func TestExtractEventDetails(t *testing.T) {
	details := ExtractEventDetails(
		"The agency is expected to rule on the approval by March 15, 2025",
		"Will regulators approve the new drug?",
	)

	assert.Equal(t, "Regulatory Decision", details.EventType)
	assert.Equal(t, "march 15, 2025", details.Deadline)
	assert.Contains(t, details.Question, "Will ")
}

func TestExtractEventDetailsTypePriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"regulatory beats policy", "fda approval of the bill", "Regulatory Decision"},
		{"policy", "congress to vote on the legislation", "Policy Decision"},
		{"launch", "console launch scheduled", "Product Launch"},
		{"financial", "merger talks confirmed", "Financial Event"},
		{"election", "election results expected", "Election"},
		{"general", "something else entirely", "General Event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEventDetails(tt.text, "").EventType)
		})
	}
}

func TestMarketabilityScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "below indicator floor",
			text: "nothing remotely eventful here",
			want: 0,
		},
		{
			name: "rich candidate capped at 100",
			text: "congress will vote on the bill before June 2025, with the FDA approval " +
				"decision and the IPO launch announcement due by the deadline this year",
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DetectIndicators(tt.text)
			assert.Equal(t, tt.want, MarketabilityScore(in))
		})
	}
}

func TestDetectIndicators(t *testing.T) {
	in := DetectIndicators("Congress will vote before the June 2025 deadline on the bill")

	assert.True(t, in.Deadline)
	assert.True(t, in.Decision)
	assert.True(t, in.Policy)
	assert.True(t, in.Election)
	assert.GreaterOrEqual(t, in.Count(), 4)
}

func TestExtractQuestion(t *testing.T) {
	q := ExtractQuestion("Will Nvidia ship Blackwell by Q3?", "")
	assert.NotEmpty(t, q)

	q = ExtractQuestion("A quiet afternoon", "nothing happening")
	assert.Empty(t, q)
}

// internal/adapter/anthropic/ranker.go

package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
)

const (
	rankModel = "claude-3-haiku-20240307"

	// maxEventsToRank keeps the prompt inside token limits.
	maxEventsToRank   = 30
	maxResponseTokens = 500

	descriptionSnippet = 200
)

const rankSystemPrompt = `You are an expert at matching prediction market events to trends. Your task is to identify which Polymarket events are semantically relevant to a given trend, even if they don't share exact keywords.

Consider:
- Semantic similarity (e.g., "NHL playoffs" matches "hockey championship")
- Related concepts (e.g., "presidential election" matches "political campaign")
- Context and domain (e.g., "AI regulation" matches "tech policy")
- Exclude events that are only tangentially related or completely unrelated

Return ONLY a JSON array of numbers (1-indexed) representing the most relevant events, ordered by relevance (most relevant first). Limit to the top %d events.`

var rankingArrayPattern = regexp.MustCompile(`\[[\d,\s]+\]`)

// Ranker reorders candidate events by semantic relevance using Claude.
type Ranker struct {
	client sdk.Client
	logger *zap.Logger
}

// NewRanker creates a Claude-backed event ranker.
func NewRanker(apiKey string, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}
}

// Rank asks Claude to order the events by relevance to the trend. The
// model's answer is a 1-indexed JSON array of event numbers; anything
// else is an error, which callers treat as a cue to keep keyword order.
func (r *Ranker) Rank(ctx context.Context, events []market.CandidateEvent, title, summary string, category market.Category, limit int) ([]market.CandidateEvent, error) {
	if len(events) == 0 {
		return events, nil
	}

	toRank := events
	if len(toRank) > maxEventsToRank {
		toRank = toRank[:maxEventsToRank]
	}

	var list strings.Builder
	for i, e := range toRank {
		fmt.Fprintf(&list, "%d. %q", i+1, e.Title)
		if e.Description != "" {
			desc := e.Description
			if len(desc) > descriptionSnippet {
				desc = desc[:descriptionSnippet]
			}
			fmt.Fprintf(&list, " - %s", desc)
		}
		list.WriteString("\n")
	}

	userPrompt := fmt.Sprintf(`Trend Title: %q
Trend Summary: %q
Category: %s

Polymarket Events:
%s
Which events are semantically relevant to this trend? Return a JSON array of event numbers (1-indexed), ordered by relevance: [1, 5, 3, ...]`,
		title, summary, category, list.String())

	message, err := r.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     rankModel,
		MaxTokens: maxResponseTokens,
		System: []sdk.TextBlockParam{
			{Text: fmt.Sprintf(rankSystemPrompt, limit)},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ranking events: %w", err)
	}

	var responseText strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText.WriteString(block.Text)
		}
	}

	raw := rankingArrayPattern.FindString(responseText.String())
	if raw == "" {
		return nil, fmt.Errorf("no ranking array in model response")
	}

	var indices []int
	if err := json.Unmarshal([]byte(raw), &indices); err != nil {
		return nil, fmt.Errorf("parsing ranking array: %w", err)
	}

	ranked := make([]market.CandidateEvent, 0, len(indices))
	for _, idx := range indices {
		idx--
		if idx < 0 || idx >= len(toRank) {
			continue
		}
		ranked = append(ranked, toRank[idx])
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("model ranking matched no events")
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	r.logger.Debug("ranked events", zap.Int("input", len(toRank)), zap.Int("ranked", len(ranked)))
	return ranked, nil
}

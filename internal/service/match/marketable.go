package match

import (
	"regexp"
	"strings"
)

// Marketability classification: does a piece of text describe something
// that could become a prediction market? Marketable means a measurable
// outcome, a time-bound event and a clear decision.

// exclusionPatterns reject content that is not an event at all: job
// postings, personal asks, help questions, discussions, package release
// chatter.
var exclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(hiring|hire|looking to hire|job|position|apply|resume|cv|salary|wage)\b`),
	regexp.MustCompile(`(?i)\b(seeking|wanted|needed|available|open position|full time|part time)\b`),
	regexp.MustCompile(`(?i)\b(buy|sell|trade|for sale|wanted|looking for|need help|can someone)\b`),
	regexp.MustCompile(`(?i)\b(anyone|somebody|someone|help me|please help|advice needed)\b`),
	regexp.MustCompile(`(?i)\b(how do|how to|what is|why|when should|where can|help with|question about)\b`),
	regexp.MustCompile(`(?i)\b(need advice|looking for advice|can anyone|does anyone know)\b`),
	regexp.MustCompile(`(?i)\b(thoughts|opinions|discussion|what do you think|what's your take)\b`),
	regexp.MustCompile(`(?i)\b(just|only|simply|basically|just wondering|curious)\b`),
	regexp.MustCompile(`(?i)\b(my|i|me|personally|in my opinion|i think|i feel|i believe)\b`),
	regexp.MustCompile(`(?i)\b(review|tutorial|guide|tips|tricks|how to|explanation)\b`),
	regexp.MustCompile(`(?i)\b(v\d+\.\d+\.\d+|version \d+|package|library|npm|pypi|pip install|github\.com)\b`),
	regexp.MustCompile(`(?i)\b(lib\w+|pkg\w+|module|dependency|install|update|upgrade)\b`),
	regexp.MustCompile(`(?i)\b(\w+-\d+\.\d+\.\d+|\d+\.\d+\.\d+\.\d+)\b`),
}

// majorEventKeywords override an exclusion hit: "I think the FDA will
// approve" is still about the approval.
var majorEventKeywords = []string{
	"fda", "sec", "approval", "regulation", "bill",
	"legislation", "election", "ipo", "merger",
}

// eventIndicatorPatterns require the text to be about an actual
// decision or scheduled event, not commentary.
var eventIndicatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(will|to|expected to|planned to|scheduled to|set to)\s+(approve|reject|pass|fail|launch|release|announce|decide)`),
	regexp.MustCompile(`(?i)\b(approval|decision|vote|launch|release|announcement)\s+(by|on|before|in|this|next)`),
	regexp.MustCompile(`(?i)\b(fda|sec|congress|senate|house|government|regulator)\s+(will|to|expected|planned)`),
	regexp.MustCompile(`(?i)\b(bill|legislation|regulation|policy)\s+(will|to|expected|pass|fail)`),
	regexp.MustCompile(`(?i)\b(ipo|merger|acquisition|earnings)\s+(expected|scheduled|planned|announced)`),
	regexp.MustCompile(`(?i)\b(election|vote|referendum|ballot)\s+(on|for|in|this|next)`),
}

var timeBoundKeywords = []string{
	"by", "deadline", "on", "before", "until", "this month",
	"next month", "this year", "next year", "2024", "2025",
	"q1", "q2", "q3", "q4",
}

var decisionKeywords = []string{
	"approval", "rejection", "decision", "vote", "pass", "fail",
	"announce", "launch", "release", "approve", "reject",
}

var regulatoryEntityPattern = regexp.MustCompile(`(?i)\b(fda|sec|congress|senate|house|government|regulator|bill|legislation)\b`)

var deadlinePattern = regexp.MustCompile(`(?i)(?:by|on|before|until)\s+([a-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}/\d{1,2}/\d{4}|[a-z]+\s+\d{4}|this month|next month|this year|next year)`)

var willQuestionPattern = regexp.MustCompile(`(?i)will (.+?)(?:\?|\.|$)`)

// IsMarketable reports whether the text describes an event that could
// become a prediction market. Exclusion patterns veto unless a major
// event keyword is present; an event indicator must match; and the text
// must be either time-bound with a decision or a regulatory event.
func IsMarketable(text string) bool {
	textLower := strings.ToLower(text)

	for _, pattern := range exclusionPatterns {
		if pattern.MatchString(text) {
			if !anySubstring(textLower, majorEventKeywords) {
				return false
			}
		}
	}

	hasIndicator := false
	for _, pattern := range eventIndicatorPatterns {
		if pattern.MatchString(text) {
			hasIndicator = true
			break
		}
	}
	if !hasIndicator {
		return false
	}

	hasTimeBound := anySubstring(textLower, timeBoundKeywords)
	hasDecision := anySubstring(textLower, decisionKeywords)
	isRegulatory := regulatoryEntityPattern.MatchString(text)

	return (hasTimeBound && hasDecision) || isRegulatory
}

// EventDetails carries the market-shaped facts pulled out of a
// marketable text.
type EventDetails struct {
	Question  string
	Deadline  string
	EventType string
}

// ExtractEventDetails derives a candidate market question, a deadline
// phrase and an event type from the text. Event types are checked most
// specific first.
func ExtractEventDetails(text, title string) EventDetails {
	fullText := strings.ToLower(title) + " " + strings.ToLower(text)

	details := EventDetails{EventType: "General Event"}

	if m := willQuestionPattern.FindStringSubmatch(title); m != nil {
		details.Question = "Will " + m[1] + "?"
	}

	if m := deadlinePattern.FindStringSubmatch(fullText); m != nil {
		details.Deadline = m[1]
	}

	switch {
	case strings.Contains(fullText, "approval") || strings.Contains(fullText, "fda") || strings.Contains(fullText, "sec"):
		details.EventType = "Regulatory Decision"
	case strings.Contains(fullText, "bill") || strings.Contains(fullText, "legislation") || strings.Contains(fullText, "vote"):
		details.EventType = "Policy Decision"
	case strings.Contains(fullText, "launch") || strings.Contains(fullText, "release"):
		details.EventType = "Product Launch"
	case strings.Contains(fullText, "ipo") || strings.Contains(fullText, "merger") || strings.Contains(fullText, "acquisition"):
		details.EventType = "Financial Event"
	case strings.Contains(fullText, "election") || strings.Contains(fullText, "vote"):
		details.EventType = "Election"
	}

	return details
}

// Indicator keyword groups for news-derived candidates.
var indicatorGroups = map[string][]string{
	"deadline":   {"by", "deadline", "due", "before", "until", "by end of", "by the end"},
	"date":       {"on", "in", "this month", "next month", "this year", "next year", "2024", "2025"},
	"decision":   {"will", "vote", "decision", "approve", "reject", "pass", "fail", "announce", "announcement"},
	"regulatory": {"regulation", "regulatory", "approval", "fda", "sec", "license", "permit"},
	"policy":     {"bill", "legislation", "law", "act", "policy", "rule"},
	"launch":     {"launch", "release", "unveil", "debut", "ship", "rollout"},
	"financial":  {"ipo", "merger", "acquisition", "earnings", "quarterly", "report"},
	"election":   {"election", "vote", "ballot", "referendum", "primary"},
}

// Indicators records which marketability signal groups fired for a text.
type Indicators struct {
	Deadline   bool
	Date       bool
	Decision   bool
	Regulatory bool
	Policy     bool
	Launch     bool
	Financial  bool
	Election   bool
}

// Count returns the number of indicator groups that fired.
func (in Indicators) Count() int {
	n := 0
	for _, b := range []bool{
		in.Deadline, in.Date, in.Decision, in.Regulatory,
		in.Policy, in.Launch, in.Financial, in.Election,
	} {
		if b {
			n++
		}
	}
	return n
}

// DetectIndicators scans lowercase text for each indicator group.
func DetectIndicators(text string) Indicators {
	textLower := strings.ToLower(text)
	return Indicators{
		Deadline:   anySubstring(textLower, indicatorGroups["deadline"]),
		Date:       anySubstring(textLower, indicatorGroups["date"]),
		Decision:   anySubstring(textLower, indicatorGroups["decision"]),
		Regulatory: anySubstring(textLower, indicatorGroups["regulatory"]),
		Policy:     anySubstring(textLower, indicatorGroups["policy"]),
		Launch:     anySubstring(textLower, indicatorGroups["launch"]),
		Financial:  anySubstring(textLower, indicatorGroups["financial"]),
		Election:   anySubstring(textLower, indicatorGroups["election"]),
	}
}

// minIndicators is the floor below which a text is not considered a
// marketable candidate at all.
const minIndicators = 2

// MarketabilityScore rates a candidate 0-100 from its indicators: 10
// per group, +20 for a deadline phrase, +15 for a date phrase. Texts
// with fewer than two indicator groups score zero.
func MarketabilityScore(in Indicators) int {
	if in.Count() < minIndicators {
		return 0
	}
	score := in.Count() * 10
	if in.Deadline {
		score += 20
	}
	if in.Date {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}

// IndicatorEventType maps fired indicators to a display event type,
// most specific first.
func IndicatorEventType(in Indicators) string {
	switch {
	case in.Regulatory:
		return "Regulatory Decision"
	case in.Policy:
		return "Policy Decision"
	case in.Launch:
		return "Product Launch"
	case in.Financial:
		return "Financial Event"
	case in.Election:
		return "Election"
	case in.Decision:
		return "Decision"
	default:
		return "General"
	}
}

// questionPatterns pull a market-style question out of headline text.
var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)will (.+?)\?`),
	regexp.MustCompile(`(?i)will (.+?) (?:by|on|before)`),
	regexp.MustCompile(`(?i)(.+?) (?:will|to) (?:be|get|have|reach)`),
	regexp.MustCompile(`(?i)(?:approve|reject|pass|fail) (.+?)`),
}

// ExtractQuestion finds a decision point in a title and description
// that could be phrased as a market question. Returns the empty string
// when nothing qualifies.
func ExtractQuestion(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, pattern := range questionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}

	titleLower := strings.ToLower(title)
	if strings.Contains(titleLower, "will") ||
		strings.Contains(titleLower, "approval") ||
		strings.Contains(titleLower, "decision") {
		if len(title) > 100 {
			return title[:100]
		}
		return title
	}

	return ""
}

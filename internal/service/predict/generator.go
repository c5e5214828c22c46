// internal/service/predict/generator.go

package predict

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orbitfield/internal/domain/market"
	"orbitfield/internal/domain/trend"
	"orbitfield/internal/service/match"
)

const (
	// maxTrends caps the final deduplicated feed.
	maxTrends = 20

	// perSourceLimit is how many trends each source contributes per
	// interest. Sources overscan by a factor of ten and filter down to
	// marketable events.
	perSourceLimit = 3
	overscanFactor = 10
)

// twitterMarketableTerms narrows the tweet search to event-like content.
const twitterMarketableTerms = "will OR approval OR decision OR launch OR release OR announcement OR deadline OR by"

// Generator builds prediction trends for a set of interest categories by
// combining news coverage, social signals and open prediction markets.
// Any source may be nil, in which case it is skipped.
type Generator struct {
	news    NewsSource
	reddit  RedditSource
	twitter TwitterSource
	markets MarketSource
	engine  *match.Engine
	logger  *zap.Logger
	now     func() time.Time
}

// NewGenerator creates a trend generator over the given sources.
func NewGenerator(
	news NewsSource,
	reddit RedditSource,
	twitter TwitterSource,
	markets MarketSource,
	engine *match.Engine,
	logger *zap.Logger,
) *Generator {
	if engine == nil {
		engine = match.NewEngine(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		news:    news,
		reddit:  reddit,
		twitter: twitter,
		markets: markets,
		engine:  engine,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate runs one prediction pass for the given interests. Interests
// that do not name a known category are skipped. Per-source failures are
// logged and do not fail the pass.
func (g *Generator) Generate(ctx context.Context, interests []string) ([]trend.Trend, error) {
	var all []trend.Trend

	for _, interest := range interests {
		category := market.ParseCategory(interest)
		if category == market.CategoryUnknown {
			g.logger.Warn("unknown interest category", zap.String("interest", interest))
			continue
		}
		template, ok := categoryTemplates[category]
		if !ok {
			continue
		}

		var (
			wg          sync.WaitGroup
			marketTs    []trend.Trend
			redditTs    []trend.Trend
			twitterTs   []trend.Trend
			newsResults []Article
		)

		wg.Add(4)
		go func() {
			defer wg.Done()
			marketTs = g.marketTrends(ctx, category)
		}()
		go func() {
			defer wg.Done()
			redditTs = g.redditTrends(ctx, category, template)
		}()
		go func() {
			defer wg.Done()
			twitterTs = g.twitterTrends(ctx, category, template)
		}()
		go func() {
			defer wg.Done()
			newsResults = g.fetchNews(ctx, category, template)
		}()
		wg.Wait()

		all = append(all, marketTs...)
		all = append(all, redditTs...)
		all = append(all, twitterTs...)

		hasSocial := len(redditTs) > 0 || len(twitterTs) > 0
		all = append(all, g.newsTrends(category, template, newsResults, hasSocial)...)
	}

	prioritySort(all)

	kept := match.DeduplicateTitles(len(all), func(i int) string { return all[i].Title })
	deduped := make([]trend.Trend, 0, len(kept))
	for _, i := range kept {
		deduped = append(deduped, all[i])
	}

	if len(deduped) > maxTrends {
		deduped = deduped[:maxTrends]
	}
	return deduped, nil
}

// marketTrends converts open prediction-market events matching the
// category into trends, using liquidity as a confidence proxy.
func (g *Generator) marketTrends(ctx context.Context, category market.Category) []trend.Trend {
	if g.markets == nil {
		return nil
	}

	events, err := g.markets.OpenEvents(ctx)
	if err != nil {
		g.logger.Warn("market source failed",
			zap.String("category", string(category)), zap.Error(err))
		return nil
	}

	keywords := marketSearchKeywords[category]
	if len(keywords) == 0 {
		keywords = []string{strings.ToLower(string(category))}
	}
	exclusions := lowerStrings(g.engine.Vocabulary().Exclusions(category))
	matcher := match.NewWordMatcher()

	var matched []market.CandidateEvent
	for _, e := range events {
		text := strings.ToLower(e.Title) + " " + strings.ToLower(e.Description)
		if containsAny(text, exclusions) {
			continue
		}
		for _, kw := range keywords {
			if matcher.Matches(text, kw) {
				matched = append(matched, e)
				break
			}
		}
		if len(matched) >= perSourceLimit {
			break
		}
	}

	now := g.now()
	trends := make([]trend.Trend, 0, len(matched))
	for _, e := range matched {
		probability := 40.0
		if e.Liquidity > 0 {
			probability = clamp(25+(e.Liquidity/10000)*40, 25, 65)
		}
		if e.Volume > 0 {
			probability = math.Min(70, probability+math.Min(8, e.Volume/100000))
		}
		probability = clamp(probability, 20, 70)

		summary := e.Description
		if summary == "" {
			summary = "Active prediction market on Polymarket."
			if e.Liquidity > 0 {
				summary = fmt.Sprintf("Active prediction market on Polymarket. Liquidity: $%.0f", e.Liquidity)
			}
		}

		trends = append(trends, trend.Trend{
			ID:          uuid.New().String(),
			Title:       e.Title,
			Summary:     summary,
			Category:    category,
			Source:      trend.SourcePolymarket,
			URL:         e.URL(),
			Probability: int(math.Round(probability)),
			Events:      []market.EventLink{e.Link()},
			DetectedAt:  now,
			LastUpdated: now,
		})
	}
	return trends
}

// redditTrends fetches hot posts for the category and keeps only those
// describing marketable events.
func (g *Generator) redditTrends(ctx context.Context, category market.Category, template categoryTemplate) []trend.Trend {
	if g.reddit == nil {
		return nil
	}

	subreddits := headStrings(categorySubreddits[category], 3)
	query := strings.Join(headStrings(template.Keywords, 3), " OR ")

	posts, err := g.reddit.SearchHot(ctx, subreddits, query, perSourceLimit*overscanFactor)
	if err != nil {
		g.logger.Warn("reddit source failed",
			zap.String("category", string(category)), zap.Error(err))
		return nil
	}

	now := g.now()
	var trends []trend.Trend
	for _, post := range posts {
		if len(trends) >= perSourceLimit {
			break
		}
		if len(post.Title) < 10 {
			continue
		}
		text := post.Title + " " + post.Body
		if !match.IsMarketable(text) {
			continue
		}

		details := match.ExtractEventDetails(text, post.Title)

		probability := 30.0
		switch {
		case post.Score > 1000:
			probability += 15
		case post.Score > 500:
			probability += 12
		case post.Score > 100:
			probability += 8
		}
		switch {
		case post.Comments > 100:
			probability += 8
		case post.Comments > 50:
			probability += 5
		}
		hoursAgo := now.Sub(post.CreatedAt).Hours()
		switch {
		case hoursAgo < 6:
			probability += 8
		case hoursAgo < 24:
			probability += 4
		}
		probability += 8
		probability = clamp(probability, 20, 70)

		title := details.Question
		if title == "" {
			title = truncate(post.Title, 80)
		}
		summary := fmt.Sprintf("Marketable event from r/%s: %s", post.Subreddit, post.Title)
		if details.Deadline != "" {
			summary += fmt.Sprintf(" (deadline: %s)", details.Deadline)
		}
		summary += fmt.Sprintf(" (%d upvotes, %d comments)", post.Score, post.Comments)

		trends = append(trends, trend.Trend{
			ID:          uuid.New().String(),
			Title:       title,
			Summary:     summary,
			Category:    category,
			Source:      trend.SourceReddit,
			URL:         "https://reddit.com" + post.Permalink,
			Probability: int(math.Round(probability)),
			Engagement:  post.Score + post.Comments,
			Marketable:  true,
			EventType:   details.EventType,
			Deadline:    details.Deadline,
			DetectedAt:  now,
			LastUpdated: now,
		})
	}
	return trends
}

// twitterTrends searches recent tweets for marketable events relevant to
// the category.
func (g *Generator) twitterTrends(ctx context.Context, category market.Category, template categoryTemplate) []trend.Trend {
	if g.twitter == nil {
		return nil
	}

	keywords := strings.Join(headStrings(template.Keywords, 5), " OR ")
	query := fmt.Sprintf("(%s) (%s) -is:retweet lang:en", keywords, twitterMarketableTerms)

	tweets, err := g.twitter.SearchRecent(ctx, query, perSourceLimit*overscanFactor)
	if err != nil {
		g.logger.Warn("twitter source failed",
			zap.String("category", string(category)), zap.Error(err))
		return nil
	}

	keywordsLower := lowerStrings(template.Keywords)

	now := g.now()
	var trends []trend.Trend
	for _, tweet := range tweets {
		if len(trends) >= perSourceLimit {
			break
		}
		if len(tweet.Text) < 20 {
			continue
		}
		if !match.IsMarketable(tweet.Text) {
			continue
		}
		if !containsAny(strings.ToLower(tweet.Text), keywordsLower) {
			continue
		}

		details := match.ExtractEventDetails(tweet.Text, tweet.Text)

		engagement := tweet.Retweets + tweet.Likes
		probability := 30.0
		switch {
		case engagement > 1000:
			probability += 15
		case engagement > 500:
			probability += 12
		case engagement > 100:
			probability += 8
		}
		hoursAgo := now.Sub(tweet.CreatedAt).Hours()
		switch {
		case hoursAgo < 6:
			probability += 8
		case hoursAgo < 24:
			probability += 4
		}
		probability += 8
		probability = clamp(probability, 20, 70)

		title := details.Question
		if title == "" {
			title = truncate(tweet.Text, 80)
		}
		summary := fmt.Sprintf("Marketable event from @%s: %s", tweet.Author, tweet.Text)
		if details.Deadline != "" {
			summary += fmt.Sprintf(" (deadline: %s)", details.Deadline)
		}

		trends = append(trends, trend.Trend{
			ID:          uuid.New().String(),
			Title:       title,
			Summary:     summary,
			Category:    category,
			Source:      trend.SourceTwitter,
			URL:         fmt.Sprintf("https://twitter.com/%s/status/%s", tweet.Author, tweet.ID),
			Probability: int(math.Round(probability)),
			Engagement:  engagement,
			Marketable:  true,
			EventType:   details.EventType,
			Deadline:    details.Deadline,
			DetectedAt:  now,
			LastUpdated: now,
		})
	}
	return trends
}

// fetchNews queries the news source for the category. Gaming and Energy
// need wider queries to surface enough coverage.
func (g *Generator) fetchNews(ctx context.Context, category market.Category, template categoryTemplate) []Article {
	if g.news == nil {
		return nil
	}

	keywordLimit := 8
	if category == market.CategoryGaming || category == market.CategoryEnergy {
		keywordLimit = 15
	}
	pageSize := 20
	if category == market.CategoryEnergy {
		pageSize = 40
	}
	query := strings.Join(headStrings(template.Keywords, keywordLimit), " OR ")

	articles, err := g.news.Search(ctx, query, pageSize)
	if err != nil {
		g.logger.Warn("news source failed",
			zap.String("category", string(category)), zap.Error(err))
		return nil
	}
	return articles
}

// newsTrends validates article relevance and groups articles into
// predictions. Without social confirmation the filtering is more lenient
// and more predictions are generated from news alone.
func (g *Generator) newsTrends(category market.Category, template categoryTemplate, articles []Article, hasSocial bool) []trend.Trend {
	if len(articles) == 0 {
		return nil
	}

	keywordsLower := lowerStrings(template.Keywords)

	var relevant []Article
	if !hasSocial {
		for _, a := range articles {
			if containsAny(articleText(a), keywordsLower) {
				relevant = append(relevant, a)
			}
		}
		if len(relevant) < 5 {
			relevant = relevant[:0]
			for _, a := range articles {
				text := strings.ToLower(a.Title + " " + a.Description)
				if category != market.CategoryCrypto && category != market.CategoryFinance &&
					containsAny(text, []string{"crypto", "bitcoin", "trading", "price"}) {
					continue
				}
				relevant = append(relevant, a)
			}
		}
	} else {
		relevant = g.validateArticles(articles, category, keywordsLower)
	}

	if len(relevant) == 0 {
		if category != market.CategoryGaming && category != market.CategoryEnergy {
			return nil
		}
		for _, a := range articles {
			text := strings.ToLower(a.Title + " " + a.Description)
			if containsAny(text, keywordsLower) {
				relevant = append(relevant, a)
			}
		}
		if len(relevant) == 0 {
			return nil
		}
	}

	minPredictions := 3
	if hasSocial {
		if category == market.CategoryEnergy {
			minPredictions = 5
		}
	} else {
		minPredictions = 6
		if category == market.CategoryEnergy || category == market.CategoryGaming {
			minPredictions = 8
		}
	}

	perGroup := len(relevant) / minPredictions
	if perGroup < 2 {
		perGroup = 2
	}
	numPredictions := (len(relevant) + perGroup - 1) / perGroup
	if numPredictions > minPredictions {
		numPredictions = minPredictions
	}

	var trends []trend.Trend
	for i := 0; i < numPredictions; i++ {
		start := i * perGroup
		end := start + perGroup
		if start >= len(relevant) {
			break
		}
		if end > len(relevant) {
			end = len(relevant)
		}
		trends = append(trends, g.newsTrend(category, template, relevant[start:end], i))
	}
	return trends
}

// validateArticles keeps articles that match a template keyword and hit
// no category exclusion. Gaming only treats "trading" as an exclusion
// when the article is also about crypto.
func (g *Generator) validateArticles(articles []Article, category market.Category, keywordsLower []string) []Article {
	exclusions := lowerStrings(g.engine.Vocabulary().Exclusions(category))
	matcher := match.NewWordMatcher()

	var relevant []Article
	for _, a := range articles {
		text := articleText(a)

		excluded := false
		for _, exclusion := range exclusions {
			if category == market.CategoryGaming && exclusion == "trading" {
				if strings.Contains(text, "crypto") && strings.Contains(text, "trading") {
					excluded = true
					break
				}
				continue
			}
			if strings.Contains(text, exclusion) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		for _, kw := range keywordsLower {
			if keywordInText(matcher, text, kw) {
				relevant = append(relevant, a)
				break
			}
		}
	}
	return relevant
}

// keywordInText matches multi-word keywords when every word appears and
// single words on a word boundary or as a substring.
func keywordInText(matcher *match.WordMatcher, text, keyword string) bool {
	if strings.Contains(keyword, " ") {
		for _, word := range strings.Fields(keyword) {
			if !strings.Contains(text, word) {
				return false
			}
		}
		return true
	}
	return matcher.Matches(text, keyword) || strings.Contains(text, keyword)
}

// newsTrend builds one prediction from a group of related articles,
// preferring articles that describe marketable events.
func (g *Generator) newsTrend(category market.Category, template categoryTemplate, articles []Article, index int) trend.Trend {
	marketable := marketableArticles(articles)
	use := articles
	if len(marketable) > 0 {
		use = marketable
	}
	primary := use[0]

	details := match.ExtractEventDetails(
		strings.ToLower(primary.Title+" "+primary.Description), primary.Title)

	title := primary.Title
	if details.Question != "" {
		title = details.Question
	}

	timeframe := template.Timeframes[index%len(template.Timeframes)]

	now := g.now()
	probability := 35.0
	recentCount := 0
	for _, a := range articles {
		if now.Sub(a.PublishedAt).Hours() < 48 {
			recentCount++
		}
	}
	probability += math.Min(12, float64(recentCount)*2)
	probability += math.Min(10, float64(len(articles))*1.5)
	if len(marketable) > 0 {
		probability += 8
	}
	credibleCount := 0
	for _, a := range articles {
		for _, s := range credibleSources {
			if strings.Contains(a.SourceName, s) {
				credibleCount++
				break
			}
		}
	}
	probability += math.Min(8, float64(credibleCount)*1.5)
	probability = clamp(probability, 20, 70)
	rounded := int(math.Round(probability))

	var summary string
	if len(marketable) > 0 {
		summary = fmt.Sprintf("%s. %s This event could become a Polymarket prediction market.",
			primary.Title, primary.Description)
	} else {
		sourceNames := make([]string, 0, 3)
		for _, a := range headArticles(articles, 3) {
			sourceNames = append(sourceNames, a.SourceName)
		}
		plural := ""
		if len(articles) > 1 {
			plural = "s"
		}
		summary = fmt.Sprintf(
			"Based on %d recent signal%s from %s, %s. Key indicators suggest %d%% likelihood within %s.",
			len(articles), plural, strings.Join(sourceNames, ", "),
			strings.ToLower(title), rounded, timeframe)
	}

	text := primary.Title + " " + primary.Description
	score := match.MarketabilityScore(match.DetectIndicators(text))

	return trend.Trend{
		ID:                 uuid.New().String(),
		Title:              title,
		Summary:            summary,
		Category:           category,
		Source:             trend.SourceNews,
		URL:                primary.URL,
		Keywords:           g.engine.ExtractKeywords(primary.Title, category),
		Probability:        rounded,
		Marketable:         len(marketable) > 0,
		EventType:          details.EventType,
		Deadline:           details.Deadline,
		MarketabilityScore: score,
		DetectedAt:         now,
		LastUpdated:        now,
	}
}

var versionNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(v\d+\.\d+\.\d+|version \d+|package|library|npm|pypi|pip install|github\.com)\b`),
	regexp.MustCompile(`(?i)\b(lib\w+|pkg\w+|module|dependency|install|update|upgrade)\b`),
	regexp.MustCompile(`(?i)\b(\w+-\d+\.\d+\.\d+|\d+\.\d+\.\d+\.\d+)\b`),
}

// marketableArticles keeps articles that describe events a market could
// resolve, after dropping software release noise.
func marketableArticles(articles []Article) []Article {
	var out []Article
	for _, a := range articles {
		text := articleText(a)
		noisy := false
		for _, p := range versionNoisePatterns {
			if p.MatchString(text) {
				noisy = true
				break
			}
		}
		if noisy {
			continue
		}
		hits := 0
		for _, kw := range newsMarketableKeywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits >= 2 {
			out = append(out, a)
		}
	}
	return out
}

// prioritySort orders trends so real markets come first, then marketable
// events, then social signals, then by probability.
func prioritySort(trends []trend.Trend) {
	sort.SliceStable(trends, func(i, j int) bool {
		a, b := trends[i], trends[j]

		aMarket := a.Source == trend.SourcePolymarket
		bMarket := b.Source == trend.SourcePolymarket
		if aMarket != bMarket {
			return aMarket
		}
		if !aMarket {
			if a.Marketable != b.Marketable {
				return a.Marketable
			}
			if !a.Marketable {
				aSocial := a.Source == trend.SourceReddit || a.Source == trend.SourceTwitter
				bSocial := b.Source == trend.SourceReddit || b.Source == trend.SourceTwitter
				if aSocial != bSocial {
					return aSocial
				}
			}
		}
		return a.Probability > b.Probability
	})
}

func articleText(a Article) string {
	return strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerStrings(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func headStrings(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

func headArticles(in []Article, n int) []Article {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

// truncate shortens s to at most max runes, keeping the cut on a rune
// boundary so multi-byte text stays valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

package match

import (
	"orbitfield/internal/domain/market"
)

// Vocabulary holds the matching configuration tables. It is built once
// at startup and read-only afterwards so the engine stays pure.
type Vocabulary struct {
	// CategoryTags maps a category to marketplace tag keywords
	CategoryTags map[market.Category][]string

	// CategoryExclusions maps a category to keywords that disqualify an event
	CategoryExclusions map[market.Category][]string

	// KnownEntities maps a category to company/product/team names
	KnownEntities map[market.Category][]string

	// SportsExpansions, GamingExpansions and GeneralExpansions are the
	// synonym tables used by keyword expansion
	SportsExpansions  map[string][]string
	GamingExpansions  map[string][]string
	GeneralExpansions map[string][]string

	// SportTerms and CategoryTerms back the detected-type fallback
	SportTerms    map[string][]string
	CategoryTerms map[string][]string

	// SportsMarkers and EsportsMarkers drive the Gaming sport-vs-esport split
	SportsMarkers  []string
	EsportsMarkers []string

	// StopWords are skipped during keyword extraction
	StopWords map[string]struct{}
}

// DefaultVocabulary returns the standard matching tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		CategoryTags: map[market.Category][]string{
			market.CategoryAI:             {"ai", "artificial-intelligence", "technology", "tech"},
			market.CategoryPolicy:         {"politics", "policy", "regulation", "government"},
			market.CategorySemiconductors: {"technology", "semiconductors", "chips", "tech"},
			market.CategoryFinance:        {"finance", "crypto", "economics", "markets"},
			market.CategoryECommerce:      {"business", "commerce", "retail"},
			market.CategoryHealthcare:     {"health", "healthcare", "medicine", "medical"},
			market.CategoryEnergy:         {"energy", "oil", "renewable", "climate"},
			market.CategoryCrypto:         {"crypto", "cryptocurrency", "bitcoin", "blockchain"},
			market.CategoryClimate:        {"climate", "environment", "sustainability"},
			market.CategoryGaming: {
				"gaming", "video game", "esports", "console", "playstation",
				"xbox", "nintendo", "steam", "twitch",
			},
		},

		CategoryExclusions: map[market.Category][]string{
			market.CategoryGaming: {
				"crypto", "bitcoin", "ethereum", "solana", "xrp", "trading",
				"price", "up or down", "cryptocurrency", "blockchain", "defi", "nft",
			},
			market.CategoryAI:             {"crypto", "bitcoin", "trading", "price"},
			market.CategorySemiconductors: {"crypto", "bitcoin", "trading", "price"},
			market.CategoryPolicy:         {"crypto", "bitcoin", "trading", "price"},
			market.CategoryFinance:        {},
			market.CategoryCrypto:         {},
			market.CategoryHealthcare:     {"crypto", "bitcoin", "trading", "price"},
			market.CategoryEnergy:         {"crypto", "bitcoin", "trading", "price"},
			market.CategoryClimate:        {"crypto", "bitcoin", "trading", "price"},
			market.CategoryECommerce:      {"crypto", "bitcoin", "trading", "price"},
		},

		KnownEntities: map[market.Category][]string{
			market.CategorySemiconductors: {
				"nvidia", "intel", "amd", "tsmc", "samsung", "qualcomm",
				"broadcom", "micron", "blackwell", "hopper", "h100", "a100",
				"gpu", "chip", "semiconductor", "taiwan semiconductor",
				"asml", "applied materials",
			},
			market.CategoryAI: {
				"openai", "chatgpt", "gpt", "anthropic", "claude", "google",
				"deepmind", "gemini", "llm", "ai", "machine learning",
				"artificial intelligence", "neural network",
			},
			market.CategoryFinance: {
				"fed", "federal reserve", "interest rate", "inflation",
				"bitcoin", "ethereum", "crypto", "stock", "nasdaq", "sp500",
				"dow jones", "s&p 500",
			},
			market.CategoryEnergy: {
				"solar", "wind", "nuclear", "oil", "gas", "renewable",
				"tesla", "battery", "energy storage", "crude oil", "natural gas",
			},
			market.CategoryGaming: {
				"nhl", "nba", "nfl", "mlb", "hockey", "basketball",
				"football", "baseball", "soccer", "tennis", "golf",
				"rangers", "yankees", "knicks", "giants", "jets", "mets",
				"islanders", "nets",
				"playstation", "xbox", "nintendo", "steam", "epic games",
				"roblox", "fortnite", "gaming", "esports", "sony",
				"microsoft", "switch", "ps5", "counter-strike", "csgo",
				"valorant", "league of legends", "dota", "overwatch",
			},
			market.CategoryCrypto: {
				"bitcoin", "ethereum", "solana", "crypto", "blockchain",
				"defi", "nft", "btc", "eth",
			},
		},

		SportsExpansions: map[string][]string{
			"quarterfinals":   {"playoffs", "tournament", "championship", "bracket", "knockout", "elimination"},
			"quarterfinal":    {"playoffs", "tournament", "championship", "bracket", "knockout", "elimination"},
			"semifinals":      {"playoffs", "tournament", "championship", "bracket", "final four"},
			"semifinal":       {"playoffs", "tournament", "championship", "bracket", "final four"},
			"finals":          {"championship", "tournament", "playoffs", "title game"},
			"final":           {"championship", "tournament", "playoffs", "title game"},
			"victory":         {"win", "triumph", "success", "championship"},
			"victories":       {"wins", "triumphs", "successes"},
			"leads":           {"wins", "beats", "defeats", "victory"},
			"ssaa":            {"high school", "high school sports", "prep sports", "scholastic sports", "athletics"},
			"mdca":            {"high school", "school", "academy"},
			"foundation":      {"school", "academy", "prep"},
			"nhl":             {"hockey", "ice hockey", "professional hockey", "stanley cup"},
			"nba":             {"basketball", "professional basketball", "nba playoffs", "nba finals", "playoffs"},
			"nfl":             {"football", "american football", "professional football", "super bowl", "nfl playoffs"},
			"mlb":             {"baseball", "professional baseball", "world series", "mlb playoffs"},
			"rangers":         {"hockey", "nhl", "new york"},
			"yankees":         {"baseball", "mlb", "new york"},
			"knicks":          {"basketball", "nba", "new york"},
			"basketball":      {"nba", "college basketball", "ncaa basketball", "march madness", "ncaa tournament", "final four"},
			"football":        {"nfl", "american football", "super bowl", "college football", "ncaa football", "cfp", "college football playoff"},
			"baseball":        {"mlb", "world series", "college baseball", "ncaa baseball", "college world series"},
			"hockey":          {"nhl", "ice hockey", "stanley cup", "college hockey", "ncaa hockey"},
			"tennis":          {"wimbledon", "us open", "french open", "australian open", "atp", "wta", "grand slam"},
			"golf":            {"pga", "masters", "us open", "british open", "pga tour", "liv golf"},
			"freshmen":        {"freshman", "first year", "rookie", "debut"},
			"freshman":        {"freshmen", "first year", "rookie", "debut"},
			"debut":           {"first game", "first appearance", "rookie", "debut season"},
			"rolls":           {"wins", "victory", "defeats", "beats"},
			"wood":            {"player", "athlete"},
			"sam":             {"player", "athlete"},
			"soccer":          {"football", "futbol", "mls", "premier league", "champions league", "world cup", "euro", "college soccer", "ncaa soccer"},
			"men's soccer":    {"soccer", "football", "mls", "college soccer", "ncaa"},
			"women's soccer":  {"soccer", "football", "nwsl", "college soccer", "ncaa"},
			"maryland":        {"terrapins", "terps", "college", "university"},
			"big ten":         {"big ten conference", "b1g", "college", "ncaa", "conference"},
			"michigan state":  {"spartans", "msu", "college", "university"},
			"outlast":         {"beats", "defeats", "wins", "victory"},
		},

		GamingExpansions: map[string][]string{
			"counter-strike":    {"csgo", "cs", "counterstrike", "fps", "esports"},
			"csgo":              {"counter-strike", "cs", "counterstrike", "fps", "esports"},
			"valorant":          {"riot games", "fps", "esports", "tactical shooter"},
			"league of legends": {"lol", "moba", "riot games", "esports"},
			"dota":              {"dota 2", "moba", "esports", "valve"},
		},

		GeneralExpansions: map[string][]string{
			"championship": {"title", "trophy", "cup", "crown"},
			"tournament":   {"competition", "championship", "bracket", "playoffs"},
			"playoffs":     {"postseason", "tournament", "championship", "bracket"},
		},

		SportTerms: map[string][]string{
			"soccer": {
				"soccer", "football", "futbol", "mls", "premier league",
				"champions league", "world cup", "euro", "college soccer", "ncaa soccer",
			},
			"basketball": {
				"basketball", "nba", "college basketball", "ncaa basketball",
				"march madness", "ncaa tournament", "final four", "nba playoffs", "nba finals",
			},
			"football": {
				"nfl", "american football", "football", "super bowl",
				"college football", "ncaa football", "cfp", "college football playoff", "nfl playoffs",
			},
			"baseball": {
				"baseball", "mlb", "world series", "college baseball",
				"ncaa baseball", "college world series", "mlb playoffs",
			},
			"hockey": {
				"hockey", "nhl", "ice hockey", "stanley cup", "college hockey", "ncaa hockey",
			},
			"tennis": {
				"tennis", "wimbledon", "us open", "french open",
				"australian open", "atp", "wta", "grand slam",
			},
			"golf": {
				"golf", "pga", "masters", "us open", "british open", "pga tour", "liv golf",
			},
		},

		CategoryTerms: map[string][]string{
			"ai": {
				"ai", "artificial intelligence", "machine learning", "llm",
				"gpt", "chatgpt", "openai", "anthropic", "claude", "deepmind",
				"neural network", "generative ai",
			},
			"semiconductors": {
				"semiconductor", "chip", "gpu", "cpu", "nvidia", "intel",
				"amd", "tsmc", "samsung", "qualcomm", "broadcom", "micron",
				"blackwell", "hopper",
			},
			"finance": {
				"finance", "banking", "fed", "federal reserve", "interest rate",
				"inflation", "stock", "nasdaq", "sp500", "dow jones", "market", "economy",
			},
			"healthcare": {
				"health", "healthcare", "medicine", "medical", "fda", "drug",
				"pharmaceutical", "treatment", "therapy", "vaccine",
				"clinical trial", "biotech",
			},
			"energy": {
				"energy", "oil", "gas", "renewable", "solar", "wind",
				"nuclear", "battery", "tesla", "electric", "ev", "crude", "petroleum",
			},
			"climate": {
				"climate", "environment", "sustainability", "carbon",
				"emissions", "global warming", "renewable", "solar", "wind",
				"clean energy", "pollution",
			},
			"e-commerce": {
				"e-commerce", "commerce", "retail", "amazon", "shopify",
				"online shopping", "marketplace", "sales", "consumer",
			},
			"policy": {
				"policy", "politics", "regulation", "government", "congress",
				"senate", "house", "bill", "legislation", "law", "vote", "election",
			},
			"crypto": {
				"crypto", "cryptocurrency", "bitcoin", "ethereum",
				"blockchain", "btc", "eth", "defi", "nft", "solana",
			},
			"gaming": {
				"gaming", "video game", "esports", "console", "playstation",
				"xbox", "nintendo",
			},
		},

		SportsMarkers: []string{
			"nhl", "nba", "nfl", "mlb", "hockey", "basketball", "football",
			"baseball", "soccer", "tennis", "golf", "rangers", "yankees", "knicks",
		},

		EsportsMarkers: []string{
			"counter-strike", "csgo", "valorant", "league of legends",
			"dota", "overwatch", "esports",
		},

		StopWords: stopWordSet(
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
			"for", "of", "with", "by", "from", "will", "this", "that",
			"these", "those", "when", "what", "how", "why", "where", "is",
			"are", "was", "were", "be", "been", "being", "have", "has",
			"had", "do", "does", "did", "can", "could", "should", "would",
			"may", "might", "must", "shall", "its", "it's", "they", "them",
			"their", "there", "then", "than",
			"based", "recent", "signals", "key", "indicators", "suggest",
			"likelihood", "within", "driven", "transforms", "accelerates",
			"evolve", "shifts", "expansion", "innovation", "market",
			"trends", "applications", "technology", "patterns",
			"demographics", "ceo", "company", "companies", "news",
			"article", "report", "says", "sees", "expects", "among", "top",
			"well", "put", "drops", "gloves", "exciting", "debut",
		),
	}
}

func stopWordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Tags returns the marketplace tag list for a category, empty for
// unrecognized categories.
func (v *Vocabulary) Tags(category market.Category) []string {
	return v.CategoryTags[category]
}

// Exclusions returns the exclusion list for a category, empty for
// unrecognized categories.
func (v *Vocabulary) Exclusions(category market.Category) []string {
	return v.CategoryExclusions[category]
}

// internal/service/predict/templates.go

package predict

import (
	"orbitfield/internal/domain/market"
)

// categoryTemplate holds the search vocabulary and resolution horizons
// used when generating predictions for one interest category.
type categoryTemplate struct {
	Keywords   []string
	Timeframes []string
}

var categoryTemplates = map[market.Category]categoryTemplate{
	market.CategoryAI: {
		Keywords: []string{
			"artificial intelligence", "AI", "machine learning", "LLM",
			"GPT", "neural network", "deep learning",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months", "18-24 months"},
	},
	market.CategoryPolicy: {
		Keywords: []string{
			"regulation", "policy", "legislation", "government", "law", "compliance",
		},
		Timeframes: []string{"6-12 months", "12-18 months", "18-24 months"},
	},
	market.CategorySemiconductors: {
		Keywords: []string{
			"semiconductor", "chip", "TSMC", "Intel", "NVIDIA", "processor", "silicon",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months"},
	},
	market.CategoryFinance: {
		Keywords: []string{
			"finance", "banking", "cryptocurrency", "bitcoin", "stock",
			"market", "investment",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months"},
	},
	market.CategoryECommerce: {
		Keywords: []string{
			"e-commerce", "online shopping", "retail", "amazon", "shopify", "marketplace",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months"},
	},
	market.CategoryHealthcare: {
		Keywords: []string{
			"healthcare", "medical", "pharmaceutical", "health", "medicine", "treatment",
		},
		Timeframes: []string{"6-12 months", "12-18 months", "18-24 months"},
	},
	market.CategoryEnergy: {
		Keywords: []string{
			"energy", "renewable energy", "solar energy", "wind energy", "oil",
			"gas", "electricity", "nuclear energy", "hydroelectric", "geothermal",
			"battery", "energy storage", "power grid", "energy policy",
			"energy transition", "clean energy", "fossil fuels", "natural gas",
			"crude oil", "petroleum", "energy infrastructure", "energy market",
			"energy prices", "energy sector", "energy investment",
			"energy technology", "solar power", "wind power", "energy efficiency",
			"energy consumption", "energy production", "energy crisis",
			"energy security", "energy independence", "carbon neutral",
			"net zero", "green energy",
		},
		Timeframes: []string{"6-12 months", "12-18 months", "18-24 months"},
	},
	market.CategoryCrypto: {
		Keywords: []string{
			"cryptocurrency", "bitcoin", "ethereum", "blockchain", "crypto", "DeFi",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months"},
	},
	market.CategoryClimate: {
		Keywords: []string{
			"climate", "environment", "carbon", "emissions", "sustainability", "green",
		},
		Timeframes: []string{"6-12 months", "12-18 months", "18-24 months"},
	},
	market.CategoryGaming: {
		Keywords: []string{
			"gaming", "video game", "video games", "esports", "e-sports",
			"console", "gaming industry", "streaming", "twitch",
			"youtube gaming", "playstation", "xbox", "nintendo", "steam",
			"epic games", "roblox", "mobile gaming", "pc gaming",
			"game development", "game publisher", "gaming market",
			"gaming revenue", "game sales", "gaming platform",
			"virtual reality gaming", "VR gaming", "gaming tournament",
			"gaming event",
		},
		Timeframes: []string{"3-6 months", "6-12 months", "12-18 months"},
	},
}

// marketSearchKeywords maps categories to keywords used when filtering
// open prediction-market events for the prediction feed.
var marketSearchKeywords = map[market.Category][]string{
	market.CategoryAI:     {"ai", "artificial intelligence", "machine learning", "llm", "gpt"},
	market.CategoryPolicy: {"policy", "regulation", "government", "legislation"},
	market.CategorySemiconductors: {
		"semiconductor", "chip", "tsmc", "intel", "nvidia", "processor", "silicon",
	},
	market.CategoryFinance:    {"finance", "banking", "economics", "markets"},
	market.CategoryECommerce:  {"e-commerce", "retail", "commerce", "shopping"},
	market.CategoryHealthcare: {"healthcare", "medical", "health", "medicine"},
	market.CategoryEnergy:     {"energy", "renewable", "solar", "wind", "oil"},
	market.CategoryCrypto:     {"crypto", "cryptocurrency", "bitcoin", "ethereum", "blockchain"},
	market.CategoryClimate:    {"climate", "environment", "carbon", "sustainability"},
	market.CategoryGaming: {
		"gaming", "video game", "esports", "console", "playstation",
		"xbox", "nintendo", "steam", "twitch", "streaming game",
	},
}

// categorySubreddits maps categories to the subreddits scanned for
// marketable events.
var categorySubreddits = map[market.Category][]string{
	market.CategoryAI:             {"artificial", "MachineLearning", "ChatGPT", "OpenAI"},
	market.CategoryPolicy:         {"politics", "law", "government"},
	market.CategorySemiconductors: {"hardware", "intel", "nvidia", "AMD"},
	market.CategoryFinance:        {"finance", "investing", "stocks", "cryptocurrency"},
	market.CategoryECommerce:      {"ecommerce", "shopify", "business"},
	market.CategoryHealthcare:     {"healthcare", "medicine", "pharmacy"},
	market.CategoryEnergy: {
		"energy", "renewable", "solar", "wind", "nuclear", "oil", "gas",
		"electricity", "batteries", "energy_storage",
	},
	market.CategoryCrypto:  {"cryptocurrency", "bitcoin", "ethereum"},
	market.CategoryClimate: {"climate", "environment", "sustainability"},
	market.CategoryGaming:  {"gaming", "games", "pcgaming", "xbox", "playstation"},
}

// credibleSources are outlets whose coverage boosts prediction confidence.
var credibleSources = []string{
	"Reuters", "Bloomberg", "Financial Times", "The Wall Street Journal", "TechCrunch",
}

// newsMarketableKeywords flag articles that describe events a prediction
// market could resolve. An article needs at least two hits to qualify.
var newsMarketableKeywords = []string{
	"will", "by", "deadline", "approval", "decision", "vote", "launch",
	"release", "announcement", "regulation", "bill", "legislation", "fda",
	"sec", "ipo", "merger", "acquisition", "election", "referendum",
	"target", "goal",
}

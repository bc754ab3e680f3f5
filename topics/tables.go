package topics

// topicDef is one entry of the fixed topic taxonomy
type topicDef struct {
	name         string
	triggers     []string
	snippetLimit int
}

var topicTable = []topicDef{
	{"Digital Marketing", []string{"marketing", "seo", "google", "advertising", "campaign", "analytics", "conversion", "traffic", "keywords", "ranking"}, 4},
	{"Web Development", []string{"javascript", "react", "html", "css", "web", "development", "programming", "code", "frontend", "backend", "api"}, 3},
	{"Business Strategy", []string{"business", "strategy", "growth", "revenue", "profit", "sales", "market", "customer", "service", "company"}, 3},
	{"Technology & Innovation", []string{"technology", "tech", "software", "app", "platform", "system", "digital", "innovation", "cloud", "automation"}, 3},
	{"Content Creation", []string{"content", "blog", "article", "writing", "media", "video", "image", "social", "post", "story"}, 4},
	{"E-commerce", []string{"shop", "store", "product", "price", "buy", "sell", "cart", "payment", "order", "shipping"}, 3},
	{"User Experience", []string{"design", "ux", "interface", "user", "experience", "visual", "layout", "usability", "accessibility", "brand"}, 3},
	{"Data & Analytics", []string{"data", "analytics", "metrics", "insights", "dashboard", "reporting", "statistics", "measurement"}, 2},
	{"Security & Privacy", []string{"security", "privacy", "encryption", "compliance", "gdpr", "authentication", "secure", "protection"}, 2},
	{"Performance & Optimization", []string{"performance", "speed", "optimization", "optimize", "latency", "caching", "load", "fast"}, 2},
}

const leftoverSnippetLimit = 2

// synonymGroups tie together keywords that share a domain meaning
var synonymGroups = []struct {
	name  string
	words []string
}{
	{"AI & Machine Learning", []string{"ai", "artificial", "intelligence", "machine", "learning", "neural", "model", "models"}},
	{"Search Visibility", []string{"seo", "search", "ranking", "rankings", "organic", "serp", "keywords"}},
	{"Online Store", []string{"shop", "store", "cart", "checkout", "ecommerce", "shopping"}},
	{"Interface Design", []string{"design", "interface", "layout", "visual", "usability"}},
	{"Cloud Infrastructure", []string{"cloud", "hosting", "server", "servers", "serverless", "infrastructure"}},
	{"Data Insights", []string{"data", "analytics", "metrics", "insights", "reporting", "dashboard"}},
	{"Security Controls", []string{"security", "privacy", "encryption", "compliance", "authentication"}},
	{"Site Speed", []string{"performance", "speed", "latency", "caching", "fast"}},
}

type nicheDef struct {
	name   string
	terms  []string
	boosts []string
}

// nicheTable order resolves ties between equally scored niches
var nicheTable = []nicheDef{
	{"Technology",
		[]string{"software", "technology", "tech", "app", "apps", "cloud", "developer", "developers", "api", "saas", "platform", "code", "digital", "ai"},
		[]string{"Web Development", "Technology & Innovation", "Data & Analytics", "Security & Privacy", "Performance & Optimization"}},
	{"E-commerce",
		[]string{"shop", "store", "cart", "checkout", "product", "products", "shipping", "buy", "price", "order", "sale"},
		[]string{"E-commerce", "Digital Marketing", "User Experience"}},
	{"Healthcare",
		[]string{"health", "medical", "doctor", "doctors", "patient", "patients", "clinic", "hospital", "care", "treatment", "wellness"},
		[]string{"Security & Privacy", "Content Creation"}},
	{"Education",
		[]string{"education", "learning", "course", "courses", "student", "students", "school", "teacher", "training", "university"},
		[]string{"Content Creation", "Technology & Innovation"}},
	{"Finance",
		[]string{"finance", "financial", "bank", "banking", "investment", "investing", "loan", "insurance", "money", "tax", "credit"},
		[]string{"Security & Privacy", "Data & Analytics", "Business Strategy"}},
	{"Marketing",
		[]string{"marketing", "seo", "advertising", "campaign", "campaigns", "brand", "social", "audience", "leads", "traffic"},
		[]string{"Digital Marketing", "Content Creation", "Data & Analytics"}},
	{"Business Services",
		[]string{"business", "consulting", "services", "solutions", "clients", "enterprise", "agency", "management", "partners"},
		[]string{"Business Strategy", "Digital Marketing"}},
	{"Real Estate",
		[]string{"property", "properties", "estate", "home", "homes", "rent", "rental", "apartment", "mortgage", "realtor"},
		[]string{"Business Strategy", "Digital Marketing"}},
	{"Travel",
		[]string{"travel", "hotel", "hotels", "flight", "flights", "trip", "tour", "tours", "vacation", "destination", "booking"},
		[]string{"Content Creation", "User Experience"}},
	{"Food & Dining",
		[]string{"food", "restaurant", "menu", "recipe", "recipes", "dining", "chef", "cuisine", "kitchen", "meal"},
		[]string{"Content Creation", "E-commerce"}},
}

// stopWords are never counted as keywords
var stopWords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "can", "this", "that", "these", "those",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them", "my", "your",
	"his", "its", "our", "their", "from", "up", "about", "into", "over", "after",
)

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

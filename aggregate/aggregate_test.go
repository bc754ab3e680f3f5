package aggregate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/semantic/models"
)

func topic(name string, freq, relevance int) models.Topic {
	return models.Topic{
		Name:            name,
		Frequency:       freq,
		Relevance:       relevance,
		Subtopics:       []models.Topic{},
		RelatedEntities: []string{name},
		ContextExamples: []string{name + " appears in a sentence on this page"},
	}
}

func page(url string, topics ...models.Topic) models.PageResult {
	return models.PageResult{URL: url, Topics: topics, Entities: models.NewEntitySet()}
}

func findConsolidated(topics []models.ConsolidatedTopic, name string) (models.ConsolidatedTopic, bool) {
	for _, t := range topics {
		if t.Name == name {
			return t, true
		}
	}
	return models.ConsolidatedTopic{}, false
}

func TestConsolidateTopics(t *testing.T) {
	pages := []models.PageResult{
		page("https://example.com/", topic("Digital Marketing", 10, 80), topic("Zebra", 3, 46)),
		page("https://example.com/a", topic("digital marketing", 4, 60)),
		page("https://example.com/b", topic("Digital Marketing", 6, 70)),
	}
	got := ConsolidateTopics(pages)
	require.Len(t, got, 2)

	dm, ok := findConsolidated(got, "Digital Marketing")
	require.True(t, ok)
	assert.Equal(t, 20, dm.Frequency)
	assert.Equal(t, 20, dm.TotalMentions)
	assert.Equal(t, 70, dm.Relevance)
	assert.Equal(t, 3, dm.PageCount)
	assert.InDelta(t, 6.67, dm.AvgFrequencyPerPage, 1e-9)
	assert.Equal(t, 85, dm.CrossPageRelevance)
	assert.Equal(t, []string{"https://example.com/", "https://example.com/a", "https://example.com/b"}, dm.Pages)
	assert.Equal(t, []string{"Digital Marketing", "digital marketing"}, dm.RelatedEntities)

	zebra, ok := findConsolidated(got, "Zebra")
	require.True(t, ok)
	assert.Equal(t, 1, zebra.PageCount)
	assert.Equal(t, 46, zebra.CrossPageRelevance, "no bonus for a single page")

	assert.Equal(t, "Digital Marketing", got[0].Name, "sorted by cross-page relevance")
}

func TestConsolidatedFrequencyIsSumOfPages(t *testing.T) {
	var pages []models.PageResult
	want := 0
	for i := 1; i <= 5; i++ {
		pages = append(pages, page(fmt.Sprintf("https://example.com/%d", i), topic("Content Creation", i, 50)))
		want += i
	}
	got := ConsolidateTopics(pages)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0].Frequency)
	assert.Equal(t, 75, got[0].CrossPageRelevance)
}

func TestCrossPageRelevanceCapped(t *testing.T) {
	var pages []models.PageResult
	for i := 0; i < 10; i++ {
		pages = append(pages, page(fmt.Sprintf("https://example.com/%d", i), topic("Web Development", 2, 95)))
	}
	got := ConsolidateTopics(pages)
	assert.Equal(t, 100, got[0].CrossPageRelevance)
}

func TestMergeEntities(t *testing.T) {
	a := page("https://example.com/")
	a.Entities[models.CategoryOrganizations] = []models.Entity{{Name: "Google", Category: models.CategoryOrganizations, Confidence: 0.4, Count: 2}}
	a.Entities[models.CategoryMisc] = []models.Entity{{Name: "Widget", Category: models.CategoryMisc, Confidence: 0.2, Count: 1}}
	b := page("https://example.com/b")
	b.Entities[models.CategoryOrganizations] = []models.Entity{{Name: "Google", Category: models.CategoryOrganizations, Confidence: 0.8, Count: 4}}

	got := MergeEntities([]models.PageResult{a, b})
	require.Len(t, got, 2)
	assert.Equal(t, models.MergedEntity{
		Name:       "Google",
		Category:   models.CategoryOrganizations,
		Count:      6,
		Confidence: 0.8,
		Pages:      []string{"https://example.com/", "https://example.com/b"},
	}, got[0])
	assert.Equal(t, "Widget", got[1].Name)

	assert.NotNil(t, MergeEntities(nil))
}

func TestClusters(t *testing.T) {
	topics := ConsolidateTopics([]models.PageResult{
		page("https://example.com/",
			topic("Web Development", 10, 80),
			topic("Security & Privacy", 2, 40),
			topic("Digital Marketing", 6, 70),
			topic("Data & Analytics", 3, 50),
			topic("Zebra", 3, 46)),
		page("https://example.com/a", topic("Web Development", 5, 60)),
	})
	clusters := Clusters(topics)

	byName := map[string]models.SemanticCluster{}
	for _, c := range clusters {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "Technology")
	require.Contains(t, byName, "Marketing")
	require.Contains(t, byName, "Analytics & Metrics")
	require.Contains(t, byName, DomainSpecificCluster)

	tech := byName["Technology"]
	assert.Len(t, tech.Topics, 2)
	assert.Equal(t, 17, tech.TotalMentions)
	assert.Equal(t, 2, tech.PageSpread, "page counts 2 and 1")
	assert.Equal(t, 17+2*5+2*3, tech.DominanceScore)
	assert.Equal(t, 60, tech.AvgRelevance) // (80 + 40) / 2
	assert.LessOrEqual(t, len(tech.ContextExamples), 3)

	assert.Equal(t, "Technology", clusters[0].Name)
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].DominanceScore, clusters[i].DominanceScore)
	}
	assert.LessOrEqual(t, len(clusters), models.MaxClusters)
}

func TestClusterEntitiesCapped(t *testing.T) {
	var ts []models.Topic
	for i := 0; i < 15; i++ {
		ts = append(ts, topic(fmt.Sprintf("Tech %d", i), 1, 50))
	}
	clusters := Clusters(ConsolidateTopics([]models.PageResult{page("https://example.com/", ts...)}))
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].UniqueEntities, 10)
}

func TestFormatURL(t *testing.T) {
	tests := map[string]string{
		"Digital Marketing":       "digital-marketing",
		"Data & Analytics":        "data-analytics",
		"  E-commerce  Tips ":     "-e-commerce-tips-",
		"Hello---World!!":         "hello-world",
		"Technology & Innovation": "technology-innovation",
	}
	for in, want := range tests {
		got := FormatURL(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, FormatURL(got), "idempotent for %q", in)
	}
}

func TestSuggestions(t *testing.T) {
	var ts []models.Topic
	for i := 0; i < 12; i++ {
		ts = append(ts, topic(fmt.Sprintf("Topic %d", i), 1, 90-i))
	}
	pages := []models.PageResult{
		page("https://example.com/", ts...),
		page("https://example.com/blog/post-one"),
		page("https://example.com/about"),
		page("https://example.com/blog/post-two"),
		page("https://example.com/pricing"),
		page("https://example.com/team"),
		page("https://example.com/careers"),
	}
	got := Suggestions(ConsolidateTopics(pages), pages)

	require.Len(t, got, models.MaxURLSuggestions)
	assert.Equal(t, "topic-0", got[0])
	assert.Equal(t, "topic-9", got[9])
	assert.NotContains(t, got, "topic-10")
	assert.Equal(t, []string{"blog/post-one", "about", "blog/post-two", "pricing", "team"}, got[10:])
}

func TestCategorizeURL(t *testing.T) {
	tests := []struct {
		in    string
		label string
		depth int
	}{
		{"digital-marketing", URLCategory, 1},
		{"blog/post", URLSubcategory, 2},
		{"/a/b/c/", URLContent, 3},
		{"a/b/c/d", URLDeep, 4},
		{"", URLDeep, 0},
	}
	for _, tt := range tests {
		label, depth := CategorizeURL(tt.in)
		assert.Equal(t, tt.label, label, tt.in)
		assert.Equal(t, tt.depth, depth, tt.in)
	}
}

func TestBuildHierarchy(t *testing.T) {
	topics := []models.ConsolidatedTopic{
		{Topic: models.Topic{Name: "Web Development"}, CrossPageRelevance: 90},
		{Topic: models.Topic{Name: "Web Hosting"}, CrossPageRelevance: 50},
		{Topic: models.Topic{Name: "Webinars"}, CrossPageRelevance: 40},
		{Topic: models.Topic{Name: "Zebra"}, CrossPageRelevance: 30},
		{Topic: models.Topic{Name: "Content Creation", Relevance: models.MainTopicRelevanceThreshold}},
	}
	nodes := BuildHierarchy(topics)
	require.Len(t, nodes, 2)

	assert.Equal(t, "Web Development", nodes[0].Name)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "Web Hosting", nodes[0].Children[0].Name)
	assert.Equal(t, "Webinars", nodes[0].Children[1].Name)

	assert.Equal(t, "Content Creation", nodes[1].Name)
	assert.Empty(t, nodes[1].Children)
}

func TestAggregate(t *testing.T) {
	p := page("https://example.com/blog/post", topic("Content Creation", 4, 60))
	p.Content = models.PageContent{Title: "Travel blog", BodyText: "hotel flight trip travel"}
	p.SEOMetrics = models.SEOMetrics{Score: 70, PageType: models.PageTypeBlog, Issues: []string{"Missing canonical URL"}}

	site := Aggregate([]models.PageResult{p})
	assert.Len(t, site.Topics, 1)
	assert.Equal(t, "Travel", site.DomainNiche.Primary)
	assert.Equal(t, 70, site.SEOMetrics.Score)
	assert.Equal(t, 1, site.SEOMetrics.PageTypes[models.PageTypeBlog])
	assert.Equal(t, []string{"content-creation", "blog/post"}, site.URLSuggestions)
	require.Len(t, site.SemanticClusters, 1)
	assert.Equal(t, "Content Creation", site.SemanticClusters[0].Name)
}

package extractor

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
)

const testPageURL = "https://example.com/blog/post"

// fullPageHTML exercises every extracted field
const fullPageHTML = `<!DOCTYPE html>
<html>
<head>
  <title>  Growth Marketing Guide | Example  </title>
  <meta name="description" content="Learn how to grow traffic with better content.">
  <link rel="canonical" href="https://example.com/blog/post">
  <script type="application/ld+json">{"@context":"https://schema.org","@type":"Article"}</script>
  <script type="application/ld+json">[{"@type":"Organization"},{"@type":["WebPage","Article"]}]</script>
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Growth Marketing</h1>
    <h2>Why content matters</h2>
    <h3></h3>
    <p>Content marketing drives organic traffic for growing businesses.</p>
    <img src="/img/a.png" alt="Chart">
    <img src="https://cdn.example.org/b.png" title="Logo">
    <a href="/about">About us</a>
    <a href="https://other.org/x">Elsewhere</a>
    <a href="mailto:hi@example.com">Mail</a>
    <a href="https://example.com/contact"></a>
  </main>
  <script>var leaked = "should not appear";</script>
</body>
</html>`

// noMainHTML has no main-content container
const noMainHTML = `<html><head><title>T</title></head><body>
  <div>short</div>
  <p>This paragraph is comfortably longer than twenty characters.</p>
  <section>Another block that easily clears the length threshold.</section>
</body></html>`

// brokenSchemaHTML has one malformed JSON-LD block
const brokenSchemaHTML = `<html><head>
  <script type="application/ld+json">{"@type": "Product",</script>
  <script type="application/ld+json">{"@type": "Offer"}</script>
</head><body><p>Body text that is long enough to keep.</p></body></html>`

func newExtractor() *Extractor {
	return New(logging.NewNop(), false)
}

func TestExtractFullPage(t *testing.T) {
	content, doc, err := newExtractor().Extract(testPageURL, fullPageHTML)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "Growth Marketing Guide | Example", content.Title)
	assert.Equal(t, "Learn how to grow traffic with better content.", content.MetaDescription)
	assert.Equal(t, "https://example.com/blog/post", content.CanonicalURL)

	require.Len(t, content.Headings, 3)
	assert.Equal(t, "H1: Growth Marketing", content.Headings[0].String())
	assert.Equal(t, 2, content.Headings[1].Level)
	assert.Equal(t, "", content.Headings[2].Text)

	require.Len(t, content.Images, 2)
	assert.Equal(t, "https://example.com/img/a.png", content.Images[0].Src)
	assert.Equal(t, "Chart", content.Images[0].Alt)
	assert.Equal(t, "", content.Images[1].Alt)
	assert.Equal(t, "Logo", content.Images[1].Title)

	hrefs := make([]string, 0, len(content.InternalLinks))
	for _, l := range content.InternalLinks {
		hrefs = append(hrefs, l.Href)
	}
	assert.Equal(t, []string{"https://example.com/", "https://example.com/about", "https://example.com/contact"}, hrefs)
	assert.Equal(t, "", content.InternalLinks[2].AnchorText)

	assert.True(t, content.StructuredData.HasJSONLD)
	assert.True(t, content.StructuredData.IsValid)
	assert.Equal(t, []string{"Article", "Organization", "WebPage"}, content.StructuredData.Types)

	assert.Contains(t, content.BodyText, "Content marketing drives organic traffic")
	assert.NotContains(t, content.BodyText, "leaked")
	assert.NotContains(t, content.BodyText, "Home")
}

func TestExtractFallsBackToBlocks(t *testing.T) {
	content, _, err := newExtractor().Extract("https://example.com/", noMainHTML)
	require.NoError(t, err)

	assert.NotContains(t, content.BodyText, "short")
	assert.Contains(t, content.BodyText, "This paragraph is comfortably longer")
	assert.Contains(t, content.BodyText, "Another block")
	assert.Empty(t, content.MetaDescription)
	assert.Empty(t, content.CanonicalURL)
}

func TestExtractInvalidSchemaDoesNotAbort(t *testing.T) {
	content, _, err := newExtractor().Extract("https://example.com/", brokenSchemaHTML)
	require.NoError(t, err)

	assert.True(t, content.StructuredData.HasJSONLD)
	assert.False(t, content.StructuredData.IsValid)
	assert.Equal(t, []string{"Offer"}, content.StructuredData.Types)
	assert.Equal(t, "Body text that is long enough to keep.", content.BodyText)
}

func articleHTML() string {
	para := "<p>Search engines reward pages that answer a question clearly, cite their sources, " +
		"and keep the reader moving through related material without friction.</p>"
	return `<html><head><title>Ranking Content</title>
  <meta name="author" content="Dana  Reyes">
  <meta property="og:site_name" content="Example Journal">
</head><body><article><h1>Ranking Content</h1>` + strings.Repeat(para, 8) + `</article></body></html>`
}

func TestExtractEnrichesWithReadability(t *testing.T) {
	content, _, err := New(logging.NewNop(), true).Extract("https://example.com/blog/ranking", articleHTML())
	require.NoError(t, err)

	assert.Equal(t, "Dana Reyes", content.Byline)
	assert.Equal(t, "Example Journal", content.SiteName)
	assert.Equal(t, "Ranking Content", content.Title)
}

func TestExtractWithoutEnrichmentLeavesMetadataEmpty(t *testing.T) {
	content, _, err := newExtractor().Extract("https://example.com/blog/ranking", articleHTML())
	require.NoError(t, err)

	assert.Empty(t, content.Byline)
	assert.Empty(t, content.SiteName)
}

func TestBodyTextTruncated(t *testing.T) {
	long := strings.Repeat("word ", 2000)
	content, _, err := newExtractor().Extract("https://example.com/", "<main>"+long+"</main>")
	require.NoError(t, err)
	assert.Len(t, []rune(content.BodyText), models.BodyTextLimit)
}

func TestDiscoverLinks(t *testing.T) {
	html := `<html><body>
	  <a href="/a">A</a>
	  <a href="/a#section">A again</a>
	  <a href="https://example.com/b">B</a>
	  <a href="https://sub.example.com/c">Other host</a>
	  <a href="/admin/panel">Admin</a>
	  <a href="/Login">Login</a>
	  <a href="/feed.xml">Feed</a>
	  <a href="/doc.pdf">PDF</a>
	  <a href="/photo.jpg">Photo</a>
	  <a href="#top">Top</a>
	  <a href="mailto:x@example.com">Mail</a>
	  <a href="tel:123">Call</a>
	  <a href="/">Home</a>
	  <a href="c">Relative</a>
	</body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)

	links := DiscoverLinks(doc, "https://example.com/", 24)
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, links)
}

func TestDiscoverLinksHonorsLimitAndHost(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString(`<a href="/page-` + strings.Repeat("x", i+1) + `">p</a>`)
		b.WriteString(`<a href="https://evil.example.net/p">e</a>`)
	}
	doc, err := Parse("<html><body>" + b.String() + "</body></html>")
	require.NoError(t, err)

	links := DiscoverLinks(doc, "https://example.com/", models.MaxPages-1)
	assert.Len(t, links, models.MaxPages-1)
	for _, l := range links {
		u, err := url.Parse(l)
		require.NoError(t, err)
		assert.Equal(t, "example.com", u.Hostname())
	}
}

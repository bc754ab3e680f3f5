package seo

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

var datePathRe = regexp.MustCompile(`\d{4}/\d{2}`)

// DetectPageType classifies a page by URL path, title and body keywords.
// Rules are checked in a fixed order and the first match wins.
func DetectPageType(rawURL, title, body string) models.PageType {
	path := strings.ToLower(rawURL)
	if u, err := url.Parse(rawURL); err == nil && (u.Scheme != "" || u.Host != "") {
		path = strings.ToLower(u.Path)
	}
	title = strings.ToLower(title)
	body = strings.ToLower(body)

	switch {
	case containsAny(path, "/blog", "/article", "/post", "/news") ||
		strings.Contains(title, "blog") ||
		datePathRe.MatchString(path) ||
		containsAny(body, "published", "author"):
		return models.PageTypeBlog

	case containsAny(path, "/product", "/item", "/shop") ||
		containsAny(body, "price", "add to cart", "buy now", "in stock"):
		return models.PageTypeProduct

	case containsAny(path, "/category", "/collection", "/archive") ||
		strings.Contains(title, "category") ||
		containsAny(body, "filter by", "sort by"):
		return models.PageTypeCategory

	case containsAny(path, "/about", "/company") ||
		containsAny(title, "about", "company"):
		return models.PageTypeAbout

	case strings.Contains(path, "/contact") ||
		strings.Contains(title, "contact") ||
		containsAny(body, "phone", "email"):
		return models.PageTypeContact

	case rawURL != "" && (path == "/" || path == "") ||
		containsAny(title, "home", "welcome"):
		return models.PageTypeHome
	}
	return models.PageTypePage
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

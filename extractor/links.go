package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// excludedPathParts mark pages that carry no crawlable content
var excludedPathParts = []string{
	"/admin", "/login", "/register", "/cart", "/checkout", "/search",
	".xml", ".pdf", ".jpg", ".png",
}

var excludedHrefPrefixes = []string{"#", "mailto:", "tel:"}

// DiscoverLinks returns up to limit same-host URLs linked from doc, in
// order of appearance. Fragments are dropped and the base URL itself is
// never returned.
func DiscoverLinks(doc *goquery.Document, baseURL string, limit int) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" || limit <= 0 {
		return nil
	}

	seen := map[string]bool{canonicalKey(base): true}
	var out []string

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || hasAnyPrefix(strings.ToLower(href), excludedHrefPrefixes) {
			return true
		}
		abs, ok := resolve(base, href)
		if !ok || abs.Hostname() != base.Hostname() {
			return true
		}
		if containsAny(strings.ToLower(abs.Path), excludedPathParts) {
			return true
		}

		abs.Fragment = ""
		key := canonicalKey(abs)
		if seen[key] {
			return true
		}
		seen[key] = true
		out = append(out, abs.String())
		return len(out) < limit
	})
	return out
}

// canonicalKey identifies a URL for dedupe purposes
func canonicalKey(u *url.URL) string {
	c := *u
	c.Fragment = ""
	if c.Path == "" {
		c.Path = "/"
	}
	return c.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

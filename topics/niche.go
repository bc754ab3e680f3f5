package topics

import "github.com/seo-optimizer/semantic/models"

// GeneralNiche is reported when no niche term occurs in the text
const GeneralNiche = "General"

// DetectNiche counts niche term hits in text. The niche with the most hits
// wins; ties go to the niche listed first.
func DetectNiche(text string) models.DomainNiche {
	counts := map[string]int{}
	for _, w := range Tokenize(text) {
		counts[w]++
	}

	niche := models.DomainNiche{Primary: GeneralNiche, All: map[string]int{}}
	for _, def := range nicheTable {
		hits := 0
		for _, term := range def.terms {
			hits += counts[term]
		}
		if hits == 0 {
			continue
		}
		niche.All[def.name] = hits
		if hits > niche.Score {
			niche.Primary = def.name
			niche.Score = hits
		}
	}
	return niche
}

// boosted reports whether topic is relevant to the named niche
func boosted(niche, topic string) bool {
	for _, def := range nicheTable {
		if def.name != niche {
			continue
		}
		for _, b := range def.boosts {
			if b == topic {
				return true
			}
		}
	}
	return false
}

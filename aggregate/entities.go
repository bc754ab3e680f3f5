package aggregate

import (
	"sort"

	"github.com/seo-optimizer/semantic/models"
)

// MergeEntities merges entities by exact name across pages. Counts add up,
// the highest confidence wins and every page mentioning the entity is kept.
func MergeEntities(pages []models.PageResult) []models.MergedEntity {
	index := map[string]int{}
	var out []models.MergedEntity

	for _, page := range pages {
		for _, e := range page.Entities.All() {
			i, ok := index[e.Name]
			if !ok {
				index[e.Name] = len(out)
				out = append(out, models.MergedEntity{
					Name:       e.Name,
					Category:   e.Category,
					Count:      e.Count,
					Confidence: e.Confidence,
					Pages:      pageList(page.URL),
				})
				continue
			}
			m := &out[i]
			m.Count += e.Count
			if e.Confidence > m.Confidence {
				m.Confidence = e.Confidence
			}
			if page.URL != "" {
				m.Pages = appendUnique(m.Pages, page.URL)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})
	if out == nil {
		out = []models.MergedEntity{}
	}
	return out
}

func pageList(u string) []string {
	if u == "" {
		return []string{}
	}
	return []string{u}
}

package models

// EntityCategory names the bucket an entity was classified into.
// The string values double as the JSON keys of an EntitySet.
type EntityCategory string

const (
	CategoryPeople        EntityCategory = "people"
	CategoryOrganizations EntityCategory = "organizations"
	CategoryLocations     EntityCategory = "locations"
	CategoryTechnologies  EntityCategory = "technologies"
	CategoryMisc          EntityCategory = "misc"
)

// EntityCategories lists the categories in classification priority order
var EntityCategories = []EntityCategory{
	CategoryOrganizations,
	CategoryPeople,
	CategoryLocations,
	CategoryTechnologies,
	CategoryMisc,
}

type Entity struct {
	Name       string         `json:"name"`
	Category   EntityCategory `json:"category"`
	Confidence float64        `json:"confidence"`
	Count      int            `json:"count"`
}

// EntitySet maps each category to its entities, sorted by confidence
type EntitySet map[EntityCategory][]Entity

// NewEntitySet returns a set with every category present and empty
func NewEntitySet() EntitySet {
	set := make(EntitySet, len(EntityCategories))
	for _, c := range EntityCategories {
		set[c] = []Entity{}
	}
	return set
}

// All flattens the set in category priority order
func (s EntitySet) All() []Entity {
	var out []Entity
	for _, c := range EntityCategories {
		out = append(out, s[c]...)
	}
	return out
}

// Names returns every entity name in the set
func (s EntitySet) Names() []string {
	all := s.All()
	names := make([]string, 0, len(all))
	for _, e := range all {
		names = append(names, e.Name)
	}
	return names
}

// Contains reports whether the category holds an entity with this exact name
func (s EntitySet) Contains(c EntityCategory, name string) bool {
	for _, e := range s[c] {
		if e.Name == name {
			return true
		}
	}
	return false
}

// MergedEntity is an entity consolidated across every page of a crawl
type MergedEntity struct {
	Name       string         `json:"name"`
	Category   EntityCategory `json:"category"`
	Count      int            `json:"count"`
	Confidence float64        `json:"confidence"`
	Pages      []string       `json:"pages"`
}

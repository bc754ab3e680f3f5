package aggregate

import (
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

// TopicNode is a main topic with the lesser topics that share its lead word
type TopicNode struct {
	models.ConsolidatedTopic
	Children []models.ConsolidatedTopic `json:"children"`
}

// BuildHierarchy nests topics under main topics. A main topic reaches
// MainTopicRelevanceThreshold; a child is any topic below the threshold
// whose name contains the main topic's first word.
func BuildHierarchy(topics []models.ConsolidatedTopic) []TopicNode {
	nodes := []TopicNode{}
	for _, main := range topics {
		if main.EffectiveRelevance() < models.MainTopicRelevanceThreshold {
			continue
		}
		lead := ""
		if f := strings.Fields(strings.ToLower(main.Name)); len(f) > 0 {
			lead = f[0]
		}

		node := TopicNode{ConsolidatedTopic: main, Children: []models.ConsolidatedTopic{}}
		for _, t := range topics {
			if t.EffectiveRelevance() >= models.MainTopicRelevanceThreshold {
				continue
			}
			if lead != "" && strings.Contains(strings.ToLower(t.Name), lead) {
				node.Children = append(node.Children, t)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

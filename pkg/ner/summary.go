package ner

import "github.com/nerlens/nerlens/pkg/models"

// groupOrder is the display order for the CoNLL-2003 groups. Any other group
// follows in order of first appearance.
var groupOrder = []string{"PER", "ORG", "LOC", "MISC"}

var groupLabels = map[string]string{
	"PER":  "People",
	"ORG":  "Organizations",
	"LOC":  "Locations",
	"MISC": "Miscellaneous",
}

// GroupLabel returns a human readable name for group.
func GroupLabel(group string) string {
	if label, ok := groupLabels[group]; ok {
		return label
	}
	return group
}

// Summarize buckets spans by group. Spans keep their relative order within a
// bucket and groups with no spans are omitted.
func Summarize(spans []models.EntitySpan) models.EntitySummary {
	buckets := make(map[string][]models.EntitySpan)
	var seen []string
	for _, span := range spans {
		if _, ok := buckets[span.Group]; !ok {
			seen = append(seen, span.Group)
		}
		buckets[span.Group] = append(buckets[span.Group], span)
	}

	order := make([]string, 0, len(seen))
	for _, group := range groupOrder {
		if _, ok := buckets[group]; ok {
			order = append(order, group)
		}
	}
	for _, group := range seen {
		if _, known := groupLabels[group]; !known {
			order = append(order, group)
		}
	}

	summary := models.EntitySummary{
		Total:  len(spans),
		Groups: make([]models.GroupSummary, 0, len(order)),
	}
	for _, group := range order {
		summary.Groups = append(summary.Groups, models.GroupSummary{
			Group:    group,
			Label:    GroupLabel(group),
			Count:    len(buckets[group]),
			Entities: buckets[group],
		})
	}
	return summary
}

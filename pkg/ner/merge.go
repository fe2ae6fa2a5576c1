package ner

import "github.com/nerlens/nerlens/pkg/models"

// MergeAdjacent merges pairs of consecutive spans that touch (the first ends
// where the second starts) and share a group. The composite text joins both
// texts with a single space, its offsets cover both spans and its score is the
// mean of the two scores.
//
// Merging is pairwise and not transitive: after a merge the cursor moves past
// both spans, so a composite is never compared with the span that follows it.
// Three touching PER spans therefore yield two spans, the first two merged and
// the third unchanged.
//
// Input must be ordered by Start and non-overlapping. The result is never nil.
func MergeAdjacent(spans []models.EntitySpan) []models.EntitySpan {
	merged := make([]models.EntitySpan, 0, len(spans))
	for i := 0; i < len(spans); {
		cur := spans[i]
		if i+1 < len(spans) {
			next := spans[i+1]
			if cur.Adjacent(next) && cur.Group == next.Group {
				merged = append(merged, models.EntitySpan{
					Group: cur.Group,
					Text:  cur.Text + " " + next.Text,
					Score: (cur.Score + next.Score) / 2,
					Start: cur.Start,
					End:   next.End,
				})
				i += 2
				continue
			}
		}
		merged = append(merged, cur)
		i++
	}
	return merged
}

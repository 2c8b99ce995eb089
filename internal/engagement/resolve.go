package engagement

import (
	"perch/pkg/models"
)

// reorderByID restores the post's original reference order after a batch
// resolve. Ids with no resolved row (the referenced entity was deleted) are
// dropped silently; a stale reference never fails the read.
func reorderByID[T any](ids []string, rows []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(rows))
	for _, row := range rows {
		byID[idOf(row)] = row
	}

	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered
}

// collectRefs gathers the distinct tag and mention ids referenced anywhere
// on a page of posts, so each set resolves in a single batch query.
func collectRefs(posts []models.Post) (tagIDs, userIDs []string) {
	seenTags := make(map[string]struct{})
	seenUsers := make(map[string]struct{})

	for _, p := range posts {
		for _, id := range p.TagIDs {
			if _, ok := seenTags[id]; !ok {
				seenTags[id] = struct{}{}
				tagIDs = append(tagIDs, id)
			}
		}
		for _, id := range p.MentionIDs {
			if _, ok := seenUsers[id]; !ok {
				seenUsers[id] = struct{}{}
				userIDs = append(userIDs, id)
			}
		}
	}
	return tagIDs, userIDs
}

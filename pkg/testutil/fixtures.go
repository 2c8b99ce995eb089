// Package testutil provides shared test fixtures for the engagement domain.
package testutil

import (
	"time"

	"perch/pkg/models"
)

// PostFixtures provides test data builders for posts and detail views
type PostFixtures struct{}

// NewPostFixtures creates a new post fixtures helper
func NewPostFixtures() *PostFixtures {
	return &PostFixtures{}
}

// OriginalPost creates a valid original post with tag and mention references
func (f *PostFixtures) OriginalPost(id string) models.Post {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return models.Post{
		ID:         id,
		AuthorID:   "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbb01",
		Body:       "engagement fixture post",
		Kind:       models.KindOriginal,
		MentionIDs: []string{"bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbb02"},
		TagIDs:     []string{"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaa01"},
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// CommentOn creates a comment child of the given parent
func (f *PostFixtures) CommentOn(parentID, id string, createdAt time.Time) models.Post {
	return models.Post{
		ID:        id,
		AuthorID:  "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbb02",
		Body:      "a comment",
		Kind:      models.KindComment,
		ParentID:  &parentID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// ResolvedDetail creates a fully resolved detail view with non-zero counts
func (f *PostFixtures) ResolvedDetail(id string) models.PostDetail {
	return models.PostDetail{
		Post: f.OriginalPost(id),
		Tags: []models.TagRef{
			{ID: "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaa01", Name: "golang"},
		},
		Mentions: []models.UserRef{
			{ID: "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbb02", Name: "Ada", Handle: "ada", Email: "ada@example.com"},
		},
		EngagementCounts: models.EngagementCounts{
			Bookmarks: 2,
			Reactions: 5,
			Comments:  3,
			Reshares:  1,
		},
	}
}

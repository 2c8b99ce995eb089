package engagement

import (
	"context"

	"perch/pkg/models"
)

// Store is the read capability the aggregation engine needs from the entity
// store. Every method is a point-in-time read; the engine holds no state
// across calls and never writes. Batch methods take the full id set for a
// page so one call covers one join, keeping round trips bounded regardless
// of page size.
//
// GetPost reports a missing post with database.ErrNoRows; the engine maps
// that to ErrNotFound. Resolve methods return only the rows that still
// exist, in no particular order; dangling ids are simply absent.
type Store interface {
	GetPost(ctx context.Context, id string) (*models.Post, error)

	ResolveTags(ctx context.Context, ids []string) ([]models.TagRef, error)
	ResolveUsers(ctx context.Context, ids []string) ([]models.UserRef, error)

	CountBookmarks(ctx context.Context, postIDs []string) (map[string]int64, error)
	CountReactions(ctx context.Context, postIDs []string) (map[string]int64, error)
	CountChildren(ctx context.Context, parentIDs []string) (map[string]models.ChildKindCounts, error)

	ListChildren(ctx context.Context, parentID string, kind models.PostKind, limit, offset int) ([]models.Post, error)
	CountChildrenOfKind(ctx context.Context, parentID string, kind models.PostKind) (int64, error)
}

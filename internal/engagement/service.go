package engagement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"perch/pkg/database"
	"perch/pkg/logging"
	"perch/pkg/models"
	"perch/pkg/pagination"
)

// defaultJoinLimit bounds how many of one request's joins run against the
// store at once. A detail aggregation fans out five independent joins; the
// limit keeps a single listing request from monopolizing the pool.
const defaultJoinLimit = 5

// Service composes the entity store's reads into denormalized engagement
// views. It holds no state across calls; every aggregation is computed
// fresh against the store's current contents. Two concurrent calls for the
// same post may observe different counts if a write interleaves.
type Service struct {
	store     Store
	logger    logging.Logger
	joinLimit int
}

// NewService creates an aggregation service over the given store.
func NewService(store Store, logger logging.Logger) *Service {
	return &Service{
		store:     store,
		logger:    logger,
		joinLimit: defaultJoinLimit,
	}
}

func validatePostID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalidArgf("malformed post id %q", id)
	}
	return nil
}

// GetPostDetail assembles the fully resolved view of one post: its own
// fields, resolved tag and mention projections in authored order, and the
// five derived engagement counts. All joins are batch joins keyed by the
// post id or its reference lists and run concurrently.
func (s *Service) GetPostDetail(ctx context.Context, id string) (*models.PostDetail, error) {
	if err := validatePostID(id); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	var (
		tagRows     []models.TagRef
		userRows    []models.UserRef
		bookmarks   map[string]int64
		reactions   map[string]int64
		childCounts map[string]models.ChildKindCounts
	)

	plan := newJoinPlan(s.joinLimit)
	if len(post.TagIDs) > 0 {
		plan.add("tags", func(ctx context.Context) error {
			var err error
			tagRows, err = s.store.ResolveTags(ctx, post.TagIDs)
			return err
		})
	}
	if len(post.MentionIDs) > 0 {
		plan.add("mentions", func(ctx context.Context) error {
			var err error
			userRows, err = s.store.ResolveUsers(ctx, post.MentionIDs)
			return err
		})
	}
	plan.add("bookmarks", func(ctx context.Context) error {
		var err error
		bookmarks, err = s.store.CountBookmarks(ctx, []string{post.ID})
		return err
	})
	plan.add("reactions", func(ctx context.Context) error {
		var err error
		reactions, err = s.store.CountReactions(ctx, []string{post.ID})
		return err
	})
	plan.add("children", func(ctx context.Context) error {
		var err error
		childCounts, err = s.store.CountChildren(ctx, []string{post.ID})
		return err
	})

	if err := plan.execute(ctx); err != nil {
		return nil, storeErr(err)
	}

	kinds := childCounts[post.ID]
	detail := &models.PostDetail{
		Post:     *post,
		Tags:     reorderByID(post.TagIDs, tagRows, func(t models.TagRef) string { return t.ID }),
		Mentions: reorderByID(post.MentionIDs, userRows, func(u models.UserRef) string { return u.ID }),
		EngagementCounts: models.EngagementCounts{
			Bookmarks: bookmarks[post.ID],
			Reactions: reactions[post.ID],
			Reshares:  kinds.Reshares,
			Comments:  kinds.Comments,
			Quotes:    kinds.Quotes,
		},
	}

	return detail, nil
}

// GetChildren returns one page of a parent post's children of the given
// kind, each child fully resolved like GetPostDetail, plus the total
// matching child count. Relationship ids and counts are batch-resolved
// across the whole page rather than per child.
//
// Pages are offsets over (created_at, id) ascending; inserts between two
// page fetches can shift boundaries, which is accepted for this contract.
func (s *Service) GetChildren(ctx context.Context, parentID string, kind models.PostKind, page, pageSize int) (*models.PostPage, error) {
	if err := validatePostID(parentID); err != nil {
		return nil, err
	}
	if !kind.IsChildKind() {
		return nil, invalidArgf("kind %q is not a child kind", kind)
	}
	params := pagination.Params{Page: page, PageSize: pageSize}
	if err := params.Validate(); err != nil {
		return nil, invalidArgf("%v", err)
	}

	if _, err := s.store.GetPost(ctx, parentID); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	var (
		children []models.Post
		total    int64
	)

	plan := newJoinPlan(s.joinLimit)
	plan.add("page", func(ctx context.Context) error {
		var err error
		children, err = s.store.ListChildren(ctx, parentID, kind, params.PageSize, params.Offset())
		return err
	})
	plan.add("total", func(ctx context.Context) error {
		var err error
		total, err = s.store.CountChildrenOfKind(ctx, parentID, kind)
		return err
	})
	if err := plan.execute(ctx); err != nil {
		return nil, storeErr(err)
	}

	details, err := s.resolvePage(ctx, children)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logging.Fields{
		"parent_id": parentID,
		"kind":      kind.String(),
		"page":      page,
		"page_size": pageSize,
		"returned":  len(details),
		"total":     total,
	}).Debug("Resolved children page")

	return &models.PostPage{Posts: details, Total: total}, nil
}

// resolvePage turns a raw page of child posts into fully resolved details
// with five batch joins for the whole page: one per relationship, keyed by
// the union of ids across the page.
func (s *Service) resolvePage(ctx context.Context, posts []models.Post) ([]models.PostDetail, error) {
	details := make([]models.PostDetail, 0, len(posts))
	if len(posts) == 0 {
		return details, nil
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	tagIDs, userIDs := collectRefs(posts)

	var (
		tagRows     []models.TagRef
		userRows    []models.UserRef
		bookmarks   map[string]int64
		reactions   map[string]int64
		childCounts map[string]models.ChildKindCounts
	)

	plan := newJoinPlan(s.joinLimit)
	if len(tagIDs) > 0 {
		plan.add("tags", func(ctx context.Context) error {
			var err error
			tagRows, err = s.store.ResolveTags(ctx, tagIDs)
			return err
		})
	}
	if len(userIDs) > 0 {
		plan.add("mentions", func(ctx context.Context) error {
			var err error
			userRows, err = s.store.ResolveUsers(ctx, userIDs)
			return err
		})
	}
	plan.add("bookmarks", func(ctx context.Context) error {
		var err error
		bookmarks, err = s.store.CountBookmarks(ctx, postIDs)
		return err
	})
	plan.add("reactions", func(ctx context.Context) error {
		var err error
		reactions, err = s.store.CountReactions(ctx, postIDs)
		return err
	})
	plan.add("children", func(ctx context.Context) error {
		var err error
		childCounts, err = s.store.CountChildren(ctx, postIDs)
		return err
	})

	if err := plan.execute(ctx); err != nil {
		return nil, storeErr(err)
	}

	tagsByID := make(map[string]models.TagRef, len(tagRows))
	for _, t := range tagRows {
		tagsByID[t.ID] = t
	}
	usersByID := make(map[string]models.UserRef, len(userRows))
	for _, u := range userRows {
		usersByID[u.ID] = u
	}

	for _, p := range posts {
		tags := make([]models.TagRef, 0, len(p.TagIDs))
		for _, id := range p.TagIDs {
			if t, ok := tagsByID[id]; ok {
				tags = append(tags, t)
			}
		}
		mentions := make([]models.UserRef, 0, len(p.MentionIDs))
		for _, id := range p.MentionIDs {
			if u, ok := usersByID[id]; ok {
				mentions = append(mentions, u)
			}
		}

		kinds := childCounts[p.ID]
		details = append(details, models.PostDetail{
			Post:     p,
			Tags:     tags,
			Mentions: mentions,
			EngagementCounts: models.EngagementCounts{
				Bookmarks: bookmarks[p.ID],
				Reactions: reactions[p.ID],
				Reshares:  kinds.Reshares,
				Comments:  kinds.Comments,
				Quotes:    kinds.Quotes,
			},
		})
	}

	return details, nil
}

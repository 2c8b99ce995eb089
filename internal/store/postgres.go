// Package store implements the entity store over PostgreSQL. It owns every
// persisted record this service reads (posts, tags, users, bookmarks,
// likes) and exposes read operations only; all writes belong to the
// upstream content service.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"perch/pkg/models"
)

// Postgres is the production entity store.
type Postgres struct {
	db *sql.DB
}

// New creates a Postgres entity store over an open connection pool.
func New(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const postColumns = `id, author_id, body, kind, parent_id, mention_ids, tag_ids, created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	var (
		p          models.Post
		parentID   sql.NullString
		mentionIDs pq.StringArray
		tagIDs     pq.StringArray
	)
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Body, &p.Kind, &parentID,
		&mentionIDs, &tagIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		p.ParentID = &parentID.String
	}
	p.MentionIDs = mentionIDs
	p.TagIDs = tagIDs
	return &p, nil
}

// GetPost fetches one post by id. Missing posts surface as sql.ErrNoRows.
func (s *Postgres) GetPost(ctx context.Context, id string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1
	`, id)
	return scanPost(row)
}

// ResolveTags returns the tags that still exist for the given ids. Order is
// unspecified; ids with no surviving tag are simply absent.
func (s *Postgres) ResolveTags(ctx context.Context, ids []string) ([]models.TagRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM tags
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.TagRef
	for rows.Next() {
		var t models.TagRef
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ResolveUsers returns the mentioned-user projections that still exist for
// the given ids.
func (s *Postgres) ResolveUsers(ctx context.Context, ids []string) ([]models.UserRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, handle, email
		FROM users
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserRef
	for rows.Next() {
		var u models.UserRef
		if err := rows.Scan(&u.ID, &u.Name, &u.Handle, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountBookmarks counts bookmarks per post for the given post ids. Posts
// with no bookmarks are absent from the result map.
func (s *Postgres) CountBookmarks(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return s.countByPost(ctx, "bookmarks", postIDs)
}

// CountReactions counts likes per post for the given post ids.
func (s *Postgres) CountReactions(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return s.countByPost(ctx, "likes", postIDs)
}

func (s *Postgres) countByPost(ctx context.Context, table string, postIDs []string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT post_id, COUNT(*)
		FROM %s
		WHERE post_id = ANY($1)
		GROUP BY post_id
	`, table), pq.Array(postIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64, len(postIDs))
	for rows.Next() {
		var (
			postID string
			n      int64
		)
		if err := rows.Scan(&postID, &n); err != nil {
			return nil, err
		}
		counts[postID] = n
	}
	return counts, rows.Err()
}

// CountChildren partitions each parent's children by kind and returns the
// cardinalities, one GROUP BY query for the whole id set. Parents with no
// children are absent from the result map; callers read that as all zeros.
func (s *Postgres) CountChildren(ctx context.Context, parentIDs []string) (map[string]models.ChildKindCounts, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parent_id, kind, COUNT(*)
		FROM posts
		WHERE parent_id = ANY($1)
		GROUP BY parent_id, kind
	`, pq.Array(parentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]models.ChildKindCounts, len(parentIDs))
	for rows.Next() {
		var (
			parentID string
			kind     models.PostKind
			n        int64
		)
		if err := rows.Scan(&parentID, &kind, &n); err != nil {
			return nil, err
		}
		c := counts[parentID]
		switch kind {
		case models.KindComment:
			c.Comments = n
		case models.KindReshare:
			c.Reshares = n
		case models.KindQuote:
			c.Quotes = n
		}
		counts[parentID] = c
	}
	return counts, rows.Err()
}

// ListChildren returns one page of a parent's children of the given kind,
// ordered by creation time then id so pages are reproducible for a fixed
// dataset.
func (s *Postgres) ListChildren(ctx context.Context, parentID string, kind models.PostKind, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE parent_id = $1 AND kind = $2
		ORDER BY created_at ASC, id ASC
		LIMIT $3 OFFSET $4
	`, parentID, kind, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, *p)
	}
	return children, rows.Err()
}

// CountChildrenOfKind returns the total number of a parent's children of
// one kind, independent of pagination.
func (s *Postgres) CountChildrenOfKind(ctx context.Context, parentID string, kind models.PostKind) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM posts
		WHERE parent_id = $1 AND kind = $2
	`, parentID, kind).Scan(&n)
	return n, err
}

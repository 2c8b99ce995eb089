package models

import (
	"time"
)

// PostKind discriminates the closed set of post variants. Children of a post
// are always one of Comment, Reshare or Quote; Original is never a child kind.
type PostKind int16

const (
	KindOriginal PostKind = iota
	KindComment
	KindReshare
	KindQuote
)

// String returns the wire name of the kind
func (k PostKind) String() string {
	switch k {
	case KindOriginal:
		return "original"
	case KindComment:
		return "comment"
	case KindReshare:
		return "reshare"
	case KindQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// ParsePostKind parses a wire name into a PostKind
func ParsePostKind(s string) (PostKind, bool) {
	switch s {
	case "original":
		return KindOriginal, true
	case "comment":
		return KindComment, true
	case "reshare":
		return KindReshare, true
	case "quote":
		return KindQuote, true
	default:
		return 0, false
	}
}

// IsChildKind reports whether the kind is valid as a child filter
func (k PostKind) IsChildKind() bool {
	return k == KindComment || k == KindReshare || k == KindQuote
}

// Post represents one unit of content
type Post struct {
	ID       string   `json:"id" db:"id"`
	AuthorID string   `json:"author_id" db:"author_id"`
	Body     string   `json:"body" db:"body"`
	Kind     PostKind `json:"kind" db:"kind"`

	// ParentID is set iff Kind != KindOriginal
	ParentID *string `json:"parent_id,omitempty" db:"parent_id"`

	// Ordered references as authored; resolved representations are joined
	// at read time, never stored here
	MentionIDs []string `json:"mention_ids" db:"mention_ids"`
	TagIDs     []string `json:"tag_ids" db:"tag_ids"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

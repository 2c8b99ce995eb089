package models

// TagRef is the read-time projection of a referenced tag
type TagRef struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// UserRef is the read-time projection of a mentioned user
type UserRef struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Handle string `json:"handle" db:"handle"`
	Email  string `json:"email" db:"email"`
}

// EngagementCounts holds the derived counters for one post. All five are
// computed at read time against the live relationship tables; nothing here
// is a stored counter.
type EngagementCounts struct {
	Bookmarks int64 `json:"bookmark_count"`
	Reactions int64 `json:"reaction_count"`
	Reshares  int64 `json:"reshare_count"`
	Comments  int64 `json:"comment_count"`
	Quotes    int64 `json:"quote_count"`
}

// ChildKindCounts partitions a post's children by kind
type ChildKindCounts struct {
	Comments int64 `json:"comments"`
	Reshares int64 `json:"reshares"`
	Quotes   int64 `json:"quotes"`
}

// PostDetail is the fully resolved, denormalized view of one post
type PostDetail struct {
	Post

	Tags     []TagRef  `json:"tags"`
	Mentions []UserRef `json:"mentions"`

	EngagementCounts
}

// PostPage is one page of a parent post's children, fully resolved, plus the
// total matching child count independent of page size
type PostPage struct {
	Posts []PostDetail `json:"posts"`
	Total int64        `json:"total"`
}

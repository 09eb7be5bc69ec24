package model

import "time"

const (
	AnonymousReader  = "Anonymous Reader"
	DefaultSourceURL = "https://news.ycombinator.com"
	// like seeds fall in [MinSeedLikes, MaxSeedLikes)
	MinSeedLikes     = 10
	MaxSeedLikes     = 60
	DefaultFeedSize  = 5
	ExtendedFeedSize = 6
)

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Article is one synthesized blog entry. ID is session-local and regenerated
// on every feed refresh; Title is the durable key.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	SourceURL   string    `json:"url"`
	FullContent string    `json:"content,omitempty"`
	Sources     []Source  `json:"sources,omitempty"`
	LikeCount   int       `json:"likes"`
	Comments    []Comment `json:"comments"`
	Expanded    bool      `json:"-"`
}

type Comment struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role
	Text string
}

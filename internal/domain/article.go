package domain

import "time"

// Article is the unit of persisted data produced by a fetch pass.
// Category stays nil until a classify pass assigns a label.
type Article struct {
	ID        int64
	Title     string
	Content   string
	PubDate   time.Time
	SourceURL string
	Category  *string
}

// Classified reports whether a label has been assigned.
func (a Article) Classified() bool {
	return a.Category != nil
}

// FeedEntry is one item extracted from a parsed feed document.
// Body carries the entry summary (description) and may be empty.
type FeedEntry struct {
	Title string
	Link  string
	Body  string
}

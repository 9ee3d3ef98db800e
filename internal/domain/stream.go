package domain

// Category is a game or activity streams are grouped under.
type Category struct {
	Name string
	ID   string
}

// StreamEntry is one live broadcast as returned by the streams listing.
type StreamEntry struct {
	Language      string
	DisplayName   string
	Title         string
	CategoryID    string
	ViewerCount   int64
	LiveDuration  string // HH:MM, empty when started_at did not parse
	BroadcasterID string
	Tags          string // raw JSON text of the tags value
}

// Page is one page of the streams listing. An empty Cursor marks the last page.
type Page struct {
	Entries []StreamEntry
	Cursor  string
}

// HasNext reports whether another page follows.
func (p *Page) HasNext() bool {
	return p.Cursor != ""
}

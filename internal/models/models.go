package models

import (
	"time"
)

// ReaderRecord represents a single reader access row.
// Nullable columns are pointers so that "missing" stays distinguishable
// from a zero value until aggregation.
type ReaderRecord struct {
	Email      string     `json:"email"`
	Country    *string    `json:"country"`
	Industry   *string    `json:"industry"`
	Position   *string    `json:"position"`
	Activity   *string    `json:"activity,omitempty"`
	Reads      *int64     `json:"reads"`
	LastAccess *time.Time `json:"last_access"`
}

// ArticleRecord represents a published article row.
type ArticleRecord struct {
	Title    *string    `json:"title"`
	Date     *time.Time `json:"date"`
	AuthorID string     `json:"author_id"`
	Reads    *int64     `json:"reads"`
}

// AuthorRecord represents an author row.
type AuthorRecord struct {
	AuthorID string `json:"author_id"`
	Name     string `json:"author_name"`
}

// JoinedArticle is an ArticleRecord left-joined with its AuthorRecord.
// AuthorName is nil when the article's author id has no match.
type JoinedArticle struct {
	Title        *string    `json:"title"`
	Date         *time.Time `json:"date"`
	AuthorID     string     `json:"author_id"`
	ArticleReads *int64     `json:"article_reads"`
	AuthorName   *string    `json:"author_name"`
}

// Dataset is one loaded snapshot of the three sources plus the join.
type Dataset struct {
	Readers     []ReaderRecord  `json:"readers"`
	Articles    []ArticleRecord `json:"articles"`
	Authors     []AuthorRecord  `json:"authors"`
	Joined      []JoinedArticle `json:"joined"`
	HasActivity bool            `json:"has_activity"`
	LoadedAt    time.Time       `json:"loaded_at"`
}

// SourceInfo describes a loaded snapshot for the info endpoint.
type SourceInfo struct {
	Backend      string    `json:"backend"`
	ReaderCount  int       `json:"reader_count"`
	ArticleCount int       `json:"article_count"`
	AuthorCount  int       `json:"author_count"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// Summary holds the dashboard KPIs over the filtered reader set.
type Summary struct {
	TotalReaders int   `json:"total_readers"`
	TotalReads   int64 `json:"total_reads"`
}

// KeyTotal is one grouped sum entry (topic reads, author reads, ...).
type KeyTotal struct {
	Key   string `json:"key"`
	Total int64  `json:"total"`
}

// KeyCount is one frequency entry (positions, countries, terms, ...).
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TopArticle is the projection used for the top articles list.
type TopArticle struct {
	Title      *string    `json:"title"`
	AuthorName *string    `json:"author_name"`
	Reads      *int64     `json:"reads"`
	Date       *time.Time `json:"date"`
}

// FilterOptions lists the values the dashboard can filter on.
type FilterOptions struct {
	Countries  []string `json:"countries"`
	Industries []string `json:"industries"`
	Windows    []string `json:"windows"`
}

// ArticleSet is the response shape of the raw article listing.
type ArticleSet struct {
	Articles []JoinedArticle `json:"articles"`
	Count    int             `json:"count"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Query represents OData-style query parameters for the article listing.
type Query struct {
	Filter  string   `json:"filter"`
	OrderBy string   `json:"orderby"`
	Select  []string `json:"select"`
	Search  []string `json:"search"` // Global search terms (OR logic)
	Top     int      `json:"top"`
	Skip    int      `json:"skip"`
}

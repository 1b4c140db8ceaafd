package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReaderRecord_Fields(t *testing.T) {
	country := "Germany"
	industry := "Legal"
	position := "Partner"
	activity := "Newsletter"
	reads := int64(12)
	lastAccess := time.Now()

	reader := ReaderRecord{
		Email:      "a@example.com",
		Country:    &country,
		Industry:   &industry,
		Position:   &position,
		Activity:   &activity,
		Reads:      &reads,
		LastAccess: &lastAccess,
	}

	if reader.Email != "a@example.com" {
		t.Errorf("Expected Email 'a@example.com', got '%s'", reader.Email)
	}

	if reader.Country == nil || *reader.Country != "Germany" {
		t.Error("Expected Country 'Germany'")
	}

	if reader.Reads == nil || *reader.Reads != 12 {
		t.Error("Expected Reads 12")
	}

	if reader.LastAccess == nil {
		t.Error("Expected LastAccess to be set")
	}
}

func TestReaderRecord_NullableFields(t *testing.T) {
	reader := ReaderRecord{Email: "a@example.com"}

	// All nullable columns default to nil, not zero values.
	if reader.Country != nil || reader.Industry != nil || reader.Position != nil {
		t.Error("Expected nil string columns on an empty record")
	}
	if reader.Reads != nil {
		t.Error("Expected nil Reads on an empty record")
	}
	if reader.LastAccess != nil {
		t.Error("Expected nil LastAccess on an empty record")
	}
}

func TestJoinedArticle_JSON(t *testing.T) {
	title := "Tax reform outlook"
	reads := int64(100)
	name := "Alice"

	article := JoinedArticle{
		Title:        &title,
		AuthorID:     "1",
		ArticleReads: &reads,
		AuthorName:   &name,
	}

	data, err := json.Marshal(article)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if decoded["article_reads"] != float64(100) {
		t.Errorf("Expected article_reads 100, got %v", decoded["article_reads"])
	}
	if decoded["author_name"] != "Alice" {
		t.Errorf("Expected author_name 'Alice', got %v", decoded["author_name"])
	}

	// Nil date serializes as null, keeping missing distinguishable.
	if value, found := decoded["date"]; !found || value != nil {
		t.Error("Expected nil date to serialize as null")
	}
}

func TestDataset_Fields(t *testing.T) {
	ds := Dataset{
		Readers:     []ReaderRecord{{Email: "a@example.com"}},
		Articles:    []ArticleRecord{{AuthorID: "1"}},
		Authors:     []AuthorRecord{{AuthorID: "1", Name: "Alice"}},
		Joined:      []JoinedArticle{{AuthorID: "1"}},
		HasActivity: true,
		LoadedAt:    time.Now(),
	}

	if len(ds.Readers) != 1 || len(ds.Articles) != 1 || len(ds.Authors) != 1 {
		t.Error("Expected one row per table")
	}
	if len(ds.Joined) != 1 {
		t.Errorf("Expected 1 joined row, got %d", len(ds.Joined))
	}
	if !ds.HasActivity {
		t.Error("Expected HasActivity to be set")
	}
}

func TestQuery_Fields(t *testing.T) {
	query := Query{
		Filter:  "article_reads gt 10",
		OrderBy: "date desc",
		Select:  []string{"title"},
		Search:  []string{"tax"},
		Top:     5,
		Skip:    10,
	}

	if query.Filter != "article_reads gt 10" {
		t.Errorf("Expected filter expression, got '%s'", query.Filter)
	}
	if query.Top != 5 || query.Skip != 10 {
		t.Errorf("Expected Top 5 and Skip 10, got %d and %d", query.Top, query.Skip)
	}
}

package filter

import (
	"testing"
	"time"

	"readlytics/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func testReaders() []models.ReaderRecord {
	now := time.Now()
	return []models.ReaderRecord{
		{Email: "a@example.com", Country: strPtr("Germany"), Industry: strPtr("Legal"), LastAccess: timePtr(now.AddDate(0, 0, -1))},
		{Email: "b@example.com", Country: strPtr("France"), Industry: strPtr("Legal"), LastAccess: timePtr(now.AddDate(0, 0, -40))},
		{Email: "c@example.com", Country: nil, Industry: strPtr("Finance"), LastAccess: nil},
		{Email: "d@example.com", Country: strPtr("Germany"), Industry: strPtr("Finance"), LastAccess: timePtr(now.AddDate(0, 0, -100))},
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input    string
		expected Window
		wantErr  bool
	}{
		{"", WindowAll, false},
		{"all", WindowAll, false},
		{"7d", Window7d, false},
		{"30d", Window30d, false},
		{"90d", Window90d, false},
		{"365d", WindowAll, true},
		{"last week", WindowAll, true},
	}

	for _, tt := range tests {
		window, err := ParseWindow(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Expected error for window '%s', got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Expected no error for window '%s', got %v", tt.input, err)
		}
		if window != tt.expected {
			t.Errorf("Expected window %s for '%s', got %s", tt.expected, tt.input, window)
		}
	}
}

func TestWindow_Cutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	if cutoff := WindowAll.Cutoff(now); cutoff != nil {
		t.Errorf("Expected nil cutoff for all time, got %v", cutoff)
	}

	cutoff := Window7d.Cutoff(now)
	if cutoff == nil {
		t.Fatal("Expected cutoff for 7d window, got nil")
	}
	if !cutoff.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("Expected cutoff 7 days before now, got %v", cutoff)
	}
}

func TestReaders_CountryFilter(t *testing.T) {
	readers := testReaders()

	filtered := Readers(readers, "Germany", All, nil)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 German readers, got %d", len(filtered))
	}
	for _, reader := range filtered {
		if reader.Country == nil || *reader.Country != "Germany" {
			t.Error("Expected only German readers in result")
		}
	}
}

func TestReaders_AllMatchesEverything(t *testing.T) {
	readers := testReaders()

	// Filtering with "All" must return the full base table, so a
	// specific filter followed by "All" on the same input is
	// non-destructive.
	_ = Readers(readers, "Germany", All, nil)
	filtered := Readers(readers, All, All, nil)

	if len(filtered) != len(readers) {
		t.Errorf("Expected %d rows for 'All' filter, got %d", len(readers), len(filtered))
	}
}

func TestReaders_NullNeverMatchesSpecific(t *testing.T) {
	readers := testReaders()

	filtered := Readers(readers, "Germany", All, nil)
	for _, reader := range filtered {
		if reader.Country == nil {
			t.Error("Expected rows with nil country to be excluded by a specific filter")
		}
	}
}

func TestReaders_PredicatesCompose(t *testing.T) {
	readers := testReaders()

	filtered := Readers(readers, "Germany", "Finance", nil)
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 reader matching both predicates, got %d", len(filtered))
	}
	if filtered[0].Email != "d@example.com" {
		t.Errorf("Expected reader d@example.com, got %s", filtered[0].Email)
	}
}

func TestReaders_CutoffBoundaryInclusive(t *testing.T) {
	cutoff := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	readers := []models.ReaderRecord{
		{Email: "exact@example.com", LastAccess: timePtr(cutoff)},
		{Email: "before@example.com", LastAccess: timePtr(cutoff.Add(-time.Second))},
		{Email: "null@example.com", LastAccess: nil},
	}

	filtered := Readers(readers, All, All, &cutoff)

	if len(filtered) != 1 {
		t.Fatalf("Expected 1 reader at or after cutoff, got %d", len(filtered))
	}
	if filtered[0].Email != "exact@example.com" {
		t.Error("Expected the row dated exactly at the cutoff to be included")
	}
}

func TestReaders_InputUnmodified(t *testing.T) {
	readers := testReaders()
	original := len(readers)

	Readers(readers, "Germany", All, nil)

	if len(readers) != original {
		t.Error("Expected input slice to remain unmodified")
	}
	if readers[1].Country == nil || *readers[1].Country != "France" {
		t.Error("Expected input rows to remain unmodified")
	}
}

func TestReaders_StableOrder(t *testing.T) {
	readers := testReaders()

	filtered := Readers(readers, "Germany", All, nil)
	if filtered[0].Email != "a@example.com" || filtered[1].Email != "d@example.com" {
		t.Error("Expected filter to preserve relative input order")
	}
}

func TestArticles_CutoffFilter(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := []models.JoinedArticle{
		{AuthorID: "1", Date: timePtr(cutoff.AddDate(0, 0, 5))},
		{AuthorID: "2", Date: timePtr(cutoff.AddDate(0, 0, -5))},
		{AuthorID: "3", Date: nil},
	}

	filtered := Articles(articles, &cutoff)
	if len(filtered) != 1 {
		t.Fatalf("Expected 1 article after cutoff, got %d", len(filtered))
	}
	if filtered[0].AuthorID != "1" {
		t.Error("Expected only the recent article to pass the cutoff")
	}

	all := Articles(articles, nil)
	if len(all) != 3 {
		t.Errorf("Expected all articles with nil cutoff, got %d", len(all))
	}
}

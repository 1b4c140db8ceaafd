package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func newTestCSVSource(t *testing.T, readers, articles, authors string) *CSVSource {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "readers.csv", readers)
	writeFile(t, dir, "articles.csv", articles)
	writeFile(t, dir, "authors.csv", authors)
	return NewCSVSource(CSVConfig{
		Dir:         dir,
		ReaderFile:  "readers.csv",
		ArticleFile: "articles.csv",
		AuthorFile:  "authors.csv",
		Delimiter:   ',',
	})
}

const testArticlesCSV = `Title,Date,Author Id,Reads
Tax reform outlook,2025-03-01,1,100
,not-a-date,2,
`

const testAuthorsCSV = `Author Id,Author Name
1,Alice
2,Bob
`

func TestCSVSource_LoadReaders(t *testing.T) {
	readers := ` Email , Country ,Industry,Position,Activity Desc,Reads, Last Access Date
a@example.com,Germany,Legal,Partner,Newsletter,12,2025-03-01
b@example.com,,Finance,Analyst,,not-a-number,bad-date
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	rows, hasActivity, err := source.LoadReaders()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !hasActivity {
		t.Error("Expected activity column to be detected")
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 reader rows, got %d", len(rows))
	}

	// Column names are trimmed, so lookups succeed despite the padded
	// header cells.
	first := rows[0]
	if first.Email != "a@example.com" {
		t.Errorf("Expected email a@example.com, got '%s'", first.Email)
	}
	if first.Country == nil || *first.Country != "Germany" {
		t.Error("Expected country Germany")
	}
	if first.Reads == nil || *first.Reads != 12 {
		t.Error("Expected reads 12")
	}
	if first.LastAccess == nil {
		t.Error("Expected parsed last access date")
	}
	if first.Activity == nil || *first.Activity != "Newsletter" {
		t.Error("Expected activity Newsletter")
	}

	// Malformed values recover to nil, never an error.
	second := rows[1]
	if second.Country != nil {
		t.Error("Expected nil country for empty cell")
	}
	if second.Reads != nil {
		t.Error("Expected nil reads for unparseable value")
	}
	if second.LastAccess != nil {
		t.Error("Expected nil last access for unparseable date")
	}
}

func TestCSVSource_LoadReaders_NoActivityColumn(t *testing.T) {
	readers := `Email,Country,Industry,Position,Reads,Last Access Date
a@example.com,Germany,Legal,Partner,12,2025-03-01
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	rows, hasActivity, err := source.LoadReaders()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hasActivity {
		t.Error("Expected activity column to be reported absent")
	}
	if rows[0].Activity != nil {
		t.Error("Expected nil activity when the column is absent")
	}
}

func TestCSVSource_LoadReaders_MissingRequiredColumn(t *testing.T) {
	readers := `Email,Industry,Position,Reads,Last Access Date
a@example.com,Legal,Partner,12,2025-03-01
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	_, _, err := source.LoadReaders()
	if err == nil {
		t.Fatal("Expected error for missing Country column, got nil")
	}
}

func TestCSVSource_LoadArticles(t *testing.T) {
	readers := `Email,Country,Industry,Position,Reads,Last Access Date
a@example.com,Germany,Legal,Partner,12,2025-03-01
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	articles, err := source.LoadArticles()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 article rows, got %d", len(articles))
	}

	if articles[0].Title == nil || *articles[0].Title != "Tax reform outlook" {
		t.Error("Expected first article title")
	}
	if articles[0].Date == nil {
		t.Error("Expected parsed date on first article")
	}
	if articles[0].Reads == nil || *articles[0].Reads != 100 {
		t.Error("Expected reads 100 on first article")
	}

	if articles[1].Title != nil {
		t.Error("Expected nil title for empty cell")
	}
	if articles[1].Date != nil {
		t.Error("Expected nil date for unparseable value")
	}
	if articles[1].Reads != nil {
		t.Error("Expected nil reads for empty cell")
	}
}

func TestCSVSource_LoadAuthors(t *testing.T) {
	readers := `Email,Country,Industry,Position,Reads,Last Access Date
a@example.com,Germany,Legal,Partner,12,2025-03-01
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	authors, err := source.LoadAuthors()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("Expected 2 author rows, got %d", len(authors))
	}
	if authors[0].AuthorID != "1" || authors[0].Name != "Alice" {
		t.Errorf("Expected author 1/Alice, got %s/%s", authors[0].AuthorID, authors[0].Name)
	}
}

func TestCSVSource_LoadRepeatable(t *testing.T) {
	readers := `Email,Country,Industry,Position,Reads,Last Access Date
a@example.com,Germany,Legal,Partner,12,2025-03-01
`
	source := newTestCSVSource(t, readers, testArticlesCSV, testAuthorsCSV)

	first, _, err := source.LoadReaders()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, _, err := source.LoadReaders()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first) != len(second) {
		t.Errorf("Expected identical output on repeated load, got %d and %d rows", len(first), len(second))
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	source := NewCSVSource(CSVConfig{
		Dir:         t.TempDir(),
		ReaderFile:  "nope.csv",
		ArticleFile: "nope.csv",
		AuthorFile:  "nope.csv",
	})

	if _, _, err := source.LoadReaders(); err == nil {
		t.Error("Expected error for unreadable source, got nil")
	}
}

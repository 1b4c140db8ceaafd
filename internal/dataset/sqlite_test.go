package dataset

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestSQLiteSource(t *testing.T) *SQLiteSource {
	t.Helper()

	path := filepath.Join(t.TempDir(), "analytics.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	defer db.Close()

	setup := []string{
		`CREATE TABLE readers (email TEXT, country TEXT, industry TEXT, position TEXT, activity TEXT, reads INTEGER, last_access TEXT)`,
		`CREATE TABLE articles (title TEXT, date TEXT, author_id TEXT, reads INTEGER)`,
		`CREATE TABLE authors (author_id TEXT, author_name TEXT)`,
		`INSERT INTO readers VALUES ('a@example.com', 'Germany', 'Legal', 'Partner', 'Newsletter', 12, '2025-03-01')`,
		`INSERT INTO readers VALUES ('b@example.com', NULL, 'Finance', 'Analyst', NULL, NULL, 'bad-date')`,
		`INSERT INTO articles VALUES ('Tax reform outlook', '2025-03-01', '1', 100)`,
		`INSERT INTO articles VALUES (NULL, NULL, '2', NULL)`,
		`INSERT INTO authors VALUES ('1', 'Alice')`,
		`INSERT INTO authors VALUES ('2', 'Bob')`,
	}
	for _, stmt := range setup {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to set up test database: %v", err)
		}
	}

	source, err := NewSQLiteSource(path)
	if err != nil {
		t.Fatalf("Failed to open sqlite source: %v", err)
	}
	t.Cleanup(func() { source.Close() })

	return source
}

func TestSQLiteSource_LoadReaders(t *testing.T) {
	source := newTestSQLiteSource(t)

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

	first := rows[0]
	if first.Email != "a@example.com" {
		t.Errorf("Expected email a@example.com, got '%s'", first.Email)
	}
	if first.Reads == nil || *first.Reads != 12 {
		t.Error("Expected reads 12")
	}
	if first.LastAccess == nil {
		t.Error("Expected parsed last access date")
	}

	second := rows[1]
	if second.Country != nil {
		t.Error("Expected nil country for NULL cell")
	}
	if second.Reads != nil {
		t.Error("Expected nil reads for NULL cell")
	}
	// Same tolerance as the CSV backend: bad text dates become nil.
	if second.LastAccess != nil {
		t.Error("Expected nil last access for unparseable date")
	}
}

func TestSQLiteSource_LoadArticlesAndAuthors(t *testing.T) {
	source := newTestSQLiteSource(t)

	articles, err := source.LoadArticles()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 article rows, got %d", len(articles))
	}
	if articles[0].Reads == nil || *articles[0].Reads != 100 {
		t.Error("Expected reads 100 on first article")
	}
	if articles[1].Title != nil || articles[1].Date != nil || articles[1].Reads != nil {
		t.Error("Expected NULL article cells to load as nil")
	}

	authors, err := source.LoadAuthors()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("Expected 2 author rows, got %d", len(authors))
	}
	if authors[1].Name != "Bob" {
		t.Errorf("Expected author Bob, got '%s'", authors[1].Name)
	}
}

func TestSQLiteSource_Backend(t *testing.T) {
	source := newTestSQLiteSource(t)
	if source.Backend() != "sqlite" {
		t.Errorf("Expected backend 'sqlite', got '%s'", source.Backend())
	}
}

func TestSQLiteSource_MissingDatabase(t *testing.T) {
	if _, err := NewSQLiteSource(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Expected error opening a missing database read-only, got nil")
	}
}

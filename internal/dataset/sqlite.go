package dataset

import (
	"database/sql"
	"fmt"
	"time"

	"readlytics/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource loads the three tables from a SQLite database opened
// read-only. Expected tables: readers(email, country, industry,
// position, activity, reads, last_access), articles(title, date,
// author_id, reads), authors(author_id, author_name). Dates are stored
// as text and parsed with the same tolerance as the CSV backend.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

func NewSQLiteSource(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database %s: %w", path, err)
	}

	return &SQLiteSource{db: db, path: path}, nil
}

func (s *SQLiteSource) Backend() string {
	return "sqlite"
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) hasColumn(tableName, column string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		tableName, column,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteSource) LoadReaders() ([]models.ReaderRecord, bool, error) {
	hasActivity, err := s.hasColumn("readers", "activity")
	if err != nil {
		return nil, false, fmt.Errorf("failed to inspect readers table: %w", err)
	}

	query := "SELECT email, country, industry, position, reads, last_access FROM readers"
	if hasActivity {
		query = "SELECT email, country, industry, position, reads, last_access, activity FROM readers"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query readers: %w", err)
	}
	defer rows.Close()

	var readers []models.ReaderRecord
	for rows.Next() {
		var email sql.NullString
		var country, industry, position, lastAccess, activity sql.NullString
		var reads sql.NullInt64

		if hasActivity {
			err = rows.Scan(&email, &country, &industry, &position, &reads, &lastAccess, &activity)
		} else {
			err = rows.Scan(&email, &country, &industry, &position, &reads, &lastAccess)
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to scan reader row: %w", err)
		}

		reader := models.ReaderRecord{
			Email:      email.String,
			Country:    nullString(country),
			Industry:   nullString(industry),
			Position:   nullString(position),
			Reads:      nullInt(reads),
			LastAccess: nullDate(lastAccess),
		}
		if hasActivity {
			reader.Activity = nullString(activity)
		}
		readers = append(readers, reader)
	}

	return readers, hasActivity, rows.Err()
}

func (s *SQLiteSource) LoadArticles() ([]models.ArticleRecord, error) {
	rows, err := s.db.Query("SELECT title, date, author_id, reads FROM articles")
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.ArticleRecord
	for rows.Next() {
		var title, date, authorID sql.NullString
		var reads sql.NullInt64

		if err := rows.Scan(&title, &date, &authorID, &reads); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		articles = append(articles, models.ArticleRecord{
			Title:    nullString(title),
			Date:     nullDate(date),
			AuthorID: authorID.String,
			Reads:    nullInt(reads),
		})
	}

	return articles, rows.Err()
}

func (s *SQLiteSource) LoadAuthors() ([]models.AuthorRecord, error) {
	rows, err := s.db.Query("SELECT author_id, author_name FROM authors")
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []models.AuthorRecord
	for rows.Next() {
		var authorID, name sql.NullString

		if err := rows.Scan(&authorID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}

		authors = append(authors, models.AuthorRecord{
			AuthorID: authorID.String,
			Name:     name.String,
		})
	}

	return authors, rows.Err()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return optString(v.String)
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullDate(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	return parseDate(v.String)
}

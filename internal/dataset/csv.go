package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"readlytics/internal/models"
)

// CSVConfig holds the location of the three delimiter-separated sources.
type CSVConfig struct {
	Dir         string
	ReaderFile  string
	ArticleFile string
	AuthorFile  string
	Delimiter   rune
}

// CSVSource loads the three tables from delimiter-separated files with a
// header row. Column names are whitespace-trimmed before lookup.
type CSVSource struct {
	cfg CSVConfig
}

func NewCSVSource(cfg CSVConfig) *CSVSource {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	return &CSVSource{cfg: cfg}
}

func (s *CSVSource) Backend() string {
	return "csv"
}

func (s *CSVSource) Close() error {
	return nil
}

// table is one parsed file: trimmed header names mapped to column
// positions, plus the data rows.
type table struct {
	columns map[string]int
	rows    [][]string
}

func (s *CSVSource) readTable(file string) (*table, error) {
	path := filepath.Join(s.cfg.Dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = s.cfg.Delimiter
	// Ragged rows are tolerated; missing cells read as empty.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty: header row required", path)
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	return &table{
		columns: columns,
		rows:    records[1:],
	}, nil
}

// cell returns the value at the named column, or "" when the row is too
// short to contain it.
func (t *table) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (t *table) has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// require returns an error naming the first missing column, if any.
func (t *table) require(file string, columns ...string) error {
	for _, column := range columns {
		if !t.has(column) {
			return fmt.Errorf("%s: required column '%s' not found", file, column)
		}
	}
	return nil
}

func (s *CSVSource) LoadReaders() ([]models.ReaderRecord, bool, error) {
	tbl, err := s.readTable(s.cfg.ReaderFile)
	if err != nil {
		return nil, false, err
	}
	if err := tbl.require(s.cfg.ReaderFile, "Email", "Country", "Industry", "Position", "Reads", "Last Access Date"); err != nil {
		return nil, false, err
	}

	// "Activity Desc" is optional; its absence only disables the
	// activity breakdown.
	hasActivity := tbl.has("Activity Desc")

	readers := make([]models.ReaderRecord, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		reader := models.ReaderRecord{
			Email:      strings.TrimSpace(tbl.cell(row, "Email")),
			Country:    optString(tbl.cell(row, "Country")),
			Industry:   optString(tbl.cell(row, "Industry")),
			Position:   optString(tbl.cell(row, "Position")),
			Reads:      parseCount(tbl.cell(row, "Reads")),
			LastAccess: parseDate(tbl.cell(row, "Last Access Date")),
		}
		if hasActivity {
			reader.Activity = optString(tbl.cell(row, "Activity Desc"))
		}
		readers = append(readers, reader)
	}

	return readers, hasActivity, nil
}

func (s *CSVSource) LoadArticles() ([]models.ArticleRecord, error) {
	tbl, err := s.readTable(s.cfg.ArticleFile)
	if err != nil {
		return nil, err
	}
	if err := tbl.require(s.cfg.ArticleFile, "Title", "Date", "Author Id", "Reads"); err != nil {
		return nil, err
	}

	articles := make([]models.ArticleRecord, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		articles = append(articles, models.ArticleRecord{
			Title:    optString(tbl.cell(row, "Title")),
			Date:     parseDate(tbl.cell(row, "Date")),
			AuthorID: strings.TrimSpace(tbl.cell(row, "Author Id")),
			Reads:    parseCount(tbl.cell(row, "Reads")),
		})
	}

	return articles, nil
}

func (s *CSVSource) LoadAuthors() ([]models.AuthorRecord, error) {
	tbl, err := s.readTable(s.cfg.AuthorFile)
	if err != nil {
		return nil, err
	}
	if err := tbl.require(s.cfg.AuthorFile, "Author Id", "Author Name"); err != nil {
		return nil, err
	}

	authors := make([]models.AuthorRecord, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		authors = append(authors, models.AuthorRecord{
			AuthorID: strings.TrimSpace(tbl.cell(row, "Author Id")),
			Name:     strings.TrimSpace(tbl.cell(row, "Author Name")),
		})
	}

	return authors, nil
}

package dataset

import (
	"fmt"
	"path/filepath"

	"readlytics/internal/config"
)

// New creates the dataset source selected by the configuration.
func New(cfg *config.Config) (Source, error) {
	switch cfg.DatasetSource {
	case "", "csv":
		return NewCSVSource(CSVConfig{
			Dir:         cfg.DataDir,
			ReaderFile:  cfg.ReaderFile,
			ArticleFile: cfg.ArticleFile,
			AuthorFile:  cfg.AuthorFile,
			Delimiter:   cfg.CSVDelimiter,
		}), nil
	case "sqlite":
		return NewSQLiteSource(filepath.Join(cfg.DataDir, cfg.SQLiteFile))
	default:
		return nil, fmt.Errorf("unknown dataset source '%s'", cfg.DatasetSource)
	}
}

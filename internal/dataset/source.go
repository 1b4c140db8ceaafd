package dataset

import (
	"readlytics/internal/models"
)

// Source defines the interface for dataset backends. Loads are pure
// reads: calling them repeatedly on unchanged input yields identical
// output. The boolean returned by LoadReaders reports whether the
// optional activity column was present in the source.
type Source interface {
	LoadReaders() ([]models.ReaderRecord, bool, error)
	LoadArticles() ([]models.ArticleRecord, error)
	LoadAuthors() ([]models.AuthorRecord, error)
	Backend() string
	Close() error
}

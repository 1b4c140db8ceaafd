package analytics

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"readlytics/internal/cache"
	"readlytics/internal/dataset"
	"readlytics/internal/derive"
	"readlytics/internal/filter"
	"readlytics/internal/join"
	"readlytics/internal/models"
	"readlytics/internal/query"

	"github.com/pemistahl/lingua-go"
)

// Filters holds one request's filter selection. Country and Industry
// apply to reader-derived results, the window applies to both sides.
type Filters struct {
	Country  string
	Industry string
	Window   filter.Window
}

// Engine owns the dataset snapshot cache and answers all dashboard
// aggregates. The underlying pipeline functions are pure over explicit
// inputs; only the snapshot load goes through the cache.
type Engine struct {
	cacheManager *cache.Manager
	source       dataset.Source
	classifier   *derive.Classifier
	tokenizer    *derive.Tokenizer
	queryEngine  *query.Engine
	detector     lingua.LanguageDetector
	now          func() time.Time
	mu           sync.Mutex
}

func New(cacheManager *cache.Manager, source dataset.Source, topicKeywords, stopwords []string) *Engine {
	return &Engine{
		cacheManager: cacheManager,
		source:       source,
		classifier:   derive.NewClassifier(topicKeywords),
		tokenizer:    derive.NewTokenizer(stopwords),
		queryEngine:  query.NewEngine(),
		detector:     newDetector(),
		now:          time.Now,
	}
}

// Dataset returns the loaded snapshot, loading from the source on a
// cache miss. The mutex keeps concurrent misses from loading twice.
func (e *Engine) Dataset() (*models.Dataset, error) {
	if ds, found := e.cacheManager.GetSnapshot(); found {
		return ds, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check after acquiring the lock.
	if ds, found := e.cacheManager.GetSnapshot(); found {
		return ds, nil
	}

	ds, err := e.load()
	if err != nil {
		return nil, err
	}
	e.cacheManager.SetSnapshot(ds, 0)
	return ds, nil
}

// Refresh drops the snapshot and reloads from the source.
func (e *Engine) Refresh() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ds, err := e.load()
	if err != nil {
		return err
	}
	e.cacheManager.SetSnapshot(ds, 0)
	return nil
}

func (e *Engine) load() (*models.Dataset, error) {
	readers, hasActivity, err := e.source.LoadReaders()
	if err != nil {
		return nil, fmt.Errorf("failed to load readers: %w", err)
	}

	articles, err := e.source.LoadArticles()
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}

	authors, err := e.source.LoadAuthors()
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	ds := &models.Dataset{
		Readers:     readers,
		Articles:    articles,
		Authors:     authors,
		Joined:      join.LeftJoin(articles, authors),
		HasActivity: hasActivity,
		LoadedAt:    e.now(),
	}

	log.Printf("Loaded dataset from %s source: %d readers, %d articles, %d authors",
		e.source.Backend(), len(readers), len(articles), len(authors))

	return ds, nil
}

// Info describes the current snapshot.
func (e *Engine) Info() (*models.SourceInfo, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}
	return &models.SourceInfo{
		Backend:      e.source.Backend(),
		ReaderCount:  len(ds.Readers),
		ArticleCount: len(ds.Articles),
		AuthorCount:  len(ds.Authors),
		LoadedAt:     ds.LoadedAt,
	}, nil
}

func (e *Engine) filteredReaders(f Filters) ([]models.ReaderRecord, bool, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, false, err
	}
	cutoff := f.Window.Cutoff(e.now())
	return filter.Readers(ds.Readers, f.Country, f.Industry, cutoff), ds.HasActivity, nil
}

func (e *Engine) filteredArticles(f Filters) ([]models.JoinedArticle, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}
	cutoff := f.Window.Cutoff(e.now())
	return filter.Articles(ds.Joined, cutoff), nil
}

// Summary computes the dashboard KPIs: distinct reader emails and
// null-safe total reads over the filtered reader set.
func (e *Engine) Summary(f Filters) (*models.Summary, error) {
	readers, _, err := e.filteredReaders(f)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var totalReads int64
	for _, reader := range readers {
		if reader.Email != "" {
			seen[reader.Email] = true
		}
		if reader.Reads != nil {
			totalReads += *reader.Reads
		}
	}

	return &models.Summary{
		TotalReaders: len(seen),
		TotalReads:   totalReads,
	}, nil
}

// FilterOptions lists the distinct countries and industries present in
// the reader table, sorted, plus the valid window names.
func (e *Engine) FilterOptions() (*models.FilterOptions, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}

	return &models.FilterOptions{
		Countries:  distinctSorted(ds.Readers, func(r models.ReaderRecord) *string { return r.Country }),
		Industries: distinctSorted(ds.Readers, func(r models.ReaderRecord) *string { return r.Industry }),
		Windows:    filter.Windows(),
	}, nil
}

// TopPositions ranks reader job positions by row count.
func (e *Engine) TopPositions(f Filters, n int) ([]models.KeyCount, error) {
	readers, _, err := e.filteredReaders(f)
	if err != nil {
		return nil, err
	}
	return CountTopN(readers, func(r models.ReaderRecord) (string, bool) {
		return deref(r.Position)
	}, n), nil
}

// ActivityBreakdown counts reader rows per activity source. The column
// is optional; when the source had no activity column the result is
// empty rather than an error.
func (e *Engine) ActivityBreakdown(f Filters) ([]models.KeyCount, error) {
	readers, hasActivity, err := e.filteredReaders(f)
	if err != nil {
		return nil, err
	}
	if !hasActivity {
		return []models.KeyCount{}, nil
	}
	return CountTopN(readers, func(r models.ReaderRecord) (string, bool) {
		return deref(r.Activity)
	}, 0), nil
}

// CountryCounts counts reader rows per country (the choropleth feed).
func (e *Engine) CountryCounts(f Filters) ([]models.KeyCount, error) {
	readers, _, err := e.filteredReaders(f)
	if err != nil {
		return nil, err
	}
	return CountTopN(readers, func(r models.ReaderRecord) (string, bool) {
		return deref(r.Country)
	}, 0), nil
}

// TopTopics classifies each filtered article title and sums reads per
// topic.
func (e *Engine) TopTopics(f Filters, n int) ([]models.KeyTotal, error) {
	articles, err := e.filteredArticles(f)
	if err != nil {
		return nil, err
	}
	return GroupSumTopN(articles, func(a models.JoinedArticle) (string, bool) {
		return e.classifier.Classify(a.Title), true
	}, func(a models.JoinedArticle) *int64 {
		return a.ArticleReads
	}, n), nil
}

// TopKeywords ranks stopword-filtered title terms by frequency.
func (e *Engine) TopKeywords(f Filters, n int) ([]models.KeyCount, error) {
	articles, err := e.filteredArticles(f)
	if err != nil {
		return nil, err
	}
	titles := make([]*string, 0, len(articles))
	for _, article := range articles {
		titles = append(titles, article.Title)
	}
	return RankTopN(e.tokenizer.Frequencies(titles), n), nil
}

// TopAuthors sums article reads per author name. Articles without a
// matched author are skipped, as are rows with no author name.
func (e *Engine) TopAuthors(f Filters, n int) ([]models.KeyTotal, error) {
	articles, err := e.filteredArticles(f)
	if err != nil {
		return nil, err
	}
	return GroupSumTopN(articles, func(a models.JoinedArticle) (string, bool) {
		return deref(a.AuthorName)
	}, func(a models.JoinedArticle) *int64 {
		return a.ArticleReads
	}, n), nil
}

// TopArticlesList ranks individual articles by reads.
func (e *Engine) TopArticlesList(f Filters, n int) ([]models.TopArticle, error) {
	articles, err := e.filteredArticles(f)
	if err != nil {
		return nil, err
	}
	return TopArticles(articles, n), nil
}

// QueryArticles evaluates an OData-style query over the filtered joined
// articles.
func (e *Engine) QueryArticles(f Filters, q *models.Query) (*models.ArticleSet, error) {
	ds, err := e.Dataset()
	if err != nil {
		return nil, err
	}

	cutoff := f.Window.Cutoff(e.now())
	articles := filter.Articles(ds.Joined, cutoff)

	articles, err = e.queryEngine.Apply(articles, q)
	if err != nil {
		return nil, err
	}

	return &models.ArticleSet{
		Articles: articles,
		Count:    len(articles),
		LoadedAt: ds.LoadedAt,
	}, nil
}

func distinctSorted(readers []models.ReaderRecord, field func(models.ReaderRecord) *string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, reader := range readers {
		value := field(reader)
		if value == nil || seen[*value] {
			continue
		}
		seen[*value] = true
		values = append(values, *value)
	}
	sort.Strings(values)
	return values
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

package analytics

import (
	"readlytics/internal/models"

	"github.com/pemistahl/lingua-go"
)

func newDetector() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.German, lingua.French, lingua.Spanish,
			lingua.Italian, lingua.Portuguese, lingua.Dutch,
		).
		Build()
}

// Languages counts detected title languages over the filtered articles.
// Titles too short or ambiguous to detect are reported as "unknown".
func (e *Engine) Languages(f Filters) ([]models.KeyCount, error) {
	articles, err := e.filteredArticles(f)
	if err != nil {
		return nil, err
	}

	return CountTopN(articles, func(a models.JoinedArticle) (string, bool) {
		if a.Title == nil || *a.Title == "" {
			return "", false
		}
		if language, exists := e.detector.DetectLanguageOf(*a.Title); exists {
			return language.String(), true
		}
		return "unknown", true
	}, 0), nil
}

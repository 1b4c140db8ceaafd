package query

import (
	"fmt"
	"sort"
	"strings"

	"readlytics/internal/models"
)

// Engine applies OData-style queries ($search, $filter, $orderby,
// $skip, $top, $select) to joined article rows.
type Engine struct {
	parser *FilterParser
}

func NewEngine() *Engine {
	return &Engine{parser: NewFilterParser()}
}

func (e *Engine) Apply(articles []models.JoinedArticle, q *models.Query) ([]models.JoinedArticle, error) {
	if q == nil {
		return articles, nil
	}

	// Apply search if specified
	if len(q.Search) > 0 {
		articles = searchArticles(articles, q.Search)
	}

	// Apply filter if specified
	if q.Filter != "" {
		expr, err := e.parser.Parse(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %v", err)
		}

		var filtered []models.JoinedArticle
		for _, article := range articles {
			matches, err := e.parser.Evaluate(expr, article)
			if err != nil {
				return nil, fmt.Errorf("filter evaluation error: %v", err)
			}
			if matches {
				filtered = append(filtered, article)
			}
		}
		articles = filtered
	}

	// Apply sorting
	if q.OrderBy != "" {
		sorted, err := sortArticles(articles, q.OrderBy)
		if err != nil {
			return nil, err
		}
		articles = sorted
	}

	// Apply pagination
	if q.Skip > 0 {
		if q.Skip >= len(articles) {
			articles = []models.JoinedArticle{}
		} else {
			articles = articles[q.Skip:]
		}
	}

	if q.Top > 0 && q.Top < len(articles) {
		articles = articles[:q.Top]
	}

	// Apply field selection
	if len(q.Select) > 0 {
		articles = selectFields(articles, q.Select)
	}

	return articles, nil
}

func searchArticles(articles []models.JoinedArticle, terms []string) []models.JoinedArticle {
	var results []models.JoinedArticle

	for _, article := range articles {
		for _, term := range terms {
			if articleContains(article, term) {
				results = append(results, article)
				break
			}
		}
	}

	return results
}

func articleContains(article models.JoinedArticle, term string) bool {
	term = strings.ToLower(term)

	for _, field := range []string{"title", "author_id", "author_name"} {
		if strings.Contains(strings.ToLower(fieldValue(field, article)), term) {
			return true
		}
	}

	return false
}

// sortArticles orders rows by "$orderby=field [asc|desc]". The sort is
// stable so equal values keep input order.
func sortArticles(articles []models.JoinedArticle, orderBy string) ([]models.JoinedArticle, error) {
	parts := strings.Fields(orderBy)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, fmt.Errorf("invalid $orderby expression: %s", orderBy)
	}

	field := strings.ToLower(parts[0])
	descending := false
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			descending = true
		default:
			return nil, fmt.Errorf("invalid $orderby direction: %s", parts[1])
		}
	}

	sorted := make([]models.JoinedArticle, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareValues(fieldValue(field, sorted[i]), fieldValue(field, sorted[j]))
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted, nil
}

// selectFields projects rows down to the requested fields; unselected
// fields are zeroed. Unknown field names are ignored.
func selectFields(articles []models.JoinedArticle, fields []string) []models.JoinedArticle {
	selected := make(map[string]bool)
	for _, field := range fields {
		selected[strings.ToLower(strings.TrimSpace(field))] = true
	}

	if len(selected) == 0 {
		return articles
	}

	result := make([]models.JoinedArticle, len(articles))
	for i, article := range articles {
		var projected models.JoinedArticle

		if selected["title"] {
			projected.Title = article.Title
		}
		if selected["date"] {
			projected.Date = article.Date
		}
		if selected["author_id"] {
			projected.AuthorID = article.AuthorID
		}
		if selected["article_reads"] {
			projected.ArticleReads = article.ArticleReads
		}
		if selected["author_name"] {
			projected.AuthorName = article.AuthorName
		}

		result[i] = projected
	}

	return result
}

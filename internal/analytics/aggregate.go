package analytics

import (
	"sort"

	"readlytics/internal/models"
)

// Default result lengths for the dashboard widgets.
const (
	TopicN    = 5
	AuthorN   = 10
	PositionN = 10
	TermN     = 15
	ArticleN  = 5
)

// GroupSumTopN groups rows by key, sums the value per group and returns
// the groups ordered by descending total, at most n entries (n <= 0
// returns all). Rows whose key function reports ok=false are skipped;
// nil values contribute 0 to their group's total. The sort is stable, so
// groups with equal totals keep first-seen order.
func GroupSumTopN[T any](rows []T, key func(T) (string, bool), value func(T) *int64, n int) []models.KeyTotal {
	index := make(map[string]int)
	totals := []models.KeyTotal{}

	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		var v int64
		if p := value(row); p != nil {
			v = *p
		}
		if i, seen := index[k]; seen {
			totals[i].Total += v
			continue
		}
		index[k] = len(totals)
		totals = append(totals, models.KeyTotal{Key: k, Total: v})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	return truncate(totals, n)
}

// CountTopN counts row frequency per key with the same skip, ordering
// and truncation rules as GroupSumTopN.
func CountTopN[T any](rows []T, key func(T) (string, bool), n int) []models.KeyCount {
	index := make(map[string]int)
	counts := []models.KeyCount{}

	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, models.KeyCount{Key: k, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return truncate(counts, n)
}

// RankTopN is the sort used by CountTopN applied to pre-counted entries
// (term frequencies arrive already counted by the tokenizer).
func RankTopN(counts []models.KeyCount, n int) []models.KeyCount {
	ranked := make([]models.KeyCount, len(counts))
	copy(ranked, counts)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	return truncate(ranked, n)
}

// TopArticles is a full-row ranking, not a group-by: articles sorted by
// reads descending (nil reads rank as 0), top n projected. The sort is
// stable, so tied rows keep their input order.
func TopArticles(rows []models.JoinedArticle, n int) []models.TopArticle {
	ranked := make([]models.JoinedArticle, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		return readsOrZero(ranked[i].ArticleReads) > readsOrZero(ranked[j].ArticleReads)
	})

	ranked = truncate(ranked, n)

	top := make([]models.TopArticle, 0, len(ranked))
	for _, row := range ranked {
		top = append(top, models.TopArticle{
			Title:      row.Title,
			AuthorName: row.AuthorName,
			Reads:      row.ArticleReads,
			Date:       row.Date,
		})
	}
	return top
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}

func readsOrZero(reads *int64) int64 {
	if reads == nil {
		return 0
	}
	return *reads
}

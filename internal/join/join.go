package join

import (
	"readlytics/internal/models"
)

// LeftJoin merges article rows with author rows on the author id. Every
// article appears in the output; articles whose author id has no match
// keep a nil AuthorName. Duplicate author ids in the author table fan
// out: an article matching k author rows emits k joined rows. With
// unique author ids the output row count equals the input article count.
func LeftJoin(articles []models.ArticleRecord, authors []models.AuthorRecord) []models.JoinedArticle {
	byID := make(map[string][]string, len(authors))
	for _, author := range authors {
		byID[author.AuthorID] = append(byID[author.AuthorID], author.Name)
	}

	joined := make([]models.JoinedArticle, 0, len(articles))
	for _, article := range articles {
		names, matched := byID[article.AuthorID]
		if !matched {
			joined = append(joined, joinedRow(article, nil))
			continue
		}
		for i := range names {
			joined = append(joined, joinedRow(article, &names[i]))
		}
	}

	return joined
}

func joinedRow(article models.ArticleRecord, authorName *string) models.JoinedArticle {
	return models.JoinedArticle{
		Title:        article.Title,
		Date:         article.Date,
		AuthorID:     article.AuthorID,
		ArticleReads: article.Reads,
		AuthorName:   authorName,
	}
}

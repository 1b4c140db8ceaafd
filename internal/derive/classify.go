package derive

import (
	"strings"
)

// TopicOther is the label for titles matching no topic keyword.
const TopicOther = "other"

// Classifier assigns a single topic label to an article title by
// first-match keyword scan: the earliest keyword in the configured list
// that occurs as a substring of the lowercased title wins, regardless of
// where it appears in the text.
type Classifier struct {
	keywords []string
}

// NewClassifier creates a classifier over the given keyword list. The
// list order is the match priority.
func NewClassifier(keywords []string) *Classifier {
	lowered := make([]string, len(keywords))
	for i, keyword := range keywords {
		lowered[i] = strings.ToLower(keyword)
	}
	return &Classifier{keywords: lowered}
}

// Classify returns the topic for a title. A nil title is treated as the
// empty string and classifies as "other".
func (c *Classifier) Classify(title *string) string {
	if title == nil {
		return TopicOther
	}
	lowered := strings.ToLower(*title)
	for _, keyword := range c.keywords {
		if strings.Contains(lowered, keyword) {
			return keyword
		}
	}
	return TopicOther
}

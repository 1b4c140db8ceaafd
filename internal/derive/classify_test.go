package derive

import (
	"testing"
)

func defaultKeywords() []string {
	return []string{
		"tax", "esg", "mergers", "acquisition", "privacy",
		"compliance", "digital", "technology", "employment",
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(defaultKeywords())

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "single keyword",
			title:    "New Privacy Regulations in the EU",
			expected: "privacy",
		},
		{
			name:     "first keyword in list order wins over position in text",
			title:    "Compliance and Tax Update",
			expected: "tax",
		},
		{
			name:     "multiple keywords resolve by list order",
			title:    "Tax and ESG compliance update",
			expected: "tax",
		},
		{
			name:     "case insensitive",
			title:    "DIGITAL TRANSFORMATION TRENDS",
			expected: "digital",
		},
		{
			name:     "substring match inside a word",
			title:    "Taxation changes for 2025",
			expected: "tax",
		},
		{
			name:     "no keyword",
			title:    "Quarterly market outlook",
			expected: "other",
		},
		{
			name:     "empty title",
			title:    "",
			expected: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := tt.title
			result := classifier.Classify(&title)
			if result != tt.expected {
				t.Errorf("Expected topic '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestClassifier_Classify_NilTitle(t *testing.T) {
	classifier := NewClassifier(defaultKeywords())

	if result := classifier.Classify(nil); result != TopicOther {
		t.Errorf("Expected '%s' for nil title, got '%s'", TopicOther, result)
	}
}

func TestClassifier_Classify_AlwaysInTopicSet(t *testing.T) {
	classifier := NewClassifier(defaultKeywords())

	valid := map[string]bool{TopicOther: true}
	for _, keyword := range defaultKeywords() {
		valid[keyword] = true
	}

	titles := []string{
		"Mergers and acquisitions heat up",
		"Employment law changes",
		"Something entirely unrelated",
		"ESG reporting deadlines",
	}
	for _, title := range titles {
		topic := classifier.Classify(&title)
		if !valid[topic] {
			t.Errorf("Topic '%s' for title '%s' is not in the fixed topic set", topic, title)
		}
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// SecurityConfig represents security configuration
type SecurityConfig struct {
	EnableRateLimit       bool
	RateLimitPerSecond    float64
	RateLimitBurst        int
	EnableCORS            bool
	AllowedOrigins        []string
	EnableSecurityHeaders bool
	MaxRequestSize        int64
	EnableRequestID       bool
}

type Config struct {
	Port           int
	DataDir        string
	DatasetSource  string // "csv" or "sqlite"
	ReaderFile     string
	ArticleFile    string
	AuthorFile     string
	SQLiteFile     string
	CSVDelimiter   rune
	CacheTTL       time.Duration
	ReloadInterval time.Duration // 0 disables background reloading
	LogLevel       string
	EnableSPA      bool
	EnableSwagger  bool
	TopicKeywords  []string
	Stopwords      []string
	Security       SecurityConfig
}

func Load() *Config {
	port := getEnvAsInt("PORT", 8080)
	dataDir := getEnv("DATA_DIR", "./data")
	datasetSource := strings.ToLower(getEnv("DATASET_SOURCE", "csv"))
	readerFile := getEnv("READER_FILE", "readers.csv")
	articleFile := getEnv("ARTICLE_FILE", "articles.csv")
	authorFile := getEnv("AUTHOR_FILE", "authors.csv")
	sqliteFile := getEnv("SQLITE_FILE", "analytics.db")
	delimiter := getEnvAsDelimiter("CSV_DELIMITER", ',')
	cacheTTL := getEnvAsDuration("CACHE_TTL", 15*time.Minute)
	reloadInterval := getEnvAsDuration("RELOAD_INTERVAL", 15*time.Minute)
	logLevel := getEnv("LOG_LEVEL", "info")
	enableSPA := getEnvAsBool("ENABLE_SPA", true)
	enableSwagger := getEnvAsBool("ENABLE_SWAGGER", true)

	topicKeywords := getEnvAsStringSlice("TOPIC_KEYWORDS", defaultTopicKeywords())
	stopwords := getEnvAsStringSlice("STOPWORDS", defaultStopwords())

	// Load security configuration
	security := loadSecurityConfig()

	return &Config{
		Port:           port,
		DataDir:        dataDir,
		DatasetSource:  datasetSource,
		ReaderFile:     readerFile,
		ArticleFile:    articleFile,
		AuthorFile:     authorFile,
		SQLiteFile:     sqliteFile,
		CSVDelimiter:   delimiter,
		CacheTTL:       cacheTTL,
		ReloadInterval: reloadInterval,
		LogLevel:       logLevel,
		EnableSPA:      enableSPA,
		EnableSwagger:  enableSwagger,
		TopicKeywords:  topicKeywords,
		Stopwords:      stopwords,
		Security:       security,
	}
}

func loadSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableRateLimit:       getEnvAsBool("ENABLE_RATE_LIMIT", true),
		RateLimitPerSecond:    getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10.0),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 20),
		EnableCORS:            getEnvAsBool("ENABLE_CORS", true),
		AllowedOrigins:        getEnvAsStringSlice("ALLOWED_ORIGINS", []string{"*"}),
		EnableSecurityHeaders: getEnvAsBool("ENABLE_SECURITY_HEADERS", true),
		MaxRequestSize:        getEnvAsInt64("MAX_REQUEST_SIZE", 10<<20), // 10MB
		EnableRequestID:       getEnvAsBool("ENABLE_REQUEST_ID", true),
	}
}

// defaultTopicKeywords returns the topic keyword list in match-priority
// order: the first keyword found in a title wins.
func defaultTopicKeywords() []string {
	return []string{
		"tax", "esg", "mergers", "acquisition", "privacy",
		"compliance", "digital", "technology", "employment",
	}
}

// defaultStopwords returns the terms excluded from keyword frequency.
func defaultStopwords() []string {
	return []string{
		"the", "and", "for", "with", "from", "this",
		"that", "will", "how", "can", "are",
	}
}

func getEnv(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		items := strings.Split(val, ",")
		result := make([]string, 0, len(items))
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultVal
}

func getEnvAsDelimiter(key string, defaultVal rune) rune {
	if val := os.Getenv(key); val != "" {
		runes := []rune(val)
		if len(runes) == 1 {
			return runes[0]
		}
		if val == "tab" || val == "\\t" {
			return '\t'
		}
	}
	return defaultVal
}

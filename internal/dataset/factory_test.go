package dataset

import (
	"testing"

	"readlytics/internal/config"
)

func TestNew_CSV(t *testing.T) {
	for _, name := range []string{"csv", ""} {
		source, err := New(&config.Config{DatasetSource: name, DataDir: t.TempDir()})
		if err != nil {
			t.Fatalf("Expected no error for source '%s', got %v", name, err)
		}
		if source.Backend() != "csv" {
			t.Errorf("Expected csv backend, got '%s'", source.Backend())
		}
		source.Close()
	}
}

func TestNew_UnknownSource(t *testing.T) {
	if _, err := New(&config.Config{DatasetSource: "parquet"}); err == nil {
		t.Error("Expected error for unknown dataset source, got nil")
	}
}

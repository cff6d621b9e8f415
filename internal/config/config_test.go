// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Covers defaults, overrides, and range validation
package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NELSONREF_DB", "")
	t.Setenv("NELSONREF_VECTOR_DIMENSION", "")
	t.Setenv("NELSONREF_SEARCH_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath == "" {
		t.Error("DBPath should default to the XDG data path")
	}
	if !strings.HasSuffix(cfg.DBPath, "nelsonref.db") {
		t.Errorf("DBPath = %q, want a nelsonref.db path", cfg.DBPath)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("SearchLimit = %d, want 20", cfg.SearchLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NELSONREF_DB", "/tmp/custom.db")
	t.Setenv("NELSONREF_VECTOR_DIMENSION", "768")
	t.Setenv("NELSONREF_SEARCH_LIMIT", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.VectorDimension != 768 {
		t.Errorf("VectorDimension = %d", cfg.VectorDimension)
	}
	if cfg.SearchLimit != 50 {
		t.Errorf("SearchLimit = %d", cfg.SearchLimit)
	}
}

func TestLoad_InvalidSearchLimit(t *testing.T) {
	t.Setenv("NELSONREF_SEARCH_LIMIT", "0")
	if _, err := Load(); err == nil {
		t.Error("Load() = nil, want error for zero search limit")
	}

	t.Setenv("NELSONREF_SEARCH_LIMIT", "1000")
	if _, err := Load(); err == nil {
		t.Error("Load() = nil, want error for out-of-range search limit")
	}
}

func TestValidate_NegativeDimension(t *testing.T) {
	cfg := &Config{DBPath: "/tmp/x.db", VectorDimension: -1, SearchLimit: 20}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for negative dimension")
	}
}

func TestGetEnvInt_Malformed(t *testing.T) {
	t.Setenv("NELSONREF_VECTOR_DIMENSION", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want default on malformed value", cfg.VectorDimension)
	}
}

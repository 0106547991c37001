package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"moviemeta/internal/config"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TMDB_API_KEY", "TMDBAPIKEY", "TMDB_READ_ACCESS_TOKEN", "TMDBAPIReadAccessToken"} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaultConfigUsesEnvTMDBKeyAndExpandsPaths(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TMDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "moviemeta")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != config.Default().TMDB.BaseURL {
		t.Fatalf("unexpected TMDB base url: %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.RegionDefault != "US" {
		t.Fatalf("expected default region US, got %q", cfg.TMDB.RegionDefault)
	}
	if cfg.Enrichment.MaxReleaseYear != 2024 {
		t.Fatalf("expected max release year 2024, got %d", cfg.Enrichment.MaxReleaseYear)
	}
	if cfg.Dataset.TitleColumn != "movie_title" {
		t.Fatalf("unexpected title column %q", cfg.Dataset.TitleColumn)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.RequestTimeout())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadWithoutCredentialsSucceeds(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HasCredentials() {
		t.Fatal("expected no credentials")
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearCredentialEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "moviemeta.toml")

	type payload struct {
		TMDB struct {
			BearerToken   string `toml:"bearer_token"`
			BaseURL       string `toml:"base_url"`
			RegionDefault string `toml:"region_default"`
		} `toml:"tmdb"`
		Enrichment struct {
			MaxReleaseYear    int     `toml:"max_release_year"`
			RequestsPerSecond float64 `toml:"requests_per_second"`
		} `toml:"enrichment"`
		Dataset struct {
			TitleColumn string `toml:"title_column"`
		} `toml:"dataset"`
	}
	custom := payload{}
	custom.TMDB.BearerToken = "token123"
	custom.TMDB.BaseURL = "https://example.com/tmdb/"
	custom.TMDB.RegionDefault = "gb"
	custom.Enrichment.MaxReleaseYear = 2025
	custom.Enrichment.RequestsPerSecond = 2
	custom.Dataset.TitleColumn = "title"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.TMDB.BearerToken != "token123" {
		t.Fatalf("expected bearer token from file, got %q", cfg.TMDB.BearerToken)
	}
	if !cfg.HasCredentials() {
		t.Fatal("expected bearer token to count as credentials")
	}
	if cfg.TMDB.BaseURL != "https://example.com/tmdb" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.RegionDefault != "GB" {
		t.Fatalf("expected region upper-cased, got %q", cfg.TMDB.RegionDefault)
	}
	if cfg.Enrichment.MaxReleaseYear != 2025 {
		t.Fatalf("expected max year 2025, got %d", cfg.Enrichment.MaxReleaseYear)
	}
	if cfg.Dataset.TitleColumn != "title" {
		t.Fatalf("expected title column override, got %q", cfg.Dataset.TitleColumn)
	}
	if cfg.Dataset.InTheatersColumn != "in_theaters_date" {
		t.Fatalf("expected default in_theaters column, got %q", cfg.Dataset.InTheatersColumn)
	}
}

func TestConfigFileCredentialsWinOverEnv(t *testing.T) {
	clearCredentialEnv(t)
	configPath := filepath.Join(t.TempDir(), "moviemeta.toml")
	if err := os.WriteFile(configPath, []byte("[tmdb]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("TMDBAPIReadAccessToken", "legacy-token")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Errorf("expected file key to win, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BearerToken != "legacy-token" {
		t.Errorf("expected legacy env token fallback, got %q", cfg.TMDB.BearerToken)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_tmdb_api_key_here") {
		t.Fatalf("sample config missing placeholder TMDB key: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.TMDB.RegionDefault != "US" {
		t.Fatalf("expected sample region US, got %q", cfg.TMDB.RegionDefault)
	}
	if !strings.Contains(cfg.Paths.StateDir, "moviemeta") {
		t.Fatalf("expected state dir to contain moviemeta, got %q", cfg.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.TMDB.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for relative base url")
	}

	cfg = config.Default()
	cfg.TMDB.RegionDefault = "USA"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for three-letter region")
	}

	cfg = config.Default()
	cfg.Enrichment.RequestsPerSecond = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative rate")
	}

	cfg = config.Default()
	cfg.Dataset.OnStreamingColumn = cfg.Dataset.InTheatersColumn
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for duplicate column names")
	}

	cfg = config.Default()
	cfg.Dataset.SQLiteTable = "movies; drop table x"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsafe table name")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

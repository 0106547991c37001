package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"moviemeta/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func tmdbServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("api_key") == "good-key" || r.Header.Get("Authorization") == "Bearer good-token" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckTMDB(t *testing.T) {
	srv := tmdbServer(t)
	ctx := context.Background()

	cases := []struct {
		name string
		cfg  config.TMDB
		pass bool
	}{
		{"api key", config.TMDB{BaseURL: srv.URL, APIKey: "good-key"}, true},
		{"bearer token", config.TMDB{BaseURL: srv.URL + "/", BearerToken: "good-token"}, true},
		{"bad key", config.TMDB{BaseURL: srv.URL, APIKey: "bad-key"}, false},
		{"missing credentials", config.TMDB{BaseURL: srv.URL}, false},
		{"missing url", config.TMDB{APIKey: "good-key"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := CheckTMDB(ctx, tc.cfg)
			if result.Passed != tc.pass {
				t.Fatalf("expected passed=%v, got %+v", tc.pass, result)
			}
		})
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	srv := tmdbServer(t)
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.TMDB.BaseURL = srv.URL
	cfg.TMDB.APIKey = "good-key"

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	cfg.TMDB.APIKey = "bad-key"
	if !Failed(RunAll(context.Background(), &cfg)) {
		t.Fatal("expected failure with bad key")
	}
}

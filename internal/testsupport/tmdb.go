package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"moviemeta/internal/tmdb"
)

// TMDBServer is an httptest server answering the two TMDB endpoints used by
// enrichment from canned data.
type TMDBServer struct {
	server *httptest.Server

	mu           sync.Mutex
	searches     map[string][]tmdb.Result
	releases     map[int64][]tmdb.CountryRelease
	searchStatus map[string]int
	releaseFail  map[int64]int
	requests     []string
}

// NewTMDBServer starts a stub server and registers cleanup.
func NewTMDBServer(t testing.TB) *TMDBServer {
	t.Helper()

	s := &TMDBServer{
		searches:     make(map[string][]tmdb.Result),
		releases:     make(map[int64][]tmdb.CountryRelease),
		searchStatus: make(map[string]int),
		releaseFail:  make(map[int64]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the base URL to configure clients with.
func (s *TMDBServer) URL() string {
	return s.server.URL
}

// AddSearch registers the results returned for query.
func (s *TMDBServer) AddSearch(query string, results ...tmdb.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[query] = results
}

// FailSearch makes searches for query answer with status.
func (s *TMDBServer) FailSearch(query string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchStatus[query] = status
}

// AddReleases registers the release history returned for a movie id.
func (s *TMDBServer) AddReleases(movieID int64, entries ...tmdb.CountryRelease) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases[movieID] = entries
}

// FailReleases makes release date requests for movieID answer with status.
func (s *TMDBServer) FailReleases(movieID int64, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseFail[movieID] = status
}

// Requests returns the request paths served so far, with the query string
// for searches.
func (s *TMDBServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *TMDBServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.URL.Path == "/search/movie":
		query := r.URL.Query().Get("query")
		s.requests = append(s.requests, r.URL.Path+"?query="+query)
		if status, ok := s.searchStatus[query]; ok {
			http.Error(w, "stub failure", status)
			return
		}
		writeJSON(w, tmdb.Response{Page: 1, Results: s.searches[query], TotalPages: 1, TotalResults: len(s.searches[query])})
	case strings.HasPrefix(r.URL.Path, "/movie/") && strings.HasSuffix(r.URL.Path, "/release_dates"):
		s.requests = append(s.requests, r.URL.Path)
		raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/movie/"), "/release_dates")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if status, ok := s.releaseFail[id]; ok {
			http.Error(w, "stub failure", status)
			return
		}
		entries, ok := s.releases[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, tmdb.ReleaseDatesResponse{ID: id, Results: entries})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

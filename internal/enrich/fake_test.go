package enrich_test

import (
	"context"
	"errors"
	"sync"

	"moviemeta/internal/tmdb"
)

type fakeSearcher struct {
	mu          sync.Mutex
	results     map[string][]tmdb.Result
	releases    map[int64]*tmdb.ReleaseDatesResponse
	searchErr   error
	releaseErr  error
	searchCalls []string
	releaseIDs  []int64
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results:  make(map[string][]tmdb.Result),
		releases: make(map[int64]*tmdb.ReleaseDatesResponse),
	}
}

func (f *fakeSearcher) SearchMovie(_ context.Context, query string) (*tmdb.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.Response{Page: 1, Results: f.results[query]}, nil
}

func (f *fakeSearcher) MovieReleaseDates(_ context.Context, movieID int64) (*tmdb.ReleaseDatesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseIDs = append(f.releaseIDs, movieID)
	if f.releaseErr != nil {
		return nil, f.releaseErr
	}
	resp, ok := f.releases[movieID]
	if !ok {
		return nil, errors.New("unexpected movie id")
	}
	return resp, nil
}

type countingLimiter struct {
	calls int
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.calls++
	return ctx.Err()
}

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request is what the fake server recorded about one call.
type Request struct {
	Path          string
	RawQuery      string
	Authorization string
	ClientID      string
}

// HelixServer serves a Fixture the way the Helix API would.
type HelixServer struct {
	*httptest.Server

	fixture *Fixture
	mu      sync.Mutex
	calls   []Request
}

// NewHelixServer starts a fake Helix API. It is closed when the test ends.
func NewHelixServer(t testing.TB, f *Fixture) *HelixServer {
	t.Helper()

	s := &HelixServer{fixture: f}
	mux := http.NewServeMux()
	mux.HandleFunc("/helix/games/top", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		writeEnvelope(w, f.TopCategories, "")
	})
	mux.HandleFunc("/helix/search/categories", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		writeEnvelope(w, f.Search[r.URL.Query().Get("query")], "")
	})
	mux.HandleFunc("/helix/streams", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		s.servePage(w, r.URL.Query().Get("after"))
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the Helix base URL to configure the source with.
func (s *HelixServer) BaseURL() string {
	return s.URL + "/helix"
}

// Calls returns the requests received so far.
func (s *HelixServer) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.calls...)
}

func (s *HelixServer) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Request{
		Path:          strings.TrimPrefix(r.URL.Path, "/helix"),
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ClientID:      r.Header.Get("Client-Id"),
	})
}

// servePage picks the page that follows the page whose cursor is after.
func (s *HelixServer) servePage(w http.ResponseWriter, after string) {
	idx := 0
	if after != "" {
		idx = -1
		for i, p := range s.fixture.Pages {
			if p.Cursor == after {
				idx = i + 1
				break
			}
		}
	}
	if idx < 0 || idx >= len(s.fixture.Pages) {
		http.Error(w, `{"error":"Bad Request","status":400,"message":"invalid cursor"}`, http.StatusBadRequest)
		return
	}

	p := s.fixture.Pages[idx]
	writeEnvelope(w, p.Records(idx), p.Cursor)
}

func writeEnvelope(w http.ResponseWriter, data []Item, cursor string) {
	if data == nil {
		data = []Item{}
	}
	env := map[string]any{
		"data":       data,
		"pagination": map[string]any{},
	}
	if cursor != "" {
		env["pagination"] = map[string]any{"cursor": cursor}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}

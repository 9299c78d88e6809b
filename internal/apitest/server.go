package apitest

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Prefix is the versioned path the fixture API is mounted under.
const Prefix = "/api/v3/"

// MemberToken is the pledge token the members fixture knows.
const MemberToken = "pledge-token-1"

//go:embed fixtures/*.json
var fixtures embed.FS

// Fixture returns the raw bytes of a named fixture, e.g. "articles".
func Fixture(name string) []byte {
	data, err := fixtures.ReadFile("fixtures/" + name + ".json")
	if err != nil {
		panic(fmt.Sprintf("apitest: fixture %q: %v", name, err))
	}
	return data
}

// Recorded is a request the server received.
type Recorded struct {
	Path     string // relative to Prefix, e.g. "articles"
	RawQuery string
	Header   http.Header
}

type response struct {
	status int
	body   string
}

// Server is an httptest server that answers like the v3 content API using
// the embedded fixtures.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Recorded
	overrides map[string]response
}

// NewServer starts a fixture server and closes it when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{overrides: make(map[string]response)}
	s.Server = httptest.NewServer(s.record(s.routes()))
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to hand to a client.
func (s *Server) BaseURL() string {
	return s.URL + Prefix
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Respond makes path (relative to Prefix) answer with status and body
// instead of its fixture.
func (s *Server) Respond(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[strings.Trim(path, "/")] = response{status: status, body: body}
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix(strings.TrimSuffix(Prefix, "/")).Subrouter()
	api.Use(s.override)
	api.HandleFunc("/articles", s.collection("articles")).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id}", s.item("articles", "article", "id")).Methods(http.MethodGet)
	api.HandleFunc("/episodes", s.collection("episodes")).Methods(http.MethodGet)
	api.HandleFunc("/episodes/{id}", s.item("episodes", "episode", "id")).Methods(http.MethodGet)
	api.HandleFunc("/events", s.collection("events")).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", s.item("events", "event", "id")).Methods(http.MethodGet)
	api.HandleFunc("/lists", s.collection("lists")).Methods(http.MethodGet)
	api.HandleFunc("/lists/{id}", s.item("lists", "list", "id")).Methods(http.MethodGet)
	api.HandleFunc("/programs", s.collection("programs")).Methods(http.MethodGet)
	api.HandleFunc("/programs/{id}", s.item("programs", "program", "slug")).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.collection("categories")).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", s.item("categories", "category", "slug")).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.collection("schedule")).Methods(http.MethodGet)
	api.HandleFunc("/members/{token}", s.member).Methods(http.MethodGet)
	api.HandleFunc("/settings/{context}", s.collection("settings")).Methods(http.MethodGet)
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Path:     strings.TrimPrefix(r.URL.Path, Prefix),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) override(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		resp, ok := s.overrides[strings.TrimPrefix(r.URL.Path, Prefix)]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	})
}

// collection serves a fixture file unchanged.
func (s *Server) collection(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, json.RawMessage(Fixture(name)))
	}
}

// item finds the element of a collection fixture whose key field matches the
// {id} route variable and wraps it in a singular envelope.
func (s *Server) item(collection, envelope, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var payload map[string][]map[string]json.RawMessage
		if err := json.Unmarshal(Fixture(collection), &payload); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		for _, entry := range payload[collection] {
			if rawKeyEquals(entry[key], id) {
				writeJSON(w, http.StatusOK, map[string]json.RawMessage{envelope: mustMarshal(entry)})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (s *Server) member(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var payload struct {
		Members []struct {
			Token  string          `json:"token"`
			Member json.RawMessage `json:"member"`
		} `json:"members"`
	}
	if err := json.Unmarshal(Fixture("members"), &payload); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	for _, m := range payload.Members {
		if m.Token == token {
			writeJSON(w, http.StatusOK, map[string]json.RawMessage{"member": m.Member})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func rawKeyEquals(raw json.RawMessage, id string) bool {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v == id
	case float64:
		return fmt.Sprint(int64(v)) == id
	default:
		return false
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("apitest: marshal: %v", err))
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

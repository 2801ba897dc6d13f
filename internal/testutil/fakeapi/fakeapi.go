// Package fakeapi is an in-memory stand-in for the catalog REST service,
// served over httptest for client, session and command tests.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Pokedex/internal/middleware"
	"Pokedex/internal/model"
)

// Route keys used by Hits, Fail and Hold.
const (
	RouteList           = "GET /pokemon"
	RouteSearch         = "GET /pokemon/search"
	RouteDetail         = "GET /pokemon/{key}"
	RouteFavorites      = "GET /favorite"
	RouteAddFavorite    = "POST /favorite"
	RouteToggleFavorite = "POST /favorite/update"
	RouteGroups         = "GET /group-pokemon"
	RouteCreateGroup    = "POST /group-pokemon"
	RouteDeleteGroup    = "DELETE /group-pokemon/{id}"
)

// Server is a running fake API. URL() is the client base URL (with /api).
type Server struct {
	srv    *httptest.Server
	logger *zap.SugaredLogger

	mu        sync.Mutex
	catalog   []model.Item
	favorites []model.Favorite
	groups    []model.Group
	nextFav   int
	nextGroup int
	hits      map[string]int
	fail      map[string]int
	hold      map[string]chan struct{}
	nested    bool
}

// Option configures the fake.
type Option func(*Server)

// WithNestedList serves list pages in the {data: {data: [...]}, next} envelope.
func WithNestedList() Option {
	return func(s *Server) { s.nested = true }
}

// WithFavorites preloads favorite records.
func WithFavorites(favs ...model.Favorite) Option {
	return func(s *Server) {
		for _, f := range favs {
			if f.ID >= s.nextFav {
				s.nextFav = f.ID + 1
			}
			s.favorites = append(s.favorites, f)
		}
	}
}

// New starts a fake serving catalog and registers cleanup on t.
func New(t testing.TB, catalog []model.Item, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		logger:    zap.NewNop().Sugar(),
		catalog:   catalog,
		nextFav:   1,
		nextGroup: 1,
		hits:      map[string]int{},
		fail:      map[string]int{},
		hold:      map[string]chan struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.router())
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.WithLogging, middleware.WithGzip)
	r.Route("/api", func(r chi.Router) {
		r.Get("/pokemon", s.list)
		r.Get("/pokemon/search", s.search)
		r.Get("/pokemon/{key}", s.detail)
		r.Get("/favorite", s.listFavorites)
		r.Post("/favorite", s.addFavorite)
		r.Post("/favorite/update", s.toggleFavorite)
		r.Get("/group-pokemon", s.listGroups)
		r.Post("/group-pokemon", s.createGroup)
		r.Delete("/group-pokemon/{id}", s.deleteGroup)
	})
	return r
}

// URL returns the API base URL.
func (s *Server) URL() string { return s.srv.URL + "/api" }

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests across all routes.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// Fail makes route answer with status until Fail(route, 0) is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.fail, route)
		return
	}
	s.fail[route] = status
}

// Hold parks requests to route until the returned function is called.
func (s *Server) Hold(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.hold, route)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Favorites returns a copy of the stored favorite records.
func (s *Server) Favorites() []model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Favorite(nil), s.favorites...)
}

// Groups returns a copy of the stored groups.
func (s *Server) Groups() []model.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Group(nil), s.groups...)
}

// begin records the hit and applies Hold/Fail. It returns false when the
// response was already written.
func (s *Server) begin(w http.ResponseWriter, route string) bool {
	s.mu.Lock()
	s.hits[route]++
	status := s.fail[route]
	hold := s.hold[route]
	s.mu.Unlock()
	if hold != nil {
		<-hold
	}
	if status != 0 {
		http.Error(w, "forced failure", status)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteList) {
		return
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	total := len(s.catalog)
	var page []model.Item
	if offset < total {
		end := min(offset+limit, total)
		page = append(page, s.catalog[offset:end]...)
	}
	s.mu.Unlock()
	if page == nil {
		page = []model.Item{}
	}

	var next any
	if offset+limit < total {
		next = offset + limit
	}
	if s.nested {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"data": page}, "next": next})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": page, "next": next})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteSearch) {
		return
	}
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))
	s.mu.Lock()
	found := []model.Item{}
	for _, it := range s.catalog {
		if q != "" && strings.Contains(it.Name, q) {
			found = append(found, it)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": found})
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteDetail) {
		return
	}
	key := strings.ToLower(chi.URLParam(r, "key"))
	id, numErr := strconv.Atoi(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.catalog {
		if numErr == nil && it.ID == id {
			writeJSON(w, http.StatusOK, it)
			return
		}
		if numErr != nil && it.Name == key {
			writeJSON(w, http.StatusOK, map[string]any{"data": it})
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteFavorites) {
		return
	}
	s.mu.Lock()
	favs := append([]model.Favorite{}, s.favorites...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": favs})
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteAddFavorite) {
		return
	}
	var it model.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil || it.Name == "" {
		s.logger.Warnw("addFavorite: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	fav := model.Favorite{ID: s.nextFav, Pokemons: &it, Mark: true}
	s.nextFav++
	s.favorites = append(s.favorites, fav)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"data": fav})
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteToggleFavorite) {
		return
	}
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.favorites {
		if s.favorites[i].ID == req.ID {
			s.favorites[i].Mark = !s.favorites[i].Mark
			writeJSON(w, http.StatusOK, map[string]any{"data": s.favorites[i]})
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteGroups) {
		return
	}
	s.mu.Lock()
	groups := append([]model.Group{}, s.groups...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": groups})
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteCreateGroup) {
		return
	}
	var req model.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" || len(req.Pokemons) == 0 {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	g := model.Group{ID: s.nextGroup, Name: req.Name, Pokemons: req.Pokemons}
	s.nextGroup++
	s.groups = append(s.groups, g)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"data": g})
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteDeleteGroup) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.groups {
		if g.ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"data": g})
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

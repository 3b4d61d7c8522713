// Package testbackend is an in-memory stand-in for the listings REST backend.
// Tests point the real gateway at it through httptest.
package testbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/core/port"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIPrefix is where the backend mounts its routes.
const APIPrefix = "/api/v1"

// Property is the wire form of a catalog entry.
type Property struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Beds     int     `json:"beds"`
	Baths    int     `json:"baths"`
	Sqm      float64 `json:"sqm"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type toggleRequest struct {
	PropertyID *string `json:"propertyId"`
}

// Failure is a canned response served instead of the real handler.
type Failure struct {
	Status int
	Body   string
}

// Backend keeps properties, users and per-user favorites in memory.
type Backend struct {
	mu         sync.Mutex
	properties []Property
	users      []User
	favorites  map[string][]string
	failures   map[string][]Failure
	traceIDs   []string
	logger     port.LoggerPort

	server *httptest.Server
}

func New(logger port.LoggerPort) *Backend {
	if logger == nil {
		logger = contextkeys.NoopLogger()
	}
	return &Backend{
		properties: []Property{},
		users:      []User{},
		favorites:  make(map[string][]string),
		failures:   make(map[string][]Failure),
		logger:     logger,
	}
}

// Start serves the backend on a local port and returns its API base URL.
func (b *Backend) Start() string {
	b.server = httptest.NewServer(b.Router())
	return b.server.URL + APIPrefix
}

func (b *Backend) Close() {
	if b.server != nil {
		b.server.Close()
	}
}

// Router exposes the routes without starting a listener.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(b.logger, b.recordTrace))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/properties", b.withFailures("GET /properties", b.listProperties))
		r.Get("/users", b.withFailures("GET /users", b.listUsers))
		r.Get("/favorites/{userID}", b.withFailures("GET /favorites", b.getFavorites))
		r.Post("/favorites/{userID}", b.withFailures("POST /favorites", b.toggleFavorite))
	})
	return r
}

func (b *Backend) SetProperties(properties ...Property) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.properties = append([]Property{}, properties...)
}

func (b *Backend) SetUsers(users ...User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append([]User{}, users...)
}

func (b *Backend) SetFavorites(userID string, propertyIDs ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.favorites[userID] = append([]string{}, propertyIDs...)
}

func (b *Backend) Favorites(userID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.favorites[userID]...)
}

// FailNext queues a canned response for the route, e.g. "GET /properties"
// or "POST /favorites". Each queued failure is served once.
func (b *Backend) FailNext(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], Failure{Status: status, Body: body})
}

// TraceIDs returns the X-Trace-ID values seen so far, in arrival order.
func (b *Backend) TraceIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.traceIDs...)
}

func (b *Backend) recordTrace(traceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.traceIDs = append(b.traceIDs, traceID)
}

func (b *Backend) withFailures(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		queue := b.failures[route]
		var failure *Failure
		if len(queue) > 0 {
			failure = &queue[0]
			b.failures[route] = queue[1:]
		}
		b.mu.Unlock()

		if failure != nil {
			w.WriteHeader(failure.Status)
			_, _ = w.Write([]byte(failure.Body))
			return
		}
		next(w, r)
	}
}

func (b *Backend) listProperties(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, b.properties)
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	respondWithJSON(w, http.StatusOK, b.users)
}

func (b *Backend) getFavorites(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasUser(userID) {
		writeNestError(w, http.StatusNotFound, "User "+userID+" not found")
		return
	}
	ids := b.favorites[userID]
	if ids == nil {
		ids = []string{}
	}
	respondWithJSON(w, http.StatusOK, ids)
}

func (b *Backend) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PropertyID == nil || *req.PropertyID == "" {
		writeNestError(w, http.StatusBadRequest, []string{"propertyId must be a string", "propertyId should not be empty"})
		return
	}
	propertyID := *req.PropertyID

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasUser(userID) {
		writeNestError(w, http.StatusNotFound, "User "+userID+" not found")
		return
	}
	if !b.hasProperty(propertyID) {
		writeNestError(w, http.StatusNotFound, "Property "+propertyID+" not found")
		return
	}

	current := b.favorites[userID]
	updated := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == propertyID {
			removed = true
			continue
		}
		updated = append(updated, id)
	}
	if !removed {
		updated = append(updated, propertyID)
	}
	b.favorites[userID] = updated

	respondWithJSON(w, http.StatusOK, updated)
}

// userParam decodes the {userID} segment. chi matches on RawPath when the
// request carries escaped slashes, leaving the parameter escaped.
func userParam(r *http.Request) string {
	raw := chi.URLParam(r, "userID")
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (b *Backend) hasUser(id string) bool {
	for _, u := range b.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (b *Backend) hasProperty(id string) bool {
	for _, p := range b.properties {
		if p.ID == id {
			return true
		}
	}
	return false
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// writeNestError mimics the {statusCode, message, error} error body of the
// real backend; message is a string or a list of strings.
func writeNestError(w http.ResponseWriter, status int, message interface{}) {
	respondWithJSON(w, status, map[string]interface{}{
		"statusCode": status,
		"message":    message,
		"error":      http.StatusText(status),
	})
}

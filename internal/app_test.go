package internal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"property-viewer/internal/testbackend"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededBackend(t *testing.T) (*testbackend.Backend, string) {
	t.Helper()
	backend := testbackend.New(nil)
	backend.SetProperties(
		testbackend.Property{ID: "p1", Title: "Riverside Loft", Location: "Bangkok", Price: 2500000, Beds: 2, Baths: 1, Sqm: 68},
		testbackend.Property{ID: "p2", Title: "Garden House", Location: "Chiang Mai", Price: 4100000, Beds: 3, Baths: 2, Sqm: 140},
	)
	backend.SetUsers(testbackend.User{ID: "u1", Name: "Ann"}, testbackend.User{ID: "u2", Name: "Bob"})
	backend.SetFavorites("u1", "p2")
	url := backend.Start()
	t.Cleanup(backend.Close)
	return backend, url
}

func newTestApp(t *testing.T, backendURL string) *App {
	t.Helper()
	t.Setenv("FLUENTBIT_ENABLED", "false")
	app, err := NewApp(Options{BackendURL: backendURL, LogWriter: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_RejectsBadBackendURL(t *testing.T) {
	_, err := NewApp(Options{BackendURL: "localhost:3001", LogWriter: io.Discard})
	assert.Error(t, err)
}

func TestNewApp_MissingEnvFile(t *testing.T) {
	_, err := NewApp(Options{EnvPath: filepath.Join(t.TempDir(), "nope.env"), LogWriter: io.Discard})
	assert.Error(t, err)
}

func TestApp_EndToEnd(t *testing.T) {
	backend, url := seededBackend(t)
	app := newTestApp(t, url)
	ctx := context.Background()
	c := app.Coordinator()

	require.NoError(t, c.Load(ctx))
	s := c.Snapshot()
	assert.False(t, s.Loading)
	assert.Len(t, s.Properties, 2)
	assert.Len(t, s.Users, 2)

	c.SelectUser(ctx, "u1")
	c.Wait()
	assert.Equal(t, []string{"p2"}, c.Snapshot().Favorites.IDs())

	require.NoError(t, c.ToggleFavorite(ctx, "p1"))
	assert.Equal(t, []string{"p1", "p2"}, c.Snapshot().Favorites.IDs())
	assert.ElementsMatch(t, []string{"p1", "p2"}, backend.Favorites("u1"))

	require.Error(t, c.ToggleFavorite(ctx, "missing"))
	s = c.Snapshot()
	assert.Equal(t, "Property missing not found", s.FavoritesError)
	assert.Equal(t, []string{"p1", "p2"}, s.Favorites.IDs())
	assert.False(t, s.ToggleInFlight)

	// Every request carried a trace id.
	for _, id := range backend.TraceIDs() {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, id)
	}
}

func TestApp_LoadFailureThenRetry(t *testing.T) {
	backend, url := seededBackend(t)
	backend.FailNext("GET /users", 503, `{"statusCode":503,"message":"Maintenance in progress","error":"Service Unavailable"}`)
	app := newTestApp(t, url)
	ctx := context.Background()
	c := app.Coordinator()

	require.Error(t, c.Load(ctx))
	s := c.Snapshot()
	assert.Equal(t, "Maintenance in progress", s.LoadError)
	assert.Empty(t, s.Properties)
	assert.Empty(t, s.Users)

	c.Retry(ctx)
	c.Wait()
	s = c.Snapshot()
	assert.Empty(t, s.LoadError)
	assert.Len(t, s.Properties, 2)
}

func TestApp_WrongBasePath(t *testing.T) {
	_, url := seededBackend(t)
	app := newTestApp(t, strings.Replace(url, "/api/v1", "/nothing-here", 1))

	err := app.Coordinator().Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Request failed (404)", app.Coordinator().Snapshot().LoadError)
}

func TestApp_InteractiveLogsToFile(t *testing.T) {
	_, url := seededBackend(t)
	logPath := filepath.Join(t.TempDir(), "viewer.log")
	t.Setenv("LOG_FILE", logPath)

	app, err := NewApp(Options{BackendURL: url, Interactive: true})
	require.NoError(t, err)
	require.NoError(t, app.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger system initialized")
}

func TestApp_RunTUIQuits(t *testing.T) {
	_, url := seededBackend(t)
	app := newTestApp(t, url)

	done := make(chan error, 1)
	go func() {
		done <- app.RunTUI(context.Background(),
			tea.WithInput(strings.NewReader("q")),
			tea.WithOutput(&bytes.Buffer{}),
			tea.WithoutSignalHandler(),
		)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("terminal UI did not quit")
	}
}

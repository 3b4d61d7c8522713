// Package coordinator owns the viewer's client-side state: the catalog load,
// the selected user and that user's favorites.
//
// Requests for favorites are guarded by a selection generation captured when
// the request is issued. A response is applied only if the generation is
// still current, so a slow answer for an abandoned selection can never
// overwrite the state of the user selected afterwards. Nothing is aborted on
// the wire; late results are simply dropped.
package coordinator

import (
	"context"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	loadFailedMessage      = "Failed to load data"
	favoritesFailedMessage = "Failed to load favorites"
	toggleFailedMessage    = "Failed to update favorites"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithOnChange registers fn to be called after every state change with the
// new snapshot. fn runs outside the coordinator's lock, possibly from several
// goroutines at once, so treat the snapshot as a hint and re-read Snapshot
// when order matters.
func WithOnChange(fn func(State)) Option {
	return func(c *Coordinator) {
		c.onChange = fn
	}
}

// Coordinator mediates all asynchronous data flow between the backend and
// the presentation layer.
type Coordinator struct {
	properties port.PropertiesPort
	users      port.UsersPort
	favorites  port.FavoritesPort
	logger     port.LoggerPort
	onChange   func(State)

	mu    sync.Mutex
	state State
	// generation changes with every selection change.
	generation uint64
	// fetchID identifies the favorites fetch allowed to write; a successful
	// toggle bumps it so an older in-flight fetch cannot undo the toggle.
	fetchID uint64
	// toggles counts toggle requests in flight.
	toggles int

	wg sync.WaitGroup
}

// New returns a coordinator with an empty catalog, no selection and
// Loading set. Call Start to issue the initial load.
func New(properties port.PropertiesPort, users port.UsersPort, favorites port.FavoritesPort, logger port.LoggerPort, opts ...Option) *Coordinator {
	if logger == nil {
		logger = contextkeys.NoopLogger()
	}
	c := &Coordinator{
		properties: properties,
		users:      users,
		favorites:  favorites,
		logger:     logger.WithFields(port.Fields{"component": "coordinator"}),
		state:      initialState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every background operation started by Start, Retry,
// SelectUser or StartToggle has returned.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Start issues the initial load in the background.
func (c *Coordinator) Start(ctx context.Context) {
	c.spawn(func() { _ = c.Load(ctx) })
}

// Retry re-runs the initial load in the background. It may be called while
// another load is still running; whichever finishes last wins.
func (c *Coordinator) Retry(ctx context.Context) {
	c.spawn(func() { _ = c.Load(ctx) })
}

// Load fetches the catalog and the users concurrently. Both lists are
// replaced on success; on any failure both are emptied and the error message
// is recorded. The error is returned as well.
func (c *Coordinator) Load(ctx context.Context) error {
	ctx, logger := contextkeys.NewOperationContext(ctx, c.logger, "load")

	c.update(func(s *State) {
		s.Loading = true
		s.LoadError = ""
	})
	logger.Debug("Loading catalog and users", nil)

	var (
		properties []domain.Property
		users      []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		properties, err = c.properties.ListProperties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.users.ListUsers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Initial load failed", err, nil)
		c.update(func(s *State) {
			s.Properties = []domain.Property{}
			s.Users = []domain.User{}
			s.LoadError = domain.MessageOf(err, loadFailedMessage)
			s.Loading = false
		})
		return err
	}

	if properties == nil {
		properties = []domain.Property{}
	}
	if users == nil {
		users = []domain.User{}
	}

	logger.Info("Initial load finished", port.Fields{
		"properties": len(properties),
		"users":      len(users),
	})
	c.update(func(s *State) {
		s.Properties = properties
		s.Users = users
		s.LoadError = ""
		s.Loading = false
	})
	return nil
}

// SelectUser changes the selection. "" clears the selection together with
// the favorites and their error, without any request. Any other id clears
// the favorites and their error, then fetches that user's favorites in the
// background. Selecting the already selected user does nothing.
func (c *Coordinator) SelectUser(ctx context.Context, userID string) {
	c.mu.Lock()
	if c.state.SelectedUserID == userID {
		c.mu.Unlock()
		return
	}
	c.generation++
	c.fetchID++
	gen, fetchID := c.generation, c.fetchID

	c.state.SelectedUserID = userID
	c.state.Favorites = domain.EmptyFavorites()
	c.state.FavoritesError = ""
	snapshot := c.state
	c.mu.Unlock()

	c.logger.Debug("Selection changed", port.Fields{"user_id": userID, "generation": gen})
	c.notify(snapshot)

	if userID == "" {
		return
	}
	c.spawn(func() { c.fetchFavorites(ctx, userID, gen, fetchID) })
}

func (c *Coordinator) fetchFavorites(ctx context.Context, userID string, gen, fetchID uint64) {
	ctx, logger := contextkeys.NewOperationContext(ctx, c.logger.WithFields(port.Fields{"user_id": userID}), "load_favorites")

	ids, err := c.favorites.GetFavorites(ctx, userID)

	c.mu.Lock()
	if c.generation != gen || c.fetchID != fetchID {
		c.mu.Unlock()
		logger.Debug("Discarding stale favorites response", port.Fields{"generation": gen})
		return
	}
	if err != nil {
		c.state.Favorites = domain.EmptyFavorites()
		c.state.FavoritesError = domain.MessageOf(err, favoritesFailedMessage)
	} else {
		c.state.Favorites = domain.NewFavoriteSet(ids)
	}
	snapshot := c.state
	c.mu.Unlock()

	if err != nil {
		logger.Error("Failed to load favorites", err, nil)
	} else {
		logger.Debug("Favorites loaded", port.Fields{"count": len(ids)})
	}
	c.notify(snapshot)
}

// ToggleFavorite flips propertyID for the selected user and replaces the
// favorites with the set the backend returns. Without a selection it does
// nothing and returns nil. On failure the previous favorites stay and the
// message is recorded as the favorites error.
//
// The coordinator does not serialize toggles; callers keep controls disabled
// while State.ToggleInFlight is set.
func (c *Coordinator) ToggleFavorite(ctx context.Context, propertyID string) error {
	t, ok := c.beginToggle(propertyID)
	if !ok {
		return nil
	}
	return c.finishToggle(ctx, t)
}

// StartToggle is ToggleFavorite in the background. The in-flight flag is set
// before StartToggle returns. It reports whether a toggle was issued.
func (c *Coordinator) StartToggle(ctx context.Context, propertyID string) bool {
	t, ok := c.beginToggle(propertyID)
	if !ok {
		return false
	}
	c.spawn(func() { _ = c.finishToggle(ctx, t) })
	return true
}

type toggle struct {
	userID     string
	propertyID string
	generation uint64
}

func (c *Coordinator) beginToggle(propertyID string) (toggle, bool) {
	c.mu.Lock()
	if c.state.SelectedUserID == "" {
		c.mu.Unlock()
		return toggle{}, false
	}
	t := toggle{
		userID:     c.state.SelectedUserID,
		propertyID: propertyID,
		generation: c.generation,
	}
	c.toggles++
	c.state.ToggleInFlight = true
	c.state.FavoritesError = ""
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
	return t, true
}

func (c *Coordinator) finishToggle(ctx context.Context, t toggle) error {
	ctx, logger := contextkeys.NewOperationContext(ctx, c.logger.WithFields(port.Fields{
		"user_id":     t.userID,
		"property_id": t.propertyID,
	}), "toggle_favorite")

	ids, err := c.favorites.ToggleFavorite(ctx, t.userID, t.propertyID)

	c.mu.Lock()
	c.toggles--
	c.state.ToggleInFlight = c.toggles > 0
	current := c.generation == t.generation
	switch {
	case !current:
		// The favorites on screen belong to another user now.
	case err != nil:
		c.state.FavoritesError = domain.MessageOf(err, toggleFailedMessage)
	default:
		c.state.Favorites = domain.NewFavoriteSet(ids)
		c.fetchID++
	}
	snapshot := c.state
	c.mu.Unlock()

	switch {
	case !current:
		logger.Debug("Selection changed during toggle, result dropped", nil)
	case err != nil:
		logger.Error("Failed to toggle favorite", err, nil)
	default:
		logger.Info("Favorite toggled", port.Fields{"count": len(ids)})
	}
	c.notify(snapshot)
	return err
}

func (c *Coordinator) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Coordinator) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *Coordinator) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

package coordinator

import "property-viewer/internal/core/domain"

// State is a read-only snapshot of everything the presentation layer renders.
// Slices are shared with the coordinator and must not be modified.
type State struct {
	Properties []domain.Property
	Users      []domain.User

	// Loading is true while the catalog/users load is in flight.
	Loading bool
	// LoadError is the message of the last failed load, "" when absent.
	LoadError string

	// SelectedUserID is "" when no user is selected.
	SelectedUserID string
	// Favorites always belongs to SelectedUserID.
	Favorites domain.FavoriteSet
	// FavoritesError is "" when absent.
	FavoritesError string

	ToggleInFlight bool
}

// HasSelection reports whether a user is selected.
func (s State) HasSelection() bool {
	return s.SelectedUserID != ""
}

// FavoritesDisabled is true when favorite controls must not be offered:
// nobody is selected or a toggle is already running.
func (s State) FavoritesDisabled() bool {
	return !s.HasSelection() || s.ToggleInFlight
}

// SelectedUser resolves the selection against the loaded users.
func (s State) SelectedUser() (domain.User, bool) {
	if !s.HasSelection() {
		return domain.User{}, false
	}
	return domain.FindUser(s.Users, s.SelectedUserID)
}

func initialState() State {
	return State{
		Properties: []domain.Property{},
		Users:      []domain.User{},
		Loading:    true,
		Favorites:  domain.EmptyFavorites(),
	}
}

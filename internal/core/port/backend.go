package port

import (
	"context"
	"property-viewer/internal/core/domain"
)

// PropertiesPort - read access to the property catalog.
type PropertiesPort interface {
	ListProperties(ctx context.Context) ([]domain.Property, error)
}

// UsersPort - read access to the list of users that can own favorites.
type UsersPort interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// FavoritesPort - per-user favorites held by the backend.
// Both methods return the complete set of favorite property ids.
type FavoritesPort interface {
	GetFavorites(ctx context.Context, userID string) ([]string, error)
	ToggleFavorite(ctx context.Context, userID, propertyID string) ([]string, error)
}

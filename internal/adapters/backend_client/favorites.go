package backend_client

import (
	"context"
	"property-viewer/internal/adapters/gateway"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/contracts"
	"property-viewer/internal/core/port"
)

func favoritesPath(userID string) string {
	return "/favorites/" + gateway.PathSegment(userID)
}

// GetFavorites - GET /favorites/{userId}. Returns the user's favorite
// property ids.
func (c *Client) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"method":  "GetFavorites",
		"user_id": userID,
	})

	var ids []string
	if err := c.gw.Get(ctx, favoritesPath(userID), contracts.Favorites, &ids); err != nil {
		return nil, asAPIError(err)
	}
	if ids == nil {
		ids = []string{}
	}

	logger.Debug("Favorites fetched", port.Fields{"count": len(ids)})
	return ids, nil
}

// ToggleFavorite - POST /favorites/{userId}. Returns the complete favorite
// set after the backend flipped propertyID.
func (c *Client) ToggleFavorite(ctx context.Context, userID, propertyID string) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"method":      "ToggleFavorite",
		"user_id":     userID,
		"property_id": propertyID,
	})

	var ids []string
	body := toggleFavoriteRequest{PropertyID: propertyID}
	if err := c.gw.Post(ctx, favoritesPath(userID), body, contracts.Favorites, &ids); err != nil {
		return nil, asAPIError(err)
	}
	if ids == nil {
		ids = []string{}
	}

	logger.Debug("Favorite toggled", port.Fields{"count": len(ids)})
	return ids, nil
}

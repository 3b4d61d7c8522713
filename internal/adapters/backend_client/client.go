package backend_client

import (
	"context"
	"errors"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"
)

// Requester is the slice of the gateway the data-access functions need.
type Requester interface {
	Get(ctx context.Context, path, contract string, out any) error
	Post(ctx context.Context, path string, body any, contract string, out any) error
}

// Client - typed access to the listings backend. It implements
// PropertiesPort, UsersPort and FavoritesPort.
type Client struct {
	gw Requester
}

var (
	_ port.PropertiesPort = (*Client)(nil)
	_ port.UsersPort      = (*Client)(nil)
	_ port.FavoritesPort  = (*Client)(nil)
)

func NewClient(gw Requester) *Client {
	return &Client{gw: gw}
}

// asAPIError keeps the uniform error contract even if a Requester
// implementation leaks something else.
func asAPIError(err error) error {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &domain.APIError{Message: err.Error()}
}

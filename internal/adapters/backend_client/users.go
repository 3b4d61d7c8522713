package backend_client

import (
	"context"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/contracts"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"
)

// ListUsers - GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"method": "ListUsers"})

	var dtos []userDTO
	if err := c.gw.Get(ctx, "/users", contracts.Users, &dtos); err != nil {
		return nil, asAPIError(err)
	}

	result := make([]domain.User, len(dtos))
	for i, dto := range dtos {
		result[i] = dto.toDomain()
	}

	logger.Debug("Users fetched", port.Fields{"count": len(result)})
	return result, nil
}

package backend_client

import (
	"context"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/contracts"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"
)

// ListProperties - GET /properties.
func (c *Client) ListProperties(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"method": "ListProperties"})

	var dtos []propertyDTO
	if err := c.gw.Get(ctx, "/properties", contracts.Properties, &dtos); err != nil {
		return nil, asAPIError(err)
	}

	result := make([]domain.Property, len(dtos))
	for i, dto := range dtos {
		result[i] = dto.toDomain()
	}

	logger.Debug("Properties fetched", port.Fields{"count": len(result)})
	return result, nil
}

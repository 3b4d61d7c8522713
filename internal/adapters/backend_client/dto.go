package backend_client

import "property-viewer/internal/core/domain"

// propertyDTO mirrors a catalog entry on the wire.
type propertyDTO struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Beds     int     `json:"beds"`
	Baths    int     `json:"baths"`
	Sqm      float64 `json:"sqm"`
}

func (d propertyDTO) toDomain() domain.Property {
	return domain.Property{
		ID:       d.ID,
		Title:    d.Title,
		Location: d.Location,
		Price:    d.Price,
		ImageURL: d.ImageURL,
		Beds:     d.Beds,
		Baths:    d.Baths,
		Sqm:      d.Sqm,
	}
}

type userDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{ID: d.ID, Name: d.Name}
}

// toggleFavoriteRequest - body of POST /favorites/{userId}.
type toggleFavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

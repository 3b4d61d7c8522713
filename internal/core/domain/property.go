package domain

// Property - a listing from the backend catalog. Price carries no currency;
// formatting is left to the presentation layer.
type Property struct {
	ID       string
	Title    string
	Location string
	Price    float64
	ImageURL string
	Beds     int
	Baths    int
	Sqm      float64
}

// User - someone the operator can browse as.
type User struct {
	ID   string
	Name string
}

// FindUser returns the user with the given id, if present.
func FindUser(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

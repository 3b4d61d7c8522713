package domain

import "sort"

// FavoriteSet - the favorite property ids of exactly one user.
// A FavoriteSet is never modified after construction; updates replace it.
type FavoriteSet struct {
	ids map[string]struct{}
}

// NewFavoriteSet builds a set from the id list returned by the backend.
// Duplicates collapse.
func NewFavoriteSet(ids []string) FavoriteSet {
	set := FavoriteSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

// EmptyFavorites returns a set with no members.
func EmptyFavorites() FavoriteSet {
	return NewFavoriteSet(nil)
}

func (s FavoriteSet) Has(propertyID string) bool {
	_, ok := s.ids[propertyID]
	return ok
}

func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in ascending order.
func (s FavoriteSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteSet(t *testing.T) {
	set := NewFavoriteSet([]string{"p2", "p1", "p2"})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("p1"))
	assert.True(t, set.Has("p2"))
	assert.False(t, set.Has("p3"))
	assert.Equal(t, []string{"p1", "p2"}, set.IDs())
}

func TestFavoriteSet_ZeroValue(t *testing.T) {
	var set FavoriteSet

	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Has("p1"))
	assert.Empty(t, set.IDs())
	assert.Equal(t, 0, EmptyFavorites().Len())
}

func TestMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("list properties: %w", &APIError{Message: "Boom", Status: 500})

	assert.Equal(t, "Boom", MessageOf(wrapped, "fallback"))
	assert.Equal(t, "Network error", MessageOf(NewNetworkError(), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("plain"), "fallback"))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "Network error", NewNetworkError().Error())
	assert.Equal(t, "Request failed (404) (status 404)", NewStatusError(404).Error())
}

func TestFindUser(t *testing.T) {
	users := []User{{ID: "u1", Name: "Ann"}, {ID: "u2", Name: "Bob"}}

	u, ok := FindUser(users, "u2")
	assert.True(t, ok)
	assert.Equal(t, "Bob", u.Name)

	_, ok = FindUser(users, "u3")
	assert.False(t, ok)
}

package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Properties(t *testing.T) {
	valid := `[{"id":"p1","title":"Loft","location":"Bangkok","price":2500000,"imageUrl":"https://img/1.jpg","beds":2,"baths":1,"sqm":64.5}]`
	assert.NoError(t, Validate(Properties, []byte(valid)))
	assert.NoError(t, Validate(Properties, []byte(`[]`)))

	assert.Error(t, Validate(Properties, []byte(`[{"title":"no id","price":1}]`)))
	assert.Error(t, Validate(Properties, []byte(`[{"id":"p1","title":"neg","price":-1}]`)))
	assert.Error(t, Validate(Properties, []byte(`{"id":"p1"}`)))
}

func TestValidate_Users(t *testing.T) {
	assert.NoError(t, Validate(Users, []byte(`[{"id":"u1","name":"Ann"}]`)))
	assert.Error(t, Validate(Users, []byte(`[{"id":"u1"}]`)))
}

func TestValidate_Favorites(t *testing.T) {
	assert.NoError(t, Validate(Favorites, []byte(`["p1","p2"]`)))
	assert.NoError(t, Validate(Favorites, []byte(`null`)))
	assert.Error(t, Validate(Favorites, []byte(`[1,2]`)))
}

func TestValidate_Errors(t *testing.T) {
	assert.ErrorContains(t, Validate("unknown", []byte(`[]`)), "not found")
	assert.ErrorContains(t, Validate(Users, []byte(`not json`)), "not valid JSON")
}

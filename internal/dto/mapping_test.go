package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerMapping_DropsCountry(t *testing.T) {
	countryID := int64(7)
	owner := domain.Owner{ID: 3, Name: "Misty", Gym: "Cerulean", CountryID: &countryID}

	d := OwnerToDto(owner)
	assert.Equal(t, OwnerDto{ID: 3, Name: "Misty", Gym: "Cerulean"}, d)

	back := OwnerFromDto(d)
	assert.Nil(t, back.CountryID)
	assert.Equal(t, owner.Name, back.Name)
}

func TestReviewMapping_DropsReferences(t *testing.T) {
	review := domain.Review{ID: 1, Title: "Great", Text: "Loved it", Rating: 5, ReviewerID: 2, PokemonID: 3}

	back := ReviewFromDto(ReviewToDto(review))
	assert.Equal(t, domain.Review{ID: 1, Title: "Great", Text: "Loved it", Rating: 5}, back)
}

func TestSliceMappers_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, CountriesToDto(nil))
	assert.NotNil(t, PokemonListToDto(nil))
	assert.Empty(t, ReviewsToDto(nil))

	out, err := json.Marshal(OwnersToDto(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}

func TestSliceMappers_PreserveOrder(t *testing.T) {
	categories := []domain.Category{{ID: 2, Name: "Water"}, {ID: 1, Name: "Fire"}}
	assert.Equal(t, []CategoryDto{{ID: 2, Name: "Water"}, {ID: 1, Name: "Fire"}}, CategoriesToDto(categories))

	reviewers := []domain.Reviewer{{ID: 1, FirstName: "Samuel", LastName: "Oak"}}
	assert.Equal(t, []ReviewerDto{{ID: 1, FirstName: "Samuel", LastName: "Oak"}}, ReviewersToDto(reviewers))
}

func TestPokemonDto_JSONShape(t *testing.T) {
	born := time.Date(1996, time.February, 27, 0, 0, 0, 0, time.UTC)
	out, err := json.Marshal(PokemonToDto(domain.Pokemon{ID: 25, Name: "Pikachu", BirthDate: born}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":25,"name":"Pikachu","birthDate":"1996-02-27T00:00:00Z"}`, string(out))

	var d PokemonDto
	require.NoError(t, json.Unmarshal(out, &d))
	assert.Equal(t, born, PokemonFromDto(d).BirthDate)

	out, err = json.Marshal(ReviewerToDto(domain.Reviewer{ID: 1, FirstName: "Samuel", LastName: "Oak"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"firstName":"Samuel","lastName":"Oak"}`, string(out))
}

func TestCountryMapping(t *testing.T) {
	c := domain.Country{ID: 1, Name: "Kanto"}
	assert.Equal(t, c, CountryFromDto(CountryToDto(c)))

	cat := domain.Category{ID: 4, Name: "Electric"}
	assert.Equal(t, cat, CategoryFromDto(CategoryToDto(cat)))
}

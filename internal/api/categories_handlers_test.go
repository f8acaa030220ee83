package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_Create(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/category", `{"name": "Water"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CreatedMessage, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/category", `{"name": "water "}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Category already exists", decodeJSON[ErrorResponse](t, w).Error)

	w = s.do(t, http.MethodPost, "/api/category", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/category", `{"name": "\t"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/category", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []dto.CategoryDto{{ID: 1, Name: "Water"}}, decodeJSON[[]dto.CategoryDto](t, w))
}

func TestCategories_GetAndPokemon(t *testing.T) {
	s := newTestServer(t)
	_, _, electric, _ := s.seedCatalogue(t)
	_, err := s.ds.Categories.Create(context.Background(), domain.Category{Name: "Fire"})
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/api/category/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.CategoryToDto(electric), decodeJSON[dto.CategoryDto](t, w))

	w = s.do(t, http.MethodGet, "/api/category/pokemon/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeJSON[[]dto.PokemonDto](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, "Pikachu", got[0].Name)

	w = s.do(t, http.MethodGet, "/api/category/pokemon/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/category/pokemon/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategories_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalogue(t)

	w := s.do(t, http.MethodPut, "/api/category/1", `{"id": 1, "name": "Lightning"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	got, err := s.ds.Categories.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Lightning", got.Name)

	w = s.do(t, http.MethodPut, "/api/category/1", `{"id": 1, "name": "  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/category/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	// The pokemon survives, only the link goes
	exists, err := s.ds.Pokemon.ExistsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	w = s.do(t, http.MethodDelete, "/api/category/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

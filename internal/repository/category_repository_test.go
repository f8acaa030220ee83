package repository

import (
	"context"
	"testing"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CRUD(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewCategoryRepository(db, stmts)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, domain.Category{Name: "electric"})
	assert.ErrorIs(t, err, ErrDuplicate)

	updated, err := repo.Update(ctx, domain.Category{ID: created.ID, Name: "Water"})
	require.NoError(t, err)
	assert.Equal(t, "Water", updated.Name)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{updated}, all)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	err = repo.DeleteByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_FindPokemon(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewCategoryRepository(db, stmts)
	pokemon := NewPokemonRepository(db, stmts)
	ctx := context.Background()

	electric, err := repo.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)
	pikachu := mustCreatePokemon(t, pokemon, "Pikachu")
	mustCreatePokemon(t, pokemon, "Squirtle")

	require.NoError(t, pokemon.LinkCategory(ctx, domain.PokemonCategory{PokemonID: pikachu.ID, CategoryID: electric.ID}))

	err = pokemon.LinkCategory(ctx, domain.PokemonCategory{PokemonID: pikachu.ID, CategoryID: 999})
	assert.ErrorIs(t, err, ErrConstraint)

	list, err := repo.FindPokemon(ctx, electric.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Pokemon{pikachu}, list)
}

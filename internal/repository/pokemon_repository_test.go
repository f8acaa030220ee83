package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPokemonRepository_CRUD(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)
	ctx := context.Background()

	born := time.Date(1996, time.February, 27, 9, 30, 0, 0, time.FixedZone("JST", 9*60*60))
	created, err := repo.Create(ctx, domain.Pokemon{Name: "Pikachu", BirthDate: born})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, born.Equal(created.BirthDate))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	byName, err := repo.FindByName(ctx, "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byName, err = repo.FindByName(ctx, " pIKACHU ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.FindByName(ctx, "Missingno")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := repo.Update(ctx, domain.Pokemon{ID: created.ID, Name: "Raichu", BirthDate: born.AddDate(1, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, "Raichu", updated.Name)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, updated, all[0])

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPokemonRepository_Duplicate(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)

	mustCreatePokemon(t, repo, "Pikachu")
	_, err := repo.Create(context.Background(), domain.Pokemon{Name: "PIKACHU", BirthDate: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPokemonRepository_CreateWithRelations(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)
	owners := NewOwnerRepository(db, stmts)
	categories := NewCategoryRepository(db, stmts)
	ctx := context.Background()

	ash, err := owners.Create(ctx, domain.Owner{Name: "Ash"})
	require.NoError(t, err)
	electric, err := categories.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)

	pikachu, err := repo.CreateWithRelations(ctx, ash.ID, electric.ID, domain.Pokemon{Name: "Pikachu", BirthDate: time.Now()})
	require.NoError(t, err)
	assert.NotZero(t, pikachu.ID)

	owned, err := owners.FindPokemon(ctx, ash.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, pikachu.ID, owned[0].ID)

	inCategory, err := categories.FindPokemon(ctx, electric.ID)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, pikachu.ID, inCategory[0].ID)
}

func TestPokemonRepository_CreateWithRelations_RollsBack(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)
	owners := NewOwnerRepository(db, stmts)
	ctx := context.Background()

	ash, err := owners.Create(ctx, domain.Owner{Name: "Ash"})
	require.NoError(t, err)

	_, err = repo.CreateWithRelations(ctx, ash.ID, 999, domain.Pokemon{Name: "Pikachu", BirthDate: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraint)

	_, err = repo.FindByName(ctx, "Pikachu")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPokemonRepository_Rating(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)
	reviewers := NewReviewerRepository(db, stmts)
	reviews := NewReviewRepository(db, stmts)
	ctx := context.Background()

	pikachu := mustCreatePokemon(t, repo, "Pikachu")

	rating, err := repo.Rating(ctx, pikachu.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating)

	oak, err := reviewers.Create(ctx, domain.Reviewer{FirstName: "Samuel", LastName: "Oak"})
	require.NoError(t, err)
	for _, score := range []int{5, 4} {
		_, err := reviews.Create(ctx, domain.Review{Title: "Review", Text: "Text", Rating: score, ReviewerID: oak.ID, PokemonID: pikachu.ID})
		require.NoError(t, err)
	}

	rating, err = repo.Rating(ctx, pikachu.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rating, 0.0001)
}

func TestPokemonRepository_DeleteCascades(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewPokemonRepository(db, stmts)
	categories := NewCategoryRepository(db, stmts)
	ctx := context.Background()

	electric, err := categories.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)
	pikachu := mustCreatePokemon(t, repo, "Pikachu")
	require.NoError(t, repo.LinkCategory(ctx, domain.PokemonCategory{PokemonID: pikachu.ID, CategoryID: electric.ID}))

	require.NoError(t, repo.DeleteByID(ctx, pikachu.ID))

	left, err := categories.FindPokemon(ctx, electric.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

package repository

import (
	"context"
	"testing"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_CRUD(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewReviewRepository(db, stmts)
	reviewers := NewReviewerRepository(db, stmts)
	ctx := context.Background()

	pikachu := mustCreatePokemon(t, NewPokemonRepository(db, stmts), "Pikachu")
	oak, err := reviewers.Create(ctx, domain.Reviewer{FirstName: "Samuel", LastName: "Oak"})
	require.NoError(t, err)

	created, err := repo.Create(ctx, domain.Review{
		Title: "Shocking", Text: "Best starter", Rating: 5, ReviewerID: oak.ID, PokemonID: pikachu.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Reviewer and pokemon are fixed once written
	updated, err := repo.Update(ctx, domain.Review{ID: created.ID, Title: "Still shocking", Text: "Yes", Rating: 4, ReviewerID: 999, PokemonID: 999})
	require.NoError(t, err)
	assert.Equal(t, "Still shocking", updated.Title)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, oak.ID, updated.ReviewerID)
	assert.Equal(t, pikachu.ID, updated.PokemonID)

	byPokemon, err := repo.FindByPokemonID(ctx, pikachu.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Review{updated}, byPokemon)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewRepository_MissingReferences(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewReviewRepository(db, stmts)

	_, err := repo.Create(context.Background(), domain.Review{Title: "Orphan", Text: "x", Rating: 3, ReviewerID: 1, PokemonID: 1})
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestReviewRepository_DeleteMany(t *testing.T) {
	db, stmts := setupRepoTest(t)
	repo := NewReviewRepository(db, stmts)
	ctx := context.Background()

	pikachu := mustCreatePokemon(t, NewPokemonRepository(db, stmts), "Pikachu")
	oak, err := NewReviewerRepository(db, stmts).Create(ctx, domain.Reviewer{FirstName: "Samuel", LastName: "Oak"})
	require.NoError(t, err)

	var ids []int64
	for i := 1; i <= 3; i++ {
		rv, err := repo.Create(ctx, domain.Review{Title: "Review", Text: "Text", Rating: i, ReviewerID: oak.ID, PokemonID: pikachu.ID})
		require.NoError(t, err)
		ids = append(ids, rv.ID)
	}

	require.NoError(t, repo.DeleteMany(ctx, nil))

	// An unknown ID aborts the whole batch
	err = repo.DeleteMany(ctx, []int64{ids[0], 999})
	assert.ErrorIs(t, err, ErrNotFound)
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.DeleteMany(ctx, ids))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

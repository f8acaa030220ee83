package datastore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/config"
	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/jbweber/homelab/pokereview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{ err error }

func (f failingSource) InitializeDatabase(context.Context) (*sql.DB, error) {
	return nil, f.err
}

func TestOpen_Config(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "pokereview.db")

	ds, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer ds.Close()

	require.NotNil(t, ds.DB)
	require.NoError(t, ds.Ping(ctx))

	for _, table := range []string{"countries", "owners", "pokemon", "categories", "reviews", "reviewers"} {
		_, err := ds.DB.Exec("SELECT id FROM " + table)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestNew_WiresRepositories(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, t.Name())
	defer cleanup()

	ds := New(db)
	ctx := context.Background()

	empty, err := ds.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	kanto, err := ds.Countries.Create(ctx, domain.Country{Name: "Kanto"})
	require.NoError(t, err)
	ash, err := ds.Owners.Create(ctx, domain.Owner{Name: "Ash", Gym: "Pallet", CountryID: &kanto.ID})
	require.NoError(t, err)
	electric, err := ds.Categories.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)
	pikachu, err := ds.Pokemon.CreateWithRelations(ctx, ash.ID, electric.ID, domain.Pokemon{Name: "Pikachu", BirthDate: time.Now()})
	require.NoError(t, err)
	oak, err := ds.Reviewers.Create(ctx, domain.Reviewer{FirstName: "Samuel", LastName: "Oak"})
	require.NoError(t, err)
	_, err = ds.Reviews.Create(ctx, domain.Review{Title: "Zap", Text: "Fast", Rating: 5, ReviewerID: oak.ID, PokemonID: pikachu.ID})
	require.NoError(t, err)

	empty, err = ds.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	owned, err := ds.Owners.FindPokemon(ctx, ash.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Pikachu", owned[0].Name)
}

func TestOpen_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	ds, err := Open(context.Background(), failingSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ds)
}

func TestReset(t *testing.T) {
	db, cleanup := testutil.SetupTestDBWithMigrations(t, t.Name())
	defer cleanup()

	ds := New(db)
	ctx := context.Background()

	// Reset on a fresh schema is a no-op
	require.NoError(t, ds.Reset(ctx))

	kanto, err := ds.Countries.Create(ctx, domain.Country{Name: "Kanto"})
	require.NoError(t, err)
	ash, err := ds.Owners.Create(ctx, domain.Owner{Name: "Ash", CountryID: &kanto.ID})
	require.NoError(t, err)
	electric, err := ds.Categories.Create(ctx, domain.Category{Name: "Electric"})
	require.NoError(t, err)
	pikachu, err := ds.Pokemon.CreateWithRelations(ctx, ash.ID, electric.ID, domain.Pokemon{Name: "Pikachu", BirthDate: time.Now()})
	require.NoError(t, err)
	oak, err := ds.Reviewers.Create(ctx, domain.Reviewer{FirstName: "Samuel", LastName: "Oak"})
	require.NoError(t, err)
	_, err = ds.Reviews.Create(ctx, domain.Review{Title: "Zap", Text: "Fast", Rating: 5, ReviewerID: oak.ID, PokemonID: pikachu.ID})
	require.NoError(t, err)

	require.NoError(t, ds.Reset(ctx))

	empty, err := ds.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	var links int
	require.NoError(t, db.QueryRow("SELECT (SELECT COUNT(*) FROM pokemon_owners) + (SELECT COUNT(*) FROM pokemon_categories) + (SELECT COUNT(*) FROM reviews)").Scan(&links))
	assert.Zero(t, links)

	again, err := ds.Countries.Create(ctx, domain.Country{Name: "Kanto"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.ID)
}

// Package datastore bundles the database handle with every repository so
// callers receive a single dependency.
package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/repository"
	_ "modernc.org/sqlite"
)

// Datastore is the open database and the repositories over it
type Datastore struct {
	DB *sql.DB

	Countries  repository.CountryRepository
	Owners     repository.OwnerRepository
	Pokemon    repository.PokemonRepository
	Categories repository.CategoryRepository
	Reviews    repository.ReviewRepository
	Reviewers  repository.ReviewerRepository

	stmts *repository.PreparedStatementCache
}

// New wraps an already migrated database
func New(db *sql.DB) *Datastore {
	stmts := repository.NewPreparedStatementCache(db)
	return &Datastore{
		DB:         db,
		Countries:  repository.NewCountryRepository(db, stmts),
		Owners:     repository.NewOwnerRepository(db, stmts),
		Pokemon:    repository.NewPokemonRepository(db, stmts),
		Categories: repository.NewCategoryRepository(db, stmts),
		Reviews:    repository.NewReviewRepository(db, stmts),
		Reviewers:  repository.NewReviewerRepository(db, stmts),
		stmts:      stmts,
	}
}

// Source opens a tuned, migrated database. *config.Config is one.
type Source interface {
	InitializeDatabase(ctx context.Context) (*sql.DB, error)
}

// Open initializes the database behind src and returns the Datastore over it
func Open(ctx context.Context, src Source) (*Datastore, error) {
	db, err := src.InitializeDatabase(ctx)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Ping verifies the database is reachable
func (ds *Datastore) Ping(ctx context.Context) error {
	return ds.DB.PingContext(ctx)
}

// Empty reports whether no catalogue rows exist yet
func (ds *Datastore) Empty(ctx context.Context) (bool, error) {
	var populated bool
	err := ds.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM countries)
			OR EXISTS(SELECT 1 FROM owners)
			OR EXISTS(SELECT 1 FROM pokemon)
			OR EXISTS(SELECT 1 FROM categories)
			OR EXISTS(SELECT 1 FROM reviewers)`).Scan(&populated)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing data: %w", err)
	}
	return !populated, nil
}

// Reset deletes every catalogue row and restarts the id sequences in one
// transaction
func (ds *Datastore) Reset(ctx context.Context) error {
	tx, err := ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range resetOrder {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	// AUTOINCREMENT tables keep their high-water mark here
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence"); err != nil {
		return fmt.Errorf("failed to reset id sequences: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// children before parents so foreign keys hold throughout
var resetOrder = []string{
	"pokemon_categories",
	"pokemon_owners",
	"reviews",
	"reviewers",
	"pokemon",
	"categories",
	"owners",
	"countries",
}

// Close releases prepared statements and the database
func (ds *Datastore) Close() error {
	return errors.Join(ds.stmts.Close(), ds.DB.Close())
}

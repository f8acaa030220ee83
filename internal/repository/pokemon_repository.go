package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// PokemonRepository extends the generic Repository with pokemon-specific operations
type PokemonRepository interface {
	Repository[domain.Pokemon, int64]

	// FindByName looks a pokemon up by name, ignoring case and surrounding
	// spaces the way the unique name index does
	FindByName(ctx context.Context, name string) (domain.Pokemon, error)

	// Rating returns the average review rating of a pokemon, 0 when unreviewed
	Rating(ctx context.Context, pokemonID int64) (float64, error)

	// CreateWithRelations inserts a pokemon together with its first owner
	// and category link in a single transaction
	CreateWithRelations(ctx context.Context, ownerID, categoryID int64, pokemon domain.Pokemon) (domain.Pokemon, error)

	// LinkOwner adds a pokemon_owners row
	LinkOwner(ctx context.Context, link domain.PokemonOwner) error

	// LinkCategory adds a pokemon_categories row
	LinkCategory(ctx context.Context, link domain.PokemonCategory) error
}

// pokemonRepositoryImpl implements PokemonRepository
type pokemonRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewPokemonRepository creates a new pokemon repository
func NewPokemonRepository(db *sql.DB, stmts *PreparedStatementCache) PokemonRepository {
	return &pokemonRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

// birth_date is stored as RFC 3339 text in UTC
func formatBirthDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func scanPokemon(s scanner) (domain.Pokemon, error) {
	var p domain.Pokemon
	var birthDate string
	if err := s.Scan(&p.ID, &p.Name, &birthDate); err != nil {
		return domain.Pokemon{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, birthDate)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("invalid birth date %q for pokemon %d: %w", birthDate, p.ID, err)
	}
	p.BirthDate = t
	return p, nil
}

// Create inserts a pokemon without any owner or category
func (r *pokemonRepositoryImpl) Create(ctx context.Context, pokemon domain.Pokemon) (domain.Pokemon, error) {
	id, err := insert(ctx, r.db, "INSERT INTO pokemon (name, birth_date) VALUES (?, ?)",
		pokemon.Name, formatBirthDate(pokemon.BirthDate))
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("failed to create pokemon %q: %w", pokemon.Name, err)
	}
	pokemon.ID = id
	pokemon.BirthDate = pokemon.BirthDate.UTC()
	return pokemon, nil
}

// CreateWithRelations inserts the pokemon, its owner link and its category
// link. Nothing is stored if any insert fails.
func (r *pokemonRepositoryImpl) CreateWithRelations(ctx context.Context, ownerID, categoryID int64, pokemon domain.Pokemon) (domain.Pokemon, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		id, err := insert(ctx, tx, "INSERT INTO pokemon (name, birth_date) VALUES (?, ?)",
			pokemon.Name, formatBirthDate(pokemon.BirthDate))
		if err != nil {
			return err
		}
		pokemon.ID = id

		if _, err := insert(ctx, tx, "INSERT INTO pokemon_owners (pokemon_id, owner_id) VALUES (?, ?)", id, ownerID); err != nil {
			return fmt.Errorf("owner %d: %w", ownerID, err)
		}
		if _, err := insert(ctx, tx, "INSERT INTO pokemon_categories (pokemon_id, category_id) VALUES (?, ?)", id, categoryID); err != nil {
			return fmt.Errorf("category %d: %w", categoryID, err)
		}
		return nil
	})
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("failed to create pokemon %q: %w", pokemon.Name, err)
	}
	pokemon.BirthDate = pokemon.BirthDate.UTC()
	return pokemon, nil
}

// LinkOwner records that an owner has a pokemon
func (r *pokemonRepositoryImpl) LinkOwner(ctx context.Context, link domain.PokemonOwner) error {
	_, err := insert(ctx, r.db, "INSERT INTO pokemon_owners (pokemon_id, owner_id) VALUES (?, ?)", link.PokemonID, link.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to link pokemon %d to owner %d: %w", link.PokemonID, link.OwnerID, err)
	}
	return nil
}

// LinkCategory records that a pokemon belongs to a category
func (r *pokemonRepositoryImpl) LinkCategory(ctx context.Context, link domain.PokemonCategory) error {
	_, err := insert(ctx, r.db, "INSERT INTO pokemon_categories (pokemon_id, category_id) VALUES (?, ?)", link.PokemonID, link.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to link pokemon %d to category %d: %w", link.PokemonID, link.CategoryID, err)
	}
	return nil
}

// Update overwrites a pokemon's name and birth date
func (r *pokemonRepositoryImpl) Update(ctx context.Context, pokemon domain.Pokemon) (domain.Pokemon, error) {
	err := execAffecting(ctx, r.db, "UPDATE pokemon SET name = ?, birth_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		pokemon.Name, formatBirthDate(pokemon.BirthDate), pokemon.ID)
	if err != nil {
		return domain.Pokemon{}, fmt.Errorf("failed to update pokemon %d: %w", pokemon.ID, err)
	}
	pokemon.BirthDate = pokemon.BirthDate.UTC()
	return pokemon, nil
}

// FindByID retrieves a pokemon by its ID
func (r *pokemonRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Pokemon, error) {
	p, err := scanPokemon(r.db.QueryRowContext(ctx, "SELECT id, name, birth_date FROM pokemon WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pokemon{}, fmt.Errorf("pokemon with ID %d: %w", id, ErrNotFound)
		}
		return domain.Pokemon{}, fmt.Errorf("failed to find pokemon: %w", err)
	}
	return p, nil
}

// FindByName retrieves a pokemon by its name through ux_pokemon_name
func (r *pokemonRepositoryImpl) FindByName(ctx context.Context, name string) (domain.Pokemon, error) {
	p, err := scanPokemon(r.db.QueryRowContext(ctx,
		"SELECT id, name, birth_date FROM pokemon WHERE lower(trim(name)) = lower(trim(?))", name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pokemon{}, fmt.Errorf("pokemon with name %s: %w", name, ErrNotFound)
		}
		return domain.Pokemon{}, fmt.Errorf("failed to find pokemon by name: %w", err)
	}
	return p, nil
}

// FindAll retrieves all pokemon
func (r *pokemonRepositoryImpl) FindAll(ctx context.Context) ([]domain.Pokemon, error) {
	pokemon, err := queryAll(ctx, r.db, scanPokemon, "SELECT id, name, birth_date FROM pokemon ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	return pokemon, nil
}

// DeleteByID deletes a pokemon by its ID. Reviews and links go with it.
func (r *pokemonRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM pokemon WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete pokemon %d: %w", id, err)
	}
	return nil
}

// ExistsByID checks if a pokemon exists by its ID
func (r *pokemonRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "pokemon", id)
	if err != nil {
		return false, fmt.Errorf("failed to check pokemon existence: %w", err)
	}
	return exists, nil
}

// Rating averages the ratings of every review of a pokemon
func (r *pokemonRepositoryImpl) Rating(ctx context.Context, pokemonID int64) (float64, error) {
	stmt, err := r.stmts.Get(ctx, "SELECT COALESCE(AVG(rating), 0.0) FROM reviews WHERE pokemon_id = ?")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare rating query: %w", err)
	}
	var rating float64
	if err := stmt.QueryRowContext(ctx, pokemonID).Scan(&rating); err != nil {
		return 0, fmt.Errorf("failed to compute rating for pokemon %d: %w", pokemonID, err)
	}
	return rating, nil
}

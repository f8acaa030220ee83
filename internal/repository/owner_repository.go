package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// OwnerRepository extends the generic Repository with owner-specific operations
type OwnerRepository interface {
	Repository[domain.Owner, int64]

	// FindByPokemonID returns the owners of a pokemon through pokemon_owners
	FindByPokemonID(ctx context.Context, pokemonID int64) ([]domain.Owner, error)

	// FindPokemon returns the pokemon of an owner through pokemon_owners
	FindPokemon(ctx context.Context, ownerID int64) ([]domain.Pokemon, error)
}

// ownerRepositoryImpl implements OwnerRepository
type ownerRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *sql.DB, stmts *PreparedStatementCache) OwnerRepository {
	return &ownerRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

func scanOwner(s scanner) (domain.Owner, error) {
	var o domain.Owner
	var countryID sql.NullInt64
	if err := s.Scan(&o.ID, &o.Name, &o.Gym, &countryID); err != nil {
		return domain.Owner{}, err
	}
	if countryID.Valid {
		id := countryID.Int64
		o.CountryID = &id
	}
	return o, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// Create inserts a new owner, linked to its country when CountryID is set
func (r *ownerRepositoryImpl) Create(ctx context.Context, owner domain.Owner) (domain.Owner, error) {
	id, err := insert(ctx, r.db, "INSERT INTO owners (name, gym, country_id) VALUES (?, ?, ?)",
		owner.Name, owner.Gym, nullableID(owner.CountryID))
	if err != nil {
		return domain.Owner{}, fmt.Errorf("failed to create owner %q: %w", owner.Name, err)
	}
	owner.ID = id
	return owner, nil
}

// Update overwrites an owner's name and gym. The country is only changed
// when CountryID is set.
func (r *ownerRepositoryImpl) Update(ctx context.Context, owner domain.Owner) (domain.Owner, error) {
	err := execAffecting(ctx, r.db, `
		UPDATE owners
		SET name = ?, gym = ?, country_id = COALESCE(?, country_id), updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		owner.Name, owner.Gym, nullableID(owner.CountryID), owner.ID)
	if err != nil {
		return domain.Owner{}, fmt.Errorf("failed to update owner %d: %w", owner.ID, err)
	}
	return r.FindByID(ctx, owner.ID)
}

// FindByID retrieves an owner by its ID
func (r *ownerRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Owner, error) {
	o, err := scanOwner(r.db.QueryRowContext(ctx, "SELECT id, name, gym, country_id FROM owners WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Owner{}, fmt.Errorf("owner with ID %d: %w", id, ErrNotFound)
		}
		return domain.Owner{}, fmt.Errorf("failed to find owner: %w", err)
	}
	return o, nil
}

// FindAll retrieves all owners
func (r *ownerRepositoryImpl) FindAll(ctx context.Context) ([]domain.Owner, error) {
	owners, err := queryAll(ctx, r.db, scanOwner, "SELECT id, name, gym, country_id FROM owners ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

// DeleteByID deletes an owner by its ID. Its pokemon links go with it.
func (r *ownerRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM owners WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete owner %d: %w", id, err)
	}
	return nil
}

// ExistsByID checks if an owner exists by its ID
func (r *ownerRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "owners", id)
	if err != nil {
		return false, fmt.Errorf("failed to check owner existence: %w", err)
	}
	return exists, nil
}

// FindByPokemonID retrieves all owners of a pokemon
func (r *ownerRepositoryImpl) FindByPokemonID(ctx context.Context, pokemonID int64) ([]domain.Owner, error) {
	owners, err := queryAll(ctx, r.db, scanOwner, `
		SELECT o.id, o.name, o.gym, o.country_id
		FROM pokemon_owners po
		JOIN owners o ON o.id = po.owner_id
		WHERE po.pokemon_id = ?
		ORDER BY o.id ASC`, pokemonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners for pokemon %d: %w", pokemonID, err)
	}
	return owners, nil
}

// FindPokemon retrieves all pokemon of an owner
func (r *ownerRepositoryImpl) FindPokemon(ctx context.Context, ownerID int64) ([]domain.Pokemon, error) {
	pokemon, err := queryAll(ctx, r.db, scanPokemon, `
		SELECT p.id, p.name, p.birth_date
		FROM pokemon_owners po
		JOIN pokemon p ON p.id = po.pokemon_id
		WHERE po.owner_id = ?
		ORDER BY p.id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon for owner %d: %w", ownerID, err)
	}
	return pokemon, nil
}

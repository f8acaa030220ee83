package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// CountryRepository extends the generic Repository with country-specific operations
type CountryRepository interface {
	Repository[domain.Country, int64]

	// FindByOwnerID returns the country an owner belongs to.
	// Returns ErrNotFound if the owner doesn't exist or has no country.
	FindByOwnerID(ctx context.Context, ownerID int64) (domain.Country, error)

	// FindOwners returns every owner from a country
	FindOwners(ctx context.Context, countryID int64) ([]domain.Owner, error)
}

// countryRepositoryImpl implements CountryRepository
type countryRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *sql.DB, stmts *PreparedStatementCache) CountryRepository {
	return &countryRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

func scanCountry(s scanner) (domain.Country, error) {
	var c domain.Country
	err := s.Scan(&c.ID, &c.Name)
	return c, err
}

// Create inserts a new country
func (r *countryRepositoryImpl) Create(ctx context.Context, country domain.Country) (domain.Country, error) {
	id, err := insert(ctx, r.db, "INSERT INTO countries (name) VALUES (?)", country.Name)
	if err != nil {
		return domain.Country{}, fmt.Errorf("failed to create country %q: %w", country.Name, err)
	}
	country.ID = id
	return country, nil
}

// Update renames an existing country
func (r *countryRepositoryImpl) Update(ctx context.Context, country domain.Country) (domain.Country, error) {
	err := execAffecting(ctx, r.db, "UPDATE countries SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", country.Name, country.ID)
	if err != nil {
		return domain.Country{}, fmt.Errorf("failed to update country %d: %w", country.ID, err)
	}
	return country, nil
}

// FindByID retrieves a country by its ID
func (r *countryRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Country, error) {
	c, err := scanCountry(r.db.QueryRowContext(ctx, "SELECT id, name FROM countries WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Country{}, fmt.Errorf("country with ID %d: %w", id, ErrNotFound)
		}
		return domain.Country{}, fmt.Errorf("failed to find country: %w", err)
	}
	return c, nil
}

// FindAll retrieves all countries
func (r *countryRepositoryImpl) FindAll(ctx context.Context) ([]domain.Country, error) {
	countries, err := queryAll(ctx, r.db, scanCountry, "SELECT id, name FROM countries ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// DeleteByID deletes a country by its ID. Countries that still have owners
// are rejected with ErrConstraint.
func (r *countryRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM countries WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete country %d: %w", id, err)
	}
	return nil
}

// ExistsByID checks if a country exists by its ID
func (r *countryRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "countries", id)
	if err != nil {
		return false, fmt.Errorf("failed to check country existence: %w", err)
	}
	return exists, nil
}

// FindByOwnerID retrieves the country of an owner
func (r *countryRepositoryImpl) FindByOwnerID(ctx context.Context, ownerID int64) (domain.Country, error) {
	c, err := scanCountry(r.db.QueryRowContext(ctx, `
		SELECT c.id, c.name
		FROM owners o
		JOIN countries c ON c.id = o.country_id
		WHERE o.id = ?`, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Country{}, fmt.Errorf("country for owner %d: %w", ownerID, ErrNotFound)
		}
		return domain.Country{}, fmt.Errorf("failed to find country for owner %d: %w", ownerID, err)
	}
	return c, nil
}

// FindOwners retrieves all owners from a country
func (r *countryRepositoryImpl) FindOwners(ctx context.Context, countryID int64) ([]domain.Owner, error) {
	owners, err := queryAll(ctx, r.db, scanOwner,
		"SELECT id, name, gym, country_id FROM owners WHERE country_id = ? ORDER BY id ASC", countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners for country %d: %w", countryID, err)
	}
	return owners, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// CategoryRepository extends the generic Repository with category-specific operations
type CategoryRepository interface {
	Repository[domain.Category, int64]

	// FindPokemon returns the pokemon in a category through pokemon_categories
	FindPokemon(ctx context.Context, categoryID int64) ([]domain.Pokemon, error)
}

// categoryRepositoryImpl implements CategoryRepository
type categoryRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, stmts *PreparedStatementCache) CategoryRepository {
	return &categoryRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

func scanCategory(s scanner) (domain.Category, error) {
	var c domain.Category
	err := s.Scan(&c.ID, &c.Name)
	return c, err
}

// Create inserts a new category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	id, err := insert(ctx, r.db, "INSERT INTO categories (name) VALUES (?)", category.Name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}
	category.ID = id
	return category, nil
}

// Update renames an existing category
func (r *categoryRepositoryImpl) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	err := execAffecting(ctx, r.db, "UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", category.Name, category.ID)
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	return category, nil
}

// FindByID retrieves a category by its ID
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, "SELECT id, name FROM categories WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, fmt.Errorf("category with ID %d: %w", id, ErrNotFound)
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

// FindAll retrieves all categories
func (r *categoryRepositoryImpl) FindAll(ctx context.Context) ([]domain.Category, error) {
	categories, err := queryAll(ctx, r.db, scanCategory, "SELECT id, name FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// DeleteByID deletes a category by its ID. Pokemon links go with it.
func (r *categoryRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

// ExistsByID checks if a category exists by its ID
func (r *categoryRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "categories", id)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// FindPokemon retrieves all pokemon in a category
func (r *categoryRepositoryImpl) FindPokemon(ctx context.Context, categoryID int64) ([]domain.Pokemon, error) {
	pokemon, err := queryAll(ctx, r.db, scanPokemon, `
		SELECT p.id, p.name, p.birth_date
		FROM pokemon_categories pc
		JOIN pokemon p ON p.id = pc.pokemon_id
		WHERE pc.category_id = ?
		ORDER BY p.id ASC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon for category %d: %w", categoryID, err)
	}
	return pokemon, nil
}

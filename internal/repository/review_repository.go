package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// ReviewRepository extends the generic Repository with review-specific operations
type ReviewRepository interface {
	Repository[domain.Review, int64]

	// FindByPokemonID returns every review of a pokemon
	FindByPokemonID(ctx context.Context, pokemonID int64) ([]domain.Review, error)

	// DeleteMany removes the given reviews in one transaction
	DeleteMany(ctx context.Context, ids []int64) error
}

// reviewRepositoryImpl implements ReviewRepository
type reviewRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, stmts *PreparedStatementCache) ReviewRepository {
	return &reviewRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

const reviewColumns = "id, title, text, rating, reviewer_id, pokemon_id"

func scanReview(s scanner) (domain.Review, error) {
	var rv domain.Review
	err := s.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.ReviewerID, &rv.PokemonID)
	return rv, err
}

// Create inserts a review for its reviewer and pokemon
func (r *reviewRepositoryImpl) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	id, err := insert(ctx, r.db, "INSERT INTO reviews (title, text, rating, reviewer_id, pokemon_id) VALUES (?, ?, ?, ?, ?)",
		review.Title, review.Text, review.Rating, review.ReviewerID, review.PokemonID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("failed to create review %q: %w", review.Title, err)
	}
	review.ID = id
	return review, nil
}

// Update overwrites a review's title, text and rating. The reviewer and
// pokemon never change.
func (r *reviewRepositoryImpl) Update(ctx context.Context, review domain.Review) (domain.Review, error) {
	err := execAffecting(ctx, r.db, "UPDATE reviews SET title = ?, text = ?, rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		review.Title, review.Text, review.Rating, review.ID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("failed to update review %d: %w", review.ID, err)
	}
	return r.FindByID(ctx, review.ID)
}

// FindByID retrieves a review by its ID
func (r *reviewRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, fmt.Errorf("review with ID %d: %w", id, ErrNotFound)
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}
	return rv, nil
}

// FindAll retrieves all reviews
func (r *reviewRepositoryImpl) FindAll(ctx context.Context) ([]domain.Review, error) {
	reviews, err := queryAll(ctx, r.db, scanReview, "SELECT "+reviewColumns+" FROM reviews ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// FindByPokemonID retrieves all reviews of a pokemon
func (r *reviewRepositoryImpl) FindByPokemonID(ctx context.Context, pokemonID int64) ([]domain.Review, error) {
	reviews, err := queryAll(ctx, r.db, scanReview,
		"SELECT "+reviewColumns+" FROM reviews WHERE pokemon_id = ? ORDER BY id ASC", pokemonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for pokemon %d: %w", pokemonID, err)
	}
	return reviews, nil
}

// DeleteByID deletes a review by its ID
func (r *reviewRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM reviews WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	return nil
}

// DeleteMany deletes every listed review or none of them
func (r *reviewRepositoryImpl) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, id := range ids {
			if err := execAffecting(ctx, tx, "DELETE FROM reviews WHERE id = ?", id); err != nil {
				return fmt.Errorf("review %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

// ExistsByID checks if a review exists by its ID
func (r *reviewRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "reviews", id)
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return exists, nil
}

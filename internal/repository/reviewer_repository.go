package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// ReviewerRepository extends the generic Repository with reviewer-specific operations
type ReviewerRepository interface {
	Repository[domain.Reviewer, int64]

	// FindReviews returns every review written by a reviewer
	FindReviews(ctx context.Context, reviewerID int64) ([]domain.Review, error)
}

// reviewerRepositoryImpl implements ReviewerRepository
type reviewerRepositoryImpl struct {
	db    *sql.DB
	stmts *PreparedStatementCache
}

// NewReviewerRepository creates a new reviewer repository
func NewReviewerRepository(db *sql.DB, stmts *PreparedStatementCache) ReviewerRepository {
	return &reviewerRepositoryImpl{
		db:    db,
		stmts: stmts,
	}
}

func scanReviewer(s scanner) (domain.Reviewer, error) {
	var rv domain.Reviewer
	err := s.Scan(&rv.ID, &rv.FirstName, &rv.LastName)
	return rv, err
}

// Create inserts a new reviewer
func (r *reviewerRepositoryImpl) Create(ctx context.Context, reviewer domain.Reviewer) (domain.Reviewer, error) {
	id, err := insert(ctx, r.db, "INSERT INTO reviewers (first_name, last_name) VALUES (?, ?)", reviewer.FirstName, reviewer.LastName)
	if err != nil {
		return domain.Reviewer{}, fmt.Errorf("failed to create reviewer %s %s: %w", reviewer.FirstName, reviewer.LastName, err)
	}
	reviewer.ID = id
	return reviewer, nil
}

// Update overwrites a reviewer's names
func (r *reviewerRepositoryImpl) Update(ctx context.Context, reviewer domain.Reviewer) (domain.Reviewer, error) {
	err := execAffecting(ctx, r.db, "UPDATE reviewers SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		reviewer.FirstName, reviewer.LastName, reviewer.ID)
	if err != nil {
		return domain.Reviewer{}, fmt.Errorf("failed to update reviewer %d: %w", reviewer.ID, err)
	}
	return reviewer, nil
}

// FindByID retrieves a reviewer by its ID
func (r *reviewerRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Reviewer, error) {
	rv, err := scanReviewer(r.db.QueryRowContext(ctx, "SELECT id, first_name, last_name FROM reviewers WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reviewer{}, fmt.Errorf("reviewer with ID %d: %w", id, ErrNotFound)
		}
		return domain.Reviewer{}, fmt.Errorf("failed to find reviewer: %w", err)
	}
	return rv, nil
}

// FindAll retrieves all reviewers
func (r *reviewerRepositoryImpl) FindAll(ctx context.Context) ([]domain.Reviewer, error) {
	reviewers, err := queryAll(ctx, r.db, scanReviewer, "SELECT id, first_name, last_name FROM reviewers ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	return reviewers, nil
}

// DeleteByID deletes a reviewer by its ID. Their reviews go with them.
func (r *reviewerRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := execAffecting(ctx, r.db, "DELETE FROM reviewers WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete reviewer %d: %w", id, err)
	}
	return nil
}

// ExistsByID checks if a reviewer exists by its ID
func (r *reviewerRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := existsByID(ctx, r.stmts, "reviewers", id)
	if err != nil {
		return false, fmt.Errorf("failed to check reviewer existence: %w", err)
	}
	return exists, nil
}

// FindReviews retrieves all reviews written by a reviewer
func (r *reviewerRepositoryImpl) FindReviews(ctx context.Context, reviewerID int64) ([]domain.Review, error) {
	reviews, err := queryAll(ctx, r.db, scanReview,
		"SELECT "+reviewColumns+" FROM reviews WHERE reviewer_id = ? ORDER BY id ASC", reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for reviewer %d: %w", reviewerID, err)
	}
	return reviews, nil
}

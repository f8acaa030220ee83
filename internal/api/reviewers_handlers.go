package api

import (
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Reviewers groups reviewer handlers for testability
type Reviewers struct {
	store     repository.ReviewerRepository
	validator *validation.Validator
}

// NewReviewers creates the reviewer handlers
func NewReviewers(store repository.ReviewerRepository, v *validation.Validator) *Reviewers {
	return &Reviewers{store: store, validator: v}
}

// ListReviewersHandler handles GET /api/reviewer
func (rv *Reviewers) ListReviewersHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, rv.store, dto.ReviewersToDto, "reviewers")
}

// GetReviewerHandler handles GET /api/reviewer/{reviewerId}
func (rv *Reviewers) GetReviewerHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "reviewerId", rv.store, dto.ReviewerToDto, "reviewer")
}

// GetReviewsByReviewerHandler handles GET /api/reviewer/{reviewerId}/reviews
func (rv *Reviewers) GetReviewsByReviewerHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "reviewerId", rv.store, rv.store.FindReviews, dto.ReviewsToDto, "reviewer")
}

// CreateReviewerHandler handles POST /api/reviewer. Reviewer names need not be unique.
func (rv *Reviewers) CreateReviewerHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[dto.ReviewerDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}
	if fieldErrors := rv.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	reviewer := dto.ReviewerFromDto(*body)
	reviewer.ID = 0
	if _, err := rv.store.Create(r.Context(), reviewer); err != nil {
		writeInternal(w, r, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdateReviewerHandler handles PUT /api/reviewer/{reviewerId}
func (rv *Reviewers) UpdateReviewerHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "reviewerId", rv.store, rv.validator,
		func(d *dto.ReviewerDto) int64 { return d.ID }, dto.ReviewerFromDto, "reviewer")
}

// DeleteReviewerHandler handles DELETE /api/reviewer/{reviewerId}. Their
// reviews are removed with them.
func (rv *Reviewers) DeleteReviewerHandler(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, "reviewerId", rv.store, "reviewer")
}

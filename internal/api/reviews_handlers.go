package api

import (
	"errors"
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Reviews groups review handlers for testability
type Reviews struct {
	store     repository.ReviewRepository
	reviewers Exister
	pokemon   Exister
	validator *validation.Validator
}

// NewReviews creates the review handlers
func NewReviews(store repository.ReviewRepository, reviewers, pokemon Exister, v *validation.Validator) *Reviews {
	return &Reviews{store: store, reviewers: reviewers, pokemon: pokemon, validator: v}
}

// ListReviewsHandler handles GET /api/review
func (rv *Reviews) ListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, rv.store, dto.ReviewsToDto, "reviews")
}

// GetReviewHandler handles GET /api/review/{reviewId}
func (rv *Reviews) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "reviewId", rv.store, dto.ReviewToDto, "review")
}

// GetReviewsOfPokemonHandler handles GET /api/review/pokemon/{pokeId}
func (rv *Reviews) GetReviewsOfPokemonHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "pokeId", rv.pokemon, rv.store.FindByPokemonID, dto.ReviewsToDto, "pokemon")
}

// CreateReviewHandler handles POST /api/review?reviewerId={id}&pokeId={id}
func (rv *Reviews) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewerID, err := queryID(r, "reviewerId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	pokemonID, err := queryID(r, "pokeId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, err := decodeBody[dto.ReviewDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}
	if fieldErrors := rv.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}
	if !checkExists(w, r, rv.reviewers, reviewerID, "reviewer") {
		return
	}
	if !checkExists(w, r, rv.pokemon, pokemonID, "pokemon") {
		return
	}

	review := dto.ReviewFromDto(*body)
	review.ID = 0
	review.ReviewerID = reviewerID
	review.PokemonID = pokemonID
	if _, err := rv.store.Create(r.Context(), review); err != nil {
		if errors.Is(err, repository.ErrConstraint) {
			writeNotFound(w)
			return
		}
		writeInternal(w, r, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdateReviewHandler handles PUT /api/review/{reviewId}. Reviewer and
// pokemon stay as they were.
func (rv *Reviews) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "reviewId", rv.store, rv.validator,
		func(d *dto.ReviewDto) int64 { return d.ID }, dto.ReviewFromDto, "review")
}

// DeleteReviewHandler handles DELETE /api/review/{reviewId}
func (rv *Reviews) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, "reviewId", rv.store, "review")
}

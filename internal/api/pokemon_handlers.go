package api

import (
	"errors"
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Pokemon groups pokemon handlers for testability
type Pokemon struct {
	store      repository.PokemonRepository
	reviews    repository.ReviewRepository
	owners     Exister
	categories Exister
	validator  *validation.Validator
}

// NewPokemon creates the pokemon handlers. reviews is used to clear a
// pokemon's reviews before it is deleted.
func NewPokemon(store repository.PokemonRepository, reviews repository.ReviewRepository, owners, categories Exister, v *validation.Validator) *Pokemon {
	return &Pokemon{store: store, reviews: reviews, owners: owners, categories: categories, validator: v}
}

// ListPokemonHandler handles GET /api/pokemon
func (p *Pokemon) ListPokemonHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, p.store, dto.PokemonListToDto, "pokemon")
}

// GetPokemonHandler handles GET /api/pokemon/{pokeId}
func (p *Pokemon) GetPokemonHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "pokeId", p.store, dto.PokemonToDto, "pokemon")
}

// GetPokemonRatingHandler handles GET /api/pokemon/{pokeId}/rating.
// The body is the average review rating as a bare JSON number.
func (p *Pokemon) GetPokemonRatingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pokeId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, p.store, id, "pokemon") {
		return
	}
	rating, err := p.store.Rating(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err, "Failed to compute rating")
		return
	}
	writeJSON(w, r, http.StatusOK, rating)
}

// CreatePokemonHandler handles POST /api/pokemon?ownerId={id}&categoryId={id}.
//
// The pokemon and both links are stored together. Unlike the other creates a
// failed save answers 422.
func (p *Pokemon) CreatePokemonHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := queryID(r, "ownerId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	categoryID, err := queryID(r, "categoryId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, err := decodeBody[dto.PokemonDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}

	// Name lookups go through the unique name index
	_, err = p.store.FindByName(r.Context(), body.Name)
	switch {
	case err == nil:
		writeError(w, r, http.StatusUnprocessableEntity, "Pokemon already exists",
			validation.FieldError{Field: "name", Error: "already exists"})
		return
	case !errors.Is(err, repository.ErrNotFound):
		writeInternal(w, r, err, "Failed to look up pokemon")
		return
	}

	if fieldErrors := p.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}
	if !checkExists(w, r, p.owners, ownerID, "owner") {
		return
	}
	if !checkExists(w, r, p.categories, categoryID, "category") {
		return
	}

	pokemon := dto.PokemonFromDto(*body)
	pokemon.ID = 0
	if _, err := p.store.CreateWithRelations(r.Context(), ownerID, categoryID, pokemon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeStatusErr(w, r, http.StatusUnprocessableEntity, err, "Pokemon already exists")
			return
		}
		writeStatusErr(w, r, http.StatusUnprocessableEntity, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdatePokemonHandler handles PUT /api/pokemon/{pokeId}
func (p *Pokemon) UpdatePokemonHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "pokeId", p.store, p.validator,
		func(d *dto.PokemonDto) int64 { return d.ID }, dto.PokemonFromDto, "pokemon")
}

// DeletePokemonHandler handles DELETE /api/pokemon/{pokeId}. The pokemon's
// reviews are removed first.
func (p *Pokemon) DeletePokemonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "pokeId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, p.store, id, "pokemon") {
		return
	}

	reviews, err := p.reviews.FindByPokemonID(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err, "Failed to list reviews")
		return
	}
	ids := make([]int64, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ID)
	}
	if err := p.reviews.DeleteMany(r.Context(), ids); err != nil {
		writeInternal(w, r, err, "Something went wrong deleting reviews")
		return
	}

	deleteByID(w, r, p.store, id, "pokemon")
}

package api

import (
	"errors"
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Owners groups owner handlers for testability
type Owners struct {
	store     repository.OwnerRepository
	countries Exister
	pokemon   Exister
	validator *validation.Validator
}

// NewOwners creates the owner handlers
func NewOwners(store repository.OwnerRepository, countries, pokemon Exister, v *validation.Validator) *Owners {
	return &Owners{store: store, countries: countries, pokemon: pokemon, validator: v}
}

// ListOwnersHandler handles GET /api/owner
func (o *Owners) ListOwnersHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, o.store, dto.OwnersToDto, "owners")
}

// GetOwnerHandler handles GET /api/owner/{ownerId}
func (o *Owners) GetOwnerHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "ownerId", o.store, dto.OwnerToDto, "owner")
}

// GetPokemonByOwnerHandler handles GET /api/owner/{ownerId}/pokemon
func (o *Owners) GetPokemonByOwnerHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "ownerId", o.store, o.store.FindPokemon, dto.PokemonListToDto, "owner")
}

// GetOwnersOfPokemonHandler handles GET /api/owner/pokemon/{pokeId}
func (o *Owners) GetOwnersOfPokemonHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "pokeId", o.pokemon, o.store.FindByPokemonID, dto.OwnersToDto, "pokemon")
}

// CreateOwnerHandler handles POST /api/owner?countryId={id}.
// countryId is optional; when given the country must exist.
func (o *Owners) CreateOwnerHandler(w http.ResponseWriter, r *http.Request) {
	var countryID *int64
	if r.URL.Query().Has("countryId") {
		id, err := queryID(r, "countryId")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		countryID = &id
	}

	body, err := decodeBody[dto.OwnerDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}
	if fieldErrors := o.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}
	if countryID != nil && !checkExists(w, r, o.countries, *countryID, "country") {
		return
	}

	owner := dto.OwnerFromDto(*body)
	owner.ID = 0
	owner.CountryID = countryID
	if _, err := o.store.Create(r.Context(), owner); err != nil {
		if errors.Is(err, repository.ErrConstraint) {
			writeNotFound(w)
			return
		}
		writeInternal(w, r, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdateOwnerHandler handles PUT /api/owner/{ownerId}. The owner keeps its country.
func (o *Owners) UpdateOwnerHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "ownerId", o.store, o.validator,
		func(d *dto.OwnerDto) int64 { return d.ID }, dto.OwnerFromDto, "owner")
}

// DeleteOwnerHandler handles DELETE /api/owner/{ownerId}
func (o *Owners) DeleteOwnerHandler(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, "ownerId", o.store, "owner")
}

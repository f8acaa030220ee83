package api

import (
	"errors"
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Countries groups country handlers for testability
type Countries struct {
	store     repository.CountryRepository
	owners    Exister
	validator *validation.Validator
}

// NewCountries creates the country handlers. owners backs the owner
// existence check of GetCountryByOwnerHandler.
func NewCountries(store repository.CountryRepository, owners Exister, v *validation.Validator) *Countries {
	return &Countries{store: store, owners: owners, validator: v}
}

// ListCountriesHandler handles GET /api/country
func (c *Countries) ListCountriesHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, c.store, dto.CountriesToDto, "countries")
}

// GetCountryHandler handles GET /api/country/{countryId}
func (c *Countries) GetCountryHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "countryId", c.store, dto.CountryToDto, "country")
}

// GetCountryByOwnerHandler handles GET /api/country/owner/{ownerId}.
// An owner without a country is a 404.
func (c *Countries) GetCountryByOwnerHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "ownerId")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, c.owners, ownerID, "owner") {
		return
	}
	country, err := c.store.FindByOwnerID(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInternal(w, r, err, "Failed to get country")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.CountryToDto(country))
}

// GetCountryOwnersHandler handles GET /api/country/{countryId}/owners
func (c *Countries) GetCountryOwnersHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "countryId", c.store, c.store.FindOwners, dto.OwnersToDto, "owners")
}

// CreateCountryHandler handles POST /api/country.
//
// Null body → 400, existing name → 422, invalid fields → 400 with field
// errors, store failure → 500. The body id is ignored.
func (c *Countries) CreateCountryHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[dto.CountryDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}

	taken, err := nameTaken(r.Context(), c.store, func(existing domain.Country) string { return existing.Name }, body.Name)
	if err != nil {
		writeInternal(w, r, err, "Failed to list countries")
		return
	}
	if taken {
		writeError(w, r, http.StatusUnprocessableEntity, "Country already exists",
			validation.FieldError{Field: "name", Error: "already exists"})
		return
	}

	if fieldErrors := c.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	country := dto.CountryFromDto(*body)
	country.ID = 0
	if _, err := c.store.Create(r.Context(), country); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeStatusErr(w, r, http.StatusUnprocessableEntity, err, "Country already exists")
			return
		}
		writeInternal(w, r, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdateCountryHandler handles PUT /api/country/{countryId}
func (c *Countries) UpdateCountryHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "countryId", c.store, c.validator,
		func(d *dto.CountryDto) int64 { return d.ID }, dto.CountryFromDto, "country")
}

// DeleteCountryHandler handles DELETE /api/country/{countryId}.
// A country that still has owners answers 422.
func (c *Countries) DeleteCountryHandler(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, "countryId", c.store, "country")
}

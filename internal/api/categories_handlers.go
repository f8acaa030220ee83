package api

import (
	"errors"
	"net/http"

	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/jbweber/homelab/pokereview/internal/dto"
	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// Categories groups category handlers for testability
type Categories struct {
	store     repository.CategoryRepository
	validator *validation.Validator
}

// NewCategories creates the category handlers
func NewCategories(store repository.CategoryRepository, v *validation.Validator) *Categories {
	return &Categories{store: store, validator: v}
}

// ListCategoriesHandler handles GET /api/category
func (c *Categories) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, c.store, dto.CategoriesToDto, "categories")
}

// GetCategoryHandler handles GET /api/category/{categoryId}
func (c *Categories) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	serveOne(w, r, "categoryId", c.store, dto.CategoryToDto, "category")
}

// GetPokemonByCategoryHandler handles GET /api/category/pokemon/{categoryId}
func (c *Categories) GetPokemonByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	serveRelated(w, r, "categoryId", c.store, c.store.FindPokemon, dto.PokemonListToDto, "category")
}

// CreateCategoryHandler handles POST /api/category
func (c *Categories) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[dto.CategoryDto](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}

	taken, err := nameTaken(r.Context(), c.store, func(existing domain.Category) string { return existing.Name }, body.Name)
	if err != nil {
		writeInternal(w, r, err, "Failed to list categories")
		return
	}
	if taken {
		writeError(w, r, http.StatusUnprocessableEntity, "Category already exists",
			validation.FieldError{Field: "name", Error: "already exists"})
		return
	}

	if fieldErrors := c.validator.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	category := dto.CategoryFromDto(*body)
	category.ID = 0
	if _, err := c.store.Create(r.Context(), category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeStatusErr(w, r, http.StatusUnprocessableEntity, err, "Category already exists")
			return
		}
		writeInternal(w, r, err, "Something went wrong while saving")
		return
	}
	writeCreated(w, r)
}

// UpdateCategoryHandler handles PUT /api/category/{categoryId}
func (c *Categories) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	serveUpdate(w, r, "categoryId", c.store, c.validator,
		func(d *dto.CategoryDto) int64 { return d.ID }, dto.CategoryFromDto, "category")
}

// DeleteCategoryHandler handles DELETE /api/category/{categoryId}
func (c *Categories) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	serveDelete(w, r, "categoryId", c.store, "category")
}

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jbweber/homelab/pokereview/internal/repository"
	"github.com/jbweber/homelab/pokereview/internal/validation"
)

// The request flow shared by every entity lives here; the per-entity files
// only add what differs.

type getter[T any] interface {
	Exister
	FindByID(ctx context.Context, id int64) (T, error)
}

type lister[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
}

type updater[T any] interface {
	Exister
	Update(ctx context.Context, entity T) (T, error)
}

type deleter interface {
	Exister
	DeleteByID(ctx context.Context, id int64) error
}

// serveList answers 200 with every entity mapped through toDto
func serveList[T, D any](w http.ResponseWriter, r *http.Request, store lister[T], toDto func([]T) []D, what string) {
	items, err := store.FindAll(r.Context())
	if err != nil {
		writeInternal(w, r, err, fmt.Sprintf("Failed to list %s", what))
		return
	}
	writeJSON(w, r, http.StatusOK, toDto(items))
}

// serveOne answers 404 for an unknown id and 200 with the mapped entity otherwise
func serveOne[T, D any](w http.ResponseWriter, r *http.Request, param string, store getter[T], toDto func(T) D, what string) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, store, id, what) {
		return
	}
	item, err := store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeNotFound(w)
			return
		}
		writeInternal(w, r, err, fmt.Sprintf("Failed to get %s", what))
		return
	}
	writeJSON(w, r, http.StatusOK, toDto(item))
}

// serveRelated answers 404 when the parent is unknown and 200 with the
// related entities otherwise
func serveRelated[T, D any](w http.ResponseWriter, r *http.Request, param string, parent Exister, find func(context.Context, int64) ([]T, error), toDto func([]T) []D, what string) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, parent, id, what) {
		return
	}
	items, err := find(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err, fmt.Sprintf("Failed to list %s", what))
		return
	}
	writeJSON(w, r, http.StatusOK, toDto(items))
}

// serveUpdate decodes D, checks the body id matches the path, validates and
// stores fromDto(body). Success is 204 with no body.
func serveUpdate[T, D any](w http.ResponseWriter, r *http.Request, param string, store updater[T], v *validation.Validator, idOf func(*D) int64, fromDto func(D) T, what string) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	body, err := decodeBody[D](r)
	if err != nil {
		writeBodyError(w, r, err)
		return
	}
	if idOf(body) != id {
		writeError(w, r, http.StatusBadRequest, "Body id does not match path id")
		return
	}
	if !checkExists(w, r, store, id, what) {
		return
	}
	if fieldErrors := v.Struct(body); fieldErrors != nil {
		writeError(w, r, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	if _, err := store.Update(r.Context(), fromDto(*body)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, repository.ErrDuplicate):
			writeStatusErr(w, r, http.StatusUnprocessableEntity, err, fmt.Sprintf("%s already exists", capitalize(what)))
		default:
			writeInternal(w, r, err, fmt.Sprintf("Something went wrong updating %s", what))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serveDelete answers 404 for an unknown id, 422 when dependents block the
// delete and 204 on success
func serveDelete(w http.ResponseWriter, r *http.Request, param string, store deleter, what string) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !checkExists(w, r, store, id, what) {
		return
	}
	deleteByID(w, r, store, id, what)
}

func deleteByID(w http.ResponseWriter, r *http.Request, store deleter, id int64, what string) {
	if err := store.DeleteByID(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeNotFound(w)
		case errors.Is(err, repository.ErrConstraint):
			writeStatusErr(w, r, http.StatusUnprocessableEntity, err, fmt.Sprintf("%s is still referenced", capitalize(what)))
		default:
			writeInternal(w, r, err, fmt.Sprintf("Something went wrong deleting %s", what))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nameTaken scans the stored entities for a name equal to name ignoring
// case and surrounding whitespace
func nameTaken[T any](ctx context.Context, store lister[T], nameOf func(T) string, name string) (bool, error) {
	items, err := store.FindAll(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if sameName(nameOf(item), name) {
			return true, nil
		}
	}
	return false, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

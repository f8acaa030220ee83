package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jbweber/homelab/pokereview/internal/validation"
	"github.com/rs/zerolog"
)

// CreatedMessage is the plain-text body of every successful create
const CreatedMessage = "Successfully created"

// ErrorResponse is the JSON body of 400, 422 and 500 responses
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

// Exister is the existence check every repository offers
type Exister interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

var errNullBody = errors.New("request body is required")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors ...validation.FieldError) {
	writeJSON(w, r, status, ErrorResponse{Error: message, Errors: fieldErrors})
}

// writeNotFound answers 404 with an empty body
func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

func writeCreated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(CreatedMessage)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write create response")
	}
}

// writeInternal logs err and answers 500 with message
func writeInternal(w http.ResponseWriter, r *http.Request, err error, message string) {
	writeStatusErr(w, r, http.StatusInternalServerError, err, message)
}

func writeStatusErr(w http.ResponseWriter, r *http.Request, status int, err error, message string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg(message)
	writeError(w, r, status, message)
}

// pathID parses the named chi URL parameter as an entity id
func pathID(r *http.Request, name string) (int64, error) {
	return parseID(name, chi.URLParam(r, name))
}

// queryID parses a required query parameter as an entity id
func queryID(r *http.Request, name string) (int64, error) {
	return parseID(name, r.URL.Query().Get(name))
}

func parseID(name, raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into a new T. A literal null
// body is reported as errNullBody.
func decodeBody[T any](r *http.Request) (*T, error) {
	var body *T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if body == nil {
		return nil, errNullBody
	}
	return body, nil
}

// writeBodyError answers 400 for a body decodeBody rejected
func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errNullBody) {
		writeError(w, r, http.StatusBadRequest, "Request body is required")
		return
	}
	writeError(w, r, http.StatusBadRequest, "Invalid JSON")
}

// sameName compares names ignoring case and surrounding whitespace
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// checkExists answers 404, or 500 on a store failure, and reports whether
// the handler may continue.
func checkExists(w http.ResponseWriter, r *http.Request, store Exister, id int64, what string) bool {
	exists, err := store.ExistsByID(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err, fmt.Sprintf("Failed to look up %s", what))
		return false
	}
	if !exists {
		writeNotFound(w)
		return false
	}
	return true
}

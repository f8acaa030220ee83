package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jbweber/homelab/pokereview/internal/domain"
	"github.com/jbweber/homelab/pokereview/internal/repository"
)

var errStoreDown = errors.New("store down")

// mockExister answers ExistsByID from a fixed set
type mockExister struct {
	ids map[int64]bool
	err error
}

func (m *mockExister) ExistsByID(_ context.Context, id int64) (bool, error) {
	return m.ids[id], m.err
}

// mockCountryRepo fails the calls it overrides with the configured errors.
// Calls it does not override panic on the nil embedded interface.
type mockCountryRepo struct {
	repository.CountryRepository
	exists    bool
	err       error
	listErr   error
	createErr error
	created   []domain.Country
}

func (m *mockCountryRepo) ExistsByID(context.Context, int64) (bool, error) { return m.exists, nil }
func (m *mockCountryRepo) FindAll(context.Context) ([]domain.Country, error) {
	return []domain.Country{}, m.listErr
}
func (m *mockCountryRepo) FindByID(context.Context, int64) (domain.Country, error) {
	return domain.Country{}, m.err
}
func (m *mockCountryRepo) Create(_ context.Context, c domain.Country) (domain.Country, error) {
	m.created = append(m.created, c)
	return c, m.createErr
}
func (m *mockCountryRepo) DeleteByID(context.Context, int64) error { return m.err }

// mockPokemonRepo records CreateWithRelations calls and fails with err
type mockPokemonRepo struct {
	repository.PokemonRepository
	err       error
	lookupErr error
}

func (m *mockPokemonRepo) ExistsByID(context.Context, int64) (bool, error) { return true, nil }
func (m *mockPokemonRepo) FindAll(context.Context) ([]domain.Pokemon, error) {
	return []domain.Pokemon{}, nil
}
func (m *mockPokemonRepo) FindByName(_ context.Context, name string) (domain.Pokemon, error) {
	if m.lookupErr != nil {
		return domain.Pokemon{}, m.lookupErr
	}
	return domain.Pokemon{}, fmt.Errorf("pokemon with name %s: %w", name, repository.ErrNotFound)
}
func (m *mockPokemonRepo) CreateWithRelations(_ context.Context, _, _ int64, p domain.Pokemon) (domain.Pokemon, error) {
	return p, m.err
}
func (m *mockPokemonRepo) DeleteByID(context.Context, int64) error { return m.err }

// mockReviewRepo fails DeleteMany with err
type mockReviewRepo struct {
	repository.ReviewRepository
	reviews []domain.Review
	err     error
	deleted []int64
}

func (m *mockReviewRepo) FindByPokemonID(context.Context, int64) ([]domain.Review, error) {
	return m.reviews, nil
}
func (m *mockReviewRepo) DeleteMany(_ context.Context, ids []int64) error {
	m.deleted = append(m.deleted, ids...)
	return m.err
}

// serveRoute mounts h at pattern on a bare chi router and serves one request
func serveRoute(method, pattern string, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

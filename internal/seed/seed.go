package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/pokereview/internal/datastore"
	"github.com/jbweber/homelab/pokereview/internal/domain"
)

// ErrNotEmpty is returned by Apply when the database already holds data
var ErrNotEmpty = errors.New("database is not empty")

// Result counts the rows Apply inserted
type Result struct {
	Countries  int
	Categories int
	Owners     int
	Reviewers  int
	Pokemon    int
	Reviews    int
}

// Apply inserts f into ds. It refuses to touch a database that already
// has catalogue rows, and empties the database again if any insert fails
// so a corrected fixture can be applied afterwards.
func Apply(ctx context.Context, ds *datastore.Datastore, f *Fixture) (Result, error) {
	empty, err := ds.Empty(ctx)
	if err != nil {
		return Result{}, err
	}
	if !empty {
		return Result{}, ErrNotEmpty
	}

	res, err := insert(ctx, ds, f)
	if err != nil {
		if resetErr := ds.Reset(ctx); resetErr != nil {
			return Result{}, errors.Join(err, fmt.Errorf("failed to undo partial seed: %w", resetErr))
		}
		return Result{}, err
	}
	return res, nil
}

func insert(ctx context.Context, ds *datastore.Datastore, f *Fixture) (Result, error) {
	var res Result

	countryIDs := make(map[string]int64, len(f.Countries))
	for _, c := range f.Countries {
		created, err := ds.Countries.Create(ctx, domain.Country{Name: c.Name})
		if err != nil {
			return res, fmt.Errorf("country %q: %w", c.Name, err)
		}
		countryIDs[c.Name] = created.ID
		res.Countries++
	}

	categoryIDs := make(map[string]int64, len(f.Categories))
	for _, c := range f.Categories {
		created, err := ds.Categories.Create(ctx, domain.Category{Name: c.Name})
		if err != nil {
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		categoryIDs[c.Name] = created.ID
		res.Categories++
	}

	ownerIDs := make(map[string]int64, len(f.Owners))
	for _, o := range f.Owners {
		owner := domain.Owner{Name: o.Name, Gym: o.Gym}
		if id, ok := countryIDs[o.Country]; ok {
			owner.CountryID = &id
		}
		created, err := ds.Owners.Create(ctx, owner)
		if err != nil {
			return res, fmt.Errorf("owner %q: %w", o.Name, err)
		}
		ownerIDs[o.Name] = created.ID
		res.Owners++
	}

	reviewerIDs := make(map[string]int64, len(f.Reviewers))
	for _, rv := range f.Reviewers {
		created, err := ds.Reviewers.Create(ctx, domain.Reviewer{FirstName: rv.FirstName, LastName: rv.LastName})
		if err != nil {
			return res, fmt.Errorf("reviewer %q: %w", rv.FullName(), err)
		}
		reviewerIDs[rv.FullName()] = created.ID
		res.Reviewers++
	}

	for _, p := range f.Pokemon {
		created, err := ds.Pokemon.CreateWithRelations(ctx, ownerIDs[p.Owners[0]], categoryIDs[p.Categories[0]],
			domain.Pokemon{Name: p.Name, BirthDate: p.BirthDate.UTC()})
		if err != nil {
			return res, fmt.Errorf("pokemon %q: %w", p.Name, err)
		}
		res.Pokemon++

		for _, o := range p.Owners[1:] {
			if err := ds.Pokemon.LinkOwner(ctx, domain.PokemonOwner{PokemonID: created.ID, OwnerID: ownerIDs[o]}); err != nil {
				return res, fmt.Errorf("pokemon %q owner %q: %w", p.Name, o, err)
			}
		}
		for _, c := range p.Categories[1:] {
			if err := ds.Pokemon.LinkCategory(ctx, domain.PokemonCategory{PokemonID: created.ID, CategoryID: categoryIDs[c]}); err != nil {
				return res, fmt.Errorf("pokemon %q category %q: %w", p.Name, c, err)
			}
		}

		for _, rv := range p.Reviews {
			_, err := ds.Reviews.Create(ctx, domain.Review{
				Title:      rv.Title,
				Text:       rv.Text,
				Rating:     rv.Rating,
				ReviewerID: reviewerIDs[rv.Reviewer],
				PokemonID:  created.ID,
			})
			if err != nil {
				return res, fmt.Errorf("pokemon %q review %q: %w", p.Name, rv.Title, err)
			}
			res.Reviews++
		}
	}

	return res, nil
}

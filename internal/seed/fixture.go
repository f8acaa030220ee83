// Package seed loads a YAML catalogue fixture into an empty database.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is a whole catalogue. Entities refer to each other by name;
// reviewers are referred to as "First Last".
type Fixture struct {
	Countries  []Country  `yaml:"countries"`
	Categories []Category `yaml:"categories"`
	Owners     []Owner    `yaml:"owners"`
	Reviewers  []Reviewer `yaml:"reviewers"`
	Pokemon    []Pokemon  `yaml:"pokemon"`
}

type Country struct {
	Name string `yaml:"name"`
}

type Category struct {
	Name string `yaml:"name"`
}

type Owner struct {
	Name    string `yaml:"name"`
	Gym     string `yaml:"gym"`
	Country string `yaml:"country"`
}

type Reviewer struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

// FullName is how reviews refer to the reviewer
func (r Reviewer) FullName() string {
	return r.FirstName + " " + r.LastName
}

type Pokemon struct {
	Name       string    `yaml:"name"`
	BirthDate  time.Time `yaml:"birthDate"`
	Owners     []string  `yaml:"owners"`
	Categories []string  `yaml:"categories"`
	Reviews    []Review  `yaml:"reviews"`
}

type Review struct {
	Title    string `yaml:"title"`
	Text     string `yaml:"text"`
	Rating   int    `yaml:"rating"`
	Reviewer string `yaml:"reviewer"`
}

// Default returns the embedded starter catalogue
func Default() (*Fixture, error) {
	return Load(bytes.NewReader(defaultFixture))
}

// Load decodes and checks a fixture. Unknown YAML keys are rejected.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("fixture is empty")
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every name reference resolves, that each pokemon
// has at least one owner and one category, and that no two entries of a kind
// share a name once case and surrounding spaces are ignored
func (f *Fixture) Validate() error {
	countries := names(f.Countries, func(c Country) string { return c.Name })
	categories := names(f.Categories, func(c Category) string { return c.Name })
	owners := names(f.Owners, func(o Owner) string { return o.Name })
	reviewers := names(f.Reviewers, Reviewer.FullName)

	var errs []error
	errs = append(errs, unique("country", f.Countries, func(c Country) string { return c.Name })...)
	errs = append(errs, unique("category", f.Categories, func(c Category) string { return c.Name })...)
	errs = append(errs, unique("owner", f.Owners, func(o Owner) string { return o.Name })...)
	errs = append(errs, unique("reviewer", f.Reviewers, Reviewer.FullName)...)
	errs = append(errs, unique("pokemon", f.Pokemon, func(p Pokemon) string { return p.Name })...)
	for _, rv := range f.Reviewers {
		if blank(rv.FirstName) || blank(rv.LastName) {
			errs = append(errs, fmt.Errorf("reviewer %q: firstName and lastName are required", rv.FullName()))
		}
	}
	for _, o := range f.Owners {
		if o.Country != "" && !countries[o.Country] {
			errs = append(errs, fmt.Errorf("owner %q: unknown country %q", o.Name, o.Country))
		}
	}
	for _, p := range f.Pokemon {
		if len(p.Owners) == 0 || len(p.Categories) == 0 {
			errs = append(errs, fmt.Errorf("pokemon %q: needs at least one owner and one category", p.Name))
		}
		if p.BirthDate.IsZero() {
			errs = append(errs, fmt.Errorf("pokemon %q: birthDate is required", p.Name))
		}
		errs = append(errs, unique(fmt.Sprintf("pokemon %q owner", p.Name), p.Owners, func(o string) string { return o })...)
		errs = append(errs, unique(fmt.Sprintf("pokemon %q category", p.Name), p.Categories, func(c string) string { return c })...)
		for _, o := range p.Owners {
			if !owners[o] {
				errs = append(errs, fmt.Errorf("pokemon %q: unknown owner %q", p.Name, o))
			}
		}
		for _, c := range p.Categories {
			if !categories[c] {
				errs = append(errs, fmt.Errorf("pokemon %q: unknown category %q", p.Name, c))
			}
		}
		for _, rv := range p.Reviews {
			if !reviewers[rv.Reviewer] {
				errs = append(errs, fmt.Errorf("pokemon %q: unknown reviewer %q", p.Name, rv.Reviewer))
			}
			if blank(rv.Title) || blank(rv.Text) {
				errs = append(errs, fmt.Errorf("pokemon %q: review title and text are required", p.Name))
			}
			if rv.Rating < 1 || rv.Rating > 5 {
				errs = append(errs, fmt.Errorf("pokemon %q: rating %d out of range", p.Name, rv.Rating))
			}
		}
	}
	return errors.Join(errs...)
}

func names[T any](items []T, nameOf func(T) string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[nameOf(item)] = true
	}
	return m
}

// unique reports blank names and names that collide under the same folding
// the database's unique name indexes apply
func unique[T any](kind string, items []T, nameOf func(T) string) []error {
	var errs []error
	seen := make(map[string]string, len(items))
	for _, item := range items {
		name := nameOf(item)
		if blank(name) {
			errs = append(errs, fmt.Errorf("%s: name is required", kind))
			continue
		}
		key := fold(name)
		if first, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%s %q: duplicates %q", kind, name, first))
			continue
		}
		seen[key] = name
	}
	return errs
}

func fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

package dto

import "github.com/jbweber/homelab/pokereview/internal/domain"

func mapAll[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}

// CountryToDto converts a country to its wire form
func CountryToDto(c domain.Country) CountryDto {
	return CountryDto{ID: c.ID, Name: c.Name}
}

// CountryFromDto converts a country payload to the domain type
func CountryFromDto(d CountryDto) domain.Country {
	return domain.Country{ID: d.ID, Name: d.Name}
}

// CountriesToDto converts each country in order
func CountriesToDto(countries []domain.Country) []CountryDto {
	return mapAll(countries, CountryToDto)
}

// OwnerToDto converts an owner to its wire form without the country
func OwnerToDto(o domain.Owner) OwnerDto {
	return OwnerDto{ID: o.ID, Name: o.Name, Gym: o.Gym}
}

// OwnerFromDto converts an owner payload to the domain type.
// CountryID is left unset.
func OwnerFromDto(d OwnerDto) domain.Owner {
	return domain.Owner{ID: d.ID, Name: d.Name, Gym: d.Gym}
}

// OwnersToDto converts each owner in order
func OwnersToDto(owners []domain.Owner) []OwnerDto {
	return mapAll(owners, OwnerToDto)
}

// PokemonToDto converts a pokemon to its wire form
func PokemonToDto(p domain.Pokemon) PokemonDto {
	return PokemonDto{ID: p.ID, Name: p.Name, BirthDate: p.BirthDate}
}

// PokemonFromDto converts a pokemon payload to the domain type
func PokemonFromDto(d PokemonDto) domain.Pokemon {
	return domain.Pokemon{ID: d.ID, Name: d.Name, BirthDate: d.BirthDate}
}

// PokemonListToDto converts each pokemon in order
func PokemonListToDto(pokemon []domain.Pokemon) []PokemonDto {
	return mapAll(pokemon, PokemonToDto)
}

// CategoryToDto converts a category to its wire form
func CategoryToDto(c domain.Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}

// CategoryFromDto converts a category payload to the domain type
func CategoryFromDto(d CategoryDto) domain.Category {
	return domain.Category{ID: d.ID, Name: d.Name}
}

// CategoriesToDto converts each category in order
func CategoriesToDto(categories []domain.Category) []CategoryDto {
	return mapAll(categories, CategoryToDto)
}

// ReviewToDto converts a review to its wire form without reviewer or pokemon
func ReviewToDto(r domain.Review) ReviewDto {
	return ReviewDto{ID: r.ID, Title: r.Title, Text: r.Text, Rating: r.Rating}
}

// ReviewFromDto converts a review payload to the domain type.
// ReviewerID and PokemonID are left unset.
func ReviewFromDto(d ReviewDto) domain.Review {
	return domain.Review{ID: d.ID, Title: d.Title, Text: d.Text, Rating: d.Rating}
}

// ReviewsToDto converts each review in order
func ReviewsToDto(reviews []domain.Review) []ReviewDto {
	return mapAll(reviews, ReviewToDto)
}

// ReviewerToDto converts a reviewer to its wire form
func ReviewerToDto(r domain.Reviewer) ReviewerDto {
	return ReviewerDto{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
}

// ReviewerFromDto converts a reviewer payload to the domain type
func ReviewerFromDto(d ReviewerDto) domain.Reviewer {
	return domain.Reviewer{ID: d.ID, FirstName: d.FirstName, LastName: d.LastName}
}

// ReviewersToDto converts each reviewer in order
func ReviewersToDto(reviewers []domain.Reviewer) []ReviewerDto {
	return mapAll(reviewers, ReviewerToDto)
}

package domain

import "time"

// Identity holds the personal details a player registers with.
type Identity struct {
	FirstName   string    `json:"first_name" validate:"required,max=64"`
	LastName    string    `json:"last_name" validate:"required,max=64"`
	Nickname    string    `json:"nickname" validate:"required,max=32"`
	TaxID       string    `json:"tax_id" validate:"required,cpf"`
	Nationality string    `json:"nationality" validate:"required,max=64"`
	BirthDate   time.Time `json:"birth_date"`
}

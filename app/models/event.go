package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Event groups photos taken at the same occasion. Used as a search filter.
type Event struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	PhotoCount  int        `json:"photo_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Event) Validate() error {
	v := validator.New()

	if err := v.Struct(e); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Author is a photographer record referenced by photos.
type Author struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name" validate:"required,max=150"`
	Email     string    `json:"email" validate:"omitempty,email,max=200"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Author) Validate() error {
	v := validator.New()

	if err := v.Struct(a); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

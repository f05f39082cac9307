package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Photo is the metadata record for a single photo as served by the ImaLink
// API. Photos are keyed by their hothash, a content-derived fingerprint
// computed by the backend; it is the primary key everywhere in this client.
type Photo struct {
	Hothash   string     `json:"hothash" validate:"required"`
	Filename  string     `json:"filename"`
	TakenAt   *time.Time `json:"taken_at"`
	HasGPS    bool       `json:"has_gps"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Rating    int        `json:"rating" validate:"min=0,max=5"`
	AuthorID  *uint      `json:"author_id"`
	Tags      []Tag      `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Photo) Validate() error {
	v := validator.New()

	if err := v.Struct(p); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// PhotoUpdate is a merge-patch for photo metadata. Nil fields are left
// untouched by the backend.
type PhotoUpdate struct {
	Rating   *int   `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	AuthorID *uint  `json:"author_id,omitempty"`
	TagIDs   []uint `json:"tag_ids,omitempty"`
}

func (u *PhotoUpdate) Validate() error {
	v := validator.New()

	if err := v.Struct(u); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// SearchParams are the filter parameters accepted by the photo search
// endpoint. Zero values mean "no filter".
type SearchParams struct {
	RatingMin *int       `json:"rating_min,omitempty"`
	RatingMax *int       `json:"rating_max,omitempty"`
	TakenFrom *time.Time `json:"taken_from,omitempty"`
	TakenTo   *time.Time `json:"taken_to,omitempty"`
	TagIDs    []uint     `json:"tag_ids,omitempty"`
	EventID   *uint      `json:"event_id,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

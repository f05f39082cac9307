package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Item type discriminator for CollectionItem. Every consumer must handle
// both variants explicitly.
const (
	ItemTypePhoto = "photo"
	ItemTypeText  = "text"
)

// CollectionTextCard is an inline text slide interleaved with photos in a
// collection.
type CollectionTextCard struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"max=2000"`
}

func (c *CollectionTextCard) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return NewValidationError("text card title is required")
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// CollectionItem is a tagged union: a photo reference or a text card,
// discriminated by Type. Position within a collection is the 0-based index
// in the Items slice; indices are dense, order is the primary sort key.
type CollectionItem struct {
	Type string `json:"type" validate:"required,oneof=photo text"`

	// Photo variant
	PhotoHothash string `json:"photo_hothash,omitempty"`
	Caption      string `json:"caption,omitempty" validate:"max=1000"`

	// Text variant
	TextCard *CollectionTextCard `json:"text_card,omitempty"`

	// Hidden items stay in the sequence but are skipped during playback.
	Visible bool `json:"visible"`
}

// NewPhotoItem builds a visible photo item for the given fingerprint.
func NewPhotoItem(hothash string) CollectionItem {
	return CollectionItem{Type: ItemTypePhoto, PhotoHothash: hothash, Visible: true}
}

// NewTextItem builds a visible text-card item.
func NewTextItem(card CollectionTextCard) CollectionItem {
	return CollectionItem{Type: ItemTypeText, TextCard: &card, Visible: true}
}

func (i *CollectionItem) Validate() error {
	switch i.Type {
	case ItemTypePhoto:
		if i.PhotoHothash == "" {
			return NewValidationError("photo item is missing a hothash")
		}
		if len(i.Caption) > 1000 {
			return NewValidationError("caption must be at most 1000 characters")
		}
	case ItemTypeText:
		if i.TextCard == nil {
			return NewValidationError("text item is missing its text card")
		}
		return i.TextCard.Validate()
	default:
		return NewValidationError(fmt.Sprintf("unknown item type %q", i.Type))
	}
	return nil
}

// Collection owns an ordered item sequence. photo_count and text_card_count
// are derived by the backend; this client never computes them locally,
// which is why every mutation is followed by a reload.
type Collection struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name" validate:"required,max=255"`
	Description   string           `json:"description"`
	PhotoCount    int              `json:"photo_count"`
	TextCardCount int              `json:"text_card_count"`
	Items         []CollectionItem `json:"items"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (c *Collection) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("collection name is required")
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

// Package viewmodel maps domain records to the flat structures the HTML
// templates render.
package viewmodel

import (
	"fmt"
	"time"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// PhotoCard is one tile in the photo grid.
type PhotoCard struct {
	Hothash    string
	Filename   string
	PreviewURL string
	TakenAt    string
	Rating     int
	Tags       []string
	Pending    bool // metadata not cached yet, render a placeholder
}

// NewPhotoCard builds a grid tile from the cache. A cache miss produces
// a pending placeholder card, never an error.
func NewPhotoCard(cache *photocache.Cache, hothash, previewURL string) PhotoCard {
	photo, ok := cache.Get(hothash)
	if !ok {
		return PhotoCard{Hothash: hothash, PreviewURL: previewURL, Pending: true}
	}

	card := PhotoCard{
		Hothash:    hothash,
		Filename:   photo.Filename,
		PreviewURL: previewURL,
		Rating:     photo.Rating,
	}
	if photo.TakenAt != nil {
		card.TakenAt = photo.TakenAt.Format("02.01.2006 15:04")
	}
	for _, tag := range photo.Tags {
		card.Tags = append(card.Tags, tag.Name)
	}
	return card
}

// CollectionCard is one entry in the collection overview.
type CollectionCard struct {
	ID          uint
	Name        string
	Description string
	ItemSummary string
	UpdatedAt   string
	Views       int64
}

// NewCollectionCard builds an overview entry.
func NewCollectionCard(col models.Collection, views int64) CollectionCard {
	card := CollectionCard{
		ID:          col.ID,
		Name:        col.Name,
		Description: col.Description,
		ItemSummary: fmt.Sprintf("%d bilder, %d tekstkort", col.PhotoCount, col.TextCardCount),
		Views:       views,
	}
	if !col.UpdatedAt.IsZero() {
		card.UpdatedAt = col.UpdatedAt.Format(time.DateOnly)
	}
	return card
}

// ItemView is one row in the collection editor.
type ItemView struct {
	Index    int
	Type     string
	Photo    *PhotoCard
	Title    string
	Body     string
	Caption  string
	Visible  bool
	AtCursor bool
}

// NewItemViews builds the editor rows, marking the row the insertion
// cursor points at.
func NewItemViews(cache *photocache.Cache, items []models.CollectionItem, previewURL func(hothash string) string, cursorSet bool, cursorIndex int) []ItemView {
	views := make([]ItemView, 0, len(items))
	for i, item := range items {
		view := ItemView{
			Index:    i,
			Type:     string(item.Type),
			Visible:  item.Visible,
			AtCursor: cursorSet && i == cursorIndex,
		}
		switch item.Type {
		case models.ItemTypePhoto:
			card := NewPhotoCard(cache, item.PhotoHothash, previewURL(item.PhotoHothash))
			view.Photo = &card
			view.Caption = item.Caption
		case models.ItemTypeText:
			if item.TextCard != nil {
				view.Title = item.TextCard.Title
				view.Body = item.TextCard.Body
			}
		}
		views = append(views, view)
	}
	return views
}

package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhotoItemDefaultsVisible(t *testing.T) {
	item := NewPhotoItem("aaa")

	assert.Equal(t, ItemTypePhoto, item.Type)
	assert.Equal(t, "aaa", item.PhotoHothash)
	assert.True(t, item.Visible)
	assert.Nil(t, item.TextCard)
}

func TestNewTextItemDefaultsVisible(t *testing.T) {
	item := NewTextItem(CollectionTextCard{Title: "Hei", Body: "Tekst"})

	assert.Equal(t, ItemTypeText, item.Type)
	require.NotNil(t, item.TextCard)
	assert.Equal(t, "Hei", item.TextCard.Title)
	assert.True(t, item.Visible)
}

func TestCollectionItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    CollectionItem
		wantErr string
	}{
		{
			name: "valid photo item",
			item: NewPhotoItem("aaa"),
		},
		{
			name:    "photo item without hothash",
			item:    CollectionItem{Type: ItemTypePhoto, Visible: true},
			wantErr: "hothash",
		},
		{
			name: "caption too long",
			item: CollectionItem{
				Type:         ItemTypePhoto,
				PhotoHothash: "aaa",
				Caption:      strings.Repeat("x", 1001),
				Visible:      true,
			},
			wantErr: "caption",
		},
		{
			name: "valid text item",
			item: NewTextItem(CollectionTextCard{Title: "Tittel"}),
		},
		{
			name:    "text item without card",
			item:    CollectionItem{Type: ItemTypeText, Visible: true},
			wantErr: "text card",
		},
		{
			name:    "unknown type",
			item:    CollectionItem{Type: "video"},
			wantErr: "unknown item type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTextCardValidate(t *testing.T) {
	card := CollectionTextCard{Title: "Tittel", Body: "Brødtekst"}
	assert.NoError(t, card.Validate())

	empty := CollectionTextCard{Title: "   "}
	err := empty.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")

	long := CollectionTextCard{Title: strings.Repeat("t", 201)}
	assert.Error(t, long.Validate())

	fatBody := CollectionTextCard{Title: "OK", Body: strings.Repeat("b", 2001)}
	assert.Error(t, fatBody.Validate())
}

func TestCollectionValidate(t *testing.T) {
	col := Collection{Name: "Sommer 2025"}
	assert.NoError(t, col.Validate())

	blank := Collection{Name: "  "}
	err := blank.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	long := Collection{Name: strings.Repeat("n", 256)}
	assert.Error(t, long.Validate())
}

package imalink

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trollfjell/imalink-web/app/models"
)

// ListCollections fetches all collections without their item lists.
func (c *Client) ListCollections(ctx context.Context) ([]models.Collection, error) {
	var out struct {
		Data []models.Collection `json:"data"`
	}
	if err := c.do(ctx, "list collections", http.MethodGet, "/api/collections", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetCollection fetches a collection together with its full ordered item
// list and the backend-derived photo/text-card counts.
func (c *Client) GetCollection(ctx context.Context, id uint) (*models.Collection, error) {
	var out models.Collection
	if err := c.do(ctx, "get collection", http.MethodGet, fmt.Sprintf("/api/collections/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCollection creates an empty collection.
func (c *Client) CreateCollection(ctx context.Context, name, description string) (*models.Collection, error) {
	body := map[string]string{"name": name, "description": description}
	var out models.Collection
	if err := c.do(ctx, "create collection", http.MethodPost, "/api/collections", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCollection renames a collection and replaces its description.
func (c *Client) UpdateCollection(ctx context.Context, id uint, name, description string) error {
	body := map[string]string{"name": name, "description": description}
	return c.do(ctx, "update collection", http.MethodPatch, fmt.Sprintf("/api/collections/%d", id), body, nil)
}

// DeleteCollection deletes the collection. Referenced photos are not
// touched; items are weak references into the shared photo corpus.
func (c *Client) DeleteCollection(ctx context.Context, id uint) error {
	return c.do(ctx, "delete collection", http.MethodDelete, fmt.Sprintf("/api/collections/%d", id), nil, nil)
}

// AddItems appends items to the end of the collection.
func (c *Client) AddItems(ctx context.Context, id uint, items []models.CollectionItem) error {
	body := map[string]interface{}{"items": items}
	return c.do(ctx, "add items", http.MethodPost, fmt.Sprintf("/api/collections/%d/items", id), body, nil)
}

// InsertItemsAt splices items in before the item at position. The backend
// applies the insert atomically: either every item lands at
// [position, position+len) or none do.
func (c *Client) InsertItemsAt(ctx context.Context, id uint, position int, items []models.CollectionItem) error {
	body := map[string]interface{}{"position": position, "items": items}
	return c.do(ctx, "insert items", http.MethodPost, fmt.Sprintf("/api/collections/%d/items/insert", id), body, nil)
}

// UpdateTextCardAt replaces the text card of the item at position.
func (c *Client) UpdateTextCardAt(ctx context.Context, id uint, position int, card models.CollectionTextCard) error {
	return c.do(ctx, "update text card", http.MethodPut,
		fmt.Sprintf("/api/collections/%d/items/%d/text-card", id, position), card, nil)
}

// DeleteItemAt removes the item at position; the backend closes the gap.
func (c *Client) DeleteItemAt(ctx context.Context, id uint, position int) error {
	return c.do(ctx, "delete item", http.MethodDelete,
		fmt.Sprintf("/api/collections/%d/items/%d", id, position), nil, nil)
}

// ReorderItems replaces the whole item order in one call. Whole-list
// replace avoids racing positional inserts/deletes against a stale index.
func (c *Client) ReorderItems(ctx context.Context, id uint, items []models.CollectionItem) error {
	body := map[string]interface{}{"items": items}
	return c.do(ctx, "reorder items", http.MethodPut, fmt.Sprintf("/api/collections/%d/items/order", id), body, nil)
}

// ToggleItemVisibility sets the visibility flag of the item at position.
func (c *Client) ToggleItemVisibility(ctx context.Context, id uint, position int, visible bool) error {
	body := map[string]bool{"visible": visible}
	return c.do(ctx, "toggle item visibility", http.MethodPut,
		fmt.Sprintf("/api/collections/%d/items/%d/visibility", id, position), body, nil)
}

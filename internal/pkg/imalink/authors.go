package imalink

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trollfjell/imalink-web/app/models"
)

// ListAuthors fetches all photographer records.
func (c *Client) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var out struct {
		Data []models.Author `json:"data"`
	}
	if err := c.do(ctx, "list authors", http.MethodGet, "/api/authors", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateAuthor creates a photographer record.
func (c *Client) CreateAuthor(ctx context.Context, author models.Author) (*models.Author, error) {
	var out models.Author
	if err := c.do(ctx, "create author", http.MethodPost, "/api/authors", author, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAuthor updates a photographer record.
func (c *Client) UpdateAuthor(ctx context.Context, id uint, author models.Author) error {
	return c.do(ctx, "update author", http.MethodPatch, fmt.Sprintf("/api/authors/%d", id), author, nil)
}

// DeleteAuthor removes a photographer record.
func (c *Client) DeleteAuthor(ctx context.Context, id uint) error {
	return c.do(ctx, "delete author", http.MethodDelete, fmt.Sprintf("/api/authors/%d", id), nil, nil)
}

package imalink

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trollfjell/imalink-web/app/models"
)

// ListEvents fetches all events.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var out struct {
		Data []models.Event `json:"data"`
	}
	if err := c.do(ctx, "list events", http.MethodGet, "/api/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, "get event", http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEvent creates an event.
func (c *Client) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var out models.Event
	if err := c.do(ctx, "create event", http.MethodPost, "/api/events", event, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEvent updates an event.
func (c *Client) UpdateEvent(ctx context.Context, id uint, event models.Event) error {
	return c.do(ctx, "update event", http.MethodPatch, fmt.Sprintf("/api/events/%d", id), event, nil)
}

// DeleteEvent removes an event. Photos keep existing; only the grouping
// goes away.
func (c *Client) DeleteEvent(ctx context.Context, id uint) error {
	return c.do(ctx, "delete event", http.MethodDelete, fmt.Sprintf("/api/events/%d", id), nil, nil)
}

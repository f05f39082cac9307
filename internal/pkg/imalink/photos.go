package imalink

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trollfjell/imalink-web/app/models"
)

// PhotoPage is one page of a photo search result.
type PhotoPage struct {
	Photos []models.Photo
	Total  int
}

// GetPhoto fetches one photo record by its hothash.
func (c *Client) GetPhoto(ctx context.Context, hothash string) (*models.Photo, error) {
	var out models.Photo
	if err := c.do(ctx, "get photo", http.MethodGet, "/api/photos/"+url.PathEscape(hothash), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPhotos runs a filtered, paginated photo search. Ranking and
// indexing are entirely the backend's business.
func (c *Client) SearchPhotos(ctx context.Context, params models.SearchParams) (*PhotoPage, error) {
	q := url.Values{}
	if params.RatingMin != nil {
		q.Set("rating_min", strconv.Itoa(*params.RatingMin))
	}
	if params.RatingMax != nil {
		q.Set("rating_max", strconv.Itoa(*params.RatingMax))
	}
	if params.TakenFrom != nil {
		q.Set("taken_from", params.TakenFrom.Format(time.RFC3339))
	}
	if params.TakenTo != nil {
		q.Set("taken_to", params.TakenTo.Format(time.RFC3339))
	}
	for _, id := range params.TagIDs {
		q.Add("tag_ids", strconv.FormatUint(uint64(id), 10))
	}
	if params.EventID != nil {
		q.Set("event_id", strconv.FormatUint(uint64(*params.EventID), 10))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/photos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Data []models.Photo `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	if err := c.do(ctx, "search photos", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	total := out.Meta.Total
	if total == 0 {
		total = len(out.Data)
	}
	return &PhotoPage{Photos: out.Data, Total: total}, nil
}

// UpdatePhotoMetadata merge-patches photo metadata and returns the
// authoritative post-update record.
func (c *Client) UpdatePhotoMetadata(ctx context.Context, hothash string, update models.PhotoUpdate) (*models.Photo, error) {
	var out models.Photo
	path := fmt.Sprintf("/api/photos/%s", url.PathEscape(hothash))
	if err := c.do(ctx, "update photo metadata", http.MethodPatch, path, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

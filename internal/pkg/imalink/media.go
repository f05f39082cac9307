package imalink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HotPreviewURL returns the URL of the low-resolution preview used for
// thumbnails and grids. The browser loads it directly.
func (c *Client) HotPreviewURL(hothash string) string {
	return fmt.Sprintf("%s/api/photos/%s/hotpreview", c.baseURL, url.PathEscape(hothash))
}

// FetchColdPreview downloads the high-resolution preview variant, capped
// at maxWidth pixels, with the bearer credential attached. Used for detail
// views and slideshow export.
func (c *Client) FetchColdPreview(ctx context.Context, hothash string, maxWidth int) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/api/photos/%s/coldpreview?max_width=%d", c.baseURL, url.PathEscape(hothash), maxWidth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RemoteError{Op: "fetch cold preview", Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "fetch cold preview", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{Op: "fetch cold preview", StatusCode: resp.StatusCode, Message: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Op: "fetch cold preview", Message: err.Error()}
	}
	return data, nil
}

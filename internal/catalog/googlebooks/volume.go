package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

// GetVolume fetches a single volume by its Google Books ID.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	volumeURL := c.baseURL + "/volumes/" + url.PathEscape(id)
	if c.apiKey != "" {
		volumeURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	c.logger.Debug("fetching Google Books volume",
		"id", id,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volume request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("volume fetch failed: status %d", resp.StatusCode)
	}

	var item volumeItem
	if err := json.UnmarshalRead(resp.Body, &item); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	v := mapVolume(&item)
	return &v, nil
}

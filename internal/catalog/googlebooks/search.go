package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

// Search queries the volumes endpoint and returns matching catalog
// entries. An empty result set is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	searchURL := c.baseURL + "/volumes?" + params.Encode()

	c.logger.Debug("searching Google Books",
		"query", query,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Google Books search results",
		"query", query,
		"count", len(searchResp.Items),
	)

	results := make([]Volume, 0, len(searchResp.Items))
	for i := range searchResp.Items {
		results = append(results, mapVolume(&searchResp.Items[i]))
	}
	return results, nil
}

// mapVolume reduces a raw API item to the fields the app keeps.
func mapVolume(item *volumeItem) Volume {
	author := "Unknown"
	if len(item.VolumeInfo.Authors) > 0 {
		author = item.VolumeInfo.Authors[0]
	}

	cover := item.VolumeInfo.ImageLinks.Thumbnail
	if cover == "" {
		cover = item.VolumeInfo.ImageLinks.SmallThumbnail
	}
	if cover == "" {
		cover = placeholderCoverURL
	}

	return Volume{
		ID:       item.ID,
		Title:    item.VolumeInfo.Title,
		Author:   author,
		CoverURL: cover,
	}
}

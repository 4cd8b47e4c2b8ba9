package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/on-the-ground/timeboard/datasets"
	"github.com/on-the-ground/timeboard/lecture"
)

const (
	httpTimeout = 30 * time.Second
	maxBodySize = 5 * 1024 * 1024 // 5MB
)

// HTTPCatalog fetches datasets as JSON documents: GET <base>/<id>.json
// must return an array of lectures. A 404 maps to ErrUnknownDataset so
// callers can tell a missing dataset from a broken provider.
type HTTPCatalog struct {
	base   string
	client *http.Client
}

func NewHTTPCatalog(base string) *HTTPCatalog {
	return &HTTPCatalog{
		base: strings.TrimRight(base, "/"),
		client: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *HTTPCatalog) FetchDataset(ctx context.Context, id datasets.ID) ([]lecture.Lecture, error) {
	url := fmt.Sprintf("%s/%s.json", c.base, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	var lectures []lecture.Lecture
	limited := io.LimitReader(resp.Body, maxBodySize)
	if err := json.NewDecoder(limited).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return lectures, nil
}

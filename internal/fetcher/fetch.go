package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voyagen/livechannels/internal/models"
)

// maxPlaylistSize caps how much of a playlist body is read.
const maxPlaylistSize = 64 << 20

// Fetcher downloads and parses M3U playlists.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. userAgent is sent when a source has no override;
// timeout bounds each HTTP request (0 means no client-side limit).
func New(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchAndParse fetches the M3U playlist at url and parses it.
// userAgent overrides the Fetcher default when non-empty.
func (f *Fetcher) FetchAndParse(ctx context.Context, url string, userAgent string) ([]models.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("NewRequest: %w", err)
	}
	if userAgent == "" {
		userAgent = f.userAgent
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	return ParseM3U(io.LimitReader(resp.Body, maxPlaylistSize))
}

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/racingicemen/photogroove/internal/gallery"
)

// Fetcher is the photo-list port. Implemented by *Client; tests swap in
// a stub so the UI can be driven without a feed host.
type Fetcher interface {
	FetchPhotos(ctx context.Context) ([]gallery.Photo, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the photo feed over HTTP.
type Client struct {
	base      string // normalized, trailing slash
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "photogroove/0.1"
	requestTimeout   = 5 * time.Second
	listPath         = "list.json"
)

// TransportError reports a failed exchange with the feed host: the
// request never completed or came back with an error status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("feed transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response that arrived but could not be decoded
// into photo records.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("feed decode: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// NewClient builds a Client for the given feed base URL. The base is
// also the url prefix every photo url in the feed is relative to.
func NewClient(feedURL string) (*Client, error) {
	base, err := normalizeBaseURL(feedURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized url prefix, always ending in "/".
func (c *Client) BaseURL() string {
	return c.base
}

// FetchPhotos retrieves and decodes the photo list.
func (c *Client) FetchPhotos(ctx context.Context) ([]gallery.Photo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+listPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &TransportError{Err: fmt.Errorf("feed returned status %d", resp.StatusCode)}
	}

	var records []photoRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("decode response: %w", err)}
	}

	photos := make([]gallery.Photo, 0, len(records))
	for i, rec := range records {
		photo, err := rec.photo()
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("record %d: %w", i, err)}
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// Untitled is the title assigned to photos whose record omits one.
const Untitled = "(untitled)"

// photoRecord mirrors one feed entry. Pointer fields distinguish a
// missing key from a zero value.
type photoRecord struct {
	URL   *string `json:"url"`
	Size  *int    `json:"size"`
	Title *string `json:"title"`
}

func (r photoRecord) photo() (gallery.Photo, error) {
	if r.URL == nil || strings.TrimSpace(*r.URL) == "" {
		return gallery.Photo{}, fmt.Errorf("missing url")
	}
	if r.Size == nil {
		return gallery.Photo{}, fmt.Errorf("missing size")
	}
	if *r.Size < 0 {
		return gallery.Photo{}, fmt.Errorf("negative size %d", *r.Size)
	}
	title := Untitled
	if r.Title != nil {
		title = *r.Title
	}
	return gallery.Photo{URL: *r.URL, Size: *r.Size, Title: title}, nil
}

// normalizeBaseURL validates the feed url, strips query/fragment, and
// guarantees a trailing slash so photo urls concatenate cleanly.
func normalizeBaseURL(feedURL string) (string, error) {
	trimmed := strings.TrimSpace(feedURL)
	if trimmed == "" {
		return "", fmt.Errorf("feed url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse feed url %q: %w", feedURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	base := u.String()
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base, nil
}

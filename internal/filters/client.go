package filters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/racingicemen/photogroove/internal/gallery"
)

// Request is the wire form of a filter application.
type Request struct {
	URL     string  `json:"url"`
	Filters []Param `json:"filters"`
}

// Param is one filter name/amount pair. Amount is in [0,1].
type Param struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// RequestFromEffect converts the state machine's effect into its wire
// form.
func RequestFromEffect(e gallery.ApplyFilters) Request {
	params := make([]Param, len(e.Filters))
	for i, f := range e.Filters {
		params[i] = Param{Name: f.Name, Amount: f.Amount}
	}
	return Request{URL: e.URL, Filters: params}
}

// Applier receives filter requests. Implemented by *Client; Discard
// stands in when no render host is configured.
type Applier interface {
	Apply(ctx context.Context, req Request) error
}

// ActivitySource delivers the host's activity strings in order.
type ActivitySource interface {
	NextActivity(ctx context.Context, since uint64) (Activity, error)
}

var (
	_ Applier        = (*Client)(nil)
	_ ActivitySource = (*Client)(nil)
	_ Applier        = Discard{}
)

// Activity is one activity-channel message. Seq orders messages and is
// the cursor for the next poll.
type Activity struct {
	Seq  uint64 `json:"seq"`
	Text string `json:"activity"`
}

// Client talks to the render host HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "photogroove/0.1"
	applyTimeout     = 5 * time.Second

	// Activity polls block server-side; the client budget leaves room
	// for the server's wait plus the round trip.
	activityTimeout = 35 * time.Second
)

// NewClient builds a Client from a host:port bind value.
func NewClient(hostBind string) (*Client, error) {
	base, err := parseBaseURL(hostBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: activityTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// Apply posts filter parameters to the render host.
func (c *Client) Apply(ctx context.Context, req Request) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel := &url.URL{Path: "/api/filters"}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.ResolveReference(rel).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("render host returned status %d", resp.StatusCode)
	}
	return nil
}

// NextActivity long-polls for the first activity message newer than
// since. It returns whatever the host answers with, which may be the
// current message again when the wait budget expires.
func (c *Client) NextActivity(ctx context.Context, since uint64) (Activity, error) {
	if c == nil {
		return Activity{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if since > 0 {
		values.Set("since", strconv.FormatUint(since, 10))
	}
	rel := &url.URL{Path: "/api/activity", RawQuery: values.Encode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.ResolveReference(rel).String(), nil)
	if err != nil {
		return Activity{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Activity{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Activity{}, fmt.Errorf("render host returned status %d", resp.StatusCode)
	}
	var payload Activity
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Activity{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// Discard is the Applier used when no render host is configured.
type Discard struct{}

// Apply drops the request.
func (Discard) Apply(ctx context.Context, req Request) error { return nil }

func parseBaseURL(hostBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(hostBind)
	if trimmed == "" {
		return nil, fmt.Errorf("render host bind is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse render host %q: %w", hostBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

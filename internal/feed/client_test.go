package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds scheme and slash", "photos.example.com", "http://photos.example.com/"},
		{"keeps path", "http://example.com/photos", "http://example.com/photos/"},
		{"strips query and fragment", "http://example.com/photos/?x=1#frag", "http://example.com/photos/"},
		{"trims whitespace", "  http://example.com/  ", "http://example.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if err != nil {
				t.Fatalf("normalizeBaseURL returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("normalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := normalizeBaseURL("   "); err == nil {
		t.Fatalf("normalizeBaseURL accepted empty url")
	}
}

func TestClient_FetchPhotos(t *testing.T) {
	t.Parallel()

	var gotPath, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"url": "1.jpeg", "size": 36, "title": "Beachside"},
			{"url": "2.jpeg", "size": 38}
		]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/photos")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	photos, err := c.FetchPhotos(ctx)
	if err != nil {
		t.Fatalf("FetchPhotos returned error: %v", err)
	}
	if gotPath != "/photos/list.json" {
		t.Fatalf("request path = %q, want /photos/list.json", gotPath)
	}
	if !strings.HasPrefix(gotUserAgent, "photogroove/") {
		t.Fatalf("User-Agent = %q, want photogroove/*", gotUserAgent)
	}
	if len(photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(photos))
	}
	if photos[0].URL != "1.jpeg" || photos[0].Size != 36 || photos[0].Title != "Beachside" {
		t.Fatalf("photos[0] = %#v, want record decoded", photos[0])
	}
	if photos[1].Title != Untitled {
		t.Fatalf("photos[1].Title = %q, want %q default", photos[1].Title, Untitled)
	}
}

func TestClient_FetchPhotosDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{not-json`},
		{"missing url", `[{"size": 36}]`},
		{"missing size", `[{"url": "1.jpeg"}]`},
		{"wrong size shape", `[{"url": "1.jpeg", "size": "big"}]`},
		{"negative size", `[{"url": "1.jpeg", "size": -1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}

			_, err = c.FetchPhotos(context.Background())
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("FetchPhotos error = %v, want *DecodeError", err)
			}
		})
	}
}

func TestClient_FetchPhotosTransportErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchPhotos(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("FetchPhotos error = %v, want *TransportError", err)
	}

	// Connection failure is a transport error too.
	server.Close()
	_, err = c.FetchPhotos(context.Background())
	if !errors.As(err, &transportErr) {
		t.Fatalf("FetchPhotos error after close = %v, want *TransportError", err)
	}
}

package filters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/racingicemen/photogroove/internal/gallery"
)

func TestRequestFromEffect(t *testing.T) {
	effect := gallery.ApplyFilters{
		URL: "http://photos.example.com/large/1.jpeg",
		Filters: []gallery.FilterParam{
			{Name: "Hue", Amount: 5.0 / 11},
			{Name: "Ripple", Amount: 5.0 / 11},
			{Name: "Noise", Amount: 5.0 / 11},
		},
	}

	got := RequestFromEffect(effect)

	want := Request{
		URL: "http://photos.example.com/large/1.jpeg",
		Filters: []Param{
			{Name: "Hue", Amount: 5.0 / 11},
			{Name: "Ripple", Amount: 5.0 / 11},
			{Name: "Noise", Amount: 5.0 / 11},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RequestFromEffect = %#v, want %#v", got, want)
	}
}

func TestClient_ApplyPostsJSON(t *testing.T) {
	t.Parallel()

	var gotPath, gotContentType string
	var gotBody Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	req := Request{
		URL:     "http://photos.example.com/large/2.jpeg",
		Filters: []Param{{Name: "Hue", Amount: 0.5}},
	}
	if err := c.Apply(context.Background(), req); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if gotPath != "/api/filters" {
		t.Fatalf("request path = %q, want /api/filters", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if !reflect.DeepEqual(gotBody, req) {
		t.Fatalf("posted body = %#v, want %#v", gotBody, req)
	}
}

func TestClient_ApplyErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Apply(context.Background(), Request{}); err == nil {
		t.Fatalf("Apply returned nil error, want status error")
	}
}

func TestClient_NextActivity(t *testing.T) {
	t.Parallel()

	var gotSince string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/activity" {
			http.NotFound(w, r)
			return
		}
		gotSince = r.URL.Query().Get("since")
		_ = json.NewEncoder(w).Encode(Activity{Seq: 8, Text: "Applying Hue 0.45"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	act, err := c.NextActivity(ctx, 7)
	if err != nil {
		t.Fatalf("NextActivity returned error: %v", err)
	}
	if gotSince != "7" {
		t.Fatalf("since = %q, want 7", gotSince)
	}
	if act.Seq != 8 || act.Text != "Applying Hue 0.45" {
		t.Fatalf("activity = %#v, want seq=8 text set", act)
	}
}

func TestParseBaseURL(t *testing.T) {
	u, err := parseBaseURL("127.0.0.1:7712")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:7712" {
		t.Fatalf("parsed = %q, want http://127.0.0.1:7712", u.String())
	}

	if _, err := parseBaseURL("  "); err == nil {
		t.Fatalf("parseBaseURL accepted empty bind")
	}
}

func TestDiscard_Apply(t *testing.T) {
	if err := (Discard{}).Apply(context.Background(), Request{URL: "x"}); err != nil {
		t.Fatalf("Discard.Apply returned error: %v", err)
	}
}

package feedserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/racingicemen/photogroove/internal/filters"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)
	return server
}

func TestHandleList_SampleFeed(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, Options{LongPollWait: 50 * time.Millisecond})

	resp, err := http.Get(server.URL + "/photos/list.json")
	if err != nil {
		t.Fatalf("GET list.json: %v", err)
	}
	defer resp.Body.Close()

	var records []photoRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("sample feed is empty")
	}
	if records[0].URL != "1.jpeg" || records[0].Title != "Beachside" {
		t.Fatalf("records[0] = %#v, want the first sample", records[0])
	}

	var sawUntitled bool
	for _, rec := range records {
		if rec.Title == "" {
			sawUntitled = true
		}
	}
	if !sawUntitled {
		t.Fatalf("sample feed should include a record without a title")
	}
}

func TestHandleList_DirectoryBacked(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"blue-skies.jpeg": "abcd",
		"trees.png":       "efghij",
		"notes.txt":       "not a photo",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	server := newTestServer(t, Options{Dir: dir, LongPollWait: 50 * time.Millisecond})

	resp, err := http.Get(server.URL + "/photos/list.json")
	if err != nil {
		t.Fatalf("GET list.json: %v", err)
	}
	defer resp.Body.Close()

	var records []photoRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (txt excluded)", len(records))
	}
	if records[0].URL != "blue-skies.jpeg" || records[0].Title != "Blue Skies" || records[0].Size != 4 {
		t.Fatalf("records[0] = %#v, want blue-skies.jpeg titled from filename", records[0])
	}

	// Both thumbnail and large paths serve the file.
	for _, path := range []string{"/photos/blue-skies.jpeg", "/photos/large/blue-skies.jpeg"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestHandlePhoto_NoDirIs404(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, Options{LongPollWait: 50 * time.Millisecond})

	resp, err := http.Get(server.URL + "/photos/1.jpeg")
	if err != nil {
		t.Fatalf("GET photo: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 without a photo dir", resp.StatusCode)
	}
}

func TestHandleFilters_ValidatesAndPublishesActivity(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, Options{LongPollWait: 50 * time.Millisecond})

	req := filters.Request{
		URL: "http://x/large/1.jpeg",
		Filters: []filters.Param{
			{Name: "Hue", Amount: 0.45},
			{Name: "Ripple", Amount: 0.45},
		},
	}
	body, _ := json.Marshal(req)
	resp, err := http.Post(server.URL+"/api/filters", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST filters: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	// The post advanced the activity feed past seq 1.
	actResp, err := http.Get(server.URL + "/api/activity?since=1")
	if err != nil {
		t.Fatalf("GET activity: %v", err)
	}
	defer actResp.Body.Close()
	var act filters.Activity
	if err := json.NewDecoder(actResp.Body).Decode(&act); err != nil {
		t.Fatalf("decode activity: %v", err)
	}
	if act.Seq != 2 || act.Text != "Applying Hue 0.45, Ripple 0.45" {
		t.Fatalf("activity = %#v, want seq 2 describing the post", act)
	}
}

func TestHandleFilters_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, Options{LongPollWait: 50 * time.Millisecond})

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{broken`},
		{"missing url", `{"filters": [{"name": "Hue", "amount": 0.5}]}`},
		{"missing name", `{"url": "x", "filters": [{"amount": 0.5}]}`},
		{"amount above 1", `{"url": "x", "filters": [{"name": "Hue", "amount": 1.5}]}`},
		{"amount below 0", `{"url": "x", "filters": [{"name": "Hue", "amount": -0.1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(server.URL+"/api/filters", "application/json", bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatalf("POST filters: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHandleActivity_InitialAndCursor(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, Options{LongPollWait: 50 * time.Millisecond})

	// No cursor: the boot message comes back immediately.
	resp, err := http.Get(server.URL + "/api/activity")
	if err != nil {
		t.Fatalf("GET activity: %v", err)
	}
	var act filters.Activity
	if err := json.NewDecoder(resp.Body).Decode(&act); err != nil {
		t.Fatalf("decode activity: %v", err)
	}
	resp.Body.Close()
	if act.Seq != 1 || act.Text == "" {
		t.Fatalf("activity = %#v, want seq 1 with a boot message", act)
	}

	// Caught-up cursor: blocks for the budget, then answers current.
	start := time.Now()
	resp, err = http.Get(server.URL + "/api/activity?since=1")
	if err != nil {
		t.Fatalf("GET activity with cursor: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&act); err != nil {
		t.Fatalf("decode activity: %v", err)
	}
	resp.Body.Close()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("long poll returned after %v, want it to hold for the budget", elapsed)
	}
	if act.Seq != 1 {
		t.Fatalf("activity seq = %d, want 1 (nothing newer)", act.Seq)
	}

	// Malformed cursor is rejected.
	resp, err = http.Get(server.URL + "/api/activity?since=banana")
	if err != nil {
		t.Fatalf("GET activity with bad cursor: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for bad cursor", resp.StatusCode)
	}
}

func TestActivityFeed_PublishWakesWaiters(t *testing.T) {
	t.Parallel()

	feed := newActivityFeed("boot")

	done := make(chan filters.Activity, 1)
	go func() {
		done <- feed.Wait(context.Background(), 1, 5*time.Second)
	}()

	// Give the waiter time to block, then publish.
	time.Sleep(20 * time.Millisecond)
	feed.Publish("working")

	select {
	case act := <-done:
		if act.Seq != 2 || act.Text != "working" {
			t.Fatalf("activity = %#v, want seq 2 %q", act, "working")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Wait did not wake after Publish")
	}
}

func TestTitleFromName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"blue-skies.jpeg", "Blue Skies"},
		{"trees.png", "Trees"},
		{"old_pier 2.jpg", "Old Pier 2"},
	}
	for _, tt := range tests {
		if got := titleFromName(tt.in); got != tt.want {
			t.Fatalf("titleFromName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

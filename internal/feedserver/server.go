// Package feedserver implements the photofeedd HTTP surface: the photo
// feed the gallery fetches, plus the render-host endpoints (filter
// posts and the activity long-poll), so everything runs locally.
package feedserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/racingicemen/photogroove/internal/filters"
)

// Options configure the server.
type Options struct {
	// Dir is scanned for image files to serve as the feed. Empty uses
	// the built-in sample records (metadata only, no image bytes).
	Dir string
	// LongPollWait bounds how long /api/activity blocks for a newer
	// activity message. Zero uses the default.
	LongPollWait time.Duration
	Logger       *zap.Logger
}

const defaultLongPollWait = 30 * time.Second

// photoRecord is the feed wire format. Title is omitted when empty so
// clients exercise their untitled default.
type photoRecord struct {
	URL   string `json:"url"`
	Size  int    `json:"size"`
	Title string `json:"title,omitempty"`
}

// Server holds the feed records and the activity feed.
type Server struct {
	dir      string
	photos   []photoRecord
	wait     time.Duration
	log      *zap.Logger
	activity *activityFeed
}

// New builds a Server. When opts.Dir is set it is scanned once, at
// construction.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	wait := opts.LongPollWait
	if wait <= 0 {
		wait = defaultLongPollWait
	}

	s := &Server{
		dir:      opts.Dir,
		wait:     wait,
		log:      logger,
		activity: newActivityFeed("Initializing render host v1"),
	}

	if opts.Dir != "" {
		photos, err := scanDir(opts.Dir)
		if err != nil {
			return nil, err
		}
		s.photos = photos
	} else {
		s.photos = samplePhotos()
	}
	return s, nil
}

// Handler returns the chi router for the full API surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/photos", func(r chi.Router) {
		r.Get("/list.json", s.handleList)
		r.Get("/large/{name}", s.handlePhoto)
		r.Get("/{name}", s.handlePhoto)
	})
	r.Post("/api/filters", s.handleFilters)
	r.Get("/api/activity", s.handleActivity)

	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.photos); err != nil {
		s.log.Warn("encode photo list", zap.Error(err))
	}
}

// handlePhoto serves image bytes when the feed is directory-backed.
// The large variant falls back to the original file; a real host would
// keep separate renditions.
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	if s.dir == "" {
		http.NotFound(w, r)
		return
	}
	name := filepath.Base(chi.URLParam(r, "name"))
	if name == "." || name == ".." || name == "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.dir, name))
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	var req filters.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed filter request", http.StatusBadRequest)
		return
	}
	if err := validateFilterRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("filters applied",
		zap.String("url", req.URL),
		zap.Int("params", len(req.Filters)))
	s.activity.Publish(describeFilters(req))

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "malformed since cursor", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	act := s.activity.Wait(r.Context(), since, s.wait)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(act); err != nil {
		s.log.Warn("encode activity", zap.Error(err))
	}
}

func validateFilterRequest(req filters.Request) error {
	if strings.TrimSpace(req.URL) == "" {
		return fmt.Errorf("filter request missing url")
	}
	for _, p := range req.Filters {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("filter param missing name")
		}
		if p.Amount < 0 || p.Amount > 1 {
			return fmt.Errorf("filter %q amount %v outside [0,1]", p.Name, p.Amount)
		}
	}
	return nil
}

func describeFilters(req filters.Request) string {
	parts := make([]string, len(req.Filters))
	for i, p := range req.Filters {
		parts[i] = fmt.Sprintf("%s %.2f", p.Name, p.Amount)
	}
	return "Applying " + strings.Join(parts, ", ")
}

var imageExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

func scanDir(dir string) ([]photoRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan photo dir: %w", err)
	}

	var photos []photoRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		photos = append(photos, photoRecord{
			URL:   name,
			Size:  int(info.Size()),
			Title: titleFromName(name),
		})
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].URL < photos[j].URL })
	return photos, nil
}

// titleFromName turns "blue-skies.jpeg" into "Blue Skies".
func titleFromName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func samplePhotos() []photoRecord {
	return []photoRecord{
		{URL: "1.jpeg", Size: 36, Title: "Beachside"},
		{URL: "2.jpeg", Size: 38, Title: "Trees"},
		{URL: "3.jpeg", Size: 36, Title: "Blue Skies"},
		{URL: "4.jpeg", Size: 34},
	}
}

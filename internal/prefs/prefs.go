// Package prefs handles photogroove user preferences persistence.
// Preferences are stored in ~/.config/photogroove/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/racingicemen/photogroove/internal/gallery"
)

// Prefs holds user preferences: the theme plus the last-used thumbnail
// size and slider positions, so a session picks up where the previous
// one left off.
type Prefs struct {
	Theme  string `toml:"theme"`
	Size   string `toml:"size"`
	Hue    int    `toml:"hue"`
	Ripple int    `toml:"ripple"`
	Noise  int    `toml:"noise"`
}

const (
	defaultPrefsPath = "~/.config/photogroove/prefs.toml"
	defaultTheme     = "Dracula"
	defaultSlider    = 5
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{
		Theme:  defaultTheme,
		Size:   gallery.Medium.String(),
		Hue:    defaultSlider,
		Ripple: defaultSlider,
		Noise:  defaultSlider,
	}
}

// Load reads preferences from the given path. It never fails: a
// missing or unreadable file degrades to defaults, and loaded values
// are normalized back into range.
func Load(path string) Prefs {
	prefs := defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs
		}
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults()
	}

	return normalize(prefs)
}

// Save writes preferences to the given path, creating directories as
// needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(normalize(p))
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// ThumbnailSize maps the stored size name to the gallery enum.
func (p Prefs) ThumbnailSize() gallery.ThumbnailSize {
	size, _ := gallery.ParseSize(p.Size)
	return size
}

func normalize(p Prefs) Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	size, ok := gallery.ParseSize(p.Size)
	if !ok {
		size = gallery.Medium
	}
	p.Size = size.String()
	p.Hue = clamp(p.Hue)
	p.Ripple = clamp(p.Ripple)
	p.Noise = clamp(p.Noise)
	return p
}

func clamp(v int) int {
	if v < gallery.SliderMin {
		return gallery.SliderMin
	}
	if v > gallery.SliderMax {
		return gallery.SliderMax
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package gallery

import "strings"

// Photo is a single gallery entry. URL doubles as the photo's identity
// within a feed; Size is the original file size in bytes.
type Photo struct {
	URL   string
	Size  int
	Title string
}

// ThumbnailSize selects how large thumbnails render.
type ThumbnailSize int

const (
	Small ThumbnailSize = iota
	Medium
	Large
)

// String returns the lowercase name used in prefs and the size picker.
func (s ThumbnailSize) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "medium"
	}
}

// ParseSize maps a prefs value back to a ThumbnailSize. Unknown values
// report ok=false so callers can fall back to the default.
func ParseSize(value string) (ThumbnailSize, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "small":
		return Small, true
	case "medium":
		return Medium, true
	case "large":
		return Large, true
	default:
		return Medium, false
	}
}

// Slider identifies one of the three filter sliders.
type Slider int

const (
	Hue Slider = iota
	Ripple
	Noise
)

// String returns the filter name sent to the render host.
func (s Slider) String() string {
	switch s {
	case Hue:
		return "Hue"
	case Ripple:
		return "Ripple"
	case Noise:
		return "Noise"
	default:
		return "Hue"
	}
}

// Slider bounds. Amounts outside the range are clamped at the Update
// boundary; the render host receives amount/SliderMax in [0,1].
const (
	SliderMin     = 0
	SliderMax     = 11
	sliderDefault = 5
)

// StatusKind discriminates the Status sum type.
type StatusKind int

const (
	StatusLoading StatusKind = iota
	StatusLoaded
	StatusErrored
)

// Status is the tri-state lifecycle of the photo set. Exactly the
// fields for the active Kind are meaningful: Photos and SelectedURL for
// StatusLoaded, Message for StatusErrored, nothing for StatusLoading.
// Use the constructors rather than literal structs.
type Status struct {
	Kind        StatusKind
	Photos      []Photo
	SelectedURL string
	Message     string
}

// Loading is the initial status, before any fetch result arrives.
func Loading() Status {
	return Status{Kind: StatusLoading}
}

// Loaded builds a loaded status. Callers guarantee photos is non-empty
// and selectedURL references one of them; Update maintains both.
func Loaded(photos []Photo, selectedURL string) Status {
	return Status{Kind: StatusLoaded, Photos: photos, SelectedURL: selectedURL}
}

// Errored marks the current load cycle as failed. Terminal until a
// fresh fetch result arrives.
func Errored(message string) Status {
	return Status{Kind: StatusErrored, Message: message}
}

// Model is the complete application state. A single value owns the
// whole session; only Update produces new ones.
type Model struct {
	Status     Status
	Activity   string
	ChosenSize ThumbnailSize
	Hue        int
	Ripple     int
	Noise      int

	// BaseURL prefixes every photo url from the feed. Fixed at startup.
	BaseURL string
}

// New returns the startup model: loading, medium thumbnails, all
// sliders centered, no activity.
func New(baseURL string) Model {
	return Model{
		Status:     Loading(),
		ChosenSize: Medium,
		Hue:        sliderDefault,
		Ripple:     sliderDefault,
		Noise:      sliderDefault,
		BaseURL:    baseURL,
	}
}

// ThumbURL builds the thumbnail url for a photo.
func (m Model) ThumbURL(p Photo) string {
	return m.BaseURL + p.URL
}

// LargeURL builds the full-size variant url for a photo url.
func (m Model) LargeURL(url string) string {
	return m.BaseURL + "large/" + url
}

// SelectedPhoto returns the currently selected photo when loaded.
func (m Model) SelectedPhoto() (Photo, bool) {
	if m.Status.Kind != StatusLoaded {
		return Photo{}, false
	}
	for _, p := range m.Status.Photos {
		if p.URL == m.Status.SelectedURL {
			return p, true
		}
	}
	return Photo{}, false
}

// SliderValue reads the current amount for a slider.
func (m Model) SliderValue(s Slider) int {
	switch s {
	case Hue:
		return m.Hue
	case Ripple:
		return m.Ripple
	case Noise:
		return m.Noise
	default:
		return 0
	}
}

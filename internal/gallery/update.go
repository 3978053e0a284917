package gallery

// Event is an inbound occurrence the state machine reacts to. The set
// is closed; Update switches exhaustively over it.
type Event interface{ isEvent() }

// PhotosFetched carries the result of the photo-list fetch. Err is set
// on transport or decode failure; Photos may be empty on success.
type PhotosFetched struct {
	Photos []Photo
	Err    error
}

// PhotoSelected reports the user picking a thumbnail by url.
type PhotoSelected struct {
	URL string
}

// RandomPhotoChosen is the deferred answer to a PickRandomPhoto effect.
type RandomPhotoChosen struct {
	Photo Photo
}

// SurpriseRequested asks for a random photo to be selected.
type SurpriseRequested struct{}

// SizeChosen reports a new thumbnail display size.
type SizeChosen struct {
	Size ThumbnailSize
}

// SliderMoved reports a filter slider change. Amount is clamped to
// [SliderMin, SliderMax] before it lands in the model.
type SliderMoved struct {
	Slider Slider
	Amount int
}

// ActivityReported carries an activity string pushed by the render
// host; it is stored verbatim.
type ActivityReported struct {
	Text string
}

func (PhotosFetched) isEvent()     {}
func (PhotoSelected) isEvent()     {}
func (RandomPhotoChosen) isEvent() {}
func (SurpriseRequested) isEvent() {}
func (SizeChosen) isEvent()        {}
func (SliderMoved) isEvent()       {}
func (ActivityReported) isEvent()  {}

// Effect is an outbound request Update returns instead of performing.
// The host executes it and, where there is an answer, feeds the answer
// back in as a new Event.
type Effect interface{ isEffect() }

// FilterParam is one filter name/amount pair for the render host.
// Amount is normalized to [0,1].
type FilterParam struct {
	Name   string
	Amount float64
}

// ApplyFilters asks the render host to (re)apply filter parameters to
// the full-size variant of the selected photo.
type ApplyFilters struct {
	URL     string
	Filters []FilterParam
}

// PickRandomPhoto asks the host's random source to choose uniformly
// from Photos (the current selection included) and answer with
// RandomPhotoChosen.
type PickRandomPhoto struct {
	Photos []Photo
}

func (ApplyFilters) isEffect()    {}
func (PickRandomPhoto) isEffect() {}

// Error messages shown for a failed load cycle. An empty feed is its
// own error, distinct from transport/decode failure.
const (
	msgServerError = "Server Error!"
	msgNoPhotos    = "0 photos found"
)

// Update is the state transition function: pure, no I/O, no hidden
// state. Events it does not recognize leave the model untouched.
func Update(m Model, ev Event) (Model, []Effect) {
	switch ev := ev.(type) {
	case PhotosFetched:
		if ev.Err != nil {
			m.Status = Errored(msgServerError)
			return m, nil
		}
		if len(ev.Photos) == 0 {
			m.Status = Errored(msgNoPhotos)
			return m, nil
		}
		m.Status = Loaded(ev.Photos, ev.Photos[0].URL)
		return m, m.applyFiltersEffect()

	case PhotoSelected:
		return selectURL(m, ev.URL)

	case RandomPhotoChosen:
		return selectURL(m, ev.Photo.URL)

	case SurpriseRequested:
		if m.Status.Kind != StatusLoaded || len(m.Status.Photos) == 0 {
			return m, nil
		}
		return m, []Effect{PickRandomPhoto{Photos: m.Status.Photos}}

	case SizeChosen:
		m.ChosenSize = ev.Size
		return m, nil

	case SliderMoved:
		amount := clampSlider(ev.Amount)
		switch ev.Slider {
		case Hue:
			m.Hue = amount
		case Ripple:
			m.Ripple = amount
		case Noise:
			m.Noise = amount
		}
		return m, m.applyFiltersEffect()

	case ActivityReported:
		m.Activity = ev.Text
		return m, nil
	}

	return m, nil
}

// selectURL moves the selection when the url belongs to the loaded set.
// Stale urls (from an event raced against a newer load) are dropped.
func selectURL(m Model, url string) (Model, []Effect) {
	if m.Status.Kind != StatusLoaded {
		return m, nil
	}
	found := false
	for _, p := range m.Status.Photos {
		if p.URL == url {
			found = true
			break
		}
	}
	if !found {
		return m, nil
	}
	m.Status.SelectedURL = url
	return m, m.applyFiltersEffect()
}

// applyFiltersEffect builds the outbound filter request for the current
// selection. Filters are meaningless without a loaded photo, so no
// request is produced while Loading or Errored.
func (m Model) applyFiltersEffect() []Effect {
	if m.Status.Kind != StatusLoaded {
		return nil
	}
	return []Effect{ApplyFilters{
		URL: m.LargeURL(m.Status.SelectedURL),
		Filters: []FilterParam{
			{Name: Hue.String(), Amount: float64(m.Hue) / SliderMax},
			{Name: Ripple.String(), Amount: float64(m.Ripple) / SliderMax},
			{Name: Noise.String(), Amount: float64(m.Noise) / SliderMax},
		},
	}}
}

func clampSlider(amount int) int {
	if amount < SliderMin {
		return SliderMin
	}
	if amount > SliderMax {
		return SliderMax
	}
	return amount
}

// Rand is the random source port used when executing PickRandomPhoto.
// *math/rand/v2.Rand satisfies it; tests inject a fixed source.
type Rand interface {
	IntN(n int) int
}

// ChoosePhoto resolves a PickRandomPhoto effect: uniform over the full
// list, re-selecting the current photo is a valid outcome.
func ChoosePhoto(r Rand, photos []Photo) (Photo, bool) {
	if len(photos) == 0 {
		return Photo{}, false
	}
	return photos[r.IntN(len(photos))], true
}

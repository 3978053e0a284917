package ui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/racingicemen/photogroove/internal/feed"
	"github.com/racingicemen/photogroove/internal/filters"
	"github.com/racingicemen/photogroove/internal/gallery"
	"github.com/racingicemen/photogroove/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Feed     feed.Fetcher
	Applier  filters.Applier
	Activity filters.ActivitySource // nil disables the activity channel
	Rand     gallery.Rand

	BaseURL   string
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	feed     feed.Fetcher
	applier  filters.Applier
	activity filters.ActivitySource
	rand     gallery.Rand
	log      *zap.Logger

	core gallery.Model

	keys      keyMap
	help      help.Model
	theme     Theme
	prefsPath string

	width    int
	height   int
	ready    bool
	showHelp bool

	// Cursor into the activity channel; the next long poll picks up
	// from here.
	activityCursor uint64
}

// Messages fed back into the program loop by commands.
type (
	photosMsg struct {
		photos []gallery.Photo
		err    error
	}
	randomPickedMsg struct {
		photo gallery.Photo
		ok    bool
	}
	activityMsg      filters.Activity
	activityErrMsg   struct{ err error }
	activityRetryMsg struct{}
	filterErrMsg     struct{ err error }
)

const activityRetryDelay = 2 * time.Second

// New creates the Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	applier := opts.Applier
	if applier == nil {
		applier = filters.Discard{}
	}
	source := opts.Rand
	if source == nil {
		source = stdRand{}
	}

	core := gallery.New(opts.BaseURL)
	core.ChosenSize = opts.Prefs.ThumbnailSize()
	core.Hue = opts.Prefs.Hue
	core.Ripple = opts.Prefs.Ripple
	core.Noise = opts.Prefs.Noise

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		feed:      opts.Feed,
		applier:   applier,
		activity:  opts.Activity,
		rand:      source,
		log:       logger,
		core:      core,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.Prefs.Theme),
		prefsPath: prefsPath,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.fetchPhotosCmd(),
	}
	if m.activity != nil {
		cmds = append(cmds, m.nextActivityCmd(0))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case photosMsg:
		if msg.err != nil {
			m.log.Warn("photo fetch failed", zap.Error(msg.err))
		}
		return m.dispatch(gallery.PhotosFetched{Photos: msg.photos, Err: msg.err})

	case randomPickedMsg:
		if !msg.ok {
			return m, nil
		}
		return m.dispatch(gallery.RandomPhotoChosen{Photo: msg.photo})

	case activityMsg:
		m.activityCursor = msg.Seq
		next, cmd := m.dispatch(gallery.ActivityReported{Text: msg.Text})
		return next, tea.Batch(cmd, next.nextActivityCmd(next.activityCursor))

	case activityErrMsg:
		m.log.Warn("activity poll failed", zap.Error(msg.err))
		return m, tea.Tick(activityRetryDelay, func(time.Time) tea.Msg {
			return activityRetryMsg{}
		})

	case activityRetryMsg:
		return m, m.nextActivityCmd(m.activityCursor)

	case filterErrMsg:
		// Filter posts are fire-and-forget; failures only reach the log.
		m.log.Warn("filter apply failed", zap.Error(msg.err))
		return m, nil
	}

	return m, nil
}

// dispatch feeds an event to the state machine and maps the returned
// effects onto commands.
func (m Model) dispatch(ev gallery.Event) (Model, tea.Cmd) {
	core, effects := gallery.Update(m.core, ev)
	m.core = core

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect := effect.(type) {
		case gallery.ApplyFilters:
			cmds = append(cmds, m.applyFiltersCmd(filters.RequestFromEffect(effect)))
		case gallery.PickRandomPhoto:
			cmds = append(cmds, m.pickRandomCmd(effect.Photos))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persistPrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		m.persistPrefs()
		return m, nil

	case key.Matches(msg, m.keys.PrevPhoto):
		return m.selectNeighbor(-1)

	case key.Matches(msg, m.keys.NextPhoto):
		return m.selectNeighbor(1)

	case key.Matches(msg, m.keys.Surprise):
		return m.dispatch(gallery.SurpriseRequested{})

	case key.Matches(msg, m.keys.Reload):
		m.core.Status = gallery.Loading()
		return m, m.fetchPhotosCmd()

	case key.Matches(msg, m.keys.SizeSmall):
		return m.dispatch(gallery.SizeChosen{Size: gallery.Small})
	case key.Matches(msg, m.keys.SizeMedium):
		return m.dispatch(gallery.SizeChosen{Size: gallery.Medium})
	case key.Matches(msg, m.keys.SizeLarge):
		return m.dispatch(gallery.SizeChosen{Size: gallery.Large})

	case key.Matches(msg, m.keys.HueUp):
		return m.nudgeSlider(gallery.Hue, 1)
	case key.Matches(msg, m.keys.HueDown):
		return m.nudgeSlider(gallery.Hue, -1)
	case key.Matches(msg, m.keys.RippleUp):
		return m.nudgeSlider(gallery.Ripple, 1)
	case key.Matches(msg, m.keys.RippleDown):
		return m.nudgeSlider(gallery.Ripple, -1)
	case key.Matches(msg, m.keys.NoiseUp):
		return m.nudgeSlider(gallery.Noise, 1)
	case key.Matches(msg, m.keys.NoiseDown):
		return m.nudgeSlider(gallery.Noise, -1)
	}

	return m, nil
}

// selectNeighbor moves the selection left or right through the loaded
// list, clamping at the ends.
func (m Model) selectNeighbor(delta int) (Model, tea.Cmd) {
	if m.core.Status.Kind != gallery.StatusLoaded {
		return m, nil
	}
	photos := m.core.Status.Photos
	current := 0
	for i, p := range photos {
		if p.URL == m.core.Status.SelectedURL {
			current = i
			break
		}
	}
	next := current + delta
	if next < 0 || next >= len(photos) {
		return m, nil
	}
	return m.dispatch(gallery.PhotoSelected{URL: photos[next].URL})
}

func (m Model) nudgeSlider(s gallery.Slider, delta int) (Model, tea.Cmd) {
	return m.dispatch(gallery.SliderMoved{
		Slider: s,
		Amount: m.core.SliderValue(s) + delta,
	})
}

func (m Model) persistPrefs() {
	p := prefs.Prefs{
		Theme:  m.theme.Name,
		Size:   m.core.ChosenSize.String(),
		Hue:    m.core.Hue,
		Ripple: m.core.Ripple,
		Noise:  m.core.Noise,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// Commands.

func (m Model) fetchPhotosCmd() tea.Cmd {
	return func() tea.Msg {
		photos, err := m.feed.FetchPhotos(m.ctx)
		return photosMsg{photos: photos, err: err}
	}
}

func (m Model) applyFiltersCmd(req filters.Request) tea.Cmd {
	return func() tea.Msg {
		if err := m.applier.Apply(m.ctx, req); err != nil {
			return filterErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) pickRandomCmd(photos []gallery.Photo) tea.Cmd {
	return func() tea.Msg {
		photo, ok := gallery.ChoosePhoto(m.rand, photos)
		return randomPickedMsg{photo: photo, ok: ok}
	}
}

func (m Model) nextActivityCmd(since uint64) tea.Cmd {
	if m.activity == nil {
		return nil
	}
	return func() tea.Msg {
		act, err := m.activity.NextActivity(m.ctx, since)
		if err != nil {
			return activityErrMsg{err: err}
		}
		return activityMsg(act)
	}
}

// stdRand adapts the auto-seeded process-wide source to the gallery
// port.
type stdRand struct{}

func (stdRand) IntN(n int) int { return rand.IntN(n) }

// Run starts the program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}

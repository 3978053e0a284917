package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Photo navigation
	PrevPhoto key.Binding
	NextPhoto key.Binding
	Surprise  key.Binding
	Reload    key.Binding

	// Thumbnail size
	SizeSmall  key.Binding
	SizeMedium key.Binding
	SizeLarge  key.Binding

	// Filter sliders: lowercase raises, uppercase lowers.
	HueUp      key.Binding
	HueDown    key.Binding
	RippleUp   key.Binding
	RippleDown key.Binding
	NoiseUp    key.Binding
	NoiseDown  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),

		PrevPhoto: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous photo"),
		),
		NextPhoto: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next photo"),
		),
		Surprise: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "surprise me"),
		),
		Reload: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "reload feed"),
		),

		SizeSmall: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "small"),
		),
		SizeMedium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium"),
		),
		SizeLarge: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "large"),
		),

		HueUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u/U", "hue +/-"),
		),
		HueDown: key.NewBinding(
			key.WithKeys("U"),
		),
		RippleUp: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r/R", "ripple +/-"),
		),
		RippleDown: key.NewBinding(
			key.WithKeys("R"),
		),
		NoiseUp: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n/N", "noise +/-"),
		),
		NoiseDown: key.NewBinding(
			key.WithKeys("N"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPhoto, k.NextPhoto, k.Surprise, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPhoto, k.NextPhoto, k.Surprise, k.Reload},
		{k.SizeSmall, k.SizeMedium, k.SizeLarge},
		{k.HueUp, k.RippleUp, k.NoiseUp},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

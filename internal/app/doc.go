// Package app is the composition root for the photogroove TUI.
//
// Run loads configuration and user preferences, builds the file-backed
// logger (the TUI owns the terminal), wires the feed and render-host
// clients to the UI, and blocks until the user exits or the context is
// cancelled.
//
// Fatal errors are the ones that prevent startup: unreadable config,
// an unparseable feed url, a logger that cannot open its file. Runtime
// failures — a feed fetch that errors, a render host that is down —
// surface inside the UI as an errored load cycle or a logged warning,
// and never take the program down.
package app

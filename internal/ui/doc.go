// Package ui is the Bubble Tea shell around the gallery state machine.
//
// The tea Update translates terminal input into gallery events, hands
// them to gallery.Update, and turns the returned effects into commands
// (filter posts to the render host, random picks). Fetch results,
// activity pushes, and random choices all come back as messages on the
// single program loop, so the model is only ever written from one
// place.
package ui

// Package gallery holds the application state machine for the photo
// browser: the model, the events that can happen to it, and the pure
// Update function that maps an event to a new model plus the side
// effects a host should perform.
//
// Nothing in this package does I/O. Fetching the photo list, posting
// filter parameters to the render host, and picking random numbers all
// live behind effects and events so the transitions stay testable
// without a terminal or a network.
package gallery

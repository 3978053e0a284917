// Package filters is the client side of the render host: the external
// process that actually applies hue/ripple/noise to the full-size
// image. Filter parameters go out as JSON posts; the host's activity
// string comes back over a long-poll endpoint.
package filters

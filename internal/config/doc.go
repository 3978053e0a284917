// Package config loads the photogroove configuration from
// ~/.config/photogroove/config.toml. A missing file is not an error;
// every field has a default that points at a locally running
// photofeedd.
package config

// Package util provides small parsing and formatting helpers shared by the
// config, audio and server packages.
package util

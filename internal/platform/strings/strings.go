// Package strings holds the small string helpers module wiring needs
package strings

import std "strings"

// IfEmpty is def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with name when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a route prefix to one leading slash and no trailing one
// It panics on the root path
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/ ")
	if p == "/" {
		panic("route prefix is required")
	}
	return p
}

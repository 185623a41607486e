// Package raw reads bootstrap settings straight from the environment
// the logger uses it, so it must not import the logger or config packages
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf reads env vars under a key prefix
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// lookup reports the trimmed value, blank counts as unset
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	return v, v != ""
}

// Get returns the value or def
func (c Conf) Get(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// GetBool understands 1/0, true/false, yes/no and on/off
// anything else falls back to def
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// GetInt returns a non negative integer or def
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

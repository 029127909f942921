// Package config reads application settings from environment variables
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"introspect/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "GONG_", "SERVICE_PGSQL_")
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) value(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// must fetches a required value and converts it, panicking through the logger on failure
func must[T any](c Conf, key, what string, conv func(string) (T, bool)) T {
	s := c.value(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, ok := conv(s)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid " + what)
	}
	return v
}

// may fetches an optional value, falling back to def when unset or invalid
func may[T any](c Conf, key, what string, def T, conv func(string) (T, bool)) T {
	s := c.value(key)
	if s == "" {
		return def
	}
	v, ok := conv(s)
	if !ok {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Msg("invalid " + what + "; using default")
		return def
	}
	return v
}

func asString(s string) (string, bool) { return s, true }

func asInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func asFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func asBool(s string) (bool, bool) {
	v, err := strconv.ParseBool(s)
	return v, err == nil
}

func asDuration(s string) (time.Duration, bool) {
	v, err := time.ParseDuration(s)
	return v, err == nil
}

func asAbsURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	return u, err == nil && u.IsAbs()
}

// MustString panics if key is missing or empty
func (c Conf) MustString(key string) string { return must(c, key, "string", asString) }

// MustInt panics if key is missing or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", asInt) }

// MustDuration panics if key is missing or not a duration (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration { return must(c, key, "duration", asDuration) }

// MustURL panics if key is missing or not an absolute URL
func (c Conf) MustURL(key string) *url.URL { return must(c, key, "absolute URL", asAbsURL) }

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, asString) }

// MayInt returns the value or def; invalid values log and return def
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, asInt) }

// MayFloat64 returns the value or def; invalid values log and return def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, "float64", def, asFloat)
}

// MayBool returns the value or def; invalid values log and return def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, asBool) }

// MayDuration returns the value or def; invalid values log and return def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, asDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.value(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value if it is one of allowed (case-insensitive), def when unset.
// Any other value panics, since a wrong enum is a run-level misconfiguration
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

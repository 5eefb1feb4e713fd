package config

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	defaultTimezone = "Asia/Jakarta"
	defaultLocale   = "id"
)

// DisplayConfig controls how dates, money and names are presented.
type DisplayConfig struct {
	// Timezone is the IANA zone used for "local" date/time inputs and output.
	Timezone string `env:"DISPLAY_TIMEZONE" envDefault:"Asia/Jakarta"`

	// Locale is the BCP 47 tag used for collation and number grouping.
	Locale string `env:"DISPLAY_LOCALE" envDefault:"id"`
}

// Sanitize falls back to defaults for empty or unknown values.
func (d *DisplayConfig) Sanitize() {
	d.Timezone = strings.TrimSpace(d.Timezone)
	if _, err := time.LoadLocation(d.Timezone); d.Timezone == "" || err != nil {
		d.Timezone = defaultTimezone
	}
	if d.Locale = strings.TrimSpace(d.Locale); d.Locale == "" {
		d.Locale = defaultLocale
	}
}

// Location returns the configured zone, or UTC when it cannot be loaded.
func (d DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Tag parses Locale, falling back to Indonesian for malformed tags.
func (d DisplayConfig) Tag() language.Tag {
	tag, err := language.Parse(d.Locale)
	if err != nil {
		return language.Indonesian
	}
	return tag
}

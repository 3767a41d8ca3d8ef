package voiceroom

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// NewBundle loads the embedded message files. English is the source language.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("voiceroom: list locales: %w", err)
	}
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, fmt.Errorf("voiceroom: load %s: %w", file, err)
		}
	}
	return bundle, nil
}

// NewLocalizer returns a localizer for locale, falling back to English for
// unknown or malformed tags and for missing messages.
func NewLocalizer(bundle *i18n.Bundle, locale string) *i18n.Localizer {
	if locale == "" {
		locale = constants.DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return i18n.NewLocalizer(bundle, tag.String(), language.English.String())
}

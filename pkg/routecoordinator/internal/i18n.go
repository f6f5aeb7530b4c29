package internal

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(localeFS, "locales/*.toml")
		if err != nil {
			bundleErr = err
			return
		}
		for _, file := range files {
			if _, err := b.LoadMessageFileFS(localeFS, file); err != nil {
				bundleErr = fmt.Errorf("load %s: %w", file, err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Localizer resolves error message IDs to translated descriptions.
type Localizer struct {
	bundle   *i18n.Bundle
	fallback []string
}

// NewLocalizer creates a Localizer whose default language is locale.
// An empty locale means English.
func NewLocalizer(locale string) (*Localizer, error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("routecoordinator: invalid locale %q: %w", locale, err)
		}
		tag = parsed
	}

	b, err := loadBundle()
	if err != nil {
		return nil, err
	}

	return &Localizer{bundle: b, fallback: []string{tag.String()}}, nil
}

// Localize returns the message for id in the first supported language of langs,
// falling back to the localizer's default language.
func (l *Localizer) Localize(id string, langs ...string) (string, bool) {
	prefs := append(append([]string{}, langs...), l.fallback...)
	msg, err := i18n.NewLocalizer(l.bundle, prefs...).Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return "", false
	}
	return msg, true
}

// Languages returns the tags that have message files.
func (l *Localizer) Languages() []string {
	tags := l.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

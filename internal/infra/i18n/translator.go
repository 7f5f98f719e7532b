// Package i18n resolves display labels with golang.org/x/text. There is no
// process-wide locale: every request builds its own Labels.
package i18n

import (
	"addrcard/config"
	"addrcard/internal/domain/service"
	"addrcard/internal/errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator owns the message catalog and matches requested locales against
// the supported ones.
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
}

//nolint:gochecknoglobals
var bundled = map[string]map[string]string{
	"en": messagesEN,
	"de": messagesDE,
}

// New builds a Translator. The default locale is the fallback for unknown
// requests and for keys missing in a supported locale.
func New(defaultLocale string, supported []string) (*Translator, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid default locale %q", defaultLocale)
	}

	tags := []language.Tag{fallback}
	for _, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid supported locale %q", locale)
		}
		if tag != fallback {
			tags = append(tags, tag)
		}
	}

	builder := catalog.NewBuilder(catalog.Fallback(fallback))
	for _, tag := range tags {
		base, _ := tag.Base()
		msgs, ok := bundled[base.String()]
		if !ok {
			return nil, errors.Errorf("no messages bundled for locale %q", tag)
		}
		for key, msg := range msgs {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, errors.Wrapf(err, "failed to register message %q", key)
			}
		}
	}

	return &Translator{
		catalog: builder,
		matcher: language.NewMatcher(tags),
		tags:    tags,
	}, nil
}

// NewFromConfig builds the Translator from the i18n configuration
func NewFromConfig(cfg *config.Config) (*Translator, error) {
	if cfg.I18n == nil {
		return New("en", nil)
	}

	return New(cfg.I18n.DefaultLocale, cfg.I18n.SupportedLocales)
}

// Localizer returns the labels best matching an Accept-Language header value.
// An empty or unparsable header yields the default locale.
func (t *Translator) Localizer(acceptLanguage string) service.Labels {
	requested, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(requested) == 0 {
		return t.forTag(t.tags[0])
	}

	_, index, confidence := t.matcher.Match(requested...)
	if confidence == language.No {
		return t.forTag(t.tags[0])
	}

	return t.forTag(t.tags[index])
}

// Locales lists the supported locales, default first
func (t *Translator) Locales() []string {
	locales := make([]string, 0, len(t.tags))
	for _, tag := range t.tags {
		locales = append(locales, tag.String())
	}

	return locales
}

func (t *Translator) forTag(tag language.Tag) service.Labels {
	return &labels{
		printer: message.NewPrinter(tag, message.Catalog(t.catalog)),
		tag:     tag,
	}
}

type labels struct {
	printer *message.Printer
	tag     language.Tag
}

// T looks key up; unknown keys come back unchanged
func (l *labels) T(key string) string {
	return l.printer.Sprintf(key)
}

func (l *labels) Locale() string {
	return l.tag.String()
}

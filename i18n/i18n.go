// Package i18n holds the message catalog used to render localized text
// such as response-code descriptions.
package i18n

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrMissingDefaultLanguage is returned when the catalog has no messages for
// its default language.
var ErrMissingDefaultLanguage = errors.New("i18n: missing default language messages")

// Messages maps a message key to its translation in one language.
type Messages map[string]string

// Catalog is an immutable set of translations with a mandatory default
// language. It is safe for concurrent use.
type Catalog struct {
	def     language.Tag
	tags    []language.Tag
	matcher language.Matcher
	builder *catalog.Builder
}

// New builds a catalog. The default language must be present in
// translations; other languages fall back to it for missing keys.
func New(def language.Tag, translations map[language.Tag]Messages) (*Catalog, error) {
	if len(translations[def]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingDefaultLanguage, def)
	}

	b := catalog.NewBuilder(catalog.Fallback(def))

	// The default language goes first so the matcher prefers it.
	tags := []language.Tag{def}
	for tag := range translations {
		if tag != def {
			tags = append(tags, tag)
		}
	}
	slices.SortFunc(tags[1:], func(a, b language.Tag) int {
		if a.String() < b.String() {
			return -1
		}
		if a.String() > b.String() {
			return 1
		}
		return 0
	})

	for _, tag := range tags {
		for key, msg := range translations[tag] {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: set %s message %q: %w", tag, key, err)
			}
		}
	}

	return &Catalog{
		def:     def,
		tags:    tags,
		matcher: language.NewMatcher(tags),
		builder: b,
	}, nil
}

// Default returns the default language.
func (c *Catalog) Default() language.Tag {
	return c.def
}

// Languages returns the supported languages, default first.
func (c *Catalog) Languages() []language.Tag {
	return slices.Clone(c.tags)
}

// Match returns the supported language that best matches the preferences.
func (c *Catalog) Match(prefs ...language.Tag) language.Tag {
	if len(prefs) == 0 {
		return c.def
	}
	_, index, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.def
	}
	return c.tags[index]
}

// MatchHeader matches an Accept-Language header value.
func (c *Catalog) MatchHeader(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return c.def
	}
	return c.Match(prefs...)
}

// Printer returns a printer for the best match of prefs.
func (c *Catalog) Printer(prefs ...language.Tag) *message.Printer {
	return message.NewPrinter(c.Match(prefs...), message.Catalog(c.builder))
}

// DefaultPrinter returns a printer for the default language.
func (c *Catalog) DefaultPrinter() *message.Printer {
	return message.NewPrinter(c.def, message.Catalog(c.builder))
}

type printerKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

// FromContext returns the printer stored by NewContext, or nil.
func FromContext(ctx context.Context) *message.Printer {
	p, _ := ctx.Value(printerKey{}).(*message.Printer)
	return p
}

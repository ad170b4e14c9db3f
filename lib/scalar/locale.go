package scalar

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"strings"

	"golang.org/x/text/language"
)

// interfaceLanguages is the closed set of language codes upstream serves its
// interface in. "in" and "no" are the legacy codes upstream still sends.
var interfaceLanguages = map[string]bool{
	"ar": true, "bn": true, "cs": true, "da": true, "de": true, "el": true,
	"en": true, "es": true, "fi": true, "fr": true, "he": true, "hi": true,
	"hu": true, "in": true, "id": true, "it": true, "ja": true, "ko": true,
	"ms": true, "nl": true, "no": true, "nb": true, "pl": true, "pt": true,
	"ro": true, "ru": true, "sv": true, "th": true, "tl": true, "tr": true,
	"uk": true, "vi": true, "zh": true,
}

// Locale is a language from the closed table with an optional ISO 3166
// country, written "en_US" like upstream's x-li-lang header.
type Locale struct {
	language string
	country  string
}

// ParseLocale accepts "en", "en_US" or "en-US".
func ParseLocale(raw string) (Locale, error) {
	value := strings.TrimSpace(raw)
	lang, country, found := strings.Cut(strings.ReplaceAll(value, "-", "_"), "_")
	if found && country == "" {
		return Locale{}, invalid(KindLocale, raw, "empty country")
	}
	loc, err := NewLocale(lang, country)
	if perr, ok := err.(*errs.ParseError); ok {
		perr.Raw = raw
		return Locale{}, perr
	}
	return loc, err
}

// NewLocale builds a locale from upstream's {"language": "en", "country": "US"}
// object form.
func NewLocale(lang, country string) (Locale, error) {
	raw := lang
	if country != "" {
		raw += "_" + country
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !interfaceLanguages[lang] {
		return Locale{}, invalid(KindLocale, raw, "unsupported language")
	}
	country = strings.TrimSpace(country)
	if country == "" {
		return Locale{language: lang}, nil
	}
	region, err := language.ParseRegion(country)
	if err != nil || !region.IsCountry() {
		return Locale{}, invalid(KindLocale, raw, "unknown country")
	}
	return Locale{language: lang, country: region.String()}, nil
}

func (l Locale) Language() string {
	return l.language
}

func (l Locale) Country() string {
	return l.country
}

func (l Locale) IsZero() bool {
	return l.language == ""
}

// Tag converts to a BCP 47 tag, mapping legacy codes to their current ones.
func (l Locale) Tag() language.Tag {
	if l.country == "" {
		return language.Make(l.language)
	}
	return language.Make(l.language + "-" + l.country)
}

func (l Locale) String() string {
	if l.country == "" {
		return l.language
	}
	return l.language + "_" + l.country
}

func (l Locale) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Locale) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseLocale(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

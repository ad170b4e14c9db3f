package scalar

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

var recognizedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// URL is an absolute http(s) URL. String returns the input as given (trimmed).
// URL values compare equal with == when their inputs are equal.
type URL struct {
	value      string
	host       string
	normalized string
}

func ParseURL(raw string) (URL, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return URL{}, invalid(KindURL, raw, "empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return URL{}, invalid(KindURL, raw, err.Error())
	}
	if !recognizedSchemes[strings.ToLower(parsed.Scheme)] {
		return URL{}, invalid(KindURL, raw, "scheme must be http or https")
	}
	if parsed.Host == "" {
		return URL{}, invalid(KindURL, raw, "missing host")
	}
	return URL{
		value: value,
		host:  strings.ToLower(parsed.Hostname()),
		normalized: purell.NormalizeURL(
			parsed,
			purell.FlagsSafe|
				purell.FlagRemoveFragment|
				purell.FlagSortQuery,
		),
	}, nil
}

func (u URL) String() string {
	return u.value
}

func (u URL) IsZero() bool {
	return u.value == ""
}

// Equal reports whether u and other were parsed from the same input.
func (u URL) Equal(other URL) bool {
	return u == other
}

func (u URL) Host() string {
	return u.host
}

// Normalized is a canonical spelling used to compare URLs: lowercased scheme
// and host, default port dropped, query sorted, fragment removed.
func (u URL) Normalized() string {
	return u.normalized
}

func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.value), nil
}

func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseURL(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

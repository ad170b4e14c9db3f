// Package scalar wraps raw strings that passed a kind specific check. The
// Parse functions are the only way to get a non-zero value.
package scalar

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"strings"
	"unicode"
)

type Kind string

const (
	KindEmail  Kind = "email"
	KindPhone  Kind = "phone"
	KindURL    Kind = "url"
	KindLocale Kind = "locale"
)

func invalid(kind Kind, raw, reason string) *errs.ParseError {
	return &errs.ParseError{
		Code:     errs.InvalidFormat,
		Expected: string(kind),
		Raw:      raw,
		Reason:   reason,
	}
}

type Email struct {
	value string
}

// ParseEmail accepts exactly one "@" with a non-empty local part and a
// domain of at least two non-empty dot separated labels. Surrounding
// whitespace is trimmed, inner whitespace or control characters are not
// allowed.
func ParseEmail(raw string) (Email, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Email{}, invalid(KindEmail, raw, "empty")
	}
	for _, r := range value {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return Email{}, invalid(KindEmail, raw, "contains whitespace")
		}
	}
	if strings.Count(value, "@") != 1 {
		return Email{}, invalid(KindEmail, raw, "must contain exactly one @")
	}
	local, domain, _ := strings.Cut(value, "@")
	if local == "" {
		return Email{}, invalid(KindEmail, raw, "empty local part")
	}
	if !strings.Contains(domain, ".") {
		return Email{}, invalid(KindEmail, raw, "domain needs a dot")
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return Email{}, invalid(KindEmail, raw, "empty domain label")
		}
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}

func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return strings.ToLower(domain)
}

func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

func (e *Email) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseEmail(raw)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"linkedin-voyager/lib/errs"
)

// Diagnostic records an optional value that was present upstream but could
// not be used. The enclosing entity was still built without it.
type Diagnostic struct {
	Fragment string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Entity   string `json:"entity" yaml:"entity"`
	Field    string `json:"field" yaml:"field"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	Raw      string `json:"raw" yaml:"raw"`
	Code     string `json:"code" yaml:"code"`
	Reason   string `json:"reason" yaml:"reason"`
}

type Diagnostics []Diagnostic

func (ds Diagnostics) Find(field string) (Diagnostic, bool) {
	for _, d := range ds {
		if d.Field == field {
			return d, true
		}
	}
	return Diagnostic{}, false
}

func (ds Diagnostics) Has(field, code string) bool {
	for _, d := range ds {
		if d.Field == field && d.Code == code {
			return true
		}
	}
	return false
}

// InFragment stamps every diagnostic with the fragment it came from.
func (ds Diagnostics) InFragment(fragment string) Diagnostics {
	out := make(Diagnostics, len(ds))
	for i, d := range ds {
		d.Fragment = fragment
		out[i] = d
	}
	return out
}

func newDiagnostic(entity, field, key string, raw json.RawMessage, err error) Diagnostic {
	d := Diagnostic{
		Entity: entity,
		Field:  field,
		Key:    key,
		Raw:    rawText(raw),
		Reason: err.Error(),
	}
	var perr *errs.ParseError
	if errors.As(err, &perr) {
		d.Code = string(perr.Code)
		if perr.Reason != "" {
			d.Reason = perr.Reason
		}
		return d
	}
	var serr *errs.SchemaError
	if errors.As(err, &serr) {
		d.Code = string(serr.Code)
	}
	return d
}

// rawText unquotes json strings so diagnostics show what upstream sent.
func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			return s
		}
	}
	return string(trimmed)
}

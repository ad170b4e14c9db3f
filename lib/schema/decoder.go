package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/partialdate"
	"linkedin-voyager/lib/scalar"
	"linkedin-voyager/lib/urn"
)

type Options struct {
	// PhoneRegion is used for phone numbers written without a country code.
	PhoneRegion string
}

func (o Options) phoneRegion() string {
	if o.PhoneRegion == "" {
		return scalar.DefaultRegion
	}
	return o.PhoneRegion
}

type decoder struct {
	opts  Options
	diags Diagnostics
}

func newDecoder(opts Options) *decoder {
	return &decoder{opts: opts}
}

func (d *decoder) drop(entity, field, key string, raw json.RawMessage, err error) {
	d.diags = append(d.diags, newDiagnostic(entity, field, key, raw, err))
}

// object is one raw json object being read as entity.
type object struct {
	d      *decoder
	entity string
	fields map[string]json.RawMessage
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func (d *decoder) parseObject(entity string, raw json.RawMessage) (object, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(raw, &fields)
	if err != nil || fields == nil {
		return object{}, &errs.SchemaError{
			Code:   errs.MalformedFragment,
			Entity: entity,
			Raw:    string(raw),
			Err:    fmt.Errorf("expected a json object: %w", errOrNull(err)),
		}
	}
	return object{d: d, entity: entity, fields: fields}, nil
}

func errOrNull(err error) error {
	if err == nil {
		return fmt.Errorf("got null")
	}
	return err
}

var envelopeKeys = map[string]bool{"data": true, "included": true, "meta": true}

// parseFragment reads a whole endpoint payload, unwrapping a {"data": ...}
// envelope when nothing but envelope keys is present.
func (d *decoder) parseFragment(entity string, raw json.RawMessage) (object, error) {
	o, err := d.parseObject(entity, raw)
	if err != nil {
		return object{}, err
	}
	data, ok := o.fields["data"]
	if !ok || isNull(data) || bytes.TrimSpace(data)[0] != '{' {
		return o, nil
	}
	for key := range o.fields {
		if !envelopeKeys[key] {
			return o, nil
		}
	}
	return d.parseObject(entity, data)
}

func (o object) as(entity string) object {
	return object{d: o.d, entity: entity, fields: o.fields}
}

func (o object) lookup(field string) (string, json.RawMessage, bool) {
	for _, key := range aliasesFor(o.entity, field) {
		raw, ok := o.fields[key]
		if ok && !isNull(raw) {
			return key, raw, true
		}
	}
	return "", nil, false
}

func (o object) has(field string) bool {
	_, _, ok := o.lookup(field)
	return ok
}

func (o object) raw(key string) (json.RawMessage, bool) {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (o object) missing(field string) error {
	return &errs.SchemaError{Code: errs.MissingField, Entity: o.entity, Field: field}
}

func typeError(expected string, raw json.RawMessage) *errs.ParseError {
	return &errs.ParseError{
		Code:     errs.InvalidFormat,
		Expected: expected,
		Raw:      rawText(raw),
		Reason:   "expected a json " + expected,
	}
}

func (o object) str(field string) string {
	key, raw, ok := o.lookup(field)
	if !ok {
		return ""
	}
	s, err := decodeString(raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return ""
	}
	return s
}

func (o object) requiredStr(field string) (string, error) {
	_, raw, ok := o.lookup(field)
	if !ok {
		return "", o.missing(field)
	}
	s, err := decodeString(raw)
	if err != nil {
		return "", err.At(o.entity, field)
	}
	return s, nil
}

// decodeString also accepts upstream's localized text objects {"text": "..."}.
func decodeString(raw json.RawMessage) (string, *errs.ParseError) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var text struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(raw, &text); err == nil && text.Text != nil {
		return *text.Text, nil
	}
	return "", typeError("string", raw)
}

func (o object) boolean(field string) bool {
	key, raw, ok := o.lookup(field)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		o.d.drop(o.entity, field, key, raw, typeError("boolean", raw))
		return false
	}
	return b
}

func (o object) integer(field string) int64 {
	key, raw, ok := o.lookup(field)
	if !ok {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		o.d.drop(o.entity, field, key, raw, typeError("integer", raw))
		return 0
	}
	return n
}

func (o object) strs(field string) []string {
	key, raw, ok := o.lookup(field)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		o.d.drop(o.entity, field, key, raw, typeError("string array", raw))
		return nil
	}
	return out
}

func (o object) identifier(field string, family urn.Family) urn.Identifier {
	key, raw, ok := o.lookup(field)
	if !ok {
		return urn.Identifier{}
	}
	id, err := parseIdentifier(raw, family)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return urn.Identifier{}
	}
	return id
}

func (o object) requiredIdentifier(field string, family urn.Family) (urn.Identifier, error) {
	_, raw, ok := o.lookup(field)
	if !ok {
		return urn.Identifier{}, o.missing(field)
	}
	id, err := parseIdentifier(raw, family)
	if err != nil {
		return urn.Identifier{}, err.At(o.entity, field)
	}
	return id, nil
}

func parseIdentifier(raw json.RawMessage, family urn.Family) (urn.Identifier, *errs.ParseError) {
	s, perr := decodeString(raw)
	if perr != nil {
		return urn.Identifier{}, perr
	}
	id, err := urn.ParseKind(s, family)
	if err != nil {
		return urn.Identifier{}, err.(*errs.ParseError)
	}
	// Payloads always reference entities by urn.
	if id.IsHandle() {
		return urn.Identifier{}, &errs.ParseError{
			Code:     errs.KindMismatch,
			Raw:      s,
			Expected: family.Name,
			Actual:   "public handle",
		}
	}
	return id, nil
}

func (o object) url(field string) scalar.URL {
	key, raw, ok := o.lookup(field)
	if !ok {
		return scalar.URL{}
	}
	s, perr := decodeString(raw)
	if perr != nil {
		o.d.drop(o.entity, field, key, raw, perr)
		return scalar.URL{}
	}
	u, err := scalar.ParseURL(s)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return scalar.URL{}
	}
	return u
}

func (o object) child(field string) (object, bool) {
	key, raw, ok := o.lookup(field)
	if !ok {
		return object{}, false
	}
	c, err := o.d.parseObject(o.entity, raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, typeError("object", raw))
		return object{}, false
	}
	return c, true
}

func parseDate(raw json.RawMessage) (partialdate.Date, error) {
	var w struct {
		Year  *int `json:"year"`
		Month *int `json:"month"`
		Day   *int `json:"day"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return partialdate.Date{}, typeError("date object", raw)
	}
	if w.Year == nil {
		return partialdate.Date{}, &errs.ParseError{
			Code:   errs.TemporalRange,
			Field:  "year",
			Raw:    rawText(raw),
			Reason: "year is required",
		}
	}
	return partialdate.New(*w.Year, w.Month, w.Day)
}

func (o object) date(field string) partialdate.Date {
	key, raw, ok := o.lookup(field)
	if !ok {
		return partialdate.Date{}
	}
	d, err := parseDate(raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return partialdate.Date{}
	}
	return d
}

// period reads a time period. A period that cannot be read at all is dropped
// (nil, unknown). A period whose end is before its start is kept and flagged.
func (o object) period(field string) *partialdate.TimePeriod {
	key, raw, ok := o.lookup(field)
	if !ok {
		return nil
	}
	c, err := o.d.parseObject(o.entity, raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, typeError("object", raw))
		return nil
	}

	_, startRaw, ok := c.lookup("startDate")
	if !ok {
		o.d.drop(o.entity, field, key, raw, &errs.ParseError{
			Code:   errs.TemporalRange,
			Reason: "start date is required",
		})
		return nil
	}
	start, err := parseDate(startRaw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return nil
	}

	var end *partialdate.Date
	if _, endRaw, ok := c.lookup("endDate"); ok {
		parsed, err := parseDate(endRaw)
		if err != nil {
			o.d.drop(o.entity, field, key, raw, err)
			return nil
		}
		end = &parsed
	}

	p, err := partialdate.NewTimePeriod(start, end)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return nil
	}
	if p.Inverted() {
		o.d.drop(o.entity, field, key, raw, &errs.ParseError{
			Code:   errs.TemporalRange,
			Reason: "end date is before start date, kept as given",
		})
	}
	return &p
}

// elements reads a section that is either a bare array or a view wrapper
// {"elements": [...], "paging": {...}}.
func (o object) elements(field string) []json.RawMessage {
	key, raw, ok := o.lookup(field)
	if !ok {
		return nil
	}
	items, err := elementsOf(raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return nil
	}
	return items
}

func elementsOf(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var view struct {
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(raw, &view); err == nil && view.Elements != nil {
		return view.Elements, nil
	}
	return nil, typeError("array or view", raw)
}

// decodeAll decodes each element of a section. The first fatal error aborts
// the whole section.
func decodeAll[T any](items []json.RawMessage, decode func(json.RawMessage) (T, error)) ([]T, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := decode(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// anyIdentifier reads an identifier whose kind is not checked.
func (o object) anyIdentifier(field string) urn.Identifier {
	key, raw, ok := o.lookup(field)
	if !ok {
		return urn.Identifier{}
	}
	s, perr := decodeString(raw)
	if perr != nil {
		o.d.drop(o.entity, field, key, raw, perr)
		return urn.Identifier{}
	}
	id, err := urn.Parse(s)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return urn.Identifier{}
	}
	return id
}

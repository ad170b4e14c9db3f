// Package urn models the two ways upstream refers to an entity: a fully
// qualified reference such as "urn:li:fsd_profile:ACoAAB" and a bare public
// handle such as "ada-lovelace".
package urn

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"regexp"
	"strings"
)

var (
	referencePattern = regexp.MustCompile(`^urn:([A-Za-z0-9_]+):([A-Za-z0-9_]+):(\S+)$`)
	handlePattern    = regexp.MustCompile(`^[\p{L}\p{N}_][\p{L}\p{N}_-]{0,99}$`)
)

type Kind string

// Identifier is immutable and comparable with ==. Two identifiers are equal
// iff they are the same variant with the same content.
type Identifier struct {
	raw       string
	namespace string
	kind      Kind
	id        string
	handle    bool
}

// Parse accepts a fully qualified reference or a public handle. The original
// text is kept so that String returns it byte for byte.
func Parse(raw string) (Identifier, error) {
	if m := referencePattern.FindStringSubmatch(raw); m != nil {
		return Identifier{
			raw:       raw,
			namespace: m[1],
			kind:      Kind(m[2]),
			id:        m[3],
		}, nil
	}
	if handlePattern.MatchString(raw) {
		return Identifier{raw: raw, handle: true}, nil
	}
	return Identifier{}, &errs.ParseError{
		Code: errs.UnrecognizedIdentifierFormat,
		Raw:  raw,
	}
}

// ParseKind is Parse plus a check that a reference belongs to family. Handles
// carry no kind and always pass.
func ParseKind(raw string, family Family) (Identifier, error) {
	id, err := Parse(raw)
	if err != nil {
		return Identifier{}, err
	}
	if err := id.Expect(family); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// MustParse is for tests and constants.
func MustParse(raw string) Identifier {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// Expect fails with KindMismatch when the identifier is a reference outside of
// family.
func (i Identifier) Expect(family Family) error {
	if i.handle || family.Has(i.kind) {
		return nil
	}
	return &errs.ParseError{
		Code:     errs.KindMismatch,
		Raw:      i.raw,
		Expected: family.Name,
		Actual:   string(i.kind),
	}
}

func (i Identifier) String() string {
	return i.raw
}

func (i Identifier) IsZero() bool {
	return i.raw == ""
}

func (i Identifier) IsHandle() bool {
	return i.handle
}

func (i Identifier) IsReference() bool {
	return !i.handle && i.raw != ""
}

// Handle is the handle text, empty for references.
func (i Identifier) Handle() string {
	if !i.handle {
		return ""
	}
	return i.raw
}

func (i Identifier) Namespace() string {
	return i.namespace
}

func (i Identifier) Kind() Kind {
	return i.kind
}

// ID is the opaque id of a reference, empty for handles.
func (i Identifier) ID() string {
	return i.id
}

// PathKey is what upstream accepts in a path segment for this identifier: the
// handle itself or the opaque id of a reference.
func (i Identifier) PathKey() string {
	if i.handle {
		return i.raw
	}
	return i.id
}

// Tuple splits a composite id like "(ACoAAB,1234)" into its top level parts.
// Ids that are not tuples come back as a single element.
func (i Identifier) Tuple() []string {
	id := i.id
	if len(id) < 2 || id[0] != '(' || id[len(id)-1] != ')' {
		if id == "" {
			return nil
		}
		return []string{id}
	}
	inner := id[1 : len(id)-1]

	var parts []string
	depth := 0
	start := 0
	for idx, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, inner[start:idx])
				start = idx + 1
			}
		}
	}
	return append(parts, inner[start:])
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	if i.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(i.raw)
}

func (i *Identifier) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Identifier{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("identifier must be a json string: %w", err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.raw), nil
}

func (i Identifier) GoString() string {
	if i.handle {
		return fmt.Sprintf("urn.Handle(%q)", i.raw)
	}
	return fmt.Sprintf("urn.Reference(%q)", i.raw)
}

// kindList is used in diagnostics only.
func kindList(kinds []Kind) string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return strings.Join(out, "|")
}

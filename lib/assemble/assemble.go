// Package assemble merges the raw fragments fetched for one profile into a
// single schema.Profile.
package assemble

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"slices"
)

// Fragment names, in the order they are decoded and reported.
const (
	ProfileView = "profileView"
	ContactInfo = "contactInfo"
	NetworkInfo = "networkInfo"
)

// Fragments holds the raw payloads fetched for a profile. A nil fragment was
// not fetched; an empty object was fetched and had nothing in it.
type Fragments struct {
	ProfileView json.RawMessage
	ContactInfo json.RawMessage
	NetworkInfo json.RawMessage
}

type contribution struct {
	fragment string
	schema.Contribution
}

// Builder accumulates contributions from several fragments and checks once,
// at Build, that no canonical field is set by more than one of them.
type Builder struct {
	contributions []contribution
	diags         schema.Diagnostics
}

func (b *Builder) Add(fragment string, cs []schema.Contribution, diags schema.Diagnostics) {
	for _, c := range cs {
		b.contributions = append(b.contributions, contribution{fragment: fragment, Contribution: c})
	}
	b.diags = append(b.diags, diags.InFragment(fragment)...)
}

func (b *Builder) Build() (schema.Profile, schema.Diagnostics, error) {
	owner := make(map[string]string, len(b.contributions))
	for _, c := range b.contributions {
		prev, ok := owner[c.Field]
		if !ok {
			owner[c.Field] = c.fragment
			continue
		}
		fragments := []string{prev, c.fragment}
		if prev == c.fragment {
			fragments = fragments[:1]
		}
		return schema.Profile{}, nil, &errs.SchemaError{
			Code:      errs.ConflictingField,
			Entity:    "Profile",
			Field:     c.Field,
			Fragments: fragments,
		}
	}

	var p schema.Profile
	for _, c := range b.contributions {
		c.Apply(&p)
	}
	return p, slices.Clone(b.diags), nil
}

type decodeFunc func(json.RawMessage, schema.Options) ([]schema.Contribution, schema.Diagnostics, error)

// Assemble decodes every fetched fragment and merges them. identity is what
// the caller asked for, either a profile reference or a public handle.
func Assemble(identity urn.Identifier, f Fragments, opts schema.Options) (schema.Profile, schema.Diagnostics, error) {
	if identity.IsZero() {
		return schema.Profile{}, nil, &errs.ParseError{
			Code:   errs.UnrecognizedIdentifierFormat,
			Reason: "empty identity",
		}
	}
	if err := identity.Expect(urn.Profile); err != nil {
		return schema.Profile{}, nil, err
	}
	if f.ProfileView == nil {
		return schema.Profile{}, nil, &errs.SchemaError{
			Code:   errs.MissingField,
			Entity: "Profile",
			Err:    fmt.Errorf("%s fragment is required", ProfileView),
		}
	}

	var b Builder
	for _, part := range []struct {
		name   string
		raw    json.RawMessage
		decode decodeFunc
	}{
		{ProfileView, f.ProfileView, schema.DecodeProfileView},
		{ContactInfo, f.ContactInfo, schema.DecodeContactFragment},
		{NetworkInfo, f.NetworkInfo, schema.DecodeNetworkFragment},
	} {
		if part.raw == nil {
			continue
		}
		cs, diags, err := part.decode(part.raw, opts)
		if err != nil {
			return schema.Profile{}, nil, fmt.Errorf("decode %s: %w", part.name, err)
		}
		b.Add(part.name, cs, diags)
	}

	p, diags, err := b.Build()
	if err != nil {
		return schema.Profile{}, nil, err
	}

	switch {
	case identity.IsHandle() && p.PublicIdentifier == "":
		p.PublicIdentifier = identity.Handle()
	case identity.IsReference() && p.EntityUrn.IsZero():
		p.EntityUrn = identity
	}
	return p, diags, nil
}

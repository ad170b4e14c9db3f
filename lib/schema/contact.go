package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/scalar"
	"strings"
)

const (
	standardWebsiteType = "com.linkedin.voyager.identity.profile.StandardWebsite"
	customWebsiteType   = "com.linkedin.voyager.identity.profile.CustomWebsite"
)

// contactInfo decodes the contact info fragment. Elements whose identifying
// value fails validation are dropped with a diagnostic.
func (d *decoder) contactInfo(o object) (*ContactInfo, error) {
	ci := newContactInfo()

	if key, raw, ok := o.lookup("emailAddress"); ok {
		for _, s := range stringOrList(o, "emailAddress", key, raw) {
			e, err := scalar.ParseEmail(s)
			if err != nil {
				d.drop(o.entity, "emailAddress", key, raw, err)
				continue
			}
			ci.Emails = append(ci.Emails, e)
		}
	}

	for _, raw := range o.elements("phoneNumbers") {
		p, err := d.parseObject("PhoneNumber", raw)
		if err != nil {
			d.drop(o.entity, "phoneNumbers", "", raw, err)
			continue
		}
		number, err := p.requiredStr("number")
		if err != nil {
			d.drop(o.entity, "phoneNumbers", "", raw, err)
			continue
		}
		phone, err := scalar.ParsePhone(number, d.opts.phoneRegion())
		if err != nil {
			d.drop(o.entity, "phoneNumbers", "number", raw, err)
			continue
		}
		ci.Phones = append(ci.Phones, PhoneNumber{Number: phone, Type: p.str("type")})
	}

	for _, raw := range o.elements("websites") {
		w, ok, err := d.website(o, raw)
		if err != nil {
			return nil, err
		}
		if ok {
			ci.Websites = append(ci.Websites, w)
		}
	}

	for _, raw := range o.elements("twitterHandles") {
		var handle string
		if json.Unmarshal(raw, &handle) != nil {
			t, err := d.parseObject("TwitterHandle", raw)
			if err != nil {
				d.drop(o.entity, "twitterHandles", "", raw, err)
				continue
			}
			handle = t.str("name")
		}
		if handle = strings.TrimPrefix(strings.TrimSpace(handle), "@"); handle != "" {
			ci.TwitterHandles = append(ci.TwitterHandles, handle)
		}
	}

	for _, raw := range o.elements("ims") {
		im, err := d.parseObject("InstantMessenger", raw)
		if err != nil {
			d.drop(o.entity, "ims", "", raw, err)
			continue
		}
		ci.InstantMessengers = append(ci.InstantMessengers, InstantMessenger{
			Provider: im.str("provider"),
			ID:       im.str("id"),
		})
	}

	ci.BirthDate = o.date("birthDate")
	ci.Address = o.address("address")
	return ci, nil
}

func stringOrList(o object, field, key string, raw json.RawMessage) []string {
	var one string
	if json.Unmarshal(raw, &one) == nil {
		return []string{one}
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		return many
	}
	o.d.drop(o.entity, field, key, raw, typeError("string or string array", raw))
	return nil
}

// website reads one website. The kind comes from the single key of its
// "type" union; a decoded Website carries category or label directly.
func (d *decoder) website(parent object, raw json.RawMessage) (Website, bool, error) {
	o, err := d.parseObject("Website", raw)
	if err != nil {
		d.drop(parent.entity, "websites", "", raw, err)
		return Website{}, false, nil
	}
	s, err := o.requiredStr("url")
	if err != nil {
		d.drop(parent.entity, "websites", "url", raw, err)
		return Website{}, false, nil
	}
	u, err := scalar.ParseURL(s)
	if err != nil {
		d.drop(parent.entity, "websites", "url", raw, err)
		return Website{}, false, nil
	}

	w := Website{URL: u, Category: o.str("category"), Label: o.str("label")}
	typ, ok := o.child("type")
	if !ok {
		return w, true, nil
	}
	if len(typ.fields) != 1 {
		return Website{}, false, unrecognized(o, "type", o.fields["type"])
	}
	for key, member := range typ.fields {
		m, err := d.parseObject("Website", member)
		if err != nil {
			return Website{}, false, err
		}
		switch key {
		case standardWebsiteType, "StandardWebsite", "standardWebsite":
			w.Category = m.str("category")
		case customWebsiteType, "CustomWebsite", "customWebsite":
			w.Label = m.str("label")
		default:
			return Website{}, false, unrecognized(o, "type", o.fields["type"])
		}
	}
	return w, true, nil
}

// contactFragment returns the canonical fields the contact info endpoint
// contributes to a profile. Its birth date and address stay on ContactInfo.
func (d *decoder) contactFragment(o object) ([]Contribution, error) {
	ci, err := d.contactInfo(o)
	if err != nil {
		return nil, err
	}
	return []Contribution{{Field: "contactInfo", Apply: func(p *Profile) { p.ContactInfo = ci }}}, nil
}

func (o object) address(field string) *Address {
	s := strings.TrimSpace(o.str(field))
	if s == "" {
		return nil
	}
	addr := ParseAddress(s)
	return &addr
}

func DecodeContactInfo(raw json.RawMessage, opts Options) (*ContactInfo, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("ContactInfo", raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus("contactInfo", o); err != nil {
		return nil, nil, err
	}
	ci, err := d.contactInfo(o)
	if err != nil {
		return nil, nil, err
	}
	return ci, d.diags, nil
}

// DecodeContactFragment is DecodeContactInfo for profile assembly.
func DecodeContactFragment(raw json.RawMessage, opts Options) ([]Contribution, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("ContactInfo", raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus("contactInfo", o); err != nil {
		return nil, nil, err
	}
	cs, err := d.contactFragment(o)
	if err != nil {
		return nil, nil, err
	}
	return cs, d.diags, nil
}

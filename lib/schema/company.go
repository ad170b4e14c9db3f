package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/urn"
)

// Image containers come wrapped under the full record name, under a short
// name, or as the vector image itself.
var imageKeys = []string{
	"com.linkedin.common.VectorImage", "vectorImage", "displayImageReference", "image",
}

func (o object) image(field string) *VectorImage {
	c, ok := o.child(field)
	if !ok {
		return nil
	}
	for i := 0; i < len(imageKeys); i++ {
		next, found := c.unwrapImage()
		if !found {
			break
		}
		c = next
	}
	if _, ok := c.raw("rootUrl"); !ok {
		if _, ok := c.raw("artifacts"); !ok {
			c.d.drop(o.entity, field, "", nil, &errs.ParseError{
				Code:     errs.InvalidFormat,
				Expected: "vector image",
				Reason:   "no rootUrl or artifacts in image container",
			})
			return nil
		}
	}

	img := &VectorImage{RootURL: c.str("rootUrl")}
	for _, raw := range c.elements("artifacts") {
		a, err := c.d.parseObject("Artifact", raw)
		if err != nil {
			c.d.drop(o.entity, field, "artifacts", raw, err)
			continue
		}
		img.Artifacts = append(img.Artifacts, Artifact{
			Width:                         a.integer("width"),
			Height:                        a.integer("height"),
			FileIdentifyingURLPathSegment: a.str("fileIdentifyingUrlPathSegment"),
		})
	}
	return img
}

func (o object) unwrapImage() (object, bool) {
	for _, key := range imageKeys {
		raw, ok := o.raw(key)
		if !ok {
			continue
		}
		c, err := o.d.parseObject(o.entity, raw)
		if err != nil {
			return object{}, false
		}
		return c, true
	}
	return object{}, false
}

func (d *decoder) company(raw json.RawMessage) (Company, error) {
	o, err := d.parseObject("Company", raw)
	if err != nil {
		return Company{}, err
	}

	// Position snapshots nest the mini company one level down and keep the
	// range and industries on the outer object.
	inner := o
	if mini, ok := o.child("miniCompany"); ok {
		inner = mini.as("Company")
	}

	c := Company{
		EntityUrn:     inner.identifier("entityUrn", urn.Company),
		DashEntityUrn: inner.identifier("dashEntityUrn", urn.Company),
		ObjectUrn:     inner.identifier("objectUrn", urn.Company),
		Name:          inner.str("name"),
		UniversalName: inner.str("universalName"),
		TrackingID:    inner.str("trackingId"),
		Active:        inner.boolean("active"),
		Showcase:      inner.boolean("showcase"),
		Logo:          inner.image("logo"),
		Description:   inner.str("description"),
		Tagline:       inner.str("tagline"),
		Website:       inner.url("website"),
		StaffCount:    inner.integer("staffCount"),
		FoundedOn:     inner.date("foundedOn"),
	}

	for _, src := range []object{o, inner} {
		if r, ok := src.child("employeeCountRange"); ok && c.EmployeeCountRange == nil {
			c.EmployeeCountRange = &CountRange{Start: r.integer("start"), End: r.integer("end")}
		}
		if c.Industries == nil {
			c.Industries = src.strs("industries")
		}
	}
	return c, nil
}

func (d *decoder) school(raw json.RawMessage) (School, error) {
	o, err := d.parseObject("School", raw)
	if err != nil {
		return School{}, err
	}
	if mini, ok := o.child("miniSchool"); ok {
		o = mini.as("School")
	}
	return School{
		EntityUrn:     o.identifier("entityUrn", urn.School),
		DashEntityUrn: o.identifier("dashEntityUrn", urn.School),
		ObjectUrn:     o.identifier("objectUrn", urn.School),
		Name:          o.str("name"),
		TrackingID:    o.str("trackingId"),
		Active:        o.boolean("active"),
		Logo:          o.image("logo"),
		Description:   o.str("description"),
		Website:       o.url("url"),
	}, nil
}

// companySnapshot decodes an embedded company, dropping it with a diagnostic when it
// is not an object at all.
func (o object) companySnapshot(field string) *Company {
	key, raw, ok := o.lookup(field)
	if !ok {
		return nil
	}
	c, err := o.d.company(raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return nil
	}
	return &c
}

func (o object) schoolSnapshot(field string) *School {
	key, raw, ok := o.lookup(field)
	if !ok {
		return nil
	}
	s, err := o.d.school(raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return nil
	}
	return &s
}

// upstreamStatus turns an in-body error such as {"status": 404, "message":
// "..."} into a TransportError.
func upstreamStatus(endpoint string, o object) error {
	raw, ok := o.raw("status")
	if !ok {
		return nil
	}
	var status int
	if json.Unmarshal(raw, &status) != nil || status == 200 {
		return nil
	}
	return &errs.TransportError{Endpoint: endpoint, Status: status, Message: o.str("message")}
}

// UpstreamStatus reports the error status an endpoint embedded in an
// otherwise successful response body, or nil when there is none. Bodies that
// are not json objects carry no status.
func UpstreamStatus(endpoint string, raw json.RawMessage) error {
	o, err := newDecoder(Options{}).parseFragment(endpoint, raw)
	if err != nil {
		return nil
	}
	return upstreamStatus(endpoint, o)
}

// firstElement reads the single entity out of a universal name lookup, or
// the payload itself when it was fetched by reference.
func firstElement(o object) (json.RawMessage, error) {
	raw, ok := o.raw("elements")
	if !ok {
		data, err := json.Marshal(o.fields)
		return data, err
	}
	items, err := elementsOf(raw)
	if err != nil {
		return nil, &errs.SchemaError{Code: errs.MalformedFragment, Entity: o.entity, Field: "elements", Err: err}
	}
	if len(items) == 0 {
		return nil, &errs.SchemaError{Code: errs.MissingField, Entity: o.entity, Field: "elements"}
	}
	return items[0], nil
}

func DecodeCompany(raw json.RawMessage, opts Options) (Company, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("Company", raw)
	if err != nil {
		return Company{}, nil, err
	}
	if err := upstreamStatus("company", o); err != nil {
		return Company{}, nil, err
	}
	item, err := firstElement(o)
	if err != nil {
		return Company{}, nil, err
	}
	c, err := d.company(item)
	if err != nil {
		return Company{}, nil, err
	}
	return c, d.diags, nil
}

func DecodeSchool(raw json.RawMessage, opts Options) (School, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("School", raw)
	if err != nil {
		return School{}, nil, err
	}
	if err := upstreamStatus("school", o); err != nil {
		return School{}, nil, err
	}
	item, err := firstElement(o)
	if err != nil {
		return School{}, nil, err
	}
	s, err := d.school(item)
	if err != nil {
		return School{}, nil, err
	}
	return s, d.diags, nil
}

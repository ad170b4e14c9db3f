package schema

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/urn"
)

const (
	positionType          = "com.linkedin.voyager.identity.profile.Position"
	positionGroupType     = "com.linkedin.voyager.identity.profile.PositionGroup"
	dashPositionType      = "com.linkedin.voyager.dash.identity.profile.Position"
	dashPositionGroupType = "com.linkedin.voyager.dash.identity.profile.PositionGroup"
)

func (d *decoder) experience(raw json.RawMessage) (Experience, error) {
	o, err := d.parseObject("Experience", raw)
	if err != nil {
		return Experience{}, err
	}

	if typeRaw, ok := o.raw("$type"); ok {
		var typ string
		if err := json.Unmarshal(typeRaw, &typ); err != nil {
			return Experience{}, unrecognized(o, "$type", typeRaw)
		}
		switch typ {
		case positionType, dashPositionType:
			return d.asPosition(o)
		case positionGroupType, dashPositionGroupType:
			return d.asGroup(o)
		}
		return Experience{}, unrecognized(o, "$type", typeRaw)
	}

	// Already decoded entries are written as {"position": ...} or
	// {"group": ...}.
	posRaw, hasPos := o.raw("position")
	groupRaw, hasGroup := o.raw("group")
	if hasPos != hasGroup {
		if hasPos {
			inner, err := d.parseObject("Position", posRaw)
			if err != nil {
				return Experience{}, err
			}
			return d.asPosition(inner)
		}
		inner, err := d.parseObject("PositionGroup", groupRaw)
		if err != nil {
			return Experience{}, err
		}
		return d.asGroup(inner)
	}

	looksGroup := o.as("PositionGroup").has("positions")
	looksPosition := o.has("title") || o.has("companyName")
	switch {
	case looksGroup && !looksPosition:
		return d.asGroup(o)
	case looksPosition && !looksGroup:
		return d.asPosition(o)
	}
	return Experience{}, &errs.SchemaError{
		Code:   errs.UnrecognizedDiscriminant,
		Entity: "Experience",
		Raw:    string(raw),
		Err:    fmt.Errorf("entry is neither a position nor a position group"),
	}
}

func unrecognized(o object, field string, raw json.RawMessage) error {
	return &errs.SchemaError{
		Code:   errs.UnrecognizedDiscriminant,
		Entity: o.entity,
		Field:  field,
		Raw:    rawText(raw),
	}
}

func (d *decoder) asPosition(o object) (Experience, error) {
	p := d.position(o.as("Position"))
	return Experience{Position: &p}, nil
}

func (d *decoder) asGroup(o object) (Experience, error) {
	g, err := d.positionGroup(o.as("PositionGroup"))
	if err != nil {
		return Experience{}, err
	}
	return Experience{Group: &g}, nil
}

func (d *decoder) position(o object) Position {
	p := Position{
		EntityUrn:       o.identifier("entityUrn", urn.Position),
		Title:           o.str("title"),
		CompanyName:     o.str("companyName"),
		CompanyUrn:      o.identifier("companyUrn", urn.Company),
		Company:         o.companySnapshot("company"),
		Description:     o.str("description"),
		TimePeriod:      o.period("timePeriod"),
		LocationName:    o.str("locationName"),
		GeoLocationName: o.str("geoLocationName"),
		GeoUrn:          o.identifier("geoUrn", urn.Geo),
		Region:          o.identifier("region", urn.Geo),
	}
	if p.CompanyUrn.IsZero() && p.Company != nil {
		p.CompanyUrn = p.Company.EntityUrn
	}
	if p.CompanyName == "" && p.Company != nil {
		p.CompanyName = p.Company.Name
	}
	return p
}

func (d *decoder) positionGroup(o object) (PositionGroup, error) {
	g := PositionGroup{
		EntityUrn:  o.identifier("entityUrn", urn.PositionGroup),
		Name:       o.str("name"),
		CompanyUrn: o.identifier("companyUrn", urn.Company),
		Company:    o.companySnapshot("company"),
		TimePeriod: o.period("timePeriod"),
		Region:     o.identifier("region", urn.Geo),
	}
	if g.Company == nil {
		g.Company = o.companySnapshot("miniCompany")
	}
	if g.CompanyUrn.IsZero() && g.Company != nil {
		g.CompanyUrn = g.Company.EntityUrn
	}

	positions, err := decodeAll(o.elements("positions"), func(raw json.RawMessage) (Position, error) {
		inner, err := d.parseObject("Position", raw)
		if err != nil {
			return Position{}, err
		}
		return d.position(inner), nil
	})
	if err != nil {
		return PositionGroup{}, err
	}
	g.Positions = positions
	if g.Positions == nil {
		g.Positions = []Position{}
	}
	return g, nil
}

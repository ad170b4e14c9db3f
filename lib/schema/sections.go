package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/urn"
)

// section decodes every element of a profile section as entity. A fatal
// error in any element fails the section.
func section[T any](o object, field, entity string, decode func(object) (T, error)) ([]T, error) {
	out, err := decodeAll(o.elements(field), func(raw json.RawMessage) (T, error) {
		item, err := o.d.parseObject(entity, raw)
		if err != nil {
			var zero T
			return zero, err
		}
		return decode(item)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (d *decoder) education(o object) (Education, error) {
	e := Education{
		EntityUrn:       o.identifier("entityUrn", urn.Education),
		SchoolName:      o.str("schoolName"),
		SchoolUrn:       o.identifier("schoolUrn", urn.School),
		School:          o.schoolSnapshot("school"),
		DegreeName:      o.str("degreeName"),
		DegreeUrn:       o.identifier("degreeUrn", urn.Degree),
		FieldOfStudy:    o.str("fieldOfStudy"),
		FieldOfStudyUrn: o.identifier("fieldOfStudyUrn", urn.FieldOfStudy),
		Grade:           o.str("grade"),
		Activities:      o.str("activities"),
		Description:     o.str("description"),
		TimePeriod:      o.period("timePeriod"),
	}
	if e.SchoolUrn.IsZero() && e.School != nil {
		e.SchoolUrn = e.School.EntityUrn
	}
	if e.SchoolName == "" && e.School != nil {
		e.SchoolName = e.School.Name
	}
	return e, nil
}

func (d *decoder) skill(o object) (Skill, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return Skill{}, err
	}
	return Skill{EntityUrn: o.identifier("entityUrn", urn.Skill), Name: name}, nil
}

func (d *decoder) certification(o object) (Certification, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return Certification{}, err
	}
	c := Certification{
		EntityUrn:     o.identifier("entityUrn", urn.Certification),
		Name:          name,
		Authority:     o.str("authority"),
		LicenseNumber: o.str("licenseNumber"),
		URL:           o.url("url"),
		CompanyUrn:    o.identifier("companyUrn", urn.Company),
		Company:       o.companySnapshot("company"),
		TimePeriod:    o.period("timePeriod"),
	}
	if c.CompanyUrn.IsZero() && c.Company != nil {
		c.CompanyUrn = c.Company.EntityUrn
	}
	return c, nil
}

func (d *decoder) course(o object) (Course, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return Course{}, err
	}
	return Course{
		EntityUrn: o.identifier("entityUrn", urn.Course),
		Name:      name,
		Number:    o.str("number"),
	}, nil
}

func (d *decoder) honor(o object) (Honor, error) {
	title, err := o.requiredStr("title")
	if err != nil {
		return Honor{}, err
	}
	return Honor{
		EntityUrn:   o.identifier("entityUrn", urn.Honor),
		Title:       title,
		Issuer:      o.str("issuer"),
		IssueDate:   o.date("issueDate"),
		Description: o.str("description"),
	}, nil
}

func (d *decoder) language(o object) (Language, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return Language{}, err
	}
	l := Language{EntityUrn: o.identifier("entityUrn", urn.Language), Name: name}
	if key, raw, ok := o.lookup("proficiency"); ok {
		switch p := Proficiency(o.str("proficiency")); {
		case p.Valid():
			l.Proficiency = p
		case p != "":
			d.drop(o.entity, "proficiency", key, raw, &errs.ParseError{
				Code:     errs.InvalidFormat,
				Expected: "proficiency",
				Raw:      string(p),
			})
		}
	}
	return l, nil
}

func (d *decoder) testScore(o object) (TestScore, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return TestScore{}, err
	}
	return TestScore{
		EntityUrn:   o.identifier("entityUrn", urn.TestScore),
		Name:        name,
		Score:       o.str("score"),
		Date:        o.date("date"),
		Description: o.str("description"),
	}, nil
}

func (d *decoder) project(o object) (Project, error) {
	title, err := o.requiredStr("title")
	if err != nil {
		return Project{}, err
	}
	return Project{
		EntityUrn:   o.identifier("entityUrn", urn.Project),
		Title:       title,
		Description: o.str("description"),
		URL:         o.url("url"),
		TimePeriod:  o.period("timePeriod"),
	}, nil
}

func (d *decoder) publication(o object) (Publication, error) {
	name, err := o.requiredStr("name")
	if err != nil {
		return Publication{}, err
	}
	return Publication{
		EntityUrn:   o.identifier("entityUrn", urn.Publication),
		Name:        name,
		Publisher:   o.str("publisher"),
		Date:        o.date("date"),
		URL:         o.url("url"),
		Description: o.str("description"),
	}, nil
}

func (d *decoder) volunteerExperience(o object) (VolunteerExperience, error) {
	role, err := o.requiredStr("role")
	if err != nil {
		return VolunteerExperience{}, err
	}
	return VolunteerExperience{
		EntityUrn:   o.identifier("entityUrn", urn.VolunteerExperience),
		Role:        role,
		CompanyName: o.str("companyName"),
		CompanyUrn:  o.identifier("companyUrn", urn.Company),
		Cause:       o.str("cause"),
		Description: o.str("description"),
		TimePeriod:  o.period("timePeriod"),
	}, nil
}

func (d *decoder) volunteerCause(o object) (VolunteerCause, error) {
	name, err := o.requiredStr("causeName")
	if err != nil {
		return VolunteerCause{}, err
	}
	return VolunteerCause{CauseName: name, CauseType: o.str("causeType")}, nil
}

// DecodeSkills reads the standalone skills endpoint.
func DecodeSkills(raw json.RawMessage, opts Options) ([]Skill, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("Skills", raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus("skills", o); err != nil {
		return nil, nil, err
	}
	skills, err := section(o, "elements", "Skill", d.skill)
	if err != nil {
		return nil, nil, err
	}
	return skills, d.diags, nil
}

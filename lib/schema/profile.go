package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/partialdate"
	"linkedin-voyager/lib/scalar"
	"linkedin-voyager/lib/textutil"
	"linkedin-voyager/lib/urn"
)

// CompanyMatchThreshold is the similarity PositionsAt requires between a
// position's company name and the query.
const CompanyMatchThreshold = 0.9

type Profile struct {
	EntityUrn        urn.Identifier   `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	PublicIdentifier string           `json:"publicIdentifier,omitempty" yaml:"public_identifier,omitempty"`
	TrackingID       string           `json:"trackingId,omitempty" yaml:"tracking_id,omitempty"`
	Name             PersonName       `json:"name" yaml:"name"`
	Headline         string           `json:"headline,omitempty" yaml:"headline,omitempty"`
	Summary          string           `json:"summary,omitempty" yaml:"summary,omitempty"`
	Occupation       string           `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	IndustryName     string           `json:"industryName,omitempty" yaml:"industry_name,omitempty"`
	IndustryUrn      urn.Identifier   `json:"industryUrn,omitzero" yaml:"industry_urn,omitempty"`
	LocationName     string           `json:"locationName,omitempty" yaml:"location_name,omitempty"`
	GeoCountryName   string           `json:"geoCountryName,omitempty" yaml:"geo_country_name,omitempty"`
	GeoCountryUrn    urn.Identifier   `json:"geoCountryUrn,omitzero" yaml:"geo_country_urn,omitempty"`
	GeoLocationName  string           `json:"geoLocationName,omitempty" yaml:"geo_location_name,omitempty"`
	GeoLocation      *GeoLocation     `json:"geoLocation,omitempty" yaml:"geo_location,omitempty"`
	Location         *BasicLocation   `json:"location,omitempty" yaml:"location,omitempty"`
	Address          *Address         `json:"address,omitempty" yaml:"address,omitempty"`
	BirthDate        partialdate.Date `json:"birthDate,omitzero" yaml:"birth_date,omitempty"`
	DefaultLocale    scalar.Locale    `json:"defaultLocale,omitzero" yaml:"default_locale,omitempty"`
	SupportedLocales []scalar.Locale  `json:"supportedLocales,omitempty" yaml:"supported_locales,omitempty"`
	Picture          *VectorImage     `json:"picture,omitempty" yaml:"picture,omitempty"`
	Student          bool             `json:"student,omitempty" yaml:"student,omitempty"`
	VersionTag       string           `json:"versionTag,omitempty" yaml:"version_tag,omitempty"`

	Experience          []Experience          `json:"experience" yaml:"experience"`
	Education           []Education           `json:"education" yaml:"education"`
	Skills              []Skill               `json:"skills" yaml:"skills"`
	Certifications      []Certification       `json:"certifications" yaml:"certifications"`
	Courses             []Course              `json:"courses" yaml:"courses"`
	Honors              []Honor               `json:"honors" yaml:"honors"`
	Languages           []Language            `json:"languages" yaml:"languages"`
	TestScores          []TestScore           `json:"testScores" yaml:"test_scores"`
	Projects            []Project             `json:"projects" yaml:"projects"`
	Publications        []Publication         `json:"publications" yaml:"publications"`
	VolunteerExperience []VolunteerExperience `json:"volunteerExperience" yaml:"volunteer_experience"`
	VolunteerCauses     []VolunteerCause      `json:"volunteerCauses" yaml:"volunteer_causes"`

	// ContactInfo is nil when contact info was not fetched.
	ContactInfo *ContactInfo `json:"contactInfo" yaml:"contact_info"`
	// NetworkInfo is nil when network info was not fetched.
	NetworkInfo *NetworkInfo `json:"networkInfo" yaml:"network_info"`
}

func (p Profile) FullName() string {
	return p.Name.Full()
}

// PositionsAt returns every position held at a company whose name is close
// to company, in profile order.
func (p Profile) PositionsAt(company string) []Position {
	var out []Position
	for _, e := range p.Experience {
		groupName := ""
		if e.Group != nil {
			groupName = e.Group.Name
		}
		for _, pos := range e.Positions() {
			names := []string{pos.CompanyName, groupName}
			if pos.Company != nil {
				names = append(names, pos.Company.Name, pos.Company.UniversalName)
			}
			if textutil.MatchName(company, names, CompanyMatchThreshold) {
				out = append(out, pos)
			}
		}
	}
	return out
}

// Contribution sets one canonical profile field. Contributions from
// different fragments are merged by the assemble package.
type Contribution struct {
	Field string
	Apply func(*Profile)
}

type contributions []Contribution

func (cs *contributions) add(field string, apply func(*Profile)) {
	*cs = append(*cs, Contribution{Field: field, Apply: apply})
}

// addDecoded contributes field only when read records no diagnostic. A
// dropped value is absent and never takes part in conflict detection.
func addDecoded[T any](cs *contributions, d *decoder, field string, read func() T, set func(*Profile, T)) {
	n := len(d.diags)
	v := read()
	if len(d.diags) > n {
		return
	}
	cs.add(field, func(p *Profile) { set(p, v) })
}

// profileSource picks the object a profile field is read from: the profile
// itself, or its mini profile when only that carries the field.
type profileSource struct {
	profile object
	mini    object
	hasMini bool
}

func (s profileSource) pick(field string) (object, bool) {
	if s.profile.has(field) {
		return s.profile, true
	}
	if s.hasMini && s.mini.has(field) {
		return s.mini, true
	}
	return object{}, false
}

func (d *decoder) profileView(top object) ([]Contribution, error) {
	src := profileSource{profile: top}
	if p, ok := top.child("profile"); ok {
		src.profile = p.as("Profile")
	}
	if mini, ok := src.profile.child("miniProfile"); ok {
		src.mini, src.hasMini = mini.as("Profile"), true
	}

	var cs contributions

	nameSrc, ok := src.pick("firstName")
	if !ok {
		return nil, src.profile.missing("firstName")
	}
	first, err := nameSrc.requiredStr("firstName")
	if err != nil {
		return nil, err
	}
	name := PersonName{First: first, Last: nameSrc.str("lastName")}
	cs.add("name", func(p *Profile) { p.Name = name })

	if o, ok := src.pick("entityUrn"); ok {
		addDecoded(&cs, d, "entityUrn", func() urn.Identifier { return o.identifier("entityUrn", urn.Profile) },
			func(p *Profile, v urn.Identifier) { p.EntityUrn = v })
	}
	strField := func(field string, set func(*Profile, string)) {
		if o, ok := src.pick(field); ok {
			addDecoded(&cs, d, field, func() string { return o.str(field) }, set)
		}
	}
	strField("publicIdentifier", func(p *Profile, v string) { p.PublicIdentifier = v })
	strField("trackingId", func(p *Profile, v string) { p.TrackingID = v })
	strField("headline", func(p *Profile, v string) { p.Headline = v })
	strField("summary", func(p *Profile, v string) { p.Summary = v })
	strField("occupation", func(p *Profile, v string) { p.Occupation = v })
	strField("industryName", func(p *Profile, v string) { p.IndustryName = v })
	strField("locationName", func(p *Profile, v string) { p.LocationName = v })
	strField("geoCountryName", func(p *Profile, v string) { p.GeoCountryName = v })
	strField("geoLocationName", func(p *Profile, v string) { p.GeoLocationName = v })
	strField("versionTag", func(p *Profile, v string) { p.VersionTag = v })

	idField := func(field string, family urn.Family, set func(*Profile, urn.Identifier)) {
		if o, ok := src.pick(field); ok {
			addDecoded(&cs, d, field, func() urn.Identifier { return o.identifier(field, family) }, set)
		}
	}
	idField("industryUrn", urn.Industry, func(p *Profile, v urn.Identifier) { p.IndustryUrn = v })
	idField("geoCountryUrn", urn.Geo, func(p *Profile, v urn.Identifier) { p.GeoCountryUrn = v })

	pr := src.profile
	if geo, ok := pr.child("geoLocation"); ok {
		v := &GeoLocation{GeoUrn: geo.identifier("geoUrn", urn.Geo), PostalCode: geo.str("postalCode")}
		cs.add("geoLocation", func(p *Profile) { p.GeoLocation = v })
	}
	if loc, ok := pr.child("location"); ok {
		if basic, ok := loc.child("basicLocation"); ok {
			v := &BasicLocation{CountryCode: basic.str("countryCode"), PostalCode: basic.str("postalCode")}
			cs.add("location", func(p *Profile) { p.Location = v })
		}
	}
	if v := pr.address("address"); v != nil {
		cs.add("address", func(p *Profile) { p.Address = v })
	}
	if pr.has("birthDate") {
		addDecoded(&cs, d, "birthDate", func() partialdate.Date { return pr.date("birthDate") },
			func(p *Profile, v partialdate.Date) { p.BirthDate = v })
	}
	if pr.has("student") {
		addDecoded(&cs, d, "student", func() bool { return pr.boolean("student") },
			func(p *Profile, v bool) { p.Student = v })
	}
	if pr.has("defaultLocale") {
		addDecoded(&cs, d, "defaultLocale", func() scalar.Locale { return pr.locale("defaultLocale") },
			func(p *Profile, v scalar.Locale) { p.DefaultLocale = v })
	}
	if pr.has("supportedLocales") {
		if v := pr.locales("supportedLocales"); v != nil {
			cs.add("supportedLocales", func(p *Profile) { p.SupportedLocales = v })
		}
	}
	if o, ok := src.pick("picture"); ok {
		if v := o.image("picture"); v != nil {
			cs.add("picture", func(p *Profile) { p.Picture = v })
		}
	}

	if err := d.profileSections(top, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func addSection[T any](cs *contributions, o object, field, entity string, decode func(object) (T, error), set func(*Profile, []T)) error {
	if !o.has(field) {
		return nil
	}
	v, err := section(o, field, entity, decode)
	if err != nil {
		return err
	}
	cs.add(field, func(p *Profile) { set(p, v) })
	return nil
}

func (d *decoder) profileSections(top object, cs *contributions) error {
	if top.has("experience") {
		v, err := decodeAll(top.elements("experience"), d.experience)
		if err != nil {
			return err
		}
		if v == nil {
			v = []Experience{}
		}
		cs.add("experience", func(p *Profile) { p.Experience = v })
	}

	o := top.as("Profile")
	for _, err := range []error{
		addSection(cs, o, "education", "Education", d.education, func(p *Profile, v []Education) { p.Education = v }),
		addSection(cs, o, "skills", "Skill", d.skill, func(p *Profile, v []Skill) { p.Skills = v }),
		addSection(cs, o, "certifications", "Certification", d.certification, func(p *Profile, v []Certification) { p.Certifications = v }),
		addSection(cs, o, "courses", "Course", d.course, func(p *Profile, v []Course) { p.Courses = v }),
		addSection(cs, o, "honors", "Honor", d.honor, func(p *Profile, v []Honor) { p.Honors = v }),
		addSection(cs, o, "languages", "Language", d.language, func(p *Profile, v []Language) { p.Languages = v }),
		addSection(cs, o, "testScores", "TestScore", d.testScore, func(p *Profile, v []TestScore) { p.TestScores = v }),
		addSection(cs, o, "projects", "Project", d.project, func(p *Profile, v []Project) { p.Projects = v }),
		addSection(cs, o, "publications", "Publication", d.publication, func(p *Profile, v []Publication) { p.Publications = v }),
		addSection(cs, o, "volunteering", "VolunteerExperience", d.volunteerExperience, func(p *Profile, v []VolunteerExperience) { p.VolunteerExperience = v }),
		addSection(cs, o, "volunteerCauses", "VolunteerCause", d.volunteerCause, func(p *Profile, v []VolunteerCause) { p.VolunteerCauses = v }),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// locale reads {"language": "en", "country": "US"} or a plain "en_US".
func (o object) locale(field string) scalar.Locale {
	key, raw, ok := o.lookup(field)
	if !ok {
		return scalar.Locale{}
	}
	l, err := parseLocale(o.d, raw)
	if err != nil {
		o.d.drop(o.entity, field, key, raw, err)
		return scalar.Locale{}
	}
	return l
}

func (o object) locales(field string) []scalar.Locale {
	var out []scalar.Locale
	for _, raw := range o.elements(field) {
		l, err := parseLocale(o.d, raw)
		if err != nil {
			o.d.drop(o.entity, field, "", raw, err)
			continue
		}
		out = append(out, l)
	}
	return out
}

func parseLocale(d *decoder, raw json.RawMessage) (scalar.Locale, error) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return scalar.ParseLocale(s)
	}
	o, err := d.parseObject("Locale", raw)
	if err != nil {
		return scalar.Locale{}, typeError("locale", raw)
	}
	return scalar.NewLocale(o.str("language"), o.str("country"))
}

// DecodeProfileView decodes the profile view fragment into contributions.
// Only fields whose keys are present upstream contribute.
func DecodeProfileView(raw json.RawMessage, opts Options) ([]Contribution, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("Profile", raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus("profileView", o); err != nil {
		return nil, nil, err
	}
	cs, err := d.profileView(o)
	if err != nil {
		return nil, nil, err
	}
	return cs, d.diags, nil
}

package schema

import (
	"encoding/json"
	"errors"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/partialdate"
	"linkedin-voyager/lib/urn"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func applyAll(cs []Contribution) Profile {
	var p Profile
	for _, c := range cs {
		c.Apply(&p)
	}
	return p
}

func decodeProfile(t *testing.T, raw string) (Profile, Diagnostics) {
	t.Helper()
	cs, diags, err := DecodeProfileView(json.RawMessage(raw), Options{})
	require.NoError(t, err)
	return applyAll(cs), diags
}

func fields(cs []Contribution) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Field
	}
	return out
}

func TestDecodeProfileMinimal(t *testing.T) {
	p, diags := decodeProfile(t, `{"firstName":"Ada","lastName":"Lovelace","birthDateOn":{"year":1815,"month":12}}`)
	require.Empty(t, diags)
	require.Equal(t, PersonName{First: "Ada", Last: "Lovelace"}, p.Name)
	require.Equal(t, partialdate.Must(partialdate.YearMonth(1815, 12)), p.BirthDate)
	_, hasDay := p.BirthDate.Day()
	require.False(t, hasDay)
	require.Nil(t, p.ContactInfo)
	require.Nil(t, p.NetworkInfo)
}

func TestDecodeProfileView(t *testing.T) {
	raw, err := os.ReadFile("testdata/profile_view.json")
	require.NoError(t, err)

	cs, diags, err := DecodeProfileView(raw, Options{})
	require.NoError(t, err)
	p := applyAll(cs)

	require.Equal(t, "Ada Lovelace", p.FullName())
	require.Equal(t, urn.MustParse("urn:li:fs_profile:ACoAABhDWHoB"), p.EntityUrn)
	require.Equal(t, "ada-lovelace", p.PublicIdentifier)
	require.Equal(t, "Analyst at Analytical Engines", p.Occupation)
	require.Equal(t, "https://media.licdn.com/dms/image/C4D03AQ/100_100/ada.jpg", p.Picture.URL())
	require.Equal(t, &Address{
		Raw:    "12 St James's Square, London, England",
		Street: "12 St James's Square",
		City:   "London",
		State:  "England",
	}, p.Address)
	require.Equal(t, "en_GB", p.DefaultLocale.String())
	require.Len(t, p.SupportedLocales, 1)
	require.Equal(t, "gb", p.Location.CountryCode)

	require.Len(t, p.Experience, 2)
	group := p.Experience[0].Group
	require.NotNil(t, group)
	require.Nil(t, p.Experience[0].Position)
	require.Equal(t, "Analytical Engines", group.Name)
	require.Equal(t, urn.MustParse("urn:li:fs_miniCompany:1035"), group.CompanyUrn)
	require.Equal(t, "analytical-engines", group.Company.UniversalName)
	require.Len(t, group.Positions, 1)

	analyst := group.Positions[0]
	require.Equal(t, "Analyst", analyst.Title)
	require.True(t, analyst.IsCurrent())
	require.Equal(t, "https://media.licdn.com/logo/100.png", analyst.LogoURL())
	require.Equal(t, &CountRange{Start: 11, End: 50}, analyst.Company.EmployeeCountRange)
	require.Equal(t, []string{"Computer Software"}, analyst.Company.Industries)

	translator := p.Experience[1].Position
	require.NotNil(t, translator)
	require.Equal(t, "Translator", translator.Title)
	require.False(t, translator.IsCurrent())
	end, ok := translator.TimePeriod.End()
	require.True(t, ok)
	require.Equal(t, "1843-09", end.String())

	require.Len(t, p.Education, 1)
	require.Equal(t, []string{"chess", "harp"}, p.Education[0].ActivitiesList())
	require.Len(t, p.Skills, 2)
	require.Equal(t, NativeOrBilingual, p.Languages[0].Proficiency)
	require.Empty(t, p.Languages[1].Proficiency)
	require.Equal(t, "1838", p.Honors[0].IssueDate.String())
	require.True(t, p.Publications[0].URL.IsZero())
	require.NotNil(t, p.Certifications)
	require.Empty(t, p.Certifications)
	require.Nil(t, p.Courses)
	require.Equal(t, "Science and Technology", p.VolunteerCauses[0].CauseName)

	require.Len(t, diags, 3)
	require.True(t, diags.Has("supportedLocales", string(errs.InvalidFormat)))
	require.True(t, diags.Has("proficiency", string(errs.InvalidFormat)))
	require.True(t, diags.Has("url", string(errs.InvalidFormat)))

	require.NotContains(t, fields(cs), "courses")
	require.Contains(t, fields(cs), "certifications")

	require.Len(t, p.PositionsAt("analytical engines inc"), 1)
	require.Len(t, p.PositionsAt("Taylor's Scientific Memoirs"), 1)
	require.Empty(t, p.PositionsAt("Globex"))
}

func TestProfileAliases(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want PersonName
	}{
		{
			name: "localized keys",
			raw:  `{"localizedFirstName":"Ada","localizedLastName":"Lovelace"}`,
			want: PersonName{First: "Ada", Last: "Lovelace"},
		},
		{
			name: "null is absent",
			raw:  `{"firstName":null,"localizedFirstName":"Ada"}`,
			want: PersonName{First: "Ada"},
		},
		{
			name: "first alias wins",
			raw:  `{"firstName":"Ada","localizedFirstName":"Augusta"}`,
			want: PersonName{First: "Ada"},
		},
		{
			name: "data envelope",
			raw:  `{"data":{"firstName":"Ada"},"included":[]}`,
			want: PersonName{First: "Ada"},
		},
		{
			name: "mini profile fallback",
			raw:  `{"profile":{"miniProfile":{"firstName":"Ada","lastName":"King"}}}`,
			want: PersonName{First: "Ada", Last: "King"},
		},
		{
			name: "localized text object",
			raw:  `{"firstName":{"text":"Ada"}}`,
			want: PersonName{First: "Ada"},
		},
	}
	for _, test := range testCases {
		p, _ := decodeProfile(t, test.raw)
		require.Equal(t, test.want, p.Name, test.name)
	}
}

func TestProfileRequiredFields(t *testing.T) {
	_, _, err := DecodeProfileView(json.RawMessage(`{"lastName":"Lovelace"}`), Options{})
	require.True(t, errs.IsSchemaCode(err, errs.MissingField))

	_, _, err = DecodeProfileView(json.RawMessage(`{"firstName":42}`), Options{})
	var perr *errs.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, errs.InvalidFormat, perr.Code)
	require.Equal(t, "firstName", perr.Field)

	_, _, err = DecodeProfileView(json.RawMessage(`{"firstName":"Ada","skills":[{"name":"Go"},{}]}`), Options{})
	var serr *errs.SchemaError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, errs.MissingField, serr.Code)
	require.Equal(t, "Skill", serr.Entity)
	require.Equal(t, "name", serr.Field)

	for _, raw := range []string{`[]`, `null`, `"profile"`, `{`} {
		_, _, err := DecodeProfileView(json.RawMessage(raw), Options{})
		require.True(t, errs.IsSchemaCode(err, errs.MalformedFragment), raw)
	}
}

func TestProfileOptionalFieldDiagnostics(t *testing.T) {
	p, diags := decodeProfile(t, `{
		"firstName": "Ada",
		"industryUrn": "urn:li:company:1035",
		"geoCountryUrn": "not a urn",
		"headline": 12,
		"birthDate": {"month": 12, "day": 10}
	}`)
	require.True(t, p.IndustryUrn.IsZero())
	require.True(t, p.GeoCountryUrn.IsZero())
	require.Empty(t, p.Headline)
	require.True(t, p.BirthDate.IsZero())

	require.Len(t, diags, 4)
	d, ok := diags.Find("industryUrn")
	require.True(t, ok)
	require.Equal(t, string(errs.KindMismatch), d.Code)
	require.Equal(t, "urn:li:company:1035", d.Raw)
	require.True(t, diags.Has("geoCountryUrn", string(errs.UnrecognizedIdentifierFormat)))
	require.True(t, diags.Has("headline", string(errs.InvalidFormat)))
	require.True(t, diags.Has("birthDate", string(errs.TemporalRange)))
}

func TestInvertedPeriodIsKept(t *testing.T) {
	p, diags := decodeProfile(t, `{
		"firstName": "Ada",
		"experience": [{
			"title": "Analyst",
			"timePeriod": {"startDate": {"year": 1850}, "endDate": {"year": 1842}}
		}]
	}`)
	period := p.Experience[0].Position.TimePeriod
	require.NotNil(t, period)
	require.True(t, period.Inverted())
	require.True(t, diags.Has("timePeriod", string(errs.TemporalRange)))
}

func TestUnreadablePeriodIsDropped(t *testing.T) {
	p, diags := decodeProfile(t, `{
		"firstName": "Ada",
		"experience": [{
			"title": "Analyst",
			"timePeriod": {"startDate": {"year": 1842, "month": 13}}
		}]
	}`)
	require.Nil(t, p.Experience[0].Position.TimePeriod)
	require.True(t, diags.Has("timePeriod", string(errs.TemporalRange)))
}

func TestExperienceDiscriminant(t *testing.T) {
	testCases := []struct {
		name  string
		entry string
		group bool
		err   bool
	}{
		{name: "voyager position", entry: `{"$type":"com.linkedin.voyager.identity.profile.Position"}`},
		{name: "dash group", entry: `{"$type":"com.linkedin.voyager.dash.identity.profile.PositionGroup"}`, group: true},
		{name: "sniffed position", entry: `{"companyName":"Acme"}`},
		{name: "sniffed group", entry: `{"name":"Acme","positions":{"elements":[{"title":"Engineer"}]}}`, group: true},
		{name: "wrapped position", entry: `{"position":{"title":"Engineer"}}`},
		{name: "wrapped group", entry: `{"group":{"positions":[]}}`, group: true},
		{name: "unknown type", entry: `{"$type":"com.linkedin.voyager.identity.profile.Skill","title":"x"}`, err: true},
		{name: "both shapes", entry: `{"title":"Engineer","positions":[]}`, err: true},
		{name: "neither shape", entry: `{"description":"?"}`, err: true},
	}
	for _, test := range testCases {
		raw := `{"firstName":"Ada","experience":[` + test.entry + `]}`
		cs, _, err := DecodeProfileView(json.RawMessage(raw), Options{})
		if test.err {
			require.True(t, errs.IsSchemaCode(err, errs.UnrecognizedDiscriminant), test.name)
			continue
		}
		require.NoError(t, err, test.name)
		e := applyAll(cs).Experience[0]
		require.Equal(t, test.group, e.Group != nil, test.name)
		require.Equal(t, !test.group, e.Position != nil, test.name)
	}
}

func TestExperienceSnapshotRoundTrip(t *testing.T) {
	raw, err := os.ReadFile("testdata/profile_view.json")
	require.NoError(t, err)
	cs, _, err := DecodeProfileView(raw, Options{})
	require.NoError(t, err)
	want := applyAll(cs).Experience

	encoded, err := json.Marshal(want)
	require.NoError(t, err)
	again, diags, err := DecodeProfileView(json.RawMessage(`{"firstName":"Ada","experience":`+string(encoded)+`}`), Options{})
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, want, applyAll(again).Experience)
}

func TestSectionShapes(t *testing.T) {
	for _, raw := range []string{
		`{"firstName":"Ada","skills":[{"name":"Go"}]}`,
		`{"firstName":"Ada","skillView":{"elements":[{"name":"Go"}],"paging":{"total":1}}}`,
		`{"firstName":"Ada","profileSkills":{"elements":[{"name":"Go"}]}}`,
	} {
		p, _ := decodeProfile(t, raw)
		require.Equal(t, []Skill{{Name: "Go"}}, p.Skills, raw)
	}

	p, diags := decodeProfile(t, `{"firstName":"Ada","skills":"Go"}`)
	require.Empty(t, p.Skills)
	require.True(t, diags.Has("skills", string(errs.InvalidFormat)))
}

func TestDecodeSkills(t *testing.T) {
	skills, diags, err := DecodeSkills(json.RawMessage(`{
		"elements": [
			{"name": "Mathematics", "entityUrn": "urn:li:fs_skill:(ACoAABhDWHoB,1)"},
			{"name": "Poetry"}
		],
		"paging": {"count": 100, "start": 0}
	}`), Options{})
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, "Mathematics", skills[0].Name)
	require.Equal(t, urn.Kind("fs_skill"), skills[0].EntityUrn.Kind())
	require.Equal(t, "Poetry", skills[1].Name)

	_, _, err = DecodeSkills(json.RawMessage(`{"status":403,"message":"denied"}`), Options{})
	var terr *errs.TransportError
	require.True(t, errors.As(err, &terr))
	require.Equal(t, 403, terr.Status)
}

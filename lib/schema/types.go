package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/partialdate"
	"linkedin-voyager/lib/scalar"
	"linkedin-voyager/lib/urn"
	"strings"
)

type PersonName struct {
	First string `json:"firstName" yaml:"first_name"`
	Last  string `json:"lastName,omitempty" yaml:"last_name,omitempty"`
}

func (n PersonName) Full() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Address is a free text address, split on commas when
// it has enough parts to make sense of.
type Address struct {
	Raw    string `json:"raw" yaml:"raw"`
	Street string `json:"street,omitempty" yaml:"street,omitempty"`
	City   string `json:"city,omitempty" yaml:"city,omitempty"`
	State  string `json:"state,omitempty" yaml:"state,omitempty"`
}

func ParseAddress(raw string) Address {
	addr := Address{Raw: raw}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) >= 3:
		addr.Street = strings.Join(parts[:len(parts)-2], ", ")
		addr.City = parts[len(parts)-2]
		addr.State = parts[len(parts)-1]
	case len(parts) == 2:
		addr.City = parts[0]
		addr.State = parts[1]
	}
	return addr
}

type GeoLocation struct {
	GeoUrn     urn.Identifier `json:"geoUrn,omitzero" yaml:"geo_urn,omitempty"`
	PostalCode string         `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
}

type BasicLocation struct {
	CountryCode string `json:"countryCode,omitempty" yaml:"country_code,omitempty"`
	PostalCode  string `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
}

type Artifact struct {
	Width                         int64  `json:"width" yaml:"width"`
	Height                        int64  `json:"height" yaml:"height"`
	FileIdentifyingURLPathSegment string `json:"fileIdentifyingUrlPathSegment" yaml:"path_segment"`
}

type VectorImage struct {
	RootURL   string     `json:"rootUrl" yaml:"root_url"`
	Artifacts []Artifact `json:"artifacts" yaml:"artifacts"`
}

// URL is the root url joined with the first artifact, which upstream lists
// smallest first.
func (v *VectorImage) URL() string {
	if v == nil {
		return ""
	}
	if len(v.Artifacts) == 0 {
		return v.RootURL
	}
	return v.RootURL + v.Artifacts[0].FileIdentifyingURLPathSegment
}

type CountRange struct {
	Start int64 `json:"start" yaml:"start"`
	End   int64 `json:"end,omitempty" yaml:"end,omitempty"`
}

// Company is used both for a directly fetched company and for the snapshot
// embedded in a position. Nothing in it is required.
type Company struct {
	EntityUrn          urn.Identifier   `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	DashEntityUrn      urn.Identifier   `json:"dashCompanyUrn,omitzero" yaml:"dash_entity_urn,omitempty"`
	ObjectUrn          urn.Identifier   `json:"objectUrn,omitzero" yaml:"object_urn,omitempty"`
	Name               string           `json:"name,omitempty" yaml:"name,omitempty"`
	UniversalName      string           `json:"universalName,omitempty" yaml:"universal_name,omitempty"`
	TrackingID         string           `json:"trackingId,omitempty" yaml:"tracking_id,omitempty"`
	Active             bool             `json:"active,omitempty" yaml:"active,omitempty"`
	Showcase           bool             `json:"showcase,omitempty" yaml:"showcase,omitempty"`
	Logo               *VectorImage     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Description        string           `json:"description,omitempty" yaml:"description,omitempty"`
	Tagline            string           `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Website            scalar.URL       `json:"companyPageUrl,omitzero" yaml:"website,omitempty"`
	StaffCount         int64            `json:"staffCount,omitempty" yaml:"staff_count,omitempty"`
	EmployeeCountRange *CountRange      `json:"employeeCountRange,omitempty" yaml:"employee_count_range,omitempty"`
	Industries         []string         `json:"industries,omitempty" yaml:"industries,omitempty"`
	FoundedOn          partialdate.Date `json:"foundedOn,omitzero" yaml:"founded_on,omitempty"`
}

type School struct {
	EntityUrn     urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	DashEntityUrn urn.Identifier `json:"dashSchoolUrn,omitzero" yaml:"dash_entity_urn,omitempty"`
	ObjectUrn     urn.Identifier `json:"objectUrn,omitzero" yaml:"object_urn,omitempty"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	TrackingID    string         `json:"trackingId,omitempty" yaml:"tracking_id,omitempty"`
	Active        bool           `json:"active,omitempty" yaml:"active,omitempty"`
	Logo          *VectorImage   `json:"logo,omitempty" yaml:"logo,omitempty"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Website       scalar.URL     `json:"url,omitzero" yaml:"website,omitempty"`
}

type Position struct {
	EntityUrn       urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Title           string                  `json:"title,omitempty" yaml:"title,omitempty"`
	CompanyName     string                  `json:"companyName,omitempty" yaml:"company_name,omitempty"`
	CompanyUrn      urn.Identifier          `json:"companyUrn,omitzero" yaml:"company_urn,omitempty"`
	Company         *Company                `json:"company,omitempty" yaml:"company,omitempty"`
	Description     string                  `json:"description,omitempty" yaml:"description,omitempty"`
	TimePeriod      *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
	LocationName    string                  `json:"locationName,omitempty" yaml:"location_name,omitempty"`
	GeoLocationName string                  `json:"geoLocationName,omitempty" yaml:"geo_location_name,omitempty"`
	GeoUrn          urn.Identifier          `json:"geoUrn,omitzero" yaml:"geo_urn,omitempty"`
	Region          urn.Identifier          `json:"region,omitzero" yaml:"region,omitempty"`
}

// IsCurrent is true for a position with a known start and no end.
func (p Position) IsCurrent() bool {
	return p.TimePeriod != nil && p.TimePeriod.Ongoing()
}

func (p Position) LogoURL() string {
	if p.Company == nil {
		return ""
	}
	return p.Company.Logo.URL()
}

type PositionGroup struct {
	EntityUrn  urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name       string                  `json:"name,omitempty" yaml:"name,omitempty"`
	CompanyUrn urn.Identifier          `json:"companyUrn,omitzero" yaml:"company_urn,omitempty"`
	Company    *Company                `json:"company,omitempty" yaml:"company,omitempty"`
	TimePeriod *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
	Region     urn.Identifier          `json:"region,omitzero" yaml:"region,omitempty"`
	Positions  []Position              `json:"positions" yaml:"positions"`
}

// Experience holds exactly one of Position or Group.
type Experience struct {
	Position *Position      `json:"position,omitempty" yaml:"position,omitempty"`
	Group    *PositionGroup `json:"group,omitempty" yaml:"group,omitempty"`
}

// Positions flattens the entry into its positions.
func (e Experience) Positions() []Position {
	switch {
	case e.Position != nil:
		return []Position{*e.Position}
	case e.Group != nil:
		return e.Group.Positions
	}
	return nil
}

type Education struct {
	EntityUrn       urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	SchoolName      string                  `json:"schoolName,omitempty" yaml:"school_name,omitempty"`
	SchoolUrn       urn.Identifier          `json:"schoolUrn,omitzero" yaml:"school_urn,omitempty"`
	School          *School                 `json:"school,omitempty" yaml:"school,omitempty"`
	DegreeName      string                  `json:"degreeName,omitempty" yaml:"degree_name,omitempty"`
	DegreeUrn       urn.Identifier          `json:"degreeUrn,omitzero" yaml:"degree_urn,omitempty"`
	FieldOfStudy    string                  `json:"fieldOfStudy,omitempty" yaml:"field_of_study,omitempty"`
	FieldOfStudyUrn urn.Identifier          `json:"fieldOfStudyUrn,omitzero" yaml:"field_of_study_urn,omitempty"`
	Grade           string                  `json:"grade,omitempty" yaml:"grade,omitempty"`
	Activities      string                  `json:"activities,omitempty" yaml:"activities,omitempty"`
	Description     string                  `json:"description,omitempty" yaml:"description,omitempty"`
	TimePeriod      *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
}

// ActivitiesList splits the activities text, which upstream keeps as one
// comma separated string.
func (e Education) ActivitiesList() []string {
	var out []string
	for _, a := range strings.Split(e.Activities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

type Skill struct {
	EntityUrn urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name      string         `json:"name" yaml:"name"`
}

type Certification struct {
	EntityUrn     urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name          string                  `json:"name" yaml:"name"`
	Authority     string                  `json:"authority,omitempty" yaml:"authority,omitempty"`
	LicenseNumber string                  `json:"licenseNumber,omitempty" yaml:"license_number,omitempty"`
	URL           scalar.URL              `json:"url,omitzero" yaml:"url,omitempty"`
	CompanyUrn    urn.Identifier          `json:"companyUrn,omitzero" yaml:"company_urn,omitempty"`
	Company       *Company                `json:"company,omitempty" yaml:"company,omitempty"`
	TimePeriod    *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
}

type Course struct {
	EntityUrn urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name      string         `json:"name" yaml:"name"`
	Number    string         `json:"number,omitempty" yaml:"number,omitempty"`
}

type Honor struct {
	EntityUrn   urn.Identifier   `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Title       string           `json:"title" yaml:"title"`
	Issuer      string           `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	IssueDate   partialdate.Date `json:"issueDate,omitzero" yaml:"issue_date,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

type Proficiency string

const (
	NativeOrBilingual   Proficiency = "NATIVE_OR_BILINGUAL"
	FullProfessional    Proficiency = "FULL_PROFESSIONAL"
	ProfessionalWorking Proficiency = "PROFESSIONAL_WORKING"
	LimitedWorking      Proficiency = "LIMITED_WORKING"
	Elementary          Proficiency = "ELEMENTARY"
)

func (p Proficiency) Valid() bool {
	switch p {
	case NativeOrBilingual, FullProfessional, ProfessionalWorking, LimitedWorking, Elementary:
		return true
	}
	return false
}

type Language struct {
	EntityUrn   urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name        string         `json:"name" yaml:"name"`
	Proficiency Proficiency    `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
}

type TestScore struct {
	EntityUrn   urn.Identifier   `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name        string           `json:"name" yaml:"name"`
	Score       string           `json:"score,omitempty" yaml:"score,omitempty"`
	Date        partialdate.Date `json:"date,omitzero" yaml:"date,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

type Project struct {
	EntityUrn   urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Title       string                  `json:"title" yaml:"title"`
	Description string                  `json:"description,omitempty" yaml:"description,omitempty"`
	URL         scalar.URL              `json:"url,omitzero" yaml:"url,omitempty"`
	TimePeriod  *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
}

type Publication struct {
	EntityUrn   urn.Identifier   `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Name        string           `json:"name" yaml:"name"`
	Publisher   string           `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Date        partialdate.Date `json:"date,omitzero" yaml:"date,omitempty"`
	URL         scalar.URL       `json:"url,omitzero" yaml:"url,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

type VolunteerExperience struct {
	EntityUrn   urn.Identifier          `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Role        string                  `json:"role" yaml:"role"`
	CompanyName string                  `json:"companyName,omitempty" yaml:"company_name,omitempty"`
	CompanyUrn  urn.Identifier          `json:"companyUrn,omitzero" yaml:"company_urn,omitempty"`
	Cause       string                  `json:"cause,omitempty" yaml:"cause,omitempty"`
	Description string                  `json:"description,omitempty" yaml:"description,omitempty"`
	TimePeriod  *partialdate.TimePeriod `json:"timePeriod,omitempty" yaml:"time_period,omitempty"`
}

type VolunteerCause struct {
	CauseName string `json:"causeName" yaml:"cause_name"`
	CauseType string `json:"causeType,omitempty" yaml:"cause_type,omitempty"`
}

type PhoneNumber struct {
	Number scalar.Phone `json:"number" yaml:"number"`
	Type   string       `json:"type,omitempty" yaml:"type,omitempty"`
}

type Website struct {
	URL scalar.URL `json:"url" yaml:"url"`
	// Category is set for standard websites (PERSONAL, BLOG, COMPANY, ...).
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	// Label is set for custom websites.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

type InstantMessenger struct {
	Provider string `json:"provider" yaml:"provider"`
	ID       string `json:"id" yaml:"id"`
}

// ContactInfo always has non-nil slices once decoded, so an empty list means
// upstream had nothing rather than that nothing was fetched.
type ContactInfo struct {
	Emails            []scalar.Email     `json:"emails" yaml:"emails"`
	Phones            []PhoneNumber      `json:"phones" yaml:"phones"`
	Websites          []Website          `json:"websites" yaml:"websites"`
	TwitterHandles    []string           `json:"twitterHandles" yaml:"twitter_handles"`
	InstantMessengers []InstantMessenger `json:"instantMessengers" yaml:"instant_messengers"`
	// BirthDate usually has no year on this endpoint, in which case it is
	// dropped with a diagnostic.
	BirthDate partialdate.Date `json:"birthDate,omitzero" yaml:"birth_date,omitempty"`
	Address   *Address         `json:"address,omitempty" yaml:"address,omitempty"`
}

func newContactInfo() *ContactInfo {
	return &ContactInfo{
		Emails:            []scalar.Email{},
		Phones:            []PhoneNumber{},
		Websites:          []Website{},
		TwitterHandles:    []string{},
		InstantMessengers: []InstantMessenger{},
	}
}

type NetworkInfo struct {
	FollowersCount   int64  `json:"followersCount" yaml:"followers_count"`
	ConnectionsCount int64  `json:"connectionsCount" yaml:"connections_count"`
	Following        bool   `json:"following" yaml:"following"`
	Followable       bool   `json:"followable" yaml:"followable"`
	Distance         string `json:"distance,omitempty" yaml:"distance,omitempty"`
}

type MemberBadges struct {
	EntityUrn  urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	Premium    bool           `json:"premium" yaml:"premium"`
	Influencer bool           `json:"influencer" yaml:"influencer"`
	OpenLink   bool           `json:"openLink" yaml:"open_link"`
	JobSeeker  bool           `json:"jobSeeker" yaml:"job_seeker"`
	Verified   bool           `json:"verified" yaml:"verified"`
}

// PrivacySettings keeps every setting upstream sent in Settings and lifts the
// common ones into typed fields.
type PrivacySettings struct {
	ShowPublicProfile          bool           `json:"showPublicProfile" yaml:"show_public_profile"`
	AllowOpenProfile           bool           `json:"allowOpenProfile" yaml:"allow_open_profile"`
	ShowPremiumSubscriberBadge bool           `json:"showPremiumSubscriberBadge" yaml:"show_premium_subscriber_badge"`
	DiscloseAsProfileViewer    string         `json:"discloseAsProfileViewer,omitempty" yaml:"disclose_as_profile_viewer,omitempty"`
	ProfilePictureVisibility   string         `json:"profilePictureVisibilitySetting,omitempty" yaml:"profile_picture_visibility,omitempty"`
	Settings                   map[string]any `json:"settings" yaml:"settings"`
}

// FeedUpdate is one entry of a profile or company feed. Raw is the entry as
// sent, the typed fields are what could be read out of it.
type FeedUpdate struct {
	EntityUrn urn.Identifier  `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	ActorName string          `json:"actorName,omitempty" yaml:"actor_name,omitempty"`
	Text      string          `json:"text,omitempty" yaml:"text,omitempty"`
	Raw       json.RawMessage `json:"raw" yaml:"-"`
}

type Participant struct {
	EntityUrn        urn.Identifier `json:"entityUrn" yaml:"entity_urn"`
	Name             PersonName     `json:"name" yaml:"name"`
	PublicIdentifier string         `json:"publicIdentifier,omitempty" yaml:"public_identifier,omitempty"`
}

type Conversation struct {
	EntityUrn       urn.Identifier `json:"entityUrn" yaml:"entity_urn"`
	Read            bool           `json:"read" yaml:"read"`
	TotalEventCount int64          `json:"totalEventCount" yaml:"total_event_count"`
	LastActivityAt  int64          `json:"lastActivityAt,omitempty" yaml:"last_activity_at,omitempty"`
	Participants    []Participant  `json:"participants" yaml:"participants"`
}

// ID is the thread id used by the conversation events endpoint.
func (c Conversation) ID() string {
	return c.EntityUrn.ID()
}

type Event struct {
	EntityUrn urn.Identifier `json:"entityUrn,omitzero" yaml:"entity_urn,omitempty"`
	CreatedAt int64          `json:"createdAt" yaml:"created_at"`
	From      urn.Identifier `json:"from,omitzero" yaml:"from,omitempty"`
	Text      string         `json:"text,omitempty" yaml:"text,omitempty"`
}

type ConversationDetails struct {
	Events []Event `json:"events" yaml:"events"`
}

type Invitation struct {
	EntityUrn    urn.Identifier `json:"entityUrn" yaml:"entity_urn"`
	SharedSecret string         `json:"sharedSecret" yaml:"shared_secret"`
	FromMember   *Participant   `json:"fromMember,omitempty" yaml:"from_member,omitempty"`
	Message      string         `json:"message,omitempty" yaml:"message,omitempty"`
	SentTime     int64          `json:"sentTime,omitempty" yaml:"sent_time,omitempty"`
}

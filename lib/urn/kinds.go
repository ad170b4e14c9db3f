package urn

import "slices"

// Family groups the kind tags upstream uses for one logical entity across API
// generations.
type Family struct {
	Name  string
	Kinds []Kind
}

func (f Family) Has(k Kind) bool {
	return slices.Contains(f.Kinds, k)
}

func (f Family) String() string {
	return f.Name + "(" + kindList(f.Kinds) + ")"
}

var (
	Profile = Family{Name: "profile", Kinds: []Kind{
		"fsd_profile", "fs_profile", "fs_miniProfile", "member",
	}}
	Company = Family{Name: "company", Kinds: []Kind{
		"company", "fsd_company", "fs_miniCompany", "fs_normalized_company", "organization",
	}}
	School = Family{Name: "school", Kinds: []Kind{
		"school", "fsd_school", "fs_miniSchool", "fs_normalized_school",
	}}
	Conversation = Family{Name: "conversation", Kinds: []Kind{
		"fs_conversation", "messagingThread", "msg_conversation",
	}}
	Invitation = Family{Name: "invitation", Kinds: []Kind{
		"fs_relInvitation", "invitation",
	}}
	Geo = Family{Name: "geo", Kinds: []Kind{
		"fs_geo", "geo", "fsd_geo", "fs_region", "fs_country",
	}}
	Industry = Family{Name: "industry", Kinds: []Kind{
		"fs_industry", "industry", "fsd_industry",
	}}
	Degree = Family{Name: "degree", Kinds: []Kind{
		"fs_degree", "degree",
	}}
	FieldOfStudy = Family{Name: "fieldOfStudy", Kinds: []Kind{
		"fs_fieldOfStudy", "fieldOfStudy",
	}}

	Position = Family{Name: "position", Kinds: []Kind{
		"fs_position", "fsd_profilePosition",
	}}
	PositionGroup = Family{Name: "positionGroup", Kinds: []Kind{
		"fs_positionGroup", "fsd_profilePositionGroup",
	}}
	Education = Family{Name: "education", Kinds: []Kind{
		"fs_education", "fsd_profileEducation",
	}}
	Skill = Family{Name: "skill", Kinds: []Kind{
		"fs_skill", "fsd_skill",
	}}
	Certification = Family{Name: "certification", Kinds: []Kind{
		"fs_certification", "fsd_profileCertification",
	}}
	Course = Family{Name: "course", Kinds: []Kind{
		"fs_course", "fsd_profileCourse",
	}}
	Honor = Family{Name: "honor", Kinds: []Kind{
		"fs_honor", "fsd_profileHonor",
	}}
	Language = Family{Name: "language", Kinds: []Kind{
		"fs_language", "fsd_profileLanguage",
	}}
	TestScore = Family{Name: "testScore", Kinds: []Kind{
		"fs_testScore", "fsd_profileTestScore",
	}}
	Project = Family{Name: "project", Kinds: []Kind{
		"fs_project", "fsd_profileProject",
	}}
	Publication = Family{Name: "publication", Kinds: []Kind{
		"fs_publication", "fsd_profilePublication",
	}}
	VolunteerExperience = Family{Name: "volunteerExperience", Kinds: []Kind{
		"fs_volunteerExperience", "fsd_profileVolunteerExperience",
	}}
)

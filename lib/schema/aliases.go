package schema

// aliases maps a canonical field to the raw keys it has been seen under, in
// priority order. Keys of the form "Entity.field" only apply to that entity
// and are checked before the shared "field" entry. A canonical field missing
// from the table is looked up under its own name only.
var aliases = map[string][]string{
	// profile
	"firstName":        {"firstName", "localizedFirstName"},
	"lastName":         {"lastName", "localizedLastName"},
	"headline":         {"headline", "localizedHeadline"},
	"summary":          {"summary", "localizedSummary"},
	"occupation":       {"occupation"},
	"industryName":     {"industryName", "localizedIndustryName"},
	"industryUrn":      {"industryUrn", "*industry"},
	"geoCountryName":   {"geoCountryName", "localizedGeoCountryName"},
	"geoCountryUrn":    {"geoCountryUrn", "*geoCountry"},
	"geoLocationName":  {"geoLocationName", "localizedGeoLocationName"},
	"geoUrn":           {"geoUrn", "*geo"},
	"birthDate":        {"birthDate", "birthDateOn", "birthdate"},
	"defaultLocale":    {"defaultLocale", "primaryLocale"},
	"supportedLocales": {"supportedLocales"},
	"publicIdentifier": {"publicIdentifier", "vanityName"},
	"Profile.entityUrn": {
		"entityUrn", "dashEntityUrn", "*profile",
	},
	"Profile.picture": {
		"profilePictureOriginalImage", "picture", "profilePicture",
	},
	"miniProfile": {"miniProfile", "*miniProfile"},

	// profile view sections
	"experience": {
		"positionGroupView", "experience", "positionView", "positions", "profilePositionGroups",
	},
	"education":       {"educationView", "educations", "education", "profileEducations"},
	"skills":          {"skillView", "skills", "profileSkills"},
	"certifications":  {"certificationView", "certifications", "profileCertifications"},
	"courses":         {"courseView", "courses", "profileCourses"},
	"honors":          {"honorView", "honors", "profileHonors"},
	"languages":       {"languageView", "languages", "profileLanguages"},
	"testScores":      {"testScoreView", "testScores", "profileTestScores"},
	"projects":        {"projectView", "projects", "profileProjects"},
	"publications":    {"publicationView", "publications", "profilePublications"},
	"volunteering":    {"volunteerExperienceView", "volunteerExperiences", "volunteering"},
	"volunteerCauses": {"volunteerCauseView", "volunteerCauses"},

	// shared entity fields
	"timePeriod": {"timePeriod", "dateRange"},
	"startDate":  {"startDate", "start"},
	"endDate":    {"endDate", "end"},
	"companyName": {
		"companyName", "multiLocaleCompanyName",
	},
	"companyUrn":      {"companyUrn", "*company"},
	"company":         {"company", "companyResolutionResult"},
	"miniCompany":     {"miniCompany", "*miniCompany"},
	"schoolName":      {"schoolName", "multiLocaleSchoolName"},
	"schoolUrn":       {"schoolUrn", "*school"},
	"school":          {"school", "schoolResolutionResult"},
	"description":     {"description", "localizedDescription"},
	"locationName":    {"locationName", "localizedLocationName"},
	"degreeName":      {"degreeName", "multiLocaleDegreeName"},
	"degreeUrn":       {"degreeUrn", "*degree"},
	"fieldOfStudyUrn": {"fieldOfStudyUrn", "*fieldOfStudy"},
	"fieldOfStudy":    {"fieldOfStudy", "multiLocaleFieldOfStudy"},
	"issueDate":       {"issueDate", "issuedOn"},
	"Publication.date": {
		"date", "publishedOn",
	},
	"TestScore.date": {"date", "dateOn"},
	"PositionGroup.positions": {
		"positions", "profilePositionInPositionGroup",
	},
	"PositionGroup.name": {"name", "companyName", "multiLocaleCompanyName"},
	"region":             {"region", "*region"},
	"url":                {"url", "link"},

	// organizations
	"Company.name":       {"name", "localizedName"},
	"School.name":        {"name", "schoolName", "localizedName"},
	"employeeCountRange": {"employeeCountRange", "staffCountRange"},
	"industries":         {"industries", "companyIndustries"},
	"website":            {"companyPageUrl", "websiteUrl", "url"},
	"staffCount":         {"staffCount", "employeeCount"},
	"foundedOn":          {"foundedOn", "founded"},
	"logo":               {"logo", "logoResolutionResult"},
	"dashEntityUrn":      {"dashCompanyUrn", "dashSchoolUrn", "dashEntityUrn"},

	// contact info
	"emailAddress":   {"emailAddress", "emailAddresses", "email"},
	"phoneNumbers":   {"phoneNumbers", "phones"},
	"websites":       {"websites"},
	"twitterHandles": {"twitterHandles", "twitter"},
	"ims":            {"ims", "instantMessengers"},
	"address":        {"address", "addressText"},

	// network
	"followersCount":   {"followersCount", "followerCount"},
	"connectionsCount": {"connectionsCount", "connectionCount"},
	"distance":         {"distance", "memberDistance"},

	// messaging
	"participants":    {"participants", "conversationParticipants"},
	"lastActivityAt":  {"lastActivityAt", "lastActivity"},
	"totalEventCount": {"totalEventCount", "eventCount"},
}

func aliasesFor(entity, field string) []string {
	if keys, ok := aliases[entity+"."+field]; ok {
		return keys
	}
	if keys, ok := aliases[field]; ok {
		return keys
	}
	return []string{field}
}

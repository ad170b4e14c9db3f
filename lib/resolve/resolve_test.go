package resolve

import (
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/urn"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		id       string
		endpoint Endpoint
		uri      string
	}{
		{id: "ada-lovelace", endpoint: ProfileView, uri: "/identity/profiles/ada-lovelace/profileView"},
		{id: "urn:li:fsd_profile:ACoAABhDWHoB", endpoint: ProfileView, uri: "/identity/profiles/ACoAABhDWHoB/profileView"},
		{id: "ada-lovelace", endpoint: ContactInfo, uri: "/identity/profiles/ada-lovelace/profileContactInfo"},
		{id: "ada-lovelace", endpoint: NetworkInfo, uri: "/identity/profiles/ada-lovelace/networkinfo"},
		{id: "ada-lovelace", endpoint: Skills, uri: "/identity/profiles/ada-lovelace/skills?count=100&start=0"},
		{id: "urn:li:member:123", endpoint: MemberBadges, uri: "/identity/profiles/123/memberBadges"},
		{id: "ada-lovelace", endpoint: PrivacySettings, uri: "/identity/profiles/ada-lovelace/privacySettings"},
		{
			id:       "analytical-engines",
			endpoint: Company,
			uri: "/organization/companies?decorationId=com.linkedin.voyager.deco.organization.web.WebFullCompanyMain-12" +
				"&q=universalName&universalName=analytical-engines",
		},
		{id: "urn:li:fs_miniCompany:1035", endpoint: Company, uri: "/organization/companies/1035"},
		{id: "urn:li:fs_miniSchool:4399", endpoint: School, uri: "/organization/schools/4399"},
		{id: "london-university", endpoint: School, uri: "/organization/schools?q=universalName&universalName=london-university"},
		{
			id:       "urn:li:fs_miniProfile:ACoAABhDWHoB",
			endpoint: ConversationByParticipant,
			uri:      "/messaging/conversations?keyVersion=LEGACY_INBOX&q=participants&recipients=List(urn:li:fs_miniProfile:ACoAABhDWHoB)",
		},
		{
			id:       "urn:li:fs_conversation:2-YjM4ZTk5Nzgt==",
			endpoint: ConversationEvents,
			uri:      "/messaging/conversations/2-YjM4ZTk5Nzgt==/events",
		},
		{
			id:       "ada-lovelace",
			endpoint: ProfileUpdates,
			uri:      "/feed/updates?profileId=ada-lovelace&q=memberShareFeed&moduleKey=member-share",
		},
		{
			id:       "analytical-engines",
			endpoint: CompanyUpdates,
			uri:      "/feed/updates?companyUniversalName=analytical-engines&q=companyFeedByUniversalName&moduleKey=member-share",
		},
	}
	for _, test := range testCases {
		id := urn.MustParse(test.id)
		plan, err := Resolve(id, test.endpoint)
		require.NoError(t, err, test.id)
		require.Equal(t, test.uri, plan.URI(), test.id)
		require.Equal(t, test.endpoint, plan.Endpoint)
		require.Equal(t, id, plan.Identifier)
		require.True(t, plan.IsRead(), test.id)
	}
}

func TestResolveRemoveConnection(t *testing.T) {
	plan, err := Resolve(urn.MustParse("ada-lovelace"), RemoveConnection)
	require.NoError(t, err)
	require.Equal(t, "/identity/profiles/ada-lovelace/profileActions?action=disconnect", plan.URI())
	require.Equal(t, "POST", plan.Method)
	require.JSONEq(t, `{}`, string(plan.Body))
	require.False(t, plan.IsRead())
}

func TestPage(t *testing.T) {
	plan, err := Resolve(urn.MustParse("ada-lovelace"), ProfileUpdates)
	require.NoError(t, err)
	require.Equal(t,
		"/feed/updates?profileId=ada-lovelace&q=memberShareFeed&moduleKey=member-share&count=100&start=200",
		plan.Page(200, 100).URI(),
	)
	require.Equal(t, "/identity/wvmpCards?count=10&start=0", ProfileViewsPlan().Page(0, 10).URI())
	require.Equal(t, "/identity/wvmpCards", ProfileViewsPlan().URI())
}

func TestResolveKindMismatch(t *testing.T) {
	testCases := []struct {
		id       string
		endpoint Endpoint
		expected string
		actual   string
	}{
		{id: "urn:li:fsd_profile:ACoAAB", endpoint: Company, expected: "company", actual: "fsd_profile"},
		{id: "urn:li:company:1035", endpoint: ProfileView, expected: "profile", actual: "company"},
		{id: "urn:li:fs_miniCompany:1", endpoint: School, expected: "school", actual: "fs_miniCompany"},
		{id: "ada-lovelace", endpoint: ConversationByParticipant, expected: "profile", actual: "public handle"},
		{id: "urn:li:company:1", endpoint: ConversationByParticipant, expected: "profile", actual: "company"},
		{id: "urn:li:fsd_profile:ACoAAB", endpoint: ConversationEvents, expected: "conversation", actual: "fsd_profile"},
		{id: "urn:li:company:1035", endpoint: CompanyUpdates, expected: "company universal name", actual: "reference"},
		{id: "urn:li:company:1035", endpoint: ProfileUpdates, expected: "profile", actual: "company"},
		{id: "urn:li:company:1035", endpoint: RemoveConnection, expected: "profile", actual: "company"},
	}
	for _, test := range testCases {
		_, err := Resolve(urn.MustParse(test.id), test.endpoint)
		var perr *errs.ParseError
		require.ErrorAs(t, err, &perr, test.id)
		require.Equal(t, errs.KindMismatch, perr.Code)
		require.Equal(t, test.expected, perr.Expected)
		require.Equal(t, test.actual, perr.Actual)
	}
}

func TestResolveInvalid(t *testing.T) {
	_, err := Resolve(urn.Identifier{}, ProfileView)
	require.True(t, errs.IsParseCode(err, errs.UnrecognizedIdentifierFormat))

	_, err = Resolve(urn.MustParse("ada-lovelace"), Me)
	require.Error(t, err)
}

func TestStaticPlans(t *testing.T) {
	require.Equal(t, "/messaging/conversations?keyVersion=LEGACY_INBOX", ConversationsPlan().URI())
	require.Equal(t,
		"/relationships/invitationViews?start=0&count=10&includeInsights=true&q=receivedInvitation",
		InvitationsPlan(0, 10).URI())
	require.Equal(t, "/me", MePlan().URI())
	require.True(t, MePlan().Identifier.IsZero())
}

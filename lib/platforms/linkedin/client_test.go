package linkedin

import (
	"context"
	"linkedin-voyager/lib/assemble"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[resolve.Endpoint]string
	// pages answer by full uri before responses are consulted.
	pages    map[string]string
	failures map[resolve.Endpoint]error
	requests []string
	plans    []resolve.RequestPlan
}

func (f *fakeFetcher) FetchRaw(ctx context.Context, plan resolve.RequestPlan) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, plan.URI())
	f.plans = append(f.plans, plan)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.failures[plan.Endpoint]; ok {
		return nil, err
	}
	if body, ok := f.pages[plan.URI()]; ok {
		return []byte(body), nil
	}
	body, ok := f.responses[plan.Endpoint]
	if !ok {
		return nil, &errs.TransportError{Endpoint: string(plan.Endpoint), Status: 404, Message: "Not Found"}
	}
	return []byte(body), nil
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t testing.TB, f *fakeFetcher) *Client {
	client, err := NewClient(ClientOptions{Fetcher: f})
	require.NoError(t, err)
	return client
}

const (
	adaView    = `{"profile":{"firstName":"Ada","lastName":"Lovelace","headline":"Analyst","publicIdentifier":"ada-lovelace"},"positionView":{"elements":[{"title":"Analyst","companyName":"Analytical Engines Ltd"}]}}`
	adaContact = `{"emailAddress":"ada@example.org","twitterHandles":[{"name":"@ada"}]}`
	adaNetwork = `{"followersCount":120,"connectionsCount":42,"distance":{"value":"DISTANCE_2"}}`
)

func TestGetProfile(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[resolve.Endpoint]string{
		resolve.ProfileView: adaView,
		resolve.ContactInfo: adaContact,
		resolve.NetworkInfo: adaNetwork,
	}}
	client := newTestClient(t, fetcher)

	p, diags, err := client.GetProfile(context.Background(), urn.MustParse("ada-lovelace"))
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Equal(t, "Ada Lovelace", p.FullName())
	require.Equal(t, "ada-lovelace", p.PublicIdentifier)
	require.NotNil(t, p.ContactInfo)
	require.Len(t, p.ContactInfo.Emails, 1)
	require.Equal(t, []string{"ada"}, p.ContactInfo.TwitterHandles)
	require.NotNil(t, p.NetworkInfo)
	require.EqualValues(t, 120, p.NetworkInfo.FollowersCount)
	require.Equal(t, 3, fetcher.count())
}

func TestGetProfileDropsOptionalFragments(t *testing.T) {
	fetcher := &fakeFetcher{
		responses: map[resolve.Endpoint]string{
			resolve.ProfileView: `{"firstName":"Ada","headline":7}`,
		},
		failures: map[resolve.Endpoint]error{
			resolve.NetworkInfo: &errs.TransportError{Endpoint: string(resolve.NetworkInfo), Status: 429},
		},
	}
	client := newTestClient(t, fetcher)

	p, diags, err := client.GetProfile(context.Background(), urn.MustParse("urn:li:fsd_profile:ACoAABhDWHoB"))
	require.NoError(t, err)
	require.Nil(t, p.ContactInfo)
	require.Nil(t, p.NetworkInfo)
	require.Equal(t, "urn:li:fsd_profile:ACoAABhDWHoB", p.EntityUrn.String())

	require.Len(t, diags, 3)
	require.Equal(t, assemble.ProfileView, diags[0].Fragment)
	require.Equal(t, "headline", diags[0].Field)
	require.Equal(t, schema.Diagnostic{
		Fragment: assemble.ContactInfo,
		Entity:   "Profile",
		Field:    assemble.ContactInfo,
		Code:     FragmentUnavailable,
		Reason:   diags[1].Reason,
	}, diags[1])
	require.Equal(t, assemble.NetworkInfo, diags[2].Fragment)
	require.Contains(t, diags[2].Reason, "status 429")
}

func TestGetProfileFailures(t *testing.T) {
	testCases := []struct {
		name     string
		failures map[resolve.Endpoint]error
		check    func(t *testing.T, err error)
	}{
		{
			name: "profile view is required",
			failures: map[resolve.Endpoint]error{
				resolve.ProfileView: &errs.TransportError{Endpoint: string(resolve.ProfileView), Status: 500},
			},
			check: func(t *testing.T, err error) {
				var terr *errs.TransportError
				require.ErrorAs(t, err, &terr)
				require.Equal(t, 500, terr.Status)
			},
		},
		{
			name: "authentication always propagates",
			failures: map[resolve.Endpoint]error{
				resolve.ContactInfo: &errs.AuthenticationError{Endpoint: string(resolve.ContactInfo), Status: 401},
			},
			check: func(t *testing.T, err error) {
				require.True(t, errs.IsAuthentication(err))
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			fetcher := &fakeFetcher{
				responses: map[resolve.Endpoint]string{
					resolve.ProfileView: adaView,
					resolve.ContactInfo: adaContact,
					resolve.NetworkInfo: adaNetwork,
				},
				failures: test.failures,
			}
			_, _, err := newTestClient(t, fetcher).GetProfile(context.Background(), urn.MustParse("ada-lovelace"))
			require.Error(t, err)
			test.check(t, err)
		})
	}
}

func TestGetProfileRejectsOtherKinds(t *testing.T) {
	fetcher := &fakeFetcher{}
	_, _, err := newTestClient(t, fetcher).GetProfile(context.Background(), urn.MustParse("urn:li:company:1035"))
	require.True(t, errs.IsParseCode(err, errs.KindMismatch))
	require.Zero(t, fetcher.count())
}

func TestGetCompanyIsMemoized(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[resolve.Endpoint]string{
		resolve.Company: `{"elements":[{"entityUrn":"urn:li:fs_normalized_company:1035","name":"Microsoft","universalName":"microsoft","companyPageUrl":"not a url"}]}`,
	}}
	client := newTestClient(t, fetcher)

	id := urn.MustParse("microsoft")
	var first schema.Diagnostics
	for i := 0; i < 3; i++ {
		c, diags, err := client.GetCompany(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, "Microsoft", c.Name)
		require.True(t, c.Website.IsZero())
		require.Len(t, diags, 1)
		require.True(t, diags.Has("website", string(errs.InvalidFormat)))
		if i == 0 {
			first = diags
			continue
		}
		require.Equal(t, first, diags)
	}
	require.Equal(t, 1, fetcher.count())

	_, _, err := client.GetCompany(context.Background(), urn.MustParse("urn:li:fs_miniSchool:1"))
	require.True(t, errs.IsParseCode(err, errs.KindMismatch))
}

func TestGetSchoolNotFound(t *testing.T) {
	client := newTestClient(t, &fakeFetcher{})
	_, _, err := client.GetSchool(context.Background(), urn.MustParse("stanford-university"))
	var terr *errs.TransportError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, 404, terr.Status)
}

func TestGetConversations(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[resolve.Endpoint]string{
		resolve.Conversations:             `{"elements":[{"entityUrn":"urn:li:fs_conversation:1"},{"entityUrn":"urn:li:fs_conversation:2"}]}`,
		resolve.ConversationByParticipant: `{"elements":[{"entityUrn":"urn:li:fs_conversation:2"}]}`,
	}}
	client := newTestClient(t, fetcher)

	all, _, err := client.GetConversations(context.Background(), urn.Identifier{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	withAda, _, err := client.GetConversations(context.Background(), urn.MustParse("urn:li:fs_miniProfile:ACoAAB"))
	require.NoError(t, err)
	require.Len(t, withAda, 1)
	require.Equal(t, "2", withAda[0].ID())

	_, _, err = client.GetConversations(context.Background(), urn.MustParse("ada-lovelace"))
	var perr *errs.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "public handle", perr.Actual)
}

func TestGetSkillsAndBadges(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[resolve.Endpoint]string{
		resolve.Skills:       `{"elements":[{"name":"Go"},{"name":"Mathematics"}]}`,
		resolve.MemberBadges: `{"premium":true,"influencer":false}`,
	}}
	client := newTestClient(t, fetcher)
	id := urn.MustParse("ada-lovelace")

	skills, _, err := client.GetSkills(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, []schema.Skill{{Name: "Go"}, {Name: "Mathematics"}}, skills)

	badges, _, err := client.GetMemberBadges(context.Background(), id)
	require.NoError(t, err)
	require.True(t, badges.Premium)
}

func TestPositionsAt(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[resolve.Endpoint]string{
		resolve.ProfileView: adaView,
		resolve.ContactInfo: `{}`,
		resolve.NetworkInfo: `{}`,
	}}
	positions, _, err := newTestClient(t, fetcher).PositionsAt(context.Background(), urn.MustParse("ada-lovelace"), "analytical engines")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	require.Equal(t, "Analyst", positions[0].Title)
}

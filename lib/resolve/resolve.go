// Package resolve turns an identifier and an endpoint into the request that
// fetches it. It performs no I/O.
package resolve

import (
	"fmt"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/urn"
	"net/http"
	"net/url"
	"strconv"
)

type Endpoint string

const (
	ProfileView               Endpoint = "profileView"
	ContactInfo               Endpoint = "contactInfo"
	NetworkInfo               Endpoint = "networkInfo"
	Skills                    Endpoint = "skills"
	MemberBadges              Endpoint = "memberBadges"
	PrivacySettings           Endpoint = "privacySettings"
	Company                   Endpoint = "company"
	School                    Endpoint = "school"
	ConversationByParticipant Endpoint = "conversationByParticipant"
	ConversationEvents        Endpoint = "conversationEvents"
	Conversations             Endpoint = "conversations"
	Invitations               Endpoint = "invitations"
	Me                        Endpoint = "me"
	ProfileViews              Endpoint = "profileViews"
	ProfileUpdates            Endpoint = "profileUpdates"
	CompanyUpdates            Endpoint = "companyUpdates"

	SendMessage          Endpoint = "sendMessage"
	StartConversation    Endpoint = "startConversation"
	MarkConversationSeen Endpoint = "markConversationSeen"
	ReplyInvitation      Endpoint = "replyInvitation"
	RemoveConnection     Endpoint = "removeConnection"
)

const fullCompanyDecoration = "com.linkedin.voyager.deco.organization.web.WebFullCompanyMain-12"

// RequestPlan is a request relative to the api root. Method is empty for a
// GET, Body is only set for writes and is always json.
type RequestPlan struct {
	Endpoint   Endpoint
	Identifier urn.Identifier
	Method     string
	Path       string
	RawQuery   string
	Body       []byte
}

func (p RequestPlan) URI() string {
	if p.RawQuery == "" {
		return p.Path
	}
	return p.Path + "?" + p.RawQuery
}

// IsRead is true for plans that only fetch and may be cached.
func (p RequestPlan) IsRead() bool {
	return p.Method == "" || p.Method == http.MethodGet
}

// Page returns the plan for one page of a paged list.
func (p RequestPlan) Page(start, count int) RequestPlan {
	page := "count=" + strconv.Itoa(count) + "&start=" + strconv.Itoa(start)
	if p.RawQuery == "" {
		p.RawQuery = page
	} else {
		p.RawQuery += "&" + page
	}
	return p
}

type profileRoute struct {
	segment string
	query   string
	method  string
}

var profileRoutes = map[Endpoint]profileRoute{
	ProfileView:      {segment: "profileView"},
	ContactInfo:      {segment: "profileContactInfo"},
	NetworkInfo:      {segment: "networkinfo"},
	Skills:           {segment: "skills", query: "count=100&start=0"},
	MemberBadges:     {segment: "memberBadges"},
	PrivacySettings:  {segment: "privacySettings"},
	RemoveConnection: {segment: "profileActions", query: "action=disconnect", method: http.MethodPost},
}

// Resolve builds the plan for fetching endpoint for id. Handles and references
// produce different shapes where upstream needs them to.
func Resolve(id urn.Identifier, endpoint Endpoint) (RequestPlan, error) {
	if id.IsZero() {
		return RequestPlan{}, &errs.ParseError{
			Code:   errs.UnrecognizedIdentifierFormat,
			Reason: fmt.Sprintf("%s needs an identifier", endpoint),
		}
	}
	plan := RequestPlan{Endpoint: endpoint, Identifier: id}

	if route, ok := profileRoutes[endpoint]; ok {
		if err := id.Expect(urn.Profile); err != nil {
			return RequestPlan{}, err
		}
		plan.Path = "/identity/profiles/" + url.PathEscape(id.PathKey()) + "/" + route.segment
		plan.RawQuery = route.query
		if route.method != "" {
			plan.Method = route.method
			plan.Body = []byte("{}")
		}
		return plan, nil
	}

	switch endpoint {
	case Company:
		if err := id.Expect(urn.Company); err != nil {
			return RequestPlan{}, err
		}
		if id.IsHandle() {
			plan.Path = "/organization/companies"
			plan.RawQuery = "decorationId=" + fullCompanyDecoration +
				"&q=universalName&universalName=" + url.QueryEscape(id.Handle())
			return plan, nil
		}
		plan.Path = "/organization/companies/" + url.PathEscape(id.ID())
		return plan, nil

	case School:
		if err := id.Expect(urn.School); err != nil {
			return RequestPlan{}, err
		}
		if id.IsHandle() {
			plan.Path = "/organization/schools"
			plan.RawQuery = "q=universalName&universalName=" + url.QueryEscape(id.Handle())
			return plan, nil
		}
		plan.Path = "/organization/schools/" + url.PathEscape(id.ID())
		return plan, nil

	case ConversationByParticipant:
		if err := requireReference(id, urn.Profile); err != nil {
			return RequestPlan{}, err
		}
		plan.Path = "/messaging/conversations"
		// The urn goes into List(...) verbatim.
		plan.RawQuery = "keyVersion=LEGACY_INBOX&q=participants&recipients=List(" + id.String() + ")"
		return plan, nil

	case ConversationEvents:
		if err := requireReference(id, urn.Conversation); err != nil {
			return RequestPlan{}, err
		}
		plan.Path = "/messaging/conversations/" + url.PathEscape(id.ID()) + "/events"
		return plan, nil

	case ProfileUpdates:
		if err := id.Expect(urn.Profile); err != nil {
			return RequestPlan{}, err
		}
		plan.Path = "/feed/updates"
		plan.RawQuery = "profileId=" + url.QueryEscape(id.PathKey()) + "&q=memberShareFeed&moduleKey=member-share"
		return plan, nil

	case CompanyUpdates:
		// The company feed is keyed by universal name only.
		if !id.IsHandle() {
			return RequestPlan{}, &errs.ParseError{
				Code:     errs.KindMismatch,
				Raw:      id.String(),
				Expected: "company universal name",
				Actual:   "reference",
			}
		}
		plan.Path = "/feed/updates"
		plan.RawQuery = "companyUniversalName=" + url.QueryEscape(id.Handle()) +
			"&q=companyFeedByUniversalName&moduleKey=member-share"
		return plan, nil
	}

	return RequestPlan{}, fmt.Errorf("resolve: endpoint %q does not take an identifier", endpoint)
}

func requireReference(id urn.Identifier, family urn.Family) error {
	if id.IsHandle() {
		return &errs.ParseError{
			Code:     errs.KindMismatch,
			Raw:      id.String(),
			Expected: family.Name,
			Actual:   "public handle",
		}
	}
	return id.Expect(family)
}

func ConversationsPlan() RequestPlan {
	return RequestPlan{
		Endpoint: Conversations,
		Path:     "/messaging/conversations",
		RawQuery: "keyVersion=LEGACY_INBOX",
	}
}

func InvitationsPlan(start, count int) RequestPlan {
	return RequestPlan{
		Endpoint: Invitations,
		Path:     "/relationships/invitationViews",
		RawQuery: "start=" + strconv.Itoa(start) + "&count=" + strconv.Itoa(count) +
			"&includeInsights=true&q=receivedInvitation",
	}
}

func MePlan() RequestPlan {
	return RequestPlan{Endpoint: Me, Path: "/me"}
}

func ProfileViewsPlan() RequestPlan {
	return RequestPlan{Endpoint: ProfileViews, Path: "/identity/wvmpCards"}
}

// Package linkedin fetches entities from the voyager api and decodes them
// into the typed models of lib/schema.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/assemble"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FragmentUnavailable is the diagnostic code for an optional profile fragment
// that could not be fetched.
const FragmentUnavailable = "fragment_unavailable"

type ClientOptions struct {
	Fetcher Fetcher
	Decode  schema.Options
	// LookupCacheSize and LookupCacheTTL bound the in memory memo of
	// company and school lookups. They default to 512 and 15 minutes.
	LookupCacheSize int
	LookupCacheTTL  time.Duration
}

type Client struct {
	fetcher   Fetcher
	opts      schema.Options
	companies *expirable.LRU[urn.Identifier, memo[schema.Company]]
	schools   *expirable.LRU[urn.Identifier, memo[schema.School]]
}

// memo keeps the diagnostics of a lookup next to its result so a hit reports
// the same drops as the original decode.
type memo[T any] struct {
	value T
	diags schema.Diagnostics
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("linkedin: client needs a fetcher")
	}
	if opts.LookupCacheSize <= 0 {
		opts.LookupCacheSize = 512
	}
	if opts.LookupCacheTTL <= 0 {
		opts.LookupCacheTTL = time.Minute * 15
	}
	return &Client{
		fetcher:   opts.Fetcher,
		opts:      opts.Decode,
		companies: expirable.NewLRU[urn.Identifier, memo[schema.Company]](opts.LookupCacheSize, nil, opts.LookupCacheTTL),
		schools:   expirable.NewLRU[urn.Identifier, memo[schema.School]](opts.LookupCacheSize, nil, opts.LookupCacheTTL),
	}, nil
}

func (c *Client) fetch(ctx context.Context, id urn.Identifier, endpoint resolve.Endpoint) (json.RawMessage, error) {
	plan, err := resolve.Resolve(id, endpoint)
	if err != nil {
		return nil, err
	}
	return c.fetchPlan(ctx, plan)
}

func (c *Client) fetchPlan(ctx context.Context, plan resolve.RequestPlan) (json.RawMessage, error) {
	body, err := c.fetcher.FetchRaw(ctx, plan)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func startSpan(ctx context.Context, name string, id urn.Identifier) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, name)
	if !id.IsZero() {
		span.SetAttributes(attribute.String("identifier", id.String()))
	}
	return ctx, span
}

var fragmentRank = map[string]int{
	assemble.ProfileView: 0,
	assemble.ContactInfo: 1,
	assemble.NetworkInfo: 2,
}

// GetProfile fetches the profile view, contact info and network info of id
// concurrently and merges them. The profile view is required. A contact or
// network fetch that fails for any reason other than authentication is
// dropped and reported as a FragmentUnavailable diagnostic.
func (c *Client) GetProfile(ctx context.Context, id urn.Identifier) (schema.Profile, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetProfile", id)
	defer span.End()

	plans := make(map[string]resolve.RequestPlan, 3)
	for fragment, endpoint := range map[string]resolve.Endpoint{
		assemble.ProfileView: resolve.ProfileView,
		assemble.ContactInfo: resolve.ContactInfo,
		assemble.NetworkInfo: resolve.NetworkInfo,
	} {
		plan, err := resolve.Resolve(id, endpoint)
		if err != nil {
			recordError(span, err, "failed to resolve profile")
			return schema.Profile{}, nil, err
		}
		plans[fragment] = plan
	}

	var (
		fragments assemble.Fragments
		dropped   = make([]schema.Diagnostic, 3)
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		raw, err := c.fetchPlan(groupCtx, plans[assemble.ProfileView])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", assemble.ProfileView, err)
		}
		fragments.ProfileView = raw
		return nil
	})
	optional := func(fragment string, out *json.RawMessage) func() error {
		return func() error {
			raw, err := c.fetchPlan(groupCtx, plans[fragment])
			if errs.IsAuthentication(err) {
				return fmt.Errorf("fetch %s: %w", fragment, err)
			}
			if err != nil {
				dropped[fragmentRank[fragment]] = schema.Diagnostic{
					Fragment: fragment,
					Entity:   "Profile",
					Field:    fragment,
					Code:     FragmentUnavailable,
					Reason:   err.Error(),
				}
				return nil
			}
			*out = raw
			return nil
		}
	}
	group.Go(optional(assemble.ContactInfo, &fragments.ContactInfo))
	group.Go(optional(assemble.NetworkInfo, &fragments.NetworkInfo))

	err := group.Wait()
	if err != nil {
		recordError(span, err, "failed to fetch profile")
		return schema.Profile{}, nil, err
	}

	profile, diags, err := assemble.Assemble(id, fragments, c.opts)
	if err != nil {
		recordError(span, err, "failed to assemble profile")
		return schema.Profile{}, nil, err
	}
	for _, d := range dropped {
		if d.Fragment != "" {
			diags = append(diags, d)
		}
	}
	slices.SortStableFunc(diags, func(a, b schema.Diagnostic) int {
		return fragmentRank[a.Fragment] - fragmentRank[b.Fragment]
	})
	countDiagnostics(ctx, diags)

	return profile, diags, nil
}

func (c *Client) GetContactInfo(ctx context.Context, id urn.Identifier) (*schema.ContactInfo, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetContactInfo", id)
	defer span.End()

	raw, err := c.fetch(ctx, id, resolve.ContactInfo)
	if err != nil {
		recordError(span, err, "failed to fetch contact info")
		return nil, nil, err
	}
	info, diags, err := schema.DecodeContactInfo(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode contact info")
		return nil, nil, err
	}
	countDiagnostics(ctx, diags)
	return info, diags, nil
}

// GetCompany looks a company up by universal name or reference. Results are
// memoized per identifier for the lookup cache ttl.
func (c *Client) GetCompany(ctx context.Context, id urn.Identifier) (schema.Company, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetCompany", id)
	defer span.End()

	if cached, ok := c.companies.Get(id); ok {
		span.AddEvent("memo hit")
		return cached.value, slices.Clone(cached.diags), nil
	}
	raw, err := c.fetch(ctx, id, resolve.Company)
	if err != nil {
		recordError(span, err, "failed to fetch company")
		return schema.Company{}, nil, err
	}
	company, diags, err := schema.DecodeCompany(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode company")
		return schema.Company{}, nil, err
	}
	countDiagnostics(ctx, diags)
	c.companies.Add(id, memo[schema.Company]{value: company, diags: slices.Clone(diags)})
	return company, diags, nil
}

func (c *Client) GetSchool(ctx context.Context, id urn.Identifier) (schema.School, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetSchool", id)
	defer span.End()

	if cached, ok := c.schools.Get(id); ok {
		span.AddEvent("memo hit")
		return cached.value, slices.Clone(cached.diags), nil
	}
	raw, err := c.fetch(ctx, id, resolve.School)
	if err != nil {
		recordError(span, err, "failed to fetch school")
		return schema.School{}, nil, err
	}
	school, diags, err := schema.DecodeSchool(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode school")
		return schema.School{}, nil, err
	}
	countDiagnostics(ctx, diags)
	c.schools.Add(id, memo[schema.School]{value: school, diags: slices.Clone(diags)})
	return school, diags, nil
}

func (c *Client) GetNetworkInfo(ctx context.Context, id urn.Identifier) (*schema.NetworkInfo, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetNetworkInfo", id)
	defer span.End()

	raw, err := c.fetch(ctx, id, resolve.NetworkInfo)
	if err != nil {
		recordError(span, err, "failed to fetch network info")
		return nil, nil, err
	}
	info, diags, err := schema.DecodeNetworkInfo(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode network info")
		return nil, nil, err
	}
	countDiagnostics(ctx, diags)
	return info, diags, nil
}

func (c *Client) GetMemberBadges(ctx context.Context, id urn.Identifier) (schema.MemberBadges, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetMemberBadges", id)
	defer span.End()

	raw, err := c.fetch(ctx, id, resolve.MemberBadges)
	if err != nil {
		recordError(span, err, "failed to fetch member badges")
		return schema.MemberBadges{}, nil, err
	}
	badges, diags, err := schema.DecodeMemberBadges(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode member badges")
		return schema.MemberBadges{}, nil, err
	}
	countDiagnostics(ctx, diags)
	return badges, diags, nil
}

func (c *Client) GetSkills(ctx context.Context, id urn.Identifier) ([]schema.Skill, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetSkills", id)
	defer span.End()

	raw, err := c.fetch(ctx, id, resolve.Skills)
	if err != nil {
		recordError(span, err, "failed to fetch skills")
		return nil, nil, err
	}
	skills, diags, err := schema.DecodeSkills(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode skills")
		return nil, nil, err
	}
	countDiagnostics(ctx, diags)
	return skills, diags, nil
}

// GetConversations lists the inbox. With a non zero participant only the
// conversations with that profile are returned.
func (c *Client) GetConversations(ctx context.Context, participant urn.Identifier) ([]schema.Conversation, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetConversations", participant)
	defer span.End()

	plan := resolve.ConversationsPlan()
	if !participant.IsZero() {
		var err error
		plan, err = resolve.Resolve(participant, resolve.ConversationByParticipant)
		if err != nil {
			recordError(span, err, "failed to resolve participant")
			return nil, nil, err
		}
	}
	raw, err := c.fetchPlan(ctx, plan)
	if err != nil {
		recordError(span, err, "failed to fetch conversations")
		return nil, nil, err
	}
	conversations, diags, err := schema.DecodeConversations(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode conversations")
		return nil, nil, err
	}
	countDiagnostics(ctx, diags)
	return conversations, diags, nil
}

func (c *Client) GetConversationDetails(ctx context.Context, conversation urn.Identifier) (schema.ConversationDetails, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetConversationDetails", conversation)
	defer span.End()

	raw, err := c.fetch(ctx, conversation, resolve.ConversationEvents)
	if err != nil {
		recordError(span, err, "failed to fetch conversation events")
		return schema.ConversationDetails{}, nil, err
	}
	details, diags, err := schema.DecodeConversationDetails(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode conversation events")
		return schema.ConversationDetails{}, nil, err
	}
	countDiagnostics(ctx, diags)
	return details, diags, nil
}

func (c *Client) GetInvitations(ctx context.Context, start, count int) ([]schema.Invitation, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetInvitations", urn.Identifier{})
	defer span.End()

	raw, err := c.fetchPlan(ctx, resolve.InvitationsPlan(start, count))
	if err != nil {
		recordError(span, err, "failed to fetch invitations")
		return nil, nil, err
	}
	invitations, diags, err := schema.DecodeInvitations(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode invitations")
		return nil, nil, err
	}
	countDiagnostics(ctx, diags)
	return invitations, diags, nil
}

// PositionsAt returns the positions of the profile held at company, matched
// by fuzzy company name.
func (c *Client) PositionsAt(ctx context.Context, id urn.Identifier, company string) ([]schema.Position, schema.Diagnostics, error) {
	profile, diags, err := c.GetProfile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return profile.PositionsAt(company), diags, nil
}

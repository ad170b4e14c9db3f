package linkedin

import (
	"context"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"slices"
)

const (
	feedPageSize = 100
	// maxFeedRequests bounds a feed walk whose pages never run dry.
	maxFeedRequests = 200
)

func (c *Client) GetPrivacySettings(ctx context.Context, id urn.Identifier) (schema.PrivacySettings, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetPrivacySettings", id)
	defer span.End()

	raw, err := c.fetch(ctx, id, resolve.PrivacySettings)
	if err != nil {
		recordError(span, err, "failed to fetch privacy settings")
		return schema.PrivacySettings{}, nil, err
	}
	settings, diags, err := schema.DecodePrivacySettings(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode privacy settings")
		return schema.PrivacySettings{}, nil, err
	}
	countDiagnostics(ctx, diags)
	return settings, diags, nil
}

// GetProfileViews returns how many people viewed the session owner's profile
// recently.
func (c *Client) GetProfileViews(ctx context.Context) (int64, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetProfileViews", urn.Identifier{})
	defer span.End()

	raw, err := c.fetchPlan(ctx, resolve.ProfileViewsPlan())
	if err != nil {
		recordError(span, err, "failed to fetch profile views")
		return 0, nil, err
	}
	views, diags, err := schema.DecodeProfileViews(raw, c.opts)
	if err != nil {
		recordError(span, err, "failed to decode profile views")
		return 0, nil, err
	}
	countDiagnostics(ctx, diags)
	return views, diags, nil
}

// GetProfileUpdates walks the share feed of a profile. limit <= 0 reads until
// upstream returns an empty page.
func (c *Client) GetProfileUpdates(ctx context.Context, id urn.Identifier, limit int) ([]schema.FeedUpdate, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetProfileUpdates", id)
	defer span.End()

	plan, err := resolve.Resolve(id, resolve.ProfileUpdates)
	if err != nil {
		recordError(span, err, "failed to resolve profile")
		return nil, nil, err
	}
	updates, diags, err := c.feed(ctx, plan, limit)
	if err != nil {
		recordError(span, err, "failed to read profile updates")
		return nil, nil, err
	}
	return updates, diags, nil
}

// GetCompanyUpdates walks the share feed of a company, which upstream only
// serves by universal name.
func (c *Client) GetCompanyUpdates(ctx context.Context, id urn.Identifier, limit int) ([]schema.FeedUpdate, schema.Diagnostics, error) {
	ctx, span := startSpan(ctx, "client:GetCompanyUpdates", id)
	defer span.End()

	plan, err := resolve.Resolve(id, resolve.CompanyUpdates)
	if err != nil {
		recordError(span, err, "failed to resolve company")
		return nil, nil, err
	}
	updates, diags, err := c.feed(ctx, plan, limit)
	if err != nil {
		recordError(span, err, "failed to read company updates")
		return nil, nil, err
	}
	return updates, diags, nil
}

func (c *Client) feed(ctx context.Context, plan resolve.RequestPlan, limit int) ([]schema.FeedUpdate, schema.Diagnostics, error) {
	updates := []schema.FeedUpdate{}
	var diags schema.Diagnostics
	for page := 0; page < maxFeedRequests; page++ {
		raw, err := c.fetchPlan(ctx, plan.Page(page*feedPageSize, feedPageSize))
		if err != nil {
			return nil, nil, err
		}
		items, pageDiags, err := schema.DecodeFeedPage(raw, c.opts)
		if err != nil {
			return nil, nil, err
		}
		countDiagnostics(ctx, pageDiags)
		diags = append(diags, pageDiags...)
		if len(items) == 0 {
			break
		}
		if limit > 0 && len(updates)+len(items) >= limit {
			updates = append(updates, items[:limit-len(updates)]...)
			break
		}
		updates = append(updates, items...)
	}
	return slices.Clip(updates), diags, nil
}

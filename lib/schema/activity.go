package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/errs"
)

const (
	viewersCardType        = "com.linkedin.voyager.identity.me.wvmpOverview.WvmpViewersCard"
	summaryInsightCardType = "com.linkedin.voyager.identity.me.wvmpOverview.WvmpSummaryInsightCard"
	updateV2Type           = "com.linkedin.voyager.feed.render.UpdateV2"
)

func DecodePrivacySettings(raw json.RawMessage, opts Options) (PrivacySettings, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("PrivacySettings", raw)
	if err != nil {
		return PrivacySettings{}, nil, err
	}
	if err := upstreamStatus("privacySettings", o); err != nil {
		return PrivacySettings{}, nil, err
	}

	settings := PrivacySettings{
		ShowPublicProfile:          o.boolean("showPublicProfile"),
		AllowOpenProfile:           o.boolean("allowOpenProfile"),
		ShowPremiumSubscriberBadge: o.boolean("showPremiumSubscriberBadge"),
		DiscloseAsProfileViewer:    o.str("discloseAsProfileViewer"),
		ProfilePictureVisibility:   o.str("profilePictureVisibilitySetting"),
		Settings:                   make(map[string]any, len(o.fields)),
	}
	for key, value := range o.fields {
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			d.drop(o.entity, key, key, value, typeError("value", value))
			continue
		}
		settings.Settings[key] = v
	}
	return settings, d.diags, nil
}

// DecodeProfileViews reads the view count of the viewer's own profile out of
// the first summary insight card. A payload without that card counts as zero
// views.
func DecodeProfileViews(raw json.RawMessage, opts Options) (int64, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("ProfileViews", raw)
	if err != nil {
		return 0, nil, err
	}
	if err := upstreamStatus("profileViews", o); err != nil {
		return 0, nil, err
	}

	card, ok := firstUnion(d, o, "elements", viewersCardType)
	if !ok {
		return 0, d.diags, nil
	}
	summary, ok := firstUnion(d, card, "insightCards", summaryInsightCardType)
	if !ok {
		return 0, d.diags, nil
	}
	return summary.integer("numViews"), d.diags, nil
}

// firstUnion reads the first element of field and unwraps the member named
// variant from its {"value": {variant: {...}}} union.
func firstUnion(d *decoder, o object, field, variant string) (object, bool) {
	items := o.elements(field)
	if len(items) == 0 {
		return object{}, false
	}
	first, err := d.parseObject(o.entity, items[0])
	if err != nil {
		d.drop(o.entity, field, field, items[0], typeError("object", items[0]))
		return object{}, false
	}
	value, ok := first.child("value")
	if !ok {
		return object{}, false
	}
	return value.child(variant)
}

func (d *decoder) feedUpdate(o object) (FeedUpdate, error) {
	raw, err := json.Marshal(o.fields)
	if err != nil {
		return FeedUpdate{}, &errs.SchemaError{Code: errs.MalformedFragment, Entity: o.entity, Err: err}
	}
	u := FeedUpdate{
		EntityUrn: o.anyIdentifier("entityUrn"),
		Raw:       raw,
	}

	inner := o
	if value, ok := o.child("value"); ok {
		if update, ok := value.child(updateV2Type); ok {
			inner = update.as(o.entity)
		}
	}
	if actor, ok := inner.child("actor"); ok {
		u.ActorName = actor.str("name")
	}
	if commentary, ok := inner.child("commentary"); ok {
		u.Text = commentary.str("text")
	}
	return u, nil
}

// DecodeFeedPage decodes one page of profile or company updates.
func DecodeFeedPage(raw json.RawMessage, opts Options) ([]FeedUpdate, Diagnostics, error) {
	return decodeList(raw, opts, "FeedUpdate", "feedUpdates", (*decoder).feedUpdate)
}

package schema

import "encoding/json"

func (d *decoder) networkInfo(o object) *NetworkInfo {
	n := &NetworkInfo{
		FollowersCount:   o.integer("followersCount"),
		ConnectionsCount: o.integer("connectionsCount"),
		Following:        o.boolean("following"),
		Followable:       o.boolean("followable"),
	}
	// Newer payloads nest the follow state.
	if f, ok := o.child("followingInfo"); ok {
		if !o.has("followersCount") {
			n.FollowersCount = f.integer("followersCount")
		}
		if !o.has("following") {
			n.Following = f.boolean("following")
		}
	}
	if key, raw, ok := o.lookup("distance"); ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			n.Distance = s
		} else if dist, err := d.parseObject(o.entity, raw); err == nil {
			n.Distance = dist.str("value")
		} else {
			d.drop(o.entity, "distance", key, raw, typeError("distance", raw))
		}
	}
	return n
}

func DecodeNetworkInfo(raw json.RawMessage, opts Options) (*NetworkInfo, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("NetworkInfo", raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus("networkInfo", o); err != nil {
		return nil, nil, err
	}
	return d.networkInfo(o), d.diags, nil
}

// DecodeNetworkFragment is DecodeNetworkInfo for profile assembly.
func DecodeNetworkFragment(raw json.RawMessage, opts Options) ([]Contribution, Diagnostics, error) {
	n, diags, err := DecodeNetworkInfo(raw, opts)
	if err != nil {
		return nil, nil, err
	}
	return []Contribution{{Field: "networkInfo", Apply: func(p *Profile) { p.NetworkInfo = n }}}, diags, nil
}

func DecodeMemberBadges(raw json.RawMessage, opts Options) (MemberBadges, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment("MemberBadges", raw)
	if err != nil {
		return MemberBadges{}, nil, err
	}
	if err := upstreamStatus("memberBadges", o); err != nil {
		return MemberBadges{}, nil, err
	}
	return MemberBadges{
		EntityUrn:  o.anyIdentifier("entityUrn"),
		Premium:    o.boolean("premium"),
		Influencer: o.boolean("influencer"),
		OpenLink:   o.boolean("openLink"),
		JobSeeker:  o.boolean("jobSeeker"),
		Verified:   o.boolean("verified"),
	}, d.diags, nil
}


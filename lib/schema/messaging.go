package schema

import (
	"encoding/json"
	"linkedin-voyager/lib/urn"
)

const (
	messagingMemberType = "com.linkedin.voyager.messaging.MessagingMember"
	messageEventType    = "com.linkedin.voyager.messaging.event.MessageEvent"
)

// participant reads a messaging member, which wraps the mini profile of the
// person under the record name.
func (d *decoder) participant(raw json.RawMessage) (Participant, bool) {
	o, err := d.parseObject("Participant", raw)
	if err != nil {
		d.drop("Participant", "", "", raw, err)
		return Participant{}, false
	}
	if member, ok := o.child(messagingMemberType); ok {
		o = member.as("Participant")
	}
	if mini, ok := o.child("miniProfile"); ok {
		o = mini.as("Participant")
	}
	return Participant{
		EntityUrn:        o.identifier("entityUrn", urn.Profile),
		Name:             PersonName{First: o.str("firstName"), Last: o.str("lastName")},
		PublicIdentifier: o.str("publicIdentifier"),
	}, true
}

func (d *decoder) conversation(o object) (Conversation, error) {
	id, err := o.requiredIdentifier("entityUrn", urn.Conversation)
	if err != nil {
		return Conversation{}, err
	}
	c := Conversation{
		EntityUrn:       id,
		Read:            o.boolean("read"),
		TotalEventCount: o.integer("totalEventCount"),
		LastActivityAt:  o.integer("lastActivityAt"),
		Participants:    []Participant{},
	}
	for _, raw := range o.elements("participants") {
		if p, ok := d.participant(raw); ok {
			c.Participants = append(c.Participants, p)
		}
	}
	return c, nil
}

func (d *decoder) event(o object) (Event, error) {
	e := Event{
		EntityUrn: o.anyIdentifier("entityUrn"),
		CreatedAt: o.integer("createdAt"),
	}
	if raw, ok := o.raw("from"); ok {
		if p, ok := d.participant(raw); ok {
			e.From = p.EntityUrn
		}
	}
	if content, ok := o.child("eventContent"); ok {
		if msg, ok := content.child(messageEventType); ok {
			content = msg
		}
		if body, ok := content.child("attributedBody"); ok {
			e.Text = body.str("text")
		} else {
			e.Text = content.str("body")
		}
	}
	return e, nil
}

func (d *decoder) invitation(o object) (Invitation, error) {
	if inner, ok := o.child("invitation"); ok {
		o = inner.as("Invitation")
	}
	id, err := o.requiredIdentifier("entityUrn", urn.Invitation)
	if err != nil {
		return Invitation{}, err
	}
	secret, err := o.requiredStr("sharedSecret")
	if err != nil {
		return Invitation{}, err
	}
	inv := Invitation{
		EntityUrn:    id,
		SharedSecret: secret,
		Message:      o.str("message"),
		SentTime:     o.integer("sentTime"),
	}
	if raw, ok := o.raw("fromMember"); ok {
		if p, ok := d.participant(raw); ok {
			inv.FromMember = &p
		}
	}
	return inv, nil
}

func decodeList[T any](raw json.RawMessage, opts Options, entity, endpoint string, decode func(*decoder, object) (T, error)) ([]T, Diagnostics, error) {
	d := newDecoder(opts)
	o, err := d.parseFragment(entity, raw)
	if err != nil {
		return nil, nil, err
	}
	if err := upstreamStatus(endpoint, o); err != nil {
		return nil, nil, err
	}
	out, err := section(o, "elements", entity, func(item object) (T, error) {
		return decode(d, item)
	})
	if err != nil {
		return nil, nil, err
	}
	return out, d.diags, nil
}

func DecodeConversations(raw json.RawMessage, opts Options) ([]Conversation, Diagnostics, error) {
	return decodeList(raw, opts, "Conversation", "conversations", (*decoder).conversation)
}

func DecodeConversationDetails(raw json.RawMessage, opts Options) (ConversationDetails, Diagnostics, error) {
	events, diags, err := decodeList(raw, opts, "Event", "conversationEvents", (*decoder).event)
	if err != nil {
		return ConversationDetails{}, nil, err
	}
	return ConversationDetails{Events: events}, diags, nil
}

func DecodeInvitations(raw json.RawMessage, opts Options) ([]Invitation, Diagnostics, error) {
	return decodeList(raw, opts, "Invitation", "invitations", (*decoder).invitation)
}

package resolve

import (
	"encoding/json"
	"errors"
	"linkedin-voyager/lib/urn"
	"net/http"
	"net/url"
	"strings"
)

var errEmptyMessage = errors.New("resolve: message text is empty")

type messageCreate struct {
	Body             string         `json:"body"`
	Attachments      []any          `json:"attachments"`
	AttributedBody   attributedBody `json:"attributedBody"`
	MediaAttachments []any          `json:"mediaAttachments"`
}

type attributedBody struct {
	Text       string `json:"text"`
	Attributes []any  `json:"attributes"`
}

type eventCreate struct {
	Value struct {
		MessageCreate messageCreate `json:"com.linkedin.voyager.messaging.create.MessageCreate"`
	} `json:"value"`
}

func newEventCreate(text string) eventCreate {
	var e eventCreate
	e.Value.MessageCreate = messageCreate{
		Body:             text,
		Attachments:      []any{},
		AttributedBody:   attributedBody{Text: text, Attributes: []any{}},
		MediaAttachments: []any{},
	}
	return e
}

func post(endpoint Endpoint, id urn.Identifier, path, query string, body any) (RequestPlan, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return RequestPlan{}, err
	}
	return RequestPlan{
		Endpoint:   endpoint,
		Identifier: id,
		Method:     http.MethodPost,
		Path:       path,
		RawQuery:   query,
		Body:       data,
	}, nil
}

// SendMessagePlan posts text to an existing conversation.
func SendMessagePlan(conversation urn.Identifier, text string) (RequestPlan, error) {
	if err := requireReference(conversation, urn.Conversation); err != nil {
		return RequestPlan{}, err
	}
	if strings.TrimSpace(text) == "" {
		return RequestPlan{}, errEmptyMessage
	}
	return post(SendMessage, conversation,
		"/messaging/conversations/"+url.PathEscape(conversation.ID())+"/events",
		"action=create",
		struct {
			EventCreate eventCreate `json:"eventCreate"`
		}{newEventCreate(text)},
	)
}

// StartConversationPlan opens a new conversation with recipients, all of
// which must be profile references.
func StartConversationPlan(recipients []urn.Identifier, text string) (RequestPlan, error) {
	if len(recipients) == 0 {
		return RequestPlan{}, errors.New("resolve: a conversation needs at least one recipient")
	}
	ids := make([]string, len(recipients))
	for i, r := range recipients {
		if err := requireReference(r, urn.Profile); err != nil {
			return RequestPlan{}, err
		}
		ids[i] = r.ID()
	}
	if strings.TrimSpace(text) == "" {
		return RequestPlan{}, errEmptyMessage
	}

	type conversationCreate struct {
		EventCreate eventCreate `json:"eventCreate"`
		Recipients  []string    `json:"recipients"`
		Subtype     string      `json:"subtype"`
	}
	return post(StartConversation, urn.Identifier{},
		"/messaging/conversations",
		"action=create",
		struct {
			KeyVersion         string             `json:"keyVersion"`
			ConversationCreate conversationCreate `json:"conversationCreate"`
		}{
			KeyVersion: "LEGACY_INBOX",
			ConversationCreate: conversationCreate{
				EventCreate: newEventCreate(text),
				Recipients:  ids,
				Subtype:     "MEMBER_TO_MEMBER",
			},
		},
	)
}

func MarkConversationSeenPlan(conversation urn.Identifier) (RequestPlan, error) {
	if err := requireReference(conversation, urn.Conversation); err != nil {
		return RequestPlan{}, err
	}
	var patch struct {
		Patch struct {
			Set struct {
				Read bool `json:"read"`
			} `json:"$set"`
		} `json:"patch"`
	}
	patch.Patch.Set.Read = true
	return post(MarkConversationSeen, conversation,
		"/messaging/conversations/"+url.PathEscape(conversation.ID()), "", patch)
}

// ReplyInvitationPlan accepts or ignores a received invitation. The shared
// secret comes with the invitation listing.
func ReplyInvitationPlan(invitation urn.Identifier, sharedSecret string, accept bool) (RequestPlan, error) {
	if err := requireReference(invitation, urn.Invitation); err != nil {
		return RequestPlan{}, err
	}
	if sharedSecret == "" {
		return RequestPlan{}, errors.New("resolve: replying to an invitation needs its shared secret")
	}
	action := "ignore"
	if accept {
		action = "accept"
	}
	return post(ReplyInvitation, invitation,
		"/relationships/invitations/"+url.PathEscape(invitation.ID()),
		"action="+action,
		struct {
			InvitationID           string `json:"invitationId"`
			InvitationSharedSecret string `json:"invitationSharedSecret"`
			IsGenericInvitation    bool   `json:"isGenericInvitation"`
		}{invitation.ID(), sharedSecret, false},
	)
}

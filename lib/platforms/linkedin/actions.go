package linkedin

import (
	"context"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
)

// write sends a planned write. A 2xx response that embeds an error status is
// still a failure.
func (c *Client) write(ctx context.Context, plan resolve.RequestPlan, plannedErr error, name string) error {
	ctx, span := startSpan(ctx, "client:"+name, plan.Identifier)
	defer span.End()

	if plannedErr != nil {
		recordError(span, plannedErr, "failed to plan request")
		return plannedErr
	}
	body, err := c.fetcher.FetchRaw(ctx, plan)
	if err != nil {
		recordError(span, err, "request failed")
		return err
	}
	if err := schema.UpstreamStatus(string(plan.Endpoint), body); err != nil {
		recordError(span, err, "upstream rejected the request")
		return err
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, conversation urn.Identifier, text string) error {
	plan, err := resolve.SendMessagePlan(conversation, text)
	return c.write(ctx, plan, err, "SendMessage")
}

// StartConversation opens a conversation with recipients, which must be
// profile references.
func (c *Client) StartConversation(ctx context.Context, recipients []urn.Identifier, text string) error {
	plan, err := resolve.StartConversationPlan(recipients, text)
	return c.write(ctx, plan, err, "StartConversation")
}

func (c *Client) MarkConversationSeen(ctx context.Context, conversation urn.Identifier) error {
	plan, err := resolve.MarkConversationSeenPlan(conversation)
	return c.write(ctx, plan, err, "MarkConversationSeen")
}

// ReplyInvitation accepts or ignores an invitation from GetInvitations.
func (c *Client) ReplyInvitation(ctx context.Context, invitation schema.Invitation, accept bool) error {
	plan, err := resolve.ReplyInvitationPlan(invitation.EntityUrn, invitation.SharedSecret, accept)
	return c.write(ctx, plan, err, "ReplyInvitation")
}

func (c *Client) RemoveConnection(ctx context.Context, id urn.Identifier) error {
	plan, err := resolve.Resolve(id, resolve.RemoveConnection)
	return c.write(ctx, plan, err, "RemoveConnection")
}

package commands

import (
	"fmt"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	invitationsStart *int
	invitationsCount *int
)

func init() {
	invitationsStart = invitationsCmd.Flags().Int("start", 0, "Offset of the first invitation.")
	invitationsCount = invitationsCmd.Flags().Int("count", 20, "How many invitations to list.")

	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(conversationCmd)
	rootCmd.AddCommand(invitationsCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(seenCmd)
	rootCmd.AddCommand(replyCmd)
	rootCmd.AddCommand(disconnectCmd)
}

func parseIdentifiers(raw []string) ([]urn.Identifier, error) {
	ids := make([]urn.Identifier, len(raw))
	for i, r := range raw {
		id, err := parseIdentifier(r)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func millis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format(time.DateTime)
}

func participantNames(ps []schema.Participant) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = orDash(p.Name.Full())
	}
	return strings.Join(names, ", ")
}

var conversationsCmd = &cobra.Command{
	Use:   "conversations [profile urn]",
	Short: "Lists the inbox, or only the conversations with one profile.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var participant urn.Identifier
		if len(args) == 1 {
			var err error
			participant, err = parseIdentifier(args[0])
			if err != nil {
				return err
			}
		}
		conversations, diags, err := session.GetConversations(cmd.Context(), participant)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(conversations, func(t table.Writer) {
			t.AppendHeader(table.Row{"Id", "With", "Events", "Read", "Last activity"})
			for _, c := range conversations {
				t.AppendRow(table.Row{
					c.ID(),
					participantNames(c.Participants),
					c.TotalEventCount,
					c.Read,
					millis(c.LastActivityAt),
				})
			}
		})
	},
}

var conversationCmd = &cobra.Command{
	Use:   "conversation <conversation urn>",
	Short: "Lists the messages of a conversation.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		details, diags, err := session.GetConversationDetails(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(details, func(t table.Writer) {
			t.AppendHeader(table.Row{"Sent", "From", "Text"})
			for _, e := range details.Events {
				t.AppendRow(table.Row{millis(e.CreatedAt), orDash(e.From.String()), e.Text})
			}
		})
	},
}

var invitationsCmd = &cobra.Command{
	Use:   "invitations [--start n] [--count n]",
	Short: "Lists pending connection invitations.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		invitations, diags, err := session.GetInvitations(cmd.Context(), *invitationsStart, *invitationsCount)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(invitations, func(t table.Writer) {
			t.AppendHeader(table.Row{"Urn", "From", "Sent", "Message"})
			for _, inv := range invitations {
				from := "-"
				if inv.FromMember != nil {
					from = orDash(inv.FromMember.Name.Full())
				}
				t.AppendRow(table.Row{inv.EntityUrn.String(), from, millis(inv.SentTime), truncate(inv.Message, 60)})
			}
		})
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <conversation urn | profile urn...> <text>",
	Short: "Sends a message to a conversation, or starts one with the given profiles.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := parseIdentifiers(args[:len(args)-1])
		if err != nil {
			return err
		}
		text := args[len(args)-1]
		if len(targets) == 1 && urn.Conversation.Has(targets[0].Kind()) {
			return session.SendMessage(cmd.Context(), targets[0], text)
		}
		return session.StartConversation(cmd.Context(), targets, text)
	},
}

var seenCmd = &cobra.Command{
	Use:   "seen <conversation urn>",
	Short: "Marks a conversation as read.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		return session.MarkConversationSeen(cmd.Context(), id)
	},
}

var replyCmd = &cobra.Command{
	Use:   "reply <invitation urn> <shared secret> <accept|ignore>",
	Short: "Accepts or ignores a pending invitation.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		var accept bool
		switch args[2] {
		case "accept":
			accept = true
		case "ignore":
		default:
			return fmt.Errorf("unknown reply %q, expected accept or ignore", args[2])
		}
		return session.ReplyInvitation(cmd.Context(), schema.Invitation{EntityUrn: id, SharedSecret: args[1]}, accept)
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect <handle or urn>",
	Short: "Removes a connection.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		return session.RemoveConnection(cmd.Context(), id)
	},
}

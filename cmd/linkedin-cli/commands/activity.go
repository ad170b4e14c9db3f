package commands

import (
	"fmt"
	"linkedin-voyager/lib/schema"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	updatesLimit   *int
	updatesCompany *bool
)

func init() {
	updatesLimit = updatesCmd.Flags().Int("limit", 20, "How many updates to read, 0 reads the whole feed.")
	updatesCompany = updatesCmd.Flags().Bool("company", false, "Read the feed of a company instead of a profile.")

	rootCmd.AddCommand(privacyCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(updatesCmd)
}

var privacyCmd = &cobra.Command{
	Use:   "privacy <handle or urn>",
	Short: "Fetches the privacy settings of a profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		settings, diags, err := session.GetPrivacySettings(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(settings, func(t table.Writer) {
			t.AppendHeader(table.Row{"Setting", "Value"})
			keys := make([]string, 0, len(settings.Settings))
			for key := range settings.Settings {
				keys = append(keys, key)
			}
			slices.Sort(keys)
			for _, key := range keys {
				t.AppendRow(table.Row{key, truncate(fmt.Sprint(settings.Settings[key]), 60)})
			}
		})
	},
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Shows how many people viewed your profile recently.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		views, diags, err := session.GetProfileViews(cmd.Context())
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(map[string]int64{"numViews": views}, func(t table.Writer) {
			t.AppendRow(table.Row{"Profile views", views})
		})
	},
}

var updatesCmd = &cobra.Command{
	Use:   "updates <handle or urn> [--company] [--limit n]",
	Short: "Reads the share feed of a profile or a company.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		var updates []schema.FeedUpdate
		var diags schema.Diagnostics
		if *updatesCompany {
			updates, diags, err = session.GetCompanyUpdates(cmd.Context(), id, *updatesLimit)
		} else {
			updates, diags, err = session.GetProfileUpdates(cmd.Context(), id, *updatesLimit)
		}
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(updates, func(t table.Writer) {
			t.AppendHeader(table.Row{"Urn", "Actor", "Text"})
			for _, u := range updates {
				text := strings.Join(strings.Fields(u.Text), " ")
				t.AppendRow(table.Row{orDash(u.EntityUrn.String()), orDash(u.ActorName), orDash(truncate(text, 80))})
			}
		})
	},
}

package commands

import (
	"fmt"
	"linkedin-voyager/lib/partialdate"
	"linkedin-voyager/lib/schema"
	"linkedin-voyager/lib/urn"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var positionsAt *string

func init() {
	positionsAt = positionsCmd.Flags().String("at", "", "The company to match positions against.")
	positionsCmd.MarkFlagRequired("at")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(positionsCmd)
}

func parseIdentifier(raw string) (urn.Identifier, error) {
	id, err := urn.Parse(raw)
	if err != nil {
		return urn.Identifier{}, fmt.Errorf("%q is neither a public handle nor a urn: %w", raw, err)
	}
	return id, nil
}

func period(p *partialdate.TimePeriod) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

func experienceRows(t table.Writer, experience []schema.Experience) {
	t.AppendHeader(table.Row{"Title", "Company", "Period", "Location"})
	for _, e := range experience {
		for _, pos := range e.Positions() {
			company := pos.CompanyName
			if company == "" && e.Group != nil {
				company = e.Group.Name
			}
			t.AppendRow(table.Row{
				orDash(pos.Title),
				orDash(company),
				period(pos.TimePeriod),
				orDash(pos.LocationName),
			})
		}
	}
}

var profileCmd = &cobra.Command{
	Use:   "profile <handle or urn>",
	Short: "Fetches a profile with its contact and network info.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		profile, diags, err := session.GetProfile(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(profile, func(t table.Writer) {
			t.SetTitle(profile.FullName())
			t.AppendRows([]table.Row{
				{"Urn", orDash(profile.EntityUrn.String())},
				{"Handle", orDash(profile.PublicIdentifier)},
				{"Headline", orDash(profile.Headline)},
				{"Location", orDash(profile.GeoLocationName)},
				{"Industry", orDash(profile.IndustryName)},
				{"Positions", strconv.Itoa(len(profile.Experience))},
				{"Education", strconv.Itoa(len(profile.Education))},
				{"Skills", strconv.Itoa(len(profile.Skills))},
			})
			if profile.NetworkInfo != nil {
				t.AppendRow(table.Row{"Followers", profile.NetworkInfo.FollowersCount})
			}
			if profile.ContactInfo != nil {
				for _, email := range profile.ContactInfo.Emails {
					t.AppendRow(table.Row{"Email", email.String()})
				}
			}
		})
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact <handle or urn>",
	Short: "Fetches the contact info of a profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		info, diags, err := session.GetContactInfo(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(info, func(t table.Writer) {
			t.AppendHeader(table.Row{"Kind", "Value", "Label"})
			for _, email := range info.Emails {
				t.AppendRow(table.Row{"email", email.String(), "-"})
			}
			for _, phone := range info.Phones {
				t.AppendRow(table.Row{"phone", phone.Number.String(), orDash(phone.Type)})
			}
			for _, site := range info.Websites {
				label := site.Category
				if label == "" {
					label = site.Label
				}
				t.AppendRow(table.Row{"website", site.URL.String(), orDash(label)})
			}
			for _, handle := range info.TwitterHandles {
				t.AppendRow(table.Row{"twitter", "@" + handle, "-"})
			}
			for _, im := range info.InstantMessengers {
				t.AppendRow(table.Row{"im", im.ID, orDash(im.Provider)})
			}
			if !info.BirthDate.IsZero() {
				t.AppendRow(table.Row{"birth date", info.BirthDate.String(), "-"})
			}
			if info.Address != nil {
				t.AppendRow(table.Row{"address", info.Address.Raw, "-"})
			}
		})
	},
}

var networkCmd = &cobra.Command{
	Use:   "network <handle or urn>",
	Short: "Fetches follower and connection counts of a profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		info, diags, err := session.GetNetworkInfo(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(info, func(t table.Writer) {
			t.AppendRows([]table.Row{
				{"Followers", info.FollowersCount},
				{"Connections", info.ConnectionsCount},
				{"Distance", orDash(info.Distance)},
				{"Following", info.Following},
			})
		})
	},
}

var badgesCmd = &cobra.Command{
	Use:   "badges <handle or urn>",
	Short: "Fetches the member badges of a profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		badges, diags, err := session.GetMemberBadges(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(badges, func(t table.Writer) {
			t.AppendRows([]table.Row{
				{"Premium", badges.Premium},
				{"Influencer", badges.Influencer},
				{"Open link", badges.OpenLink},
				{"Job seeker", badges.JobSeeker},
				{"Verified", badges.Verified},
			})
		})
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills <handle or urn>",
	Short: "Lists the skills of a profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		skills, diags, err := session.GetSkills(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(skills, func(t table.Writer) {
			t.AppendHeader(table.Row{"Skill"})
			for _, s := range skills {
				t.AppendRow(table.Row{s.Name})
			}
		})
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions <handle or urn> --at <company>",
	Short: "Lists the positions a profile held at a company, matched by name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		positions, diags, err := session.PositionsAt(cmd.Context(), id, *positionsAt)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		experience := make([]schema.Experience, len(positions))
		for i := range positions {
			experience[i] = schema.Experience{Position: &positions[i]}
		}
		return render(positions, func(t table.Writer) {
			experienceRows(t, experience)
		})
	},
}

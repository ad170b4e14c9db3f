package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(companyCmd)
	rootCmd.AddCommand(schoolCmd)
}

var companyCmd = &cobra.Command{
	Use:   "company <universal name or urn>",
	Short: "Looks up a company.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		company, diags, err := session.GetCompany(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(company, func(t table.Writer) {
			t.SetTitle(company.Name)
			t.AppendRows([]table.Row{
				{"Urn", orDash(company.EntityUrn.String())},
				{"Universal name", orDash(company.UniversalName)},
				{"Tagline", orDash(company.Tagline)},
				{"Website", orDash(company.Website.String())},
				{"Industries", orDash(strings.Join(company.Industries, ", "))},
				{"Staff", company.StaffCount},
				{"Logo", orDash(company.Logo.URL())},
			})
		})
	},
}

var schoolCmd = &cobra.Command{
	Use:   "school <universal name or urn>",
	Short: "Looks up a school.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentifier(args[0])
		if err != nil {
			return err
		}
		school, diags, err := session.GetSchool(cmd.Context(), id)
		if err != nil {
			return err
		}
		defer renderDiagnostics(diags)

		return render(school, func(t table.Writer) {
			t.SetTitle(school.Name)
			t.AppendRows([]table.Row{
				{"Urn", orDash(school.EntityUrn.String())},
				{"Website", orDash(school.Website.String())},
				{"Logo", orDash(school.Logo.URL())},
			})
		})
	},
}

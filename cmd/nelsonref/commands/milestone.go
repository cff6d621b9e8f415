// ABOUTME: CLI command to find developmental milestones
// ABOUTME: Filters by age in months, developmental domain, and text search
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/models"
)

var (
	milestoneAge    int
	milestoneDomain string
	milestoneTerm   string
)

// NewMilestoneCmd creates the milestone command group
func NewMilestoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Developmental milestones",
	}

	findCmd := &cobra.Command{
		Use:   "find",
		Short: "Find milestones by age, domain, or text",
		Long: `Find developmental milestones. At least one filter is required.

Examples:
  nelsonref milestone find --age 18
  nelsonref milestone find --domain gross_motor
  nelsonref milestone find --age 24 --search "two-word"`,
		RunE: runMilestoneFind,
	}
	findCmd.Flags().IntVar(&milestoneAge, "age", -1, "Age in months")
	findCmd.Flags().StringVar(&milestoneDomain, "domain", "", "Domain: gross_motor, fine_motor, language, cognitive, social_emotional, adaptive")
	findCmd.Flags().StringVar(&milestoneTerm, "search", "", "Text search over milestone text and description")

	cmd.AddCommand(findCmd)
	return cmd
}

func runMilestoneFind(cmd *cobra.Command, args []string) error {
	query := models.MilestoneQuery{
		Domain:     models.DevelopmentalDomain(milestoneDomain),
		SearchTerm: milestoneTerm,
	}
	if milestoneAge >= 0 {
		age := milestoneAge
		query.AgeMonths = &age
	}
	if err := query.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	milestones, err := store.Milestones.Find(query)
	if err != nil {
		return fmt.Errorf("finding milestones: %w", err)
	}

	if len(milestones) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No milestones found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, milestones)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "AGE\tDOMAIN\tMILESTONE\tTYPICAL RANGE\tRED FLAG\n")
	for _, m := range milestones {
		redFlag := "-"
		if m.RedFlagAge != nil {
			redFlag = fmt.Sprintf("%dmo", *m.RedFlagAge)
		}
		fmt.Fprintf(w, "%dmo\t%s\t%s\t%d-%dmo\t%s\n",
			m.AgeMonths,
			m.Domain,
			truncate(m.MilestoneText, 50),
			m.TypicalAgeRangeStart,
			m.TypicalAgeRangeEnd,
			redFlag)
	}
	return w.Flush()
}

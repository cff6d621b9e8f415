// ABOUTME: CLI command to search emergency protocols
// ABOUTME: Filters by search term, protocol type, and age group
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/models"
)

var (
	protocolType     string
	protocolAgeGroup string
)

// NewProtocolCmd creates the protocol command group
func NewProtocolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Emergency protocols",
	}

	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search emergency protocols",
		Long: `Search emergency protocols by name or keyword.

Examples:
  nelsonref protocol search anaphylaxis
  nelsonref protocol search seizure --type seizures --age-group infant`,
		Args: cobra.ExactArgs(1),
		RunE: runProtocolSearch,
	}
	searchCmd.Flags().StringVar(&protocolType, "type", "", "Protocol type (e.g. cardiac_arrest, anaphylaxis)")
	searchCmd.Flags().StringVar(&protocolAgeGroup, "age-group", "", "Age group (e.g. neonate, infant, child)")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a protocol with its steps as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocolShow,
	}

	cmd.AddCommand(searchCmd, showCmd)
	return cmd
}

func runProtocolSearch(cmd *cobra.Command, args []string) error {
	query := models.EmergencyProtocolQuery{
		SearchTerm:   args[0],
		AgeGroup:     protocolAgeGroup,
		ProtocolType: models.EmergencyType(protocolType),
	}
	if err := query.Validate(); err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	protocols, err := store.Protocols.Search(query)
	if err != nil {
		return fmt.Errorf("searching protocols: %w", err)
	}

	if len(protocols) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No protocols found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, protocols)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tTYPE\tAGE GROUP\tPRIORITY\n")
	for _, p := range protocols {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			p.ID,
			truncate(p.Name, 40),
			p.ProtocolType,
			p.AgeGroup,
			p.PriorityLevel)
	}
	return w.Flush()
}

func runProtocolShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "protocol")
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	protocol, err := store.Protocols.GetByID(id)
	if err != nil {
		return fmt.Errorf("looking up protocol: %w", err)
	}
	if protocol == nil {
		return fmt.Errorf("protocol %s not found", args[0])
	}

	return printJSON(cmd, protocol)
}

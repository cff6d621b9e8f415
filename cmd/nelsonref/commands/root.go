// ABOUTME: Root CLI command with global flags shared by all subcommands
// ABOUTME: Wires up the subcommand tree and provides Execute for main
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nelsonref",
		Short: "Pediatric clinical reference from the command line",
		Long: `nelsonref - pediatric clinical reference

Drug dosing, emergency protocols, developmental milestones, growth
percentiles, and symptom information backed by a local SQLite database
seeded from Nelson Textbook of Pediatrics content.

Examples:
  nelsonref drug dose amoxicillin --weight 12.50
  nelsonref protocol search anaphylaxis
  nelsonref milestone find --age 18
  nelsonref seed reference.yaml
  nelsonref mcp`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewDrugCmd())
	cmd.AddCommand(NewProtocolCmd())
	cmd.AddCommand(NewMilestoneCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewMCPCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

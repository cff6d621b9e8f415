// ABOUTME: CLI commands for drug monographs and weight-based dose lookup
// ABOUTME: Dose lookup applies the same matching rules as the MCP tool
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/models"
)

var (
	doseWeight     string
	doseAgeMonths  int
	doseIndication string
)

// NewDrugCmd creates the drug command group
func NewDrugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drug",
		Short: "Drug monographs and dosing",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List drug monographs",
		RunE:  runDrugList,
	}

	showCmd := &cobra.Command{
		Use:   "show <generic-name>",
		Short: "Show a drug monograph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runDrugShow,
	}

	doseCmd := &cobra.Command{
		Use:   "dose <generic-name>",
		Short: "Look up dosing rules for a patient",
		Long: `Look up dosing rules matching a drug and patient.

Weight is in kilograms with at most two decimal places.

Examples:
  nelsonref drug dose amoxicillin --weight 12.50
  nelsonref drug dose ibuprofen --weight 9.80 --age 14 --indication fever`,
		Args: cobra.ExactArgs(1),
		RunE: runDrugDose,
	}
	doseCmd.Flags().StringVar(&doseWeight, "weight", "", "Patient weight in kg (required)")
	doseCmd.Flags().IntVar(&doseAgeMonths, "age", -1, "Patient age in months")
	doseCmd.Flags().StringVar(&doseIndication, "indication", "", "Filter by indication")
	_ = doseCmd.MarkFlagRequired("weight")

	cmd.AddCommand(listCmd, showCmd, doseCmd)
	return cmd
}

func runDrugList(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	drugs, err := store.Drugs.List()
	if err != nil {
		return fmt.Errorf("listing drugs: %w", err)
	}

	if len(drugs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No drugs found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, drugs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tGENERIC NAME\tCLASS\tBRAND NAMES\n")
	for _, d := range drugs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			d.ID,
			d.GenericName,
			d.DrugClass,
			truncate(strings.Join(d.BrandNames, ", "), 40))
	}
	return w.Flush()
}

func runDrugShow(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	drug, err := store.Drugs.GetByName(args[0])
	if err != nil {
		return fmt.Errorf("looking up drug: %w", err)
	}
	if drug == nil {
		return fmt.Errorf("drug %q not found", args[0])
	}

	return printJSON(cmd, drug)
}

func runDrugDose(cmd *cobra.Command, args []string) error {
	weight, err := decimal.NewFromString(doseWeight)
	if err != nil {
		return fmt.Errorf("invalid weight %q", doseWeight)
	}

	query := models.DrugDosageQuery{
		DrugName:   args[0],
		WeightKg:   weight,
		Indication: doseIndication,
	}
	if doseAgeMonths >= 0 {
		age := doseAgeMonths
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

	drug, dosages, err := store.Dosages.FindForQuery(store.Drugs, query)
	if err != nil {
		return fmt.Errorf("looking up dosages: %w", err)
	}
	if drug == nil {
		return fmt.Errorf("drug %q not found", args[0])
	}

	if len(dosages) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No dosing rules match this patient\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, map[string]any{
			"drug":    drug,
			"dosages": dosages,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", drug.GenericName, drug.DrugClass)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INDICATION\tDOSE\tUNIT\tFREQUENCY\tROUTE\n")
	for _, d := range dosages {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(d.Indication, 30),
			d.DoseAmount.StringFixed(models.DoseScale),
			d.DoseUnit,
			d.Frequency,
			d.Route)
	}
	return w.Flush()
}

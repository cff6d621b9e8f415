// ABOUTME: CLI commands to manage user accounts
// ABOUTME: Supports creating, listing, and showing users
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/models"
)

var (
	userEmail       string
	userFullName    string
	userRole        string
	userInstitution string
	userSpecialty   string
)

// NewUserCmd creates the user command group
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	addCmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create a new user",
		Long: `Create a new user account.

Examples:
  nelsonref user add jdoe --email jdoe@hospital.org --name "Jane Doe"
  nelsonref user add resident1 --email r1@peds.edu --name "R. One" --role resident`,
		Args: cobra.ExactArgs(1),
		RunE: runUserAdd,
	}
	addCmd.Flags().StringVar(&userEmail, "email", "", "Email address (required)")
	addCmd.Flags().StringVar(&userFullName, "name", "", "Full name (required)")
	addCmd.Flags().StringVar(&userRole, "role", "", "Role: student, resident, clinician, admin (default student)")
	addCmd.Flags().StringVar(&userInstitution, "institution", "", "Institution")
	addCmd.Flags().StringVar(&userSpecialty, "specialty", "", "Specialty")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runUserList,
	}

	showCmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserShow,
	}

	cmd.AddCommand(addCmd, listCmd, showCmd)
	return cmd
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	create := models.UserCreate{
		Username:    args[0],
		Email:       userEmail,
		FullName:    userFullName,
		Role:        models.UserRole(userRole),
		Institution: userInstitution,
		Specialty:   userSpecialty,
	}

	user, err := models.NewUser(create)
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Users.Create(user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
	}
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	users, err := store.Users.List()
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	if len(users) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No users found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, users)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tUSERNAME\tNAME\tROLE\tACTIVE\tCREATED\n")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID,
			u.Username,
			truncate(u.FullName, 30),
			u.Role,
			u.IsActive,
			formatTime(u.CreatedAt))
	}
	return w.Flush()
}

func runUserShow(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	user, err := store.Users.GetByUsername(args[0])
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %q not found", args[0])
	}

	return printJSON(cmd, user)
}

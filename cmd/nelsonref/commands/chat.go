// ABOUTME: CLI commands to manage chat sessions and their messages
// ABOUTME: Supports creating, listing, archiving, and deleting sessions
package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pedbot/nelsonref/internal/models"
)

var (
	chatUserID int64
	chatTitle  string
)

// NewChatCmd creates the chat command group
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Manage chat sessions",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new chat session",
		Long: `Start a new chat session for a user.

Examples:
  nelsonref chat new --user 1
  nelsonref chat new --user 1 --title "Febrile seizure workup"`,
		RunE: runChatNew,
	}
	newCmd.Flags().Int64Var(&chatUserID, "user", 0, "Owning user id (required)")
	newCmd.Flags().StringVar(&chatTitle, "title", "", "Session title")
	_ = newCmd.MarkFlagRequired("user")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List chat sessions for a user",
		RunE:  runChatList,
	}
	listCmd.Flags().Int64Var(&chatUserID, "user", 0, "Owning user id (required)")
	_ = listCmd.MarkFlagRequired("user")

	archiveCmd := &cobra.Command{
		Use:   "archive <session-id>",
		Short: "Archive a chat session",
		Args:  cobra.ExactArgs(1),
		RunE:  runChatArchive,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a chat session and all its messages",
		Args:  cobra.ExactArgs(1),
		RunE:  runChatDelete,
	}

	messagesCmd := &cobra.Command{
		Use:   "messages <session-id>",
		Short: "Show the messages of a session in order",
		Args:  cobra.ExactArgs(1),
		RunE:  runChatMessages,
	}

	cmd.AddCommand(newCmd, listCmd, archiveCmd, deleteCmd, messagesCmd)
	return cmd
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func runChatNew(cmd *cobra.Command, args []string) error {
	session, err := models.NewChatSession(chatUserID, models.ChatSessionCreate{Title: chatTitle})
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Sessions.Create(session); err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Started session %d (%s)\n", session.ID, session.Title)
	}
	return nil
}

func runChatList(cmd *cobra.Command, args []string) error {
	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sessions, err := store.Sessions.ListByUser(chatUserID)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No sessions found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, sessions)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tARCHIVED\tUPDATED\n")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n",
			s.ID,
			truncate(s.Title, 40),
			s.IsArchived,
			formatTime(s.UpdatedAt))
	}
	return w.Flush()
}

func runChatArchive(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "session")
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Sessions.SetArchived(id, true); err != nil {
		return fmt.Errorf("archiving session: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Archived session %d\n", id)
	}
	return nil
}

func runChatDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "session")
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Sessions.Delete(id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d and its messages\n", id)
	}
	return nil
}

func runChatMessages(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "session")
	if err != nil {
		return err
	}

	store, _, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	messages, err := store.Messages.ListBySession(id)
	if err != nil {
		return fmt.Errorf("listing messages: %w", err)
	}

	if len(messages) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No messages found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, messages)
	}

	for _, m := range messages {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n%s\n\n",
			formatTime(m.CreatedAt), m.Role, m.Content)
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// SessionView mirrors the admin session endpoints' response
type SessionView struct {
	SessionID      string `json:"session_id"`
	Authenticated  bool   `json:"authenticated"`
	ChallengeCount int    `json:"challenge_count"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and modify visitor sessions",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's authenticated flag and challenge count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, "GET", "/admin/sessions/"+url.PathEscape(args[0]), "")
	},
}

var sessionUnlockCmd = &cobra.Command{
	Use:   "unlock <session-id>",
	Short: "Mark a session as authenticated",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, "POST", "/admin/sessions/"+url.PathEscape(args[0])+"/unlock", "Session '%s' unlocked.\n")
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Clear a session's authenticated flag and challenge count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, "POST", "/admin/sessions/"+url.PathEscape(args[0])+"/reset", "Session '%s' reset.\n")
	},
}

// runSession calls one session endpoint and prints the resulting view.
// done, if set, is printed with the session id before the table.
func runSession(cmd *cobra.Command, method, path, done string) error {
	client := NewClient(adminURL, adminToken)
	data, err := client.Request(method, path)
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(cmd.OutOrStdout(), data)
	}

	var view SessionView
	if err := json.Unmarshal(data, &view); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if done != "" {
		fmt.Fprintf(cmd.OutOrStdout(), done, view.SessionID)
	}
	printTable(cmd.OutOrStdout(),
		[]string{"SESSION ID", "AUTHENTICATED", "CHALLENGES"},
		[][]string{{view.SessionID, strconv.FormatBool(view.Authenticated), strconv.Itoa(view.ChallengeCount)}},
	)
	return nil
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionUnlockCmd)
	sessionCmd.AddCommand(sessionResetCmd)
}

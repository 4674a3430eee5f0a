package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// StatusResponse mirrors GET /admin/status
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server and session store status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(adminURL, adminToken)
		data, err := client.Request("GET", "/admin/status")
		if err != nil {
			return err
		}

		if output == "json" {
			return printJSON(cmd.OutOrStdout(), data)
		}

		var resp StatusResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		printTable(cmd.OutOrStdout(),
			[]string{"SERVICE", "STORE", "STATUS", "REACHABLE"},
			[][]string{{resp.Service, resp.Store, resp.Status, strconv.FormatBool(resp.Status == "ok")}},
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

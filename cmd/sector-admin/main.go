// Package main provides the sector-admin CLI tool for inspecting sessions.
package main

import (
	"os"

	"github.com/QinCai-rui/The-Forbidden-Sector/cmd/sector-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

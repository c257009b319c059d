// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zotlit/internal/picker"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Pick one item interactively and sync it",
	Long: `Search fetches the full Zotero collection and presents the item titles
in an interactive filterable list. The chosen item is written as a
literature note regardless of when it was added. Dismissing the picker
writes nothing.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	s := newSyncer(cmd, cfg, picker.Picker{})

	start := time.Now()
	sum, err := s.SyncSelected(cmd.Context())
	if err != nil {
		return reportRunError(err, cfg)
	}
	printSummary(sum, time.Since(start))
	return nil
}

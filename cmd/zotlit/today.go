// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Sync items added today into the vault",
	Long: `Today fetches the most recently added items from the local Zotero
database and writes a literature note for each item added on the current
UTC calendar day. Attachments, untitled items, and items whose note
already exists are skipped.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	s := newSyncer(cmd, cfg, nil)

	start := time.Now()
	sum, err := s.SyncToday(cmd.Context())
	if err != nil {
		return reportRunError(err, cfg)
	}
	printSummary(sum, time.Since(start))
	return nil
}

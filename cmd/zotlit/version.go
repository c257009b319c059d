package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of zotlit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zotlit %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

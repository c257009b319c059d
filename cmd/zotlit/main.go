// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zotlit CLI, which syncs
// bibliographic items from the local Zotero database into literature
// notes in a personal knowledge vault.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/zotlit/internal/sync"
	"github.com/pdiddy/zotlit/internal/zotero"
	"github.com/pdiddy/zotlit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Running zotlit with no subcommand is the
// same as running "zotlit today".
var rootCmd = &cobra.Command{
	Use:   "zotlit",
	Short: "Sync Zotero items into vault literature notes",
	Long: `zotlit converts bibliographic items from the local Zotero database into
Markdown literature notes in a knowledge vault. Each note carries a
frontmatter header derived from the item's metadata and is named after
the item's title. Existing notes are never overwritten.

With no subcommand, zotlit syncs the items added today. Use "search" to
pick a single item interactively regardless of when it was added.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runToday,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./zotlit.yaml or ~/.config/zotlit/config.yaml)")
	rootCmd.PersistentFlags().String("vault", "", "vault root directory")
	rootCmd.PersistentFlags().Int("page-size", 0, "page size for the recently-added fetch")
	rootCmd.PersistentFlags().Bool("dry-run", false, "report what would be written without writing")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zotlit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zotlit"))
		}
	}

	viper.SetEnvPrefix("ZOTLIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and flags over the defaults.
func loadConfig(cmd *cobra.Command) types.SyncConfig {
	cfg := types.DefaultSyncConfig()

	if v := viper.GetString("zotero.base_url"); v != "" {
		cfg.Zotero.BaseURL = v
	}
	if v := viper.GetDuration("zotero.timeout"); v > 0 {
		cfg.Zotero.Timeout = v
	}
	if v := viper.GetString("zotero.user_agent"); v != "" {
		cfg.Zotero.UserAgent = v
	}
	if v := viper.GetInt("zotero.page_size"); v > 0 {
		cfg.Zotero.PageSize = v
	}
	if v := viper.GetString("vault.dir"); v != "" {
		cfg.Vault.Dir = v
	}
	if v := viper.GetString("vault.notes_subdir"); v != "" {
		cfg.Vault.NotesSubdir = v
	}
	if v := viper.GetString("vault.extension"); v != "" {
		cfg.Vault.Extension = v
	}
	if v := viper.GetString("vault.sentinel_tag"); v != "" {
		cfg.Vault.SentinelTag = v
	}
	if viper.IsSet("vault.strict_filenames") {
		cfg.Vault.StrictFilenames = viper.GetBool("vault.strict_filenames")
	}

	if v, _ := cmd.Flags().GetString("vault"); v != "" {
		cfg.Vault.Dir = v
	}
	if v, _ := cmd.Flags().GetInt("page-size"); v > 0 {
		cfg.Zotero.PageSize = v
	}
	return cfg
}

// newSyncer wires the Zotero client and vault config into a driver.
func newSyncer(cmd *cobra.Command, cfg types.SyncConfig, selector sync.Selector) *sync.Syncer {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return &sync.Syncer{
		Library:  zotero.NewClient(cfg.Zotero),
		Selector: selector,
		Vault:    cfg.Vault,
		PageSize: cfg.Zotero.PageSize,
		DryRun:   dryRun,
		Out:      os.Stderr,
	}
}

func printSummary(sum sync.Summary, elapsed time.Duration) {
	fmt.Printf("%d fetched, %d written, %d skipped, %d failed (%s)\n",
		sum.Fetched, sum.Written, sum.Skipped, sum.Failed, elapsed.Round(time.Millisecond))
}

// reportRunError converts driver failures into user-facing messages.
func reportRunError(err error, cfg types.SyncConfig) error {
	if errors.Is(err, zotero.ErrUnreachable) {
		return fmt.Errorf("cannot reach the local Zotero API at %s (is Zotero running?)", cfg.Zotero.BaseURL)
	}
	return err
}

// resolvePrefix rewrites an unambiguous subcommand-name prefix to the
// full name before cobra parses the arguments. An ambiguous prefix is a
// usage error listing the matches.
func resolvePrefix(args []string, cmds []*cobra.Command) ([]string, error) {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}

		var matches []string
		for _, c := range cmds {
			name := c.Name()
			if name == arg {
				return args, nil
			}
			if strings.HasPrefix(name, arg) {
				matches = append(matches, name)
			}
		}

		switch len(matches) {
		case 0:
			return args, nil
		case 1:
			args[i] = matches[0]
			return args, nil
		default:
			return nil, fmt.Errorf("ambiguous command %q: matches %s", arg, strings.Join(matches, ", "))
		}
	}
	return args, nil
}

func main() {
	args, err := resolvePrefix(os.Args[1:], rootCmd.Commands())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPConfig holds shared HTTP settings for the local Zotero connection.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "zotlit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ZoteroConfig holds settings for the local Zotero API connection.
type ZoteroConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the local Zotero API
	// (default "http://localhost:23119/api").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize bounds the "recently added" fetch in today mode (default 50).
	PageSize int `json:"page_size" yaml:"page_size"`
}

// VaultConfig holds settings for the destination knowledge vault.
type VaultConfig struct {
	// Dir is the vault root directory. A leading "~/" expands to the
	// user's home directory.
	Dir string `json:"dir" yaml:"dir"`

	// NotesSubdir is the folder inside the vault that receives literature
	// notes (default "Literature Notes").
	NotesSubdir string `json:"notes_subdir" yaml:"notes_subdir"`

	// Extension is the note file extension including the dot (default ".md").
	Extension string `json:"extension" yaml:"extension"`

	// SentinelTag is appended to every note's tag list to mark provenance
	// (default "literature").
	SentinelTag string `json:"sentinel_tag" yaml:"sentinel_tag"`

	// StrictFilenames additionally strips @ $ ! ^ and leading dot runs
	// from derived filenames.
	StrictFilenames bool `json:"strict_filenames" yaml:"strict_filenames"`
}

// NotesDir returns the absolute destination directory for notes,
// expanding a leading "~/" in Dir.
func (c VaultConfig) NotesDir() string {
	dir := c.Dir
	if strings.HasPrefix(dir, "~/") || dir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(dir, "~"), "/"))
		}
	}
	return filepath.Join(dir, c.NotesSubdir)
}

// SyncConfig groups all configuration for a sync run.
type SyncConfig struct {
	Zotero ZoteroConfig `json:"zotero" yaml:"zotero"`
	Vault  VaultConfig  `json:"vault" yaml:"vault"`
}

// DefaultSyncConfig returns the configuration used when no config file
// or flags override it.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		Zotero: ZoteroConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "zotlit/0.1",
			},
			BaseURL:  "http://localhost:23119/api",
			PageSize: 50,
		},
		Vault: VaultConfig{
			Dir:         "~/Documents/Notes",
			NotesSubdir: "Literature Notes",
			Extension:   ".md",
			SentinelTag: "literature",
		},
	}
}

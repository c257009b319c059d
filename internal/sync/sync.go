// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sync drives one pass of the Zotero-to-vault pipeline:
// fetch, filter, render, conditional write.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/pdiddy/zotlit/internal/note"
	"github.com/pdiddy/zotlit/internal/zotero"
	"github.com/pdiddy/zotlit/pkg/types"
)

// ErrNoSelection is returned by a Selector when the user dismisses the
// picker without choosing an item.
var ErrNoSelection = errors.New("no selection")

// Library is the slice of the Zotero client the driver needs.
type Library interface {
	Top(ctx context.Context, opts zotero.TopOptions) ([]types.Item, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Selector presents candidate titles and returns the chosen one, or
// ErrNoSelection.
type Selector interface {
	Select(titles []string) (string, error)
}

// Items are fetched newest-first by add time in both modes.
const (
	sortField     = "dateAdded"
	sortDirection = "desc"
)

// timeNow is stubbed in tests to pin the "today" comparison.
var timeNow = func() time.Time { return time.Now().UTC() }

// Summary counts the outcomes of one sync pass.
type Summary struct {
	Fetched int
	Written int
	Skipped int
	Failed  int
}

// Syncer runs sync passes against a library and a destination vault.
type Syncer struct {
	Library  Library
	Selector Selector
	Vault    types.VaultConfig
	PageSize int
	DryRun   bool

	// Out receives progress lines; defaults to os.Stderr.
	Out io.Writer
}

func (s *Syncer) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stderr
}

// SyncToday fetches the most recently added page of items and writes a
// note for each one added on the current UTC calendar day. Attachments,
// untitled items, and items already present on disk are skipped. A bad
// record never aborts the rest of the batch.
func (s *Syncer) SyncToday(ctx context.Context) (Summary, error) {
	var sum Summary

	if err := s.Library.Ping(ctx); err != nil {
		return sum, err
	}

	items, err := s.Library.Top(ctx, zotero.TopOptions{
		Limit:     s.PageSize,
		Sort:      sortField,
		Direction: sortDirection,
	})
	if err != nil {
		return sum, err
	}

	now := timeNow()
	for _, item := range items {
		sum.Fetched++
		if item.IsAttachment() || item.Data.Title == "" {
			sum.Skipped++
			continue
		}

		added, err := time.Parse(time.RFC3339, item.Data.DateAdded)
		if err != nil {
			fmt.Fprintf(s.out(), "skipping %s: bad dateAdded %q\n", item.Key, item.Data.DateAdded)
			sum.Failed++
			continue
		}
		if !sameUTCDate(added, now) {
			sum.Skipped++
			continue
		}

		s.record(&sum, s.writeNote(item))
	}
	return sum, nil
}

// SyncSelected fetches the full collection, lets the user pick one item
// by title, and writes that note regardless of its add date. A dismissed
// picker is reported but is not an error.
func (s *Syncer) SyncSelected(ctx context.Context) (Summary, error) {
	var sum Summary

	if err := s.Library.Ping(ctx); err != nil {
		return sum, err
	}

	count, err := s.Library.Count(ctx)
	if err != nil {
		return sum, err
	}
	items, err := s.Library.Top(ctx, zotero.TopOptions{
		Limit:     count,
		Sort:      sortField,
		Direction: sortDirection,
	})
	if err != nil {
		return sum, err
	}

	titles := make([]string, 0, len(items))
	byTitle := make(map[string]types.Item, len(items))
	for _, item := range items {
		if item.IsAttachment() || item.Data.Title == "" {
			continue
		}
		if _, seen := byTitle[item.Data.Title]; !seen {
			titles = append(titles, item.Data.Title)
			byTitle[item.Data.Title] = item
		}
	}
	sum.Fetched = len(items)

	if len(titles) == 0 {
		fmt.Fprintln(s.out(), "no items to choose from")
		return sum, nil
	}

	choice, err := s.Selector.Select(titles)
	if errors.Is(err, ErrNoSelection) {
		fmt.Fprintln(s.out(), "no selection made")
		return sum, nil
	}
	if err != nil {
		return sum, err
	}

	item, ok := byTitle[choice]
	if !ok {
		return sum, fmt.Errorf("selected title not in collection: %q", choice)
	}
	s.record(&sum, s.writeNote(item))
	return sum, nil
}

func (s *Syncer) record(sum *Summary, outcome writeOutcome) {
	switch outcome {
	case wroteNote:
		sum.Written++
	case skippedNote:
		sum.Skipped++
	case failedNote:
		sum.Failed++
	}
}

type writeOutcome int

const (
	wroteNote writeOutcome = iota
	skippedNote
	failedNote
)

// writeNote renders one item and writes it if no note of the derived
// name exists. Existing files are never overwritten.
func (s *Syncer) writeNote(item types.Item) writeOutcome {
	filename, err := note.Filename(item.Data.Title, s.Vault.Extension, s.Vault.StrictFilenames)
	if err != nil {
		fmt.Fprintf(s.out(), "skipping %s: %v\n", item.Key, err)
		return failedNote
	}

	dir := s.Vault.NotesDir()
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return skippedNote
	}

	fields := note.Extract(item.Data, s.Vault.SentinelTag)
	doc := note.Render(fields, note.ParseExtra(item.Data.Extra))

	if s.DryRun {
		fmt.Fprintf(s.out(), "would write: %s\n", filename)
		return wroteNote
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(s.out(), "creating %s: %v\n", dir, err)
		return failedNote
	}
	if err := atomic.WriteFile(path, strings.NewReader(doc)); err != nil {
		fmt.Fprintf(s.out(), "writing %s: %v\n", filename, err)
		return failedNote
	}
	fmt.Fprintf(s.out(), "wrote: %s\n", filename)
	return wroteNote
}

// sameUTCDate compares year, month, and day in UTC. This is a calendar
// comparison, not a 24-hour window.
func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

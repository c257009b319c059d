// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sync

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/zotlit/internal/zotero"
	"github.com/pdiddy/zotlit/pkg/types"
)

type fakeLibrary struct {
	items   []types.Item
	pingErr error
	topOpts []zotero.TopOptions
}

func (f *fakeLibrary) Top(_ context.Context, opts zotero.TopOptions) ([]types.Item, error) {
	f.topOpts = append(f.topOpts, opts)
	return f.items, nil
}

func (f *fakeLibrary) Count(context.Context) (int, error) { return len(f.items), nil }
func (f *fakeLibrary) Ping(context.Context) error         { return f.pingErr }

type fakeSelector struct {
	choice string
	err    error
	titles []string
}

func (f *fakeSelector) Select(titles []string) (string, error) {
	f.titles = titles
	if f.err != nil {
		return "", f.err
	}
	return f.choice, nil
}

func testVault(t *testing.T) types.VaultConfig {
	t.Helper()
	return types.VaultConfig{
		Dir:         t.TempDir(),
		NotesSubdir: "Literature Notes",
		Extension:   ".md",
		SentinelTag: "literature",
	}
}

func stubNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func surveyItem() types.Item {
	return types.Item{
		Key: "ABCD1234",
		Data: types.ItemData{
			Key:       "ABCD1234",
			ItemType:  "journalArticle",
			Title:     "Deep Learning: A Survey",
			Creators:  []types.Creator{{CreatorType: "author", FirstName: "Yann", LastName: "LeCun"}},
			Tags:      []types.Tag{{Tag: "ml"}},
			Extra:     "Citation Key: lecun2024",
			DateAdded: "2024-01-01T23:59:59Z",
		},
	}
}

func newSyncer(lib Library, sel Selector, vault types.VaultConfig) (*Syncer, *bytes.Buffer) {
	var out bytes.Buffer
	return &Syncer{
		Library:  lib,
		Selector: sel,
		Vault:    vault,
		PageSize: 50,
		Out:      &out,
	}, &out
}

func TestSyncTodayWritesNote(t *testing.T) {
	stubNow(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	vault := testVault(t)
	lib := &fakeLibrary{items: []types.Item{surveyItem()}}
	s, _ := newSyncer(lib, nil, vault)

	sum, err := s.SyncToday(context.Background())
	if err != nil {
		t.Fatalf("SyncToday() error: %v", err)
	}
	if sum.Written != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v, want 1 written", sum)
	}

	path := filepath.Join(vault.NotesDir(), "Deep Learning - A Survey.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading note: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		`citation_key: "lecun2024"`,
		`authors: ['Yann LeCun']`,
		`tags: ['ml', 'literature']`,
		"# Deep Learning: A Survey",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("note missing %q:\n%s", want, content)
		}
	}

	if len(lib.topOpts) != 1 {
		t.Fatalf("Top called %d times, want 1", len(lib.topOpts))
	}
	opts := lib.topOpts[0]
	if opts.Limit != 50 || opts.Sort != "dateAdded" || opts.Direction != "desc" {
		t.Errorf("TopOptions = %+v", opts)
	}
}

func TestSyncTodayUTCCalendarDay(t *testing.T) {
	// 2024-01-01T23:59:59Z is "today" exactly when the evaluator's UTC
	// date is 2024-01-01, regardless of its local zone.
	tests := []struct {
		name string
		now  time.Time
		want int // written
	}{
		{"same UTC day", time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), 1},
		{"local zone ahead, same UTC day", time.Date(2024, 1, 2, 7, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)), 1},
		{"next UTC day", time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC), 0},
		{"previous UTC day", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubNow(t, tt.now)
			s, _ := newSyncer(&fakeLibrary{items: []types.Item{surveyItem()}}, nil, testVault(t))

			sum, err := s.SyncToday(context.Background())
			if err != nil {
				t.Fatalf("SyncToday() error: %v", err)
			}
			if sum.Written != tt.want {
				t.Errorf("written = %d, want %d", sum.Written, tt.want)
			}
		})
	}
}

func TestSyncTodaySkipsAttachmentsAndUntitled(t *testing.T) {
	stubNow(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	vault := testVault(t)
	lib := &fakeLibrary{items: []types.Item{
		{Key: "ATT", Data: types.ItemData{ItemType: "attachment", Title: "Full Text PDF", DateAdded: "2024-01-01T10:00:00Z"}},
		{Key: "UNT", Data: types.ItemData{ItemType: "webpage", DateAdded: "2024-01-01T10:00:00Z"}},
	}}
	s, _ := newSyncer(lib, nil, vault)

	sum, err := s.SyncToday(context.Background())
	if err != nil {
		t.Fatalf("SyncToday() error: %v", err)
	}
	if sum.Written != 0 || sum.Failed != 0 || sum.Skipped != 2 {
		t.Errorf("summary = %+v, want 2 skipped", sum)
	}
	if _, err := os.Stat(vault.NotesDir()); !os.IsNotExist(err) {
		t.Error("notes directory created despite nothing to write")
	}
}

func TestSyncTodayExistingFileUntouched(t *testing.T) {
	stubNow(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	vault := testVault(t)
	dir := vault.NotesDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Deep Learning - A Survey.md")
	if err := os.WriteFile(path, []byte("original contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, _ := newSyncer(&fakeLibrary{items: []types.Item{surveyItem()}}, nil, vault)
	sum, err := s.SyncToday(context.Background())
	if err != nil {
		t.Fatalf("SyncToday() error: %v", err)
	}
	if sum.Skipped != 1 || sum.Written != 0 {
		t.Errorf("summary = %+v, want 1 skipped", sum)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original contents" {
		t.Errorf("existing file rewritten: %q", data)
	}
}

func TestSyncTodayBadRecordDoesNotAbortBatch(t *testing.T) {
	stubNow(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	vault := testVault(t)
	bad := surveyItem()
	bad.Key = "BAD1"
	bad.Data.Title = "::::"
	unparsable := surveyItem()
	unparsable.Key = "BAD2"
	unparsable.Data.Title = "No Timestamp"
	unparsable.Data.DateAdded = "not-a-date"

	lib := &fakeLibrary{items: []types.Item{bad, unparsable, surveyItem()}}
	s, out := newSyncer(lib, nil, vault)

	sum, err := s.SyncToday(context.Background())
	if err != nil {
		t.Fatalf("SyncToday() error: %v", err)
	}
	if sum.Written != 1 || sum.Failed != 2 {
		t.Errorf("summary = %+v, want 1 written, 2 failed", sum)
	}
	if !strings.Contains(out.String(), "BAD1") || !strings.Contains(out.String(), "BAD2") {
		t.Errorf("output missing per-record diagnostics: %s", out.String())
	}
	if _, err := os.Stat(filepath.Join(vault.NotesDir(), "Deep Learning - A Survey.md")); err != nil {
		t.Error("good item not written")
	}
}

func TestSyncTodayUnreachable(t *testing.T) {
	lib := &fakeLibrary{pingErr: zotero.ErrUnreachable}
	s, _ := newSyncer(lib, nil, testVault(t))

	if _, err := s.SyncToday(context.Background()); !errors.Is(err, zotero.ErrUnreachable) {
		t.Errorf("SyncToday() error = %v, want ErrUnreachable", err)
	}
}

func TestSyncTodayDryRun(t *testing.T) {
	stubNow(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	vault := testVault(t)
	s, out := newSyncer(&fakeLibrary{items: []types.Item{surveyItem()}}, nil, vault)
	s.DryRun = true

	sum, err := s.SyncToday(context.Background())
	if err != nil {
		t.Fatalf("SyncToday() error: %v", err)
	}
	if sum.Written != 1 {
		t.Errorf("summary = %+v, want 1 written", sum)
	}
	if !strings.Contains(out.String(), "would write: Deep Learning - A Survey.md") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(vault.NotesDir(), "Deep Learning - A Survey.md")); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

func TestSyncSelectedWritesChosenItem(t *testing.T) {
	vault := testVault(t)
	old := surveyItem()
	old.Data.DateAdded = "2019-06-15T08:00:00Z" // add date is irrelevant in search mode
	attachment := types.Item{Key: "ATT", Data: types.ItemData{ItemType: "attachment", Title: "Full Text PDF"}}

	lib := &fakeLibrary{items: []types.Item{attachment, old}}
	sel := &fakeSelector{choice: "Deep Learning: A Survey"}
	s, _ := newSyncer(lib, sel, vault)

	sum, err := s.SyncSelected(context.Background())
	if err != nil {
		t.Fatalf("SyncSelected() error: %v", err)
	}
	if sum.Written != 1 {
		t.Errorf("summary = %+v, want 1 written", sum)
	}

	if len(sel.titles) != 1 || sel.titles[0] != "Deep Learning: A Survey" {
		t.Errorf("selector candidates = %v, attachments should be excluded", sel.titles)
	}
	if _, err := os.Stat(filepath.Join(vault.NotesDir(), "Deep Learning - A Survey.md")); err != nil {
		t.Error("chosen item not written")
	}

	// Search mode fetches the whole collection: count first, then an
	// unbounded-by-page-size Top.
	if len(lib.topOpts) != 1 || lib.topOpts[0].Limit != len(lib.items) {
		t.Errorf("topOpts = %+v, want limit equal to collection size", lib.topOpts)
	}
}

func TestSyncSelectedNoSelection(t *testing.T) {
	vault := testVault(t)
	lib := &fakeLibrary{items: []types.Item{surveyItem()}}
	sel := &fakeSelector{err: ErrNoSelection}
	s, out := newSyncer(lib, sel, vault)

	sum, err := s.SyncSelected(context.Background())
	if err != nil {
		t.Fatalf("SyncSelected() error: %v", err)
	}
	if sum.Written != 0 {
		t.Errorf("summary = %+v, want nothing written", sum)
	}
	if !strings.Contains(out.String(), "no selection") {
		t.Errorf("output = %q, want a no-selection report", out.String())
	}
	if _, err := os.Stat(vault.NotesDir()); !os.IsNotExist(err) {
		t.Error("notes directory created despite no selection")
	}
}

func TestSyncSelectedSelectorError(t *testing.T) {
	lib := &fakeLibrary{items: []types.Item{surveyItem()}}
	sel := &fakeSelector{err: errors.New("terminal exploded")}
	s, _ := newSyncer(lib, sel, testVault(t))

	if _, err := s.SyncSelected(context.Background()); err == nil {
		t.Fatal("SyncSelected() expected error")
	}
}

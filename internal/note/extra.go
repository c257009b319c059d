// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package note turns Zotero items into literature-note documents:
// field extraction, extra-metadata parsing, filename derivation, and
// frontmatter rendering.
package note

import (
	"strings"
)

// CitationKeyField is the extra-metadata key holding the item's stable
// short identifier.
const CitationKeyField = "Citation Key"

// ExtraFields is an ordered mapping parsed from an item's free-text
// "extra" block. Keys keep first-seen order; a repeated key overwrites
// the stored value in place (last line wins).
type ExtraFields struct {
	keys   []string
	values map[string]string
}

// ParseExtra splits a free-text extra block into an ordered key/value
// mapping. Each line is split at its first colon; lines without a colon
// are skipped. Keys and values are trimmed of surrounding whitespace.
// ParseExtra is total: any input, including empty, yields a mapping.
func ParseExtra(extra string) *ExtraFields {
	f := &ExtraFields{values: make(map[string]string)}
	for _, line := range strings.Split(extra, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		f.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return f
}

// Set stores value under key, keeping the key's original position if it
// already exists.
func (f *ExtraFields) Set(key, value string) {
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether it is present.
func (f *ExtraFields) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (f *ExtraFields) Keys() []string {
	return f.keys
}

// Len returns the number of entries.
func (f *ExtraFields) Len() int {
	return len(f.keys)
}

// CitationKey returns the "Citation Key" entry, or "" when absent.
func (f *ExtraFields) CitationKey() string {
	v, _ := f.Get(CitationKeyField)
	return v
}

// String re-serializes the mapping to "Key: Value" lines in key order.
// Parsing the result yields an equal mapping.
func (f *ExtraFields) String() string {
	var b strings.Builder
	for i, k := range f.keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(f.values[k])
	}
	return b.String()
}

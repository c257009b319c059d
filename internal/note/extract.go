// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package note

import (
	"github.com/pdiddy/zotlit/pkg/types"
)

// Field is one extracted key/value. Exactly one of Value and List is
// meaningful, selected by IsList.
type Field struct {
	Key    string
	Value  string
	List   []string
	IsList bool
}

// Fields is the sparse, ordered result of extraction. Absent source
// values produce no Field at all.
type Fields struct {
	fields []Field
}

// All returns the extracted fields in table order.
func (f Fields) All() []Field {
	return f.fields
}

// Get returns the field with the given key and whether it is present.
func (f Fields) Get(key string) (Field, bool) {
	for _, fld := range f.fields {
		if fld.Key == key {
			return fld, true
		}
	}
	return Field{}, false
}

// Title returns the extracted title, or "" when absent.
func (f Fields) Title() string {
	fld, _ := f.Get("title")
	return fld.Value
}

func (f *Fields) add(key, value string) {
	if value == "" {
		return
	}
	f.fields = append(f.fields, Field{Key: key, Value: value})
}

func (f *Fields) addList(key string, list []string) {
	if len(list) == 0 {
		return
	}
	f.fields = append(f.fields, Field{Key: key, List: list, IsList: true})
}

// fieldTable declares which item fields are extracted, their output
// keys, and their order in the rendered header. Authors and tags route
// through derivation rules rather than direct copies, so they carry no
// accessor here.
var fieldTable = []struct {
	key string
	get func(types.ItemData) string
}{
	{"title", func(d types.ItemData) string { return d.Title }},
	{"authors", nil},
	{"tags", nil},
	{"publication", func(d types.ItemData) string { return d.PublicationTitle }},
	{"doi", func(d types.ItemData) string { return d.DOI }},
	{"url", func(d types.ItemData) string { return d.URL }},
	{"added", func(d types.ItemData) string { return d.DateAdded }},
	{"abstract", func(d types.ItemData) string { return d.AbstractNote }},
}

// Extract resolves the field table against an item's data block. Empty
// and absent values are omitted entirely so the rendered header never
// carries null-like noise. Extraction never fails.
func Extract(d types.ItemData, sentinelTag string) Fields {
	var f Fields
	for _, entry := range fieldTable {
		switch entry.key {
		case "authors":
			f.addList("authors", authorNames(d.Creators))
		case "tags":
			f.addList("tags", tagLabels(d.Tags, sentinelTag))
		default:
			f.add(entry.key, entry.get(d))
		}
	}
	return f
}

// authorNames keeps only creators tagged as authors, in source order.
func authorNames(creators []types.Creator) []string {
	var names []string
	for _, c := range creators {
		if c.CreatorType != types.CreatorTypeAuthor {
			continue
		}
		if name := c.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// tagLabels returns the source tags plus the sentinel provenance label.
// No de-duplication beyond what the source guarantees.
func tagLabels(tags []types.Tag, sentinel string) []string {
	labels := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if t.Tag != "" {
			labels = append(labels, t.Tag)
		}
	}
	if sentinel != "" {
		labels = append(labels, sentinel)
	}
	return labels
}

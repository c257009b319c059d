// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Item is one record returned by the local Zotero API. The data block
// carries the bibliographic fields; the outer envelope repeats the key
// and library bookkeeping that zotlit ignores.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Data    ItemData `json:"data"`
}

// ItemTypeAttachment marks file attachments, which are never synced.
const ItemTypeAttachment = "attachment"

// ItemData is the nested bibliographic payload of an Item. Field names
// match the Zotero API wire format.
type ItemData struct {
	Key              string    `json:"key"`
	ItemType         string    `json:"itemType"`
	Title            string    `json:"title,omitempty"`
	AbstractNote     string    `json:"abstractNote,omitempty"`
	URL              string    `json:"url,omitempty"`
	DOI              string    `json:"DOI,omitempty"`
	PublicationTitle string    `json:"publicationTitle,omitempty"`
	Date             string    `json:"date,omitempty"`
	DateAdded        string    `json:"dateAdded,omitempty"`
	DateModified     string    `json:"dateModified,omitempty"`
	Creators         []Creator `json:"creators,omitempty"`
	Tags             []Tag     `json:"tags,omitempty"`
	Extra            string    `json:"extra,omitempty"`
}

// IsAttachment reports whether the item is a file attachment.
func (i Item) IsAttachment() bool {
	return i.Data.ItemType == ItemTypeAttachment
}

// Creator is one entry in an item's creator list. Zotero uses either the
// first/last pair or a single display name, never both.
type Creator struct {
	CreatorType string `json:"creatorType"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Name        string `json:"name,omitempty"`
}

// CreatorTypeAuthor is the only creator role that contributes to the
// rendered author list.
const CreatorTypeAuthor = "author"

// DisplayName returns the creator's rendered name: the single-field name
// when set, otherwise first and last joined with a space.
func (c Creator) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Tag is one label attached to an item.
type Tag struct {
	Tag string `json:"tag"`
}

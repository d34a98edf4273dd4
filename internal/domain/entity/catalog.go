package entity

// CatalogDocument is the whole persisted state, written in one piece on every mutation.
type CatalogDocument struct {
	Assets      []Asset      `json:"assets"`
	Collections []Collection `json:"collections"`
	Tags        []Tag        `json:"tags"`
}

// Normalize replaces nil slices with empty ones so the document always
// serializes with three arrays.
func (d *CatalogDocument) Normalize() {
	if d.Assets == nil {
		d.Assets = []Asset{}
	}
	if d.Collections == nil {
		d.Collections = []Collection{}
	}
	if d.Tags == nil {
		d.Tags = []Tag{}
	}
	for i := range d.Assets {
		if d.Assets[i].Tags == nil {
			d.Assets[i].Tags = []string{}
		}
	}
}

// Clone deep-copies the document.
func (d CatalogDocument) Clone() CatalogDocument {
	out := CatalogDocument{
		Assets:      make([]Asset, len(d.Assets)),
		Collections: append([]Collection{}, d.Collections...),
		Tags:        append([]Tag{}, d.Tags...),
	}
	for i, a := range d.Assets {
		out.Assets[i] = a.Clone()
	}
	return out
}

// AssetFilter is the list query: search text, tag names, collection and sort directive.
type AssetFilter struct {
	Search       string
	Tags         []string
	CollectionID *string
	SortBy       string
	SortOrder    string
}

const (
	SortByName = "name"
	SortByDate = "date"
	SortBySize = "size"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Resource names used in change notifications.
const (
	ResourceAssets      = "assets"
	ResourceCollections = "collections"
	ResourceTags        = "tags"
)

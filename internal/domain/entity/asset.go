package entity

import (
	"time"
)

type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Asset is a single media record. CollectionID is nil for uncategorized assets.
type Asset struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	CollectionID *string    `json:"collectionId"`
	FileName     string     `json:"fileName"`
	FileSize     int64      `json:"fileSize"`
	Dimensions   Dimensions `json:"dimensions"`
	Format       string     `json:"format"`
	ImageURL     string     `json:"imageUrl"`
	Copyright    string     `json:"copyright"`
	UsageRights  string     `json:"usageRights"`
	UploadDate   time.Time  `json:"uploadDate"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (a Asset) Clone() Asset {
	out := a
	out.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	if a.CollectionID != nil {
		id := *a.CollectionID
		out.CollectionID = &id
	}
	return out
}

// InCollection reports whether the asset references collectionID.
func (a Asset) InCollection(collectionID string) bool {
	return a.CollectionID != nil && *a.CollectionID == collectionID
}

// AssetDraft carries the caller-supplied fields of a new asset.
type AssetDraft struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	CollectionID *string    `json:"collectionId"`
	FileName     string     `json:"fileName"`
	FileSize     int64      `json:"fileSize"`
	Dimensions   Dimensions `json:"dimensions"`
	Format       string     `json:"format"`
	ImageURL     string     `json:"imageUrl"`
	Copyright    string     `json:"copyright"`
	UsageRights  string     `json:"usageRights"`
}

// NewAsset builds an asset from d, stamping identity and both timestamps.
func NewAsset(id string, d AssetDraft, now time.Time) Asset {
	a := Asset{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Tags:        append(make([]string, 0, len(d.Tags)), d.Tags...),
		FileName:    d.FileName,
		FileSize:    d.FileSize,
		Dimensions:  d.Dimensions,
		Format:      d.Format,
		ImageURL:    d.ImageURL,
		Copyright:   d.Copyright,
		UsageRights: d.UsageRights,
		UploadDate:  now,
		UpdatedAt:   now,
	}
	if d.CollectionID != nil {
		cid := *d.CollectionID
		a.CollectionID = &cid
	}
	return a
}

// AssetPatch lists the mutable fields of an asset; nil means "leave unchanged".
// Identity, timestamps and the file fields fixed at upload are not patchable.
type AssetPatch struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Tags         *[]string      `json:"tags,omitempty"`
	CollectionID NullableString `json:"collectionId,omitzero"`
	ImageURL     *string        `json:"imageUrl,omitempty"`
	Copyright    *string        `json:"copyright,omitempty"`
	UsageRights  *string        `json:"usageRights,omitempty"`
}

// Apply merges p into a and re-stamps UpdatedAt.
func (p AssetPatch) Apply(a *Asset, now time.Time) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Tags != nil {
		a.Tags = append(make([]string, 0, len(*p.Tags)), (*p.Tags)...)
	}
	if p.CollectionID.Set {
		a.CollectionID = p.CollectionID.Ptr()
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Copyright != nil {
		a.Copyright = *p.Copyright
	}
	if p.UsageRights != nil {
		a.UsageRights = *p.UsageRights
	}
	a.UpdatedAt = now
}

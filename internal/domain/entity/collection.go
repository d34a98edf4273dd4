package entity

import (
	"time"
)

// Collection is a named grouping. Membership lives on Asset.CollectionID.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CollectionDetail is a collection together with the assets that reference it.
type CollectionDetail struct {
	Collection
	Assets []Asset `json:"assets"`
}

type CollectionDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CollectionPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CollectionPatch) Apply(c *Collection) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

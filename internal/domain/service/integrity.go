package service

import (
	"time"

	"mediavault/internal/domain/entity"
)

// Referential-integrity rules applied when collections and tags are deleted.
// Both rules mutate assets in place, re-stamp UpdatedAt on the assets they
// touch and return those assets' IDs.

// NullifyCollection clears CollectionID on every asset that references collectionID.
// Member assets are kept; they become uncategorized.
func NullifyCollection(assets []entity.Asset, collectionID string, now time.Time) []string {
	var touched []string
	for i := range assets {
		if assets[i].InCollection(collectionID) {
			assets[i].CollectionID = nil
			assets[i].UpdatedAt = now
			touched = append(touched, assets[i].ID)
		}
	}
	return touched
}

// DetachTag removes every exact occurrence of tagName from each asset's tag list.
func DetachTag(assets []entity.Asset, tagName string, now time.Time) []string {
	var touched []string
	for i := range assets {
		kept := assets[i].Tags[:0:0]
		for _, t := range assets[i].Tags {
			if t != tagName {
				kept = append(kept, t)
			}
		}
		if len(kept) != len(assets[i].Tags) {
			assets[i].Tags = kept
			assets[i].UpdatedAt = now
			touched = append(touched, assets[i].ID)
		}
	}
	return touched
}

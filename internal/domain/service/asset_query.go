package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mediavault/internal/domain/entity"
)

// FilterAssets returns the assets passing every active filter of f, ordered by
// f.SortBy. It never modifies assets and never returns nil.
func FilterAssets(assets []entity.Asset, f entity.AssetFilter) []entity.Asset {
	search := strings.ToLower(f.Search)
	wanted := make(map[string]struct{}, len(f.Tags))
	for _, t := range f.Tags {
		wanted[t] = struct{}{}
	}

	out := make([]entity.Asset, 0, len(assets))
	for _, a := range assets {
		if search != "" && !MatchesSearch(a, search) {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(a, wanted) {
			continue
		}
		if f.CollectionID != nil && !a.InCollection(*f.CollectionID) {
			continue
		}
		out = append(out, a.Clone())
	}

	SortAssets(out, f.SortBy, f.SortOrder)
	return out
}

// MatchesSearch reports whether lowered appears in the title, description,
// file name or any tag of a, ignoring case. lowered must already be lower case.
func MatchesSearch(a entity.Asset, lowered string) bool {
	if strings.Contains(strings.ToLower(a.Title), lowered) ||
		strings.Contains(strings.ToLower(a.Description), lowered) ||
		strings.Contains(strings.ToLower(a.FileName), lowered) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

func hasAnyTag(a entity.Asset, wanted map[string]struct{}) bool {
	for _, tag := range a.Tags {
		if _, ok := wanted[tag]; ok {
			return true
		}
	}
	return false
}

// SortAssets stably orders assets in place. Unknown sortBy values leave the
// order untouched; any sortOrder other than "desc" is ascending.
func SortAssets(assets []entity.Asset, sortBy, sortOrder string) {
	var cmp func(a, b entity.Asset) int
	switch sortBy {
	case entity.SortByName:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.English)
		cmp = func(a, b entity.Asset) int { return col.CompareString(a.Title, b.Title) }
	case entity.SortByDate:
		cmp = func(a, b entity.Asset) int { return a.UploadDate.Compare(b.UploadDate) }
	case entity.SortBySize:
		cmp = func(a, b entity.Asset) int {
			switch {
			case a.FileSize < b.FileSize:
				return -1
			case a.FileSize > b.FileSize:
				return 1
			}
			return 0
		}
	default:
		return
	}

	sign := 1
	if sortOrder == entity.SortDesc {
		sign = -1
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return sign*cmp(assets[i], assets[j]) < 0
	})
}

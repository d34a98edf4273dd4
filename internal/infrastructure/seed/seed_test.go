package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestDefaultSeedBuilds(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	doc, err := f.Build(now)
	require.NoError(t, err)
	assert.Len(t, doc.Tags, 10)
	assert.Len(t, doc.Collections, 3)
	require.Len(t, doc.Assets, 5)

	collections := map[string]string{}
	for _, c := range doc.Collections {
		collections[c.ID] = c.Name
	}

	first := doc.Assets[0]
	assert.Equal(t, "Mountain Landscape", first.Title)
	assert.Equal(t, "image-1.jpg", first.FileName)
	assert.Equal(t, "JPEG", first.Format)
	assert.Equal(t, 1920, first.Dimensions.Width)
	assert.Equal(t, now, first.UpdatedAt)
	assert.Equal(t, now.AddDate(0, 0, -12), first.UploadDate)
	require.NotNil(t, first.CollectionID)
	assert.Equal(t, "Marketing Assets", collections[*first.CollectionID])

	ids := map[string]bool{}
	for _, a := range doc.Assets {
		assert.False(t, ids[a.ID], "asset ids must be unique")
		ids[a.ID] = true
		require.NotNil(t, a.CollectionID)
		assert.Contains(t, collections, *a.CollectionID)
	}
}

func TestBuildRejectsUnknownCollection(t *testing.T) {
	f, err := Parse([]byte(`
assets:
  - title: Orphan
    collection: Nowhere
`))
	require.NoError(t, err)

	_, err = f.Build(now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nowhere")
}

func TestBuildRejectsDuplicateCollection(t *testing.T) {
	f, err := Parse([]byte(`
collections:
  - name: Dup
  - name: Dup
`))
	require.NoError(t, err)

	_, err = f.Build(now)
	assert.Error(t, err)
}

func TestBuildAssetWithoutCollectionIsUncategorized(t *testing.T) {
	f, err := Parse([]byte(`
assets:
  - title: Loose
    fileName: loose.png
    format: PNG
    dimensions: {width: 10, height: 20}
`))
	require.NoError(t, err)

	doc, err := f.Build(now)
	require.NoError(t, err)
	require.Len(t, doc.Assets, 1)
	a := doc.Assets[0]
	assert.Nil(t, a.CollectionID)
	assert.Equal(t, "loose.png", a.FileName)
	assert.Equal(t, "PNG", a.Format)
	assert.Equal(t, 20, a.Dimensions.Height)
	assert.NotNil(t, a.Tags)
	assert.NotNil(t, doc.Tags)
	assert.NotNil(t, doc.Collections)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [One, Two]\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, f.Tags)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	f, err = Load("")
	require.NoError(t, err)
	assert.Len(t, f.Tags, 10)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tags: [unterminated"))
	assert.Error(t, err)
}

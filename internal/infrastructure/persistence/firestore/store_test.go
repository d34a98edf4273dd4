package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
)

// The client talks to the emulator on its own when FIRESTORE_EMULATOR_HOST
// is set.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	collection := fmt.Sprintf("mediavault-test-%d", time.Now().UnixNano())
	s, err := New(context.Background(), "mediavault-test", collection)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewRequiresProject(t *testing.T) {
	_, err := New(context.Background(), "", "")
	assert.Error(t, err)
}

func TestLoadMissingDocument(t *testing.T) {
	s := newEmulatorStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)
}

func TestSaveThenLoad(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	doc := &entity.CatalogDocument{
		Assets:      []entity.Asset{{ID: "a1", Title: "Harbor", Tags: []string{}}},
		Collections: []entity.Collection{{ID: "c1", Name: "Coast"}},
	}

	require.NoError(t, s.Save(ctx, doc))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Assets, 1)
	assert.Equal(t, "Harbor", loaded.Assets[0].Title)
	assert.Equal(t, "Coast", loaded.Collections[0].Name)
}

// Package state mirrors the server catalog on the client side. Every mutation
// is followed by a full re-fetch of the affected lists; failures land in one
// shared error slot and leave previously loaded data in place.
package state

import (
	"context"
	"sync"

	"mediavault/internal/client"
	"mediavault/internal/domain/entity"
	ws "mediavault/internal/infrastructure/websocket"
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Errored
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// API is the part of client.Client the store talks to.
type API interface {
	ListAssets(ctx context.Context, filters client.Filters) ([]entity.Asset, error)
	GetAsset(ctx context.Context, id string) (*entity.Asset, error)
	CreateAsset(ctx context.Context, draft entity.AssetDraft) (*entity.Asset, error)
	UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	BulkUpdateAssets(ctx context.Context, ids []string, patch entity.AssetPatch) ([]entity.Asset, error)
	BulkDeleteAssets(ctx context.Context, ids []string) (int, error)

	ListCollections(ctx context.Context) ([]entity.Collection, error)
	CreateCollection(ctx context.Context, draft entity.CollectionDraft) (*entity.Collection, error)
	UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error)
	DeleteCollection(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]entity.Tag, error)
	CreateTag(ctx context.Context, name string) (*entity.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// FilterPatch changes only the non-nil fields. An empty CollectionID clears
// the collection filter.
type FilterPatch struct {
	Search       *string
	Tags         *[]string
	CollectionID *string
	SortBy       *string
	SortOrder    *string
}

// Snapshot is a copy of the store state handed to readers and subscribers.
type Snapshot struct {
	Assets      []entity.Asset
	Collections []entity.Collection
	Tags        []entity.Tag

	AssetsStatus      Status
	CollectionsStatus Status
	TagsStatus        Status

	SelectedAsset    *entity.Asset
	SelectedAssetIDs []string
	Filters          client.Filters
	ViewMode         ViewMode

	// Error is the last failure message. Only FetchAssets clears it.
	Error string
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Assets = make([]entity.Asset, len(s.Assets))
	for i, a := range s.Assets {
		out.Assets[i] = a.Clone()
	}
	out.Collections = append([]entity.Collection(nil), s.Collections...)
	out.Tags = append([]entity.Tag(nil), s.Tags...)
	out.SelectedAssetIDs = append([]string(nil), s.SelectedAssetIDs...)
	out.Filters.Tags = append([]string(nil), s.Filters.Tags...)
	if s.SelectedAsset != nil {
		a := s.SelectedAsset.Clone()
		out.SelectedAsset = &a
	}
	return out
}

func DefaultFilters() client.Filters {
	return client.Filters{SortBy: entity.SortByDate, SortOrder: entity.SortDesc}
}

type Store struct {
	api API

	// actions runs one user action (request plus re-fetches) at a time.
	actions sync.Mutex

	mu      sync.Mutex
	state   Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(api API) *Store {
	return &Store{
		api: api,
		state: Snapshot{
			Assets:      []entity.Asset{},
			Collections: []entity.Collection{},
			Tags:        []entity.Tag{},
			Filters:     DefaultFilters(),
			ViewMode:    ViewGrid,
		},
		subs: make(map[int]func(Snapshot)),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe calls fn with a snapshot after every state change until the
// returned function is called.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update mutates the state under the lock and then notifies subscribers
// outside of it.
func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Store) fail(err error) error {
	s.update(func(st *Snapshot) { st.Error = err.Error() })
	return err
}

func (s *Store) FetchAssets(ctx context.Context) error {
	s.actions.Lock()
	defer s.actions.Unlock()
	return s.fetchAssets(ctx)
}

func (s *Store) fetchAssets(ctx context.Context) error {
	var filters client.Filters
	s.update(func(st *Snapshot) {
		st.AssetsStatus = Loading
		st.Error = ""
		filters = st.Filters
		filters.Tags = append([]string(nil), st.Filters.Tags...)
	})

	assets, err := s.api.ListAssets(ctx, filters)
	if err != nil {
		s.update(func(st *Snapshot) {
			st.AssetsStatus = Errored
			st.Error = err.Error()
		})
		return err
	}
	s.update(func(st *Snapshot) {
		st.Assets = assets
		st.AssetsStatus = Loaded
	})
	return nil
}

func (s *Store) FetchCollections(ctx context.Context) error {
	s.actions.Lock()
	defer s.actions.Unlock()
	return s.fetchCollections(ctx)
}

func (s *Store) fetchCollections(ctx context.Context) error {
	s.update(func(st *Snapshot) { st.CollectionsStatus = Loading })

	collections, err := s.api.ListCollections(ctx)
	if err != nil {
		s.update(func(st *Snapshot) {
			st.CollectionsStatus = Errored
			st.Error = err.Error()
		})
		return err
	}
	s.update(func(st *Snapshot) {
		st.Collections = collections
		st.CollectionsStatus = Loaded
	})
	return nil
}

func (s *Store) FetchTags(ctx context.Context) error {
	s.actions.Lock()
	defer s.actions.Unlock()
	return s.fetchTags(ctx)
}

func (s *Store) fetchTags(ctx context.Context) error {
	s.update(func(st *Snapshot) { st.TagsStatus = Loading })

	tags, err := s.api.ListTags(ctx)
	if err != nil {
		s.update(func(st *Snapshot) {
			st.TagsStatus = Errored
			st.Error = err.Error()
		})
		return err
	}
	s.update(func(st *Snapshot) {
		st.Tags = tags
		st.TagsStatus = Loaded
	})
	return nil
}

// Refresh loads all three lists, stopping at the first failure.
func (s *Store) Refresh(ctx context.Context) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	if err := s.fetchAssets(ctx); err != nil {
		return err
	}
	if err := s.fetchCollections(ctx); err != nil {
		return err
	}
	return s.fetchTags(ctx)
}

// SelectAsset loads id from the server and makes it the selected asset.
func (s *Store) SelectAsset(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()
	return s.loadSelected(ctx, id)
}

func (s *Store) loadSelected(ctx context.Context, id string) error {
	asset, err := s.api.GetAsset(ctx, id)
	if err != nil {
		return s.fail(err)
	}
	s.update(func(st *Snapshot) { st.SelectedAsset = asset })
	return nil
}

func (s *Store) ClearSelectedAsset() {
	s.update(func(st *Snapshot) { st.SelectedAsset = nil })
}

func (s *Store) CreateAsset(ctx context.Context, draft entity.AssetDraft) (*entity.Asset, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	created, err := s.api.CreateAsset(ctx, draft)
	if err != nil {
		return nil, s.fail(err)
	}
	return created, s.fetchAssets(ctx)
}

func (s *Store) UpdateAsset(ctx context.Context, id string, patch entity.AssetPatch) (*entity.Asset, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	updated, err := s.api.UpdateAsset(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}
	// The selected asset is refreshed even when the re-fetch fails. The
	// update response stands in when reloading it fails too.
	fetchErr := s.fetchAssets(ctx)
	if s.isSelected(id) {
		if err := s.loadSelected(ctx, id); err != nil {
			fresh := updated.Clone()
			s.update(func(st *Snapshot) { st.SelectedAsset = &fresh })
			if fetchErr == nil {
				fetchErr = err
			}
		}
	}
	return updated, fetchErr
}

func (s *Store) isSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedAsset != nil && s.state.SelectedAsset.ID == id
}

func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	if err := s.api.DeleteAsset(ctx, id); err != nil {
		return s.fail(err)
	}
	fetchErr := s.fetchAssets(ctx)
	s.update(func(st *Snapshot) {
		if st.SelectedAsset != nil && st.SelectedAsset.ID == id {
			st.SelectedAsset = nil
		}
	})
	return fetchErr
}

func (s *Store) BulkUpdateAssets(ctx context.Context, ids []string, patch entity.AssetPatch) ([]entity.Asset, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	updated, err := s.api.BulkUpdateAssets(ctx, ids, patch)
	if err != nil {
		return nil, s.fail(err)
	}
	// Selection is cleared once the server accepted the bulk change, even
	// if the re-fetch fails.
	fetchErr := s.fetchAssets(ctx)
	s.update(func(st *Snapshot) { st.SelectedAssetIDs = nil })
	return updated, fetchErr
}

func (s *Store) BulkDeleteAssets(ctx context.Context, ids []string) (int, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	deleted, err := s.api.BulkDeleteAssets(ctx, ids)
	if err != nil {
		return 0, s.fail(err)
	}
	// Selection is cleared once the server accepted the bulk change, even
	// if the re-fetch fails.
	fetchErr := s.fetchAssets(ctx)
	s.update(func(st *Snapshot) { st.SelectedAssetIDs = nil })
	return deleted, fetchErr
}

func (s *Store) CreateCollection(ctx context.Context, draft entity.CollectionDraft) (*entity.Collection, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	created, err := s.api.CreateCollection(ctx, draft)
	if err != nil {
		return nil, s.fail(err)
	}
	return created, s.fetchCollections(ctx)
}

func (s *Store) UpdateCollection(ctx context.Context, id string, patch entity.CollectionPatch) (*entity.Collection, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	updated, err := s.api.UpdateCollection(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}
	return updated, s.fetchCollections(ctx)
}

func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	if err := s.api.DeleteCollection(ctx, id); err != nil {
		return s.fail(err)
	}
	if err := s.fetchCollections(ctx); err != nil {
		return err
	}
	return s.fetchAssets(ctx)
}

func (s *Store) CreateTag(ctx context.Context, name string) (*entity.Tag, error) {
	s.actions.Lock()
	defer s.actions.Unlock()

	created, err := s.api.CreateTag(ctx, name)
	if err != nil {
		return nil, s.fail(err)
	}
	return created, s.fetchTags(ctx)
}

func (s *Store) DeleteTag(ctx context.Context, id string) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	if err := s.api.DeleteTag(ctx, id); err != nil {
		return s.fail(err)
	}
	if err := s.fetchTags(ctx); err != nil {
		return err
	}
	return s.fetchAssets(ctx)
}

// SetFilters merges patch into the current filters and re-fetches assets.
// The selection is left alone even if selected assets drop out of the list.
func (s *Store) SetFilters(ctx context.Context, patch FilterPatch) error {
	s.actions.Lock()
	defer s.actions.Unlock()

	s.update(func(st *Snapshot) {
		if patch.Search != nil {
			st.Filters.Search = *patch.Search
		}
		if patch.Tags != nil {
			st.Filters.Tags = append([]string(nil), (*patch.Tags)...)
		}
		if patch.CollectionID != nil {
			st.Filters.CollectionID = *patch.CollectionID
		}
		if patch.SortBy != nil {
			st.Filters.SortBy = *patch.SortBy
		}
		if patch.SortOrder != nil {
			st.Filters.SortOrder = *patch.SortOrder
		}
	})
	return s.fetchAssets(ctx)
}

func (s *Store) ToggleAssetSelection(id string) {
	s.update(func(st *Snapshot) {
		for i, selected := range st.SelectedAssetIDs {
			if selected == id {
				st.SelectedAssetIDs = append(st.SelectedAssetIDs[:i:i], st.SelectedAssetIDs[i+1:]...)
				return
			}
		}
		st.SelectedAssetIDs = append(st.SelectedAssetIDs, id)
	})
}

func (s *Store) SetSelection(ids []string) {
	s.update(func(st *Snapshot) { st.SelectedAssetIDs = append([]string(nil), ids...) })
}

func (s *Store) ClearSelection() {
	s.update(func(st *Snapshot) { st.SelectedAssetIDs = nil })
}

func (s *Store) SetViewMode(mode ViewMode) {
	s.update(func(st *Snapshot) { st.ViewMode = mode })
}

// Follow re-fetches whichever list a change event names until ctx is done or
// events is closed. Fetch failures are recorded in the error slot.
func (s *Store) Follow(ctx context.Context, events <-chan ws.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch event.Resource {
			case entity.ResourceAssets:
				_ = s.FetchAssets(ctx)
			case entity.ResourceCollections:
				_ = s.FetchCollections(ctx)
			case entity.ResourceTags:
				_ = s.FetchTags(ctx)
			}
		}
	}
}

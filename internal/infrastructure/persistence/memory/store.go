// Package memory keeps the catalog snapshot in process memory.
package memory

import (
	"context"
	"sync"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
)

const Driver = "memory"

type Store struct {
	mu       sync.Mutex
	doc      *entity.CatalogDocument
	saves    int
	failWith error
}

func New() *Store {
	return &Store{}
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	doc := s.doc.Clone()
	return &doc, nil
}

func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	cp := doc.Clone()
	cp.Normalize()
	s.doc = &cp
	s.saves++
	return nil
}

// Saves reports how many successful saves happened.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// SetFailure makes every following Save fail with err until reset with nil.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *Store) Close() error { return nil }

// Package firestore persists the catalog as a single Firestore document.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/codec"
)

const (
	Driver = "firestore"
	docID  = "catalog"
)

// record is the stored shape; the catalog stays a JSON payload so it is
// byte-for-byte the same document the other drivers write.
type record struct {
	Payload   string    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type Store struct {
	client     *firestore.Client
	collection string
}

// New creates a client for projectID. Credentials come from the environment
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server) unless opts override them.
func New(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id required")
	}
	if collection == "" {
		collection = "mediavault"
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client, collection: collection}, nil
}

func (s *Store) Driver() string { return Driver }

func (s *Store) Load(ctx context.Context) (*entity.CatalogDocument, error) {
	doc, err := s.client.Collection(s.collection).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get catalog document: %w", err)
	}

	var rec record
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("parse catalog document: %w", err)
	}
	return codec.Decode([]byte(rec.Payload))
}

func (s *Store) Save(ctx context.Context, doc *entity.CatalogDocument) error {
	data, err := codec.Encode(doc)
	if err != nil {
		return err
	}
	_, err = s.client.Collection(s.collection).Doc(docID).Set(ctx, record{
		Payload:   string(data),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("set catalog document: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }

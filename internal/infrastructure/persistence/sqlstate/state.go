// Package sqlstate stores the catalog in a `state(bucket, payload)` table, one
// JSON payload per record set. The SQL drivers differ only in their Dialect.
package sqlstate

import (
	"context"
	"database/sql"
	"fmt"

	"mediavault/internal/domain/entity"
	"mediavault/internal/domain/repository"
	"mediavault/internal/infrastructure/persistence/codec"
)

type Dialect struct {
	CreateTable string
	Select      string
	Upsert      string
	// EncodePayload adapts the payload to the column type.
	EncodePayload func([]byte) any
}

func Ensure(ctx context.Context, db *sql.DB, d Dialect) error {
	if _, err := db.ExecContext(ctx, d.CreateTable); err != nil {
		return fmt.Errorf("create state table: %w", err)
	}
	return nil
}

func Load(ctx context.Context, db *sql.DB, d Dialect) (*entity.CatalogDocument, error) {
	rows, err := db.QueryContext(ctx, d.Select)
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := make(map[string][]byte, len(codec.Buckets))
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	if len(payloads) == 0 {
		return nil, repository.ErrSnapshotNotFound
	}
	return codec.DecodeBuckets(payloads)
}

// Save upserts all buckets in one transaction.
func Save(ctx context.Context, db *sql.DB, d Dialect, doc *entity.CatalogDocument) (retErr error) {
	payloads, err := codec.EncodeBuckets(doc)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range codec.Buckets {
		var payload any = payloads[bucket]
		if d.EncodePayload != nil {
			payload = d.EncodePayload(payloads[bucket])
		}
		if _, err := tx.ExecContext(ctx, d.Upsert, bucket, payload); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

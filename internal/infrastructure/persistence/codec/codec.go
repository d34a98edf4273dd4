// Package codec encodes the catalog document the same way for every driver
// that stores it as a single blob.
package codec

import (
	"encoding/json"
	"fmt"

	"mediavault/internal/domain/entity"
)

const ContentType = "application/json"

// ObjectName is the key used by object-store drivers.
const ObjectName = "catalog.json"

// Encode renders doc as indented JSON with three top-level arrays.
func Encode(doc *entity.CatalogDocument) ([]byte, error) {
	out := doc.Clone()
	out.Normalize()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*entity.CatalogDocument, error) {
	var doc entity.CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Bucket names used by drivers that keep one record per record set.
const (
	BucketAssets      = "assets"
	BucketCollections = "collections"
	BucketTags        = "tags"
)

var Buckets = []string{BucketAssets, BucketCollections, BucketTags}

// EncodeBuckets splits doc into one JSON payload per record set.
func EncodeBuckets(doc *entity.CatalogDocument) (map[string][]byte, error) {
	out := doc.Clone()
	out.Normalize()
	payloads := make(map[string][]byte, len(Buckets))
	var err error
	if payloads[BucketAssets], err = json.Marshal(out.Assets); err != nil {
		return nil, fmt.Errorf("encode assets: %w", err)
	}
	if payloads[BucketCollections], err = json.Marshal(out.Collections); err != nil {
		return nil, fmt.Errorf("encode collections: %w", err)
	}
	if payloads[BucketTags], err = json.Marshal(out.Tags); err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return payloads, nil
}

// DecodeBuckets is the inverse of EncodeBuckets. Missing buckets decode as empty.
func DecodeBuckets(payloads map[string][]byte) (*entity.CatalogDocument, error) {
	var doc entity.CatalogDocument
	for bucket, payload := range payloads {
		var err error
		switch bucket {
		case BucketAssets:
			err = json.Unmarshal(payload, &doc.Assets)
		case BucketCollections:
			err = json.Unmarshal(payload, &doc.Collections)
		case BucketTags:
			err = json.Unmarshal(payload, &doc.Tags)
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	doc.Normalize()
	return &doc, nil
}

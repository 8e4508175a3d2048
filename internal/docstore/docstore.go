// Package docstore abstracts the external document database: named
// collections of records keyed by id. The durable backends are Firestore and
// Postgres; an in-memory implementation backs tests.
package docstore

import (
	"context"
	"errors"
)

// Record is a document payload with top-level named fields.
type Record = map[string]any

// ErrNotFound reports that a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store reads and writes documents. Get decodes the document into dest (a
// struct pointer or *Record) and returns ErrNotFound when absent. Set writes
// data under collection/id; with merge=true, data must be a Record and only
// its top-level fields are overwritten, other stored fields are kept.
type Store interface {
	Get(ctx context.Context, collection, id string, dest any) error
	Set(ctx context.Context, collection, id string, data any, merge bool) error
}

package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on a Cloud Firestore database. Documents live at
// {collection}/{id}; merge writes use Firestore's native MergeAll.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore wraps an initialized Firestore client.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// Get fetches collection/id into dest.
func (f *Firestore) Get(ctx context.Context, collection, id string, dest any) error {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	if err := snap.DataTo(dest); err != nil {
		return fmt.Errorf("firestore decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// Set writes data at collection/id. Merge writes overlay top-level fields onto
// the stored document and require map data per the Firestore SDK.
func (f *Firestore) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	doc := f.client.Collection(collection).Doc(id)
	var err error
	if merge {
		_, err = doc.Set(ctx, data, firestore.MergeAll)
	} else {
		_, err = doc.Set(ctx, data)
	}
	if err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, id, err)
	}
	return nil
}

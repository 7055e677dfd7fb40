package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isNotFound reports whether err is a Firestore document-not-found error.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// stripEmpty removes nil values and empty strings from a write payload.
// Mutations never persist empty-string fields; absence is the canonical
// representation of "not set".
func stripEmpty(data map[string]any) map[string]any {
	for k, v := range data {
		if v == nil {
			delete(data, k)
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			delete(data, k)
		}
	}
	return data
}

// collectDocs drains a document iterator, mapping every snapshot through
// fn. The iterator is stopped before returning.
func collectDocs[T any](iter *firestore.DocumentIterator, fn func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer iter.Stop()

	var out []T
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate documents: %w", err)
		}
		item, err := fn(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}

// getAllExisting batch-resolves document refs and maps the snapshots that
// exist, silently skipping missing documents.
func getAllExisting[T any](ctx context.Context, fs *firestore.Client, refs []*firestore.DocumentRef, fn func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	snaps, err := fs.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("batch get: %w", err)
	}

	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		item, err := fn(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// startAfter resumes a createdAt-descending query from a cursor. A full
// cursor resumes after (createdAt, id); a reconstructed cursor without an
// ID resumes after the bare timestamp, which may duplicate or skip one
// item when timestamps collide.
func startAfter(q firestore.Query, createdAt any, id string) firestore.Query {
	if id != "" {
		return q.StartAfter(createdAt, id)
	}
	return q.StartAfter(createdAt)
}

package core

import "context"

// Repository defines the read contract against the document store.
// Adhering to this interface keeps the build independent of where documents live.
type Repository interface {
	// Get retrieves a document by its ID.
	// It returns ErrNotFound or ErrUnsupportedDocument when there is nothing to build from.
	Get(ctx context.Context, id string) (Document, error)

	// List returns the IDs of documents matching a glob pattern ("" matches all).
	List(ctx context.Context, pattern string) ([]string, error)
}

// Watchable defines an interface for repositories that emit change notifications.
type Watchable interface {
	// Watch emits events for documents matching the glob pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)

	// Canonical returns the ID under which events for the document id are emitted.
	Canonical(id string) string
}

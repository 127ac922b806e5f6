package ports

import (
	"context"

	"github.com/aretw0/abilitree/pkg/domain"
)

// CatalogLoader defines how the engine retrieves the static ability catalog.
// This allows the storage layer (Loam, single file, Memory) to be decoupled.
type CatalogLoader interface {
	// ListClasses returns the names of every class in the catalog, sorted.
	ListClasses(ctx context.Context) ([]string, error)

	// GetClass retrieves the full definition of one class.
	// It returns an error wrapping domain.ErrUnknownClass if the class does not exist.
	GetClass(ctx context.Context, name string) (*domain.Class, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// Implemented by adapters that support hot-reload (e.g. Loam).
type Watchable interface {
	// Watch returns a channel that emits the ID of each changed document.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, error)
}

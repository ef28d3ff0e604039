package topics

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
)

// System defines policy topic operations.
type System interface {
	// List returns all topics ordered by name.
	List(ctx context.Context) ([]Topic, error)

	// Find returns a topic by ID.
	Find(ctx context.Context, id uuid.UUID) (*Topic, error)

	// FindByName returns a topic by its unique name.
	FindByName(ctx context.Context, name string) (*Topic, error)

	// Upsert creates or replaces a topic keyed by name.
	Upsert(ctx context.Context, cmd UpsertCommand) (*Topic, error)

	// Delete removes a topic.
	Delete(ctx context.Context, id uuid.UUID) error

	// Seed inserts every area of the built-in keyword catalog that is
	// not already stored and returns the number inserted. Existing
	// topics are left untouched.
	Seed(ctx context.Context) (int, error)

	// Catalog builds a keyword catalog from the stored topics.
	Catalog(ctx context.Context) (*classify.Catalog, error)

	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}

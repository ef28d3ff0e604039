package bills

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/pagination"
)

// ContentSource supplies bill page text for classification.
type ContentSource interface {
	BillContent(ctx context.Context, url string) (string, error)
}

// System defines the public contract for bill domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Bill], error)

	Find(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindByNumber(ctx context.Context, parliament, session int, number string) (*Bill, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*Bill, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Classify fetches the bill's page text, scores it against the
	// policy catalog, and persists the resulting tags.
	Classify(ctx context.Context, id uuid.UUID) (*Bill, error)
	// ClassifyBatch classifies every bill not yet auto-classified,
	// fetching pages with bounded concurrency.
	ClassifyBatch(ctx context.Context, concurrency int) ([]BatchResult, error)
}

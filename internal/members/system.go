package members

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/pagination"
)

// System defines the public contract for member domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Member], error)

	Find(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByName(ctx context.Context, name string) (*Member, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package committees

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/pagination"
)

// System defines the public contract for committee domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Committee], error)

	Find(ctx context.Context, id uuid.UUID) (*Committee, error)
	FindByAcronym(ctx context.Context, acronym string) (*Committee, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*Committee, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Members(ctx context.Context, id uuid.UUID) ([]Membership, error)
	Seat(ctx context.Context, id uuid.UUID, cmd SeatCommand) (*Membership, error)
	Unseat(ctx context.Context, id, memberID uuid.UUID) error
}

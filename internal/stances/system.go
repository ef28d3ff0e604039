package stances

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
)

// System defines stance aggregation operations. Results are computed
// from stored ballots on every call.
type System interface {
	// Compute derives the member's leaning on one policy area. An
	// unknown member yields a result-typed error stance, not an error.
	Compute(ctx context.Context, memberID uuid.UUID, area string) (*classify.StanceResult, error)

	// Summary derives the member's leaning on every policy area the
	// member has voted in.
	Summary(ctx context.Context, memberID uuid.UUID) (*Summary, error)

	// Compare derives stances for several members over a shared set of
	// policy areas. Unknown members appear with error stances.
	Compare(ctx context.Context, cmd CompareCommand) (*Comparison, error)

	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}

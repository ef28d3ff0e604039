package votes

import (
	"context"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/pkg/pagination"
)

// System defines the public contract for vote domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[VoteRecord], error)

	Find(ctx context.Context, id uuid.UUID) (*VoteRecord, error)
	FindByNumber(ctx context.Context, parliament, session, voteNumber int) (*VoteRecord, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*VoteRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Ballots returns the individual member choices recorded for a vote.
	Ballots(ctx context.Context, id uuid.UUID) ([]Ballot, error)
	// RecordBallots upserts member choices for a vote and refreshes the
	// aggregate counts from the stored ballots.
	RecordBallots(ctx context.Context, id uuid.UUID, ballots []BallotCommand) (*VoteRecord, error)
	// Tallies aggregates the vote's ballots per party affiliation.
	Tallies(ctx context.Context, id uuid.UUID) (map[string]classify.Tally, error)

	// Classify derives the vote's ideological classification from its
	// subject and party tallies and persists it.
	Classify(ctx context.Context, id uuid.UUID) (*VoteRecord, error)
	// ClassifyAll classifies every vote record without a stored
	// classification.
	ClassifyAll(ctx context.Context) (int, error)

	// LinkBills scans unlinked vote subjects for bill codes and links
	// matching bills from the same parliament and session.
	LinkBills(ctx context.Context) (*LinkReport, error)
	// SyncPolicyTags copies policy tags from linked, classified bills
	// onto their vote records.
	SyncPolicyTags(ctx context.Context) (int, error)
}

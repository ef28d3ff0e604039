package stances

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/internal/members"
)

type repo struct {
	db         *sql.DB
	members    members.System
	classifier *classify.Classifier
	logger     *slog.Logger
}

// New creates a stance repository implementing the System interface.
func New(db *sql.DB, members members.System, classifier *classify.Classifier, logger *slog.Logger) System {
	return &repo{
		db:         db,
		members:    members,
		classifier: classifier,
		logger:     logger.With("system", "stances"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Compute(ctx context.Context, memberID uuid.UUID, area string) (*classify.StanceResult, error) {
	if area == "" {
		return nil, ErrInvalid
	}

	if _, err := r.members.Find(ctx, memberID); err != nil {
		if errors.Is(err, members.ErrNotFound) {
			result := classify.ErrorStance("member not found")
			return &result, nil
		}
		return nil, err
	}

	ballots, err := r.memberBallots(ctx, memberID)
	if err != nil {
		return nil, err
	}

	result := r.classifier.ComputeStance(ballots, area)
	return &result, nil
}

func (r *repo) Summary(ctx context.Context, memberID uuid.UUID) (*Summary, error) {
	m, err := r.members.Find(ctx, memberID)
	if err != nil {
		if errors.Is(err, members.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ballots, err := r.memberBallots(ctx, memberID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		MemberID:   m.ID,
		MemberName: m.Name,
		Party:      m.PoliticalAffiliation,
		Stances:    make(map[string]classify.StanceResult),
	}

	for _, area := range votedAreas(ballots) {
		summary.Stances[area] = r.classifier.ComputeStance(ballots, area)
	}
	return summary, nil
}

func (r *repo) Compare(ctx context.Context, cmd CompareCommand) (*Comparison, error) {
	if len(cmd.MemberIDs) == 0 || len(cmd.Areas) == 0 {
		return nil, ErrInvalid
	}

	comparison := &Comparison{
		Areas:   cmd.Areas,
		Members: make([]Summary, 0, len(cmd.MemberIDs)),
	}

	for _, id := range cmd.MemberIDs {
		summary := Summary{
			MemberID: id,
			Stances:  make(map[string]classify.StanceResult),
		}

		m, err := r.members.Find(ctx, id)
		switch {
		case errors.Is(err, members.ErrNotFound):
			for _, area := range cmd.Areas {
				summary.Stances[area] = classify.ErrorStance("member not found")
			}
		case err != nil:
			return nil, err
		default:
			summary.MemberName = m.Name
			summary.Party = m.PoliticalAffiliation

			ballots, err := r.memberBallots(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, area := range cmd.Areas {
				summary.Stances[area] = r.classifier.ComputeStance(ballots, area)
			}
		}

		comparison.Members = append(comparison.Members, summary)
	}

	return comparison, nil
}

// memberBallots loads every ballot the member has cast, joined with the
// vote subject and policy tags, plus per-party tallies for each of
// those votes.
func (r *repo) memberBallots(ctx context.Context, memberID uuid.UUID) ([]classify.Ballot, error) {
	q := `
		SELECT v.id, v.subject, v.policy_tags, b.choice
		FROM ballots b
		INNER JOIN vote_records v ON v.id = b.vote_record_id
		WHERE b.member_id = $1
		ORDER BY v.vote_date, v.vote_number`

	rows, err := r.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, fmt.Errorf("query member ballots: %w", err)
	}
	defer rows.Close()

	type ballotRow struct {
		voteID  uuid.UUID
		subject string
		tags    []string
		choice  classify.Choice
	}

	var (
		raws    []ballotRow
		voteIDs []string
	)
	for rows.Next() {
		var (
			row  ballotRow
			tags []byte
		)
		if err := rows.Scan(&row.voteID, &row.subject, &tags, &row.choice); err != nil {
			return nil, fmt.Errorf("scan member ballot: %w", err)
		}
		if tags != nil {
			if err := json.Unmarshal(tags, &row.tags); err != nil {
				return nil, fmt.Errorf("decode policy tags: %w", err)
			}
		}
		raws = append(raws, row)
		voteIDs = append(voteIDs, row.voteID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}

	tallies, err := r.voteTallies(ctx, voteIDs)
	if err != nil {
		return nil, err
	}

	ballots := make([]classify.Ballot, 0, len(raws))
	for _, row := range raws {
		ballots = append(ballots, classify.Ballot{
			Subject:    row.subject,
			Tallies:    tallies[row.voteID],
			Choice:     row.choice,
			PolicyTags: row.tags,
		})
	}
	return ballots, nil
}

// voteTallies aggregates per-party ballot counts for a set of votes in
// one grouped query.
func (r *repo) voteTallies(ctx context.Context, voteIDs []string) (map[uuid.UUID]map[string]classify.Tally, error) {
	q := `
		SELECT
			b.vote_record_id,
			m.political_affiliation,
			COUNT(*) FILTER (WHERE b.choice = 'YEA'),
			COUNT(*) FILTER (WHERE b.choice = 'NAY'),
			COUNT(*) FILTER (WHERE b.choice = 'PAIRED'),
			COUNT(*) FILTER (WHERE b.choice = 'ABSENT')
		FROM ballots b
		INNER JOIN members m ON m.id = b.member_id
		WHERE b.vote_record_id = ANY($1::uuid[])
		GROUP BY b.vote_record_id, m.political_affiliation`

	rows, err := r.db.QueryContext(ctx, q, voteIDs)
	if err != nil {
		return nil, fmt.Errorf("query vote tallies: %w", err)
	}
	defer rows.Close()

	tallies := make(map[uuid.UUID]map[string]classify.Tally)
	for rows.Next() {
		var (
			voteID uuid.UUID
			party  string
			t      classify.Tally
		)
		if err := rows.Scan(&voteID, &party, &t.Yea, &t.Nay, &t.Paired, &t.Absent); err != nil {
			return nil, fmt.Errorf("scan vote tally: %w", err)
		}
		if tallies[voteID] == nil {
			tallies[voteID] = make(map[string]classify.Tally)
		}
		tallies[voteID][party] = t
	}
	return tallies, rows.Err()
}

// votedAreas collects the distinct policy areas tagged on the member's
// votes, sorted for stable summaries.
func votedAreas(ballots []classify.Ballot) []string {
	seen := make(map[string]struct{})
	for _, b := range ballots {
		for _, tag := range b.PolicyTags {
			seen[tag] = struct{}{}
		}
	}

	areas := make([]string, 0, len(seen))
	for area := range seen {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return areas
}

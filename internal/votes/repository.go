package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/internal/bills"
	"github.com/openparl/tally/internal/parliaments"
	"github.com/openparl/tally/pkg/pagination"
	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

type repo struct {
	db         *sql.DB
	classifier *classify.Classifier
	bills      bills.System
	parl       parliaments.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a vote repository implementing the System interface.
func New(
	db *sql.DB,
	classifier *classify.Classifier,
	billSys bills.System,
	parl parliaments.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		classifier: classifier,
		bills:      billSys,
		parl:       parl,
		logger:     logger.With("system", "votes"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[VoteRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Subject", "Classification")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count vote records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVoteRecord)
	if err != nil {
		return nil, fmt.Errorf("query vote records: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*VoteRecord, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVoteRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) FindByNumber(ctx context.Context, parliament, session, voteNumber int) (*VoteRecord, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("ParliamentNumber", &parliament).
		WhereEquals("Session", &session).
		WhereEquals("VoteNumber", &voteNumber).
		BuildSingleOrNull()

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVoteRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*VoteRecord, error) {
	if cmd.VoteNumber < 1 || cmd.ParliamentNumber < 1 {
		return nil, ErrInvalid
	}
	if cmd.Session < 1 {
		cmd.Session = 1
	}
	if cmd.VoteType == "" {
		cmd.VoteType = TypeRecorded
	}

	parl, err := r.parl.Ensure(ctx, cmd.ParliamentNumber)
	if err != nil {
		return nil, fmt.Errorf("ensure parliament %d: %w", cmd.ParliamentNumber, err)
	}

	q := `
		INSERT INTO vote_records(id, vote_number, parliament_id, session, subject, vote_type, result, vote_date, yea_count, nay_count, paired_count, absent_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (parliament_id, session, vote_number) DO UPDATE SET
			subject = EXCLUDED.subject,
			vote_type = EXCLUDED.vote_type,
			result = EXCLUDED.result,
			vote_date = COALESCE(EXCLUDED.vote_date, vote_records.vote_date),
			yea_count = EXCLUDED.yea_count,
			nay_count = EXCLUDED.nay_count,
			paired_count = EXCLUDED.paired_count,
			absent_count = EXCLUDED.absent_count,
			updated_at = NOW()
		RETURNING id`

	args := []any{
		uuid.New(),
		cmd.VoteNumber,
		parl.ID,
		cmd.Session,
		cmd.Subject,
		cmd.VoteType,
		cmd.Result,
		cmd.VoteDate,
		cmd.YeaCount,
		cmd.NayCount,
		cmd.PairedCount,
		cmd.AbsentCount,
	}

	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	v, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("vote record upserted", "id", v.ID, "vote", v.VoteNumber)
	return v, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM vote_records WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("vote record deleted", "id", id)
	return nil
}

func (r *repo) Ballots(ctx context.Context, id uuid.UUID) ([]Ballot, error) {
	q := `
		SELECT b.id, b.vote_record_id, b.member_id, m.name, m.political_affiliation, b.choice, b.created_at
		FROM ballots b
		INNER JOIN members m ON m.id = b.member_id
		WHERE b.vote_record_id = $1
		ORDER BY m.name`

	ballots, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanBallot)
	if err != nil {
		return nil, fmt.Errorf("query ballots: %w", err)
	}
	return ballots, nil
}

func (r *repo) RecordBallots(ctx context.Context, id uuid.UUID, ballots []BallotCommand) (*VoteRecord, error) {
	for _, b := range ballots {
		switch classify.Choice(b.Choice) {
		case classify.Yea, classify.Nay, classify.Paired, classify.Absent:
		default:
			return nil, fmt.Errorf("%w: choice %q", ErrInvalid, b.Choice)
		}
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		q := `
			INSERT INTO ballots(id, vote_record_id, member_id, choice)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (vote_record_id, member_id) DO UPDATE SET choice = EXCLUDED.choice`

		for _, b := range ballots {
			if _, err := tx.ExecContext(ctx, q, uuid.New(), id, b.MemberID, b.Choice); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, r.refreshCounts(ctx, tx, id)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ballots recorded", "vote_record", id, "count", len(ballots))
	return r.Find(ctx, id)
}

// refreshCounts recomputes the aggregate columns from stored ballots.
func (r *repo) refreshCounts(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	q := `
		UPDATE vote_records SET
			yea_count = agg.yea,
			nay_count = agg.nay,
			paired_count = agg.paired,
			absent_count = agg.absent,
			updated_at = NOW()
		FROM (
			SELECT
				COUNT(*) FILTER (WHERE choice = 'YEA') AS yea,
				COUNT(*) FILTER (WHERE choice = 'NAY') AS nay,
				COUNT(*) FILTER (WHERE choice = 'PAIRED') AS paired,
				COUNT(*) FILTER (WHERE choice = 'ABSENT') AS absent
			FROM ballots WHERE vote_record_id = $1
		) agg
		WHERE vote_records.id = $1`

	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) Tallies(ctx context.Context, id uuid.UUID) (map[string]classify.Tally, error) {
	q := `
		SELECT
			m.political_affiliation,
			COUNT(*) FILTER (WHERE b.choice = 'YEA'),
			COUNT(*) FILTER (WHERE b.choice = 'NAY'),
			COUNT(*) FILTER (WHERE b.choice = 'PAIRED'),
			COUNT(*) FILTER (WHERE b.choice = 'ABSENT')
		FROM ballots b
		INNER JOIN members m ON m.id = b.member_id
		WHERE b.vote_record_id = $1
		GROUP BY m.political_affiliation`

	rows, err := r.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("query tallies: %w", err)
	}
	defer rows.Close()

	tallies := make(map[string]classify.Tally)
	for rows.Next() {
		var party string
		var t classify.Tally
		if err := rows.Scan(&party, &t.Yea, &t.Nay, &t.Paired, &t.Absent); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tallies[party] = t
	}
	return tallies, rows.Err()
}

func (r *repo) Classify(ctx context.Context, id uuid.UUID) (*VoteRecord, error) {
	vote, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	tallies, err := r.Tallies(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis := r.classifier.ClassifyVote(vote.Subject, tallies)

	q := `
		UPDATE vote_records SET
			classification = $2,
			classified_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, id, string(analysis.Classification)); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("vote classified",
		"id", id,
		"vote", vote.VoteNumber,
		"classification", analysis.Classification,
		"bipartisan", analysis.Bipartisan,
	)
	return r.Find(ctx, id)
}

func (r *repo) ClassifyAll(ctx context.Context) (int, error) {
	unclassified := true
	page := pagination.PageRequest{Page: 1, PageSize: r.pagination.MaxPageSize}
	classified := 0

	for {
		result, err := r.List(ctx, page, Filters{Unclassified: &unclassified})
		if err != nil {
			return classified, err
		}
		if len(result.Data) == 0 {
			return classified, nil
		}

		progressed := 0
		for _, vote := range result.Data {
			if _, err := r.Classify(ctx, vote.ID); err != nil {
				r.logger.Warn("vote classification failed", "id", vote.ID, "error", err)
				continue
			}
			progressed++
			classified++
		}

		// Classified records drop out of the filter, so stay on page 1.
		if len(result.Data) < page.PageSize {
			return classified, nil
		}
		// A full page of persistent failures would re-query the same rows.
		if progressed == 0 {
			return classified, nil
		}
	}
}

func (r *repo) LinkBills(ctx context.Context) (*LinkReport, error) {
	q := `
		SELECT v.id, v.subject, v.session, p.number
		FROM vote_records v
		INNER JOIN parliaments p ON p.id = v.parliament_id
		WHERE v.bill_id IS NULL AND v.subject <> ''`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query unlinked votes: %w", err)
	}

	type candidate struct {
		id         uuid.UUID
		code       string
		session    int
		parliament int
	}

	var candidates []candidate
	for rows.Next() {
		var (
			id         uuid.UUID
			subject    string
			session    int
			parliament int
		)
		if err := rows.Scan(&id, &subject, &session, &parliament); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan unlinked vote: %w", err)
		}
		if code := bills.ExtractCode(subject); code != "" {
			candidates = append(candidates, candidate{id: id, code: code, session: session, parliament: parliament})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate unlinked votes: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	report := &LinkReport{Scanned: len(candidates)}
	for _, c := range candidates {
		bill, err := r.bills.FindByNumber(ctx, c.parliament, c.session, c.code)
		if err != nil {
			if errors.Is(err, bills.ErrNotFound) {
				continue
			}
			return report, err
		}

		if _, err := r.db.ExecContext(ctx,
			"UPDATE vote_records SET bill_id = $2, updated_at = NOW() WHERE id = $1",
			c.id, bill.ID,
		); err != nil {
			return report, fmt.Errorf("link vote %s: %w", c.id, err)
		}
		report.Linked++
	}

	r.logger.Info("bill linking complete", "scanned", report.Scanned, "linked", report.Linked)
	return report, nil
}

func (r *repo) SyncPolicyTags(ctx context.Context) (int, error) {
	q := `
		UPDATE vote_records v SET
			policy_tags = b.policy_tags,
			updated_at = NOW()
		FROM bills b
		WHERE v.bill_id = b.id
		  AND b.auto_classified
		  AND v.policy_tags IS DISTINCT FROM b.policy_tags`

	result, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("sync policy tags: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	r.logger.Info("policy tags synced", "votes", affected)
	return int(affected), nil
}

package bills

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/internal/parliaments"
	"github.com/openparl/tally/pkg/pagination"
	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

const defaultBatchConcurrency = 4

type repo struct {
	db         *sql.DB
	classifier *classify.Classifier
	source     ContentSource
	parl       parliaments.System
	legisURL   string
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a bill repository implementing the System interface.
func New(
	db *sql.DB,
	classifier *classify.Classifier,
	source ContentSource,
	parl parliaments.System,
	legisURL string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		classifier: classifier,
		source:     source,
		parl:       parl,
		legisURL:   legisURL,
		logger:     logger.With("system", "bills"),
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
) (*pagination.PageResult[Bill], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Number", "Subject", "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count bills: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBill)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Bill, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBill)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) FindByNumber(ctx context.Context, parliament, session int, number string) (*Bill, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, ErrInvalid
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("ParliamentNumber", &parliament).
		WhereEquals("Session", &session).
		WhereEquals("Number", &number).
		BuildSingleOrNull()

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBill)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Bill, error) {
	cmd.Number = strings.ToUpper(strings.TrimSpace(cmd.Number))
	if cmd.Number == "" || cmd.ParliamentNumber < 1 {
		return nil, ErrInvalid
	}
	if cmd.Session < 1 {
		cmd.Session = 1
	}
	if cmd.Status == "" {
		cmd.Status = StatusIntroduced
	}
	if cmd.URL == "" {
		cmd.URL = BillURL(r.legisURL, cmd.Number, cmd.ParliamentNumber, cmd.Session)
	}

	parl, err := r.parl.Ensure(ctx, cmd.ParliamentNumber)
	if err != nil {
		return nil, fmt.Errorf("ensure parliament %d: %w", cmd.ParliamentNumber, err)
	}

	q := `
		INSERT INTO bills(id, number, parliament_id, session, subject, summary, bill_type, sponsor_id, status, introduced_date, last_activity_date, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (parliament_id, session, number) DO UPDATE SET
			subject = EXCLUDED.subject,
			summary = EXCLUDED.summary,
			bill_type = COALESCE(EXCLUDED.bill_type, bills.bill_type),
			sponsor_id = COALESCE(EXCLUDED.sponsor_id, bills.sponsor_id),
			status = EXCLUDED.status,
			introduced_date = COALESCE(EXCLUDED.introduced_date, bills.introduced_date),
			last_activity_date = COALESCE(EXCLUDED.last_activity_date, bills.last_activity_date),
			url = CASE WHEN EXCLUDED.url <> '' THEN EXCLUDED.url ELSE bills.url END,
			updated_at = NOW()
		RETURNING id`

	args := []any{
		uuid.New(),
		cmd.Number,
		parl.ID,
		cmd.Session,
		cmd.Subject,
		cmd.Summary,
		cmd.BillType,
		cmd.SponsorID,
		cmd.Status,
		cmd.IntroducedDate,
		cmd.LastActivityDate,
		cmd.URL,
	}

	var id uuid.UUID
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	b, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("bill upserted", "id", b.ID, "number", b.Number)
	return b, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM bills WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("bill deleted", "id", id)
	return nil
}

func (r *repo) Classify(ctx context.Context, id uuid.UUID) (*Bill, error) {
	bill, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	pageURL := bill.URL
	if pageURL == "" {
		pageURL = BillURL(r.legisURL, bill.Number, bill.ParliamentNumber, bill.Session)
	}
	if pageURL == "" {
		return nil, ErrNoContent
	}

	content, err := r.source.BillContent(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch bill content %s: %w", bill.Number, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	result := r.classifier.ClassifyPolicy(content, bill.Subject)

	tags, err := json.Marshal(result.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode policy tags: %w", err)
	}

	q := `
		UPDATE bills SET
			policy_tags = $2,
			primary_policy_area = $3,
			classification_confidence = $4,
			auto_classified = TRUE,
			classified_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, r.db, q, bill.ID, tags, result.Primary, result.Confidence); err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("bill classified",
		"id", bill.ID,
		"number", bill.Number,
		"primary", result.Primary,
		"confidence", result.Confidence,
	)
	return r.Find(ctx, bill.ID)
}

func (r *repo) ClassifyBatch(ctx context.Context, concurrency int) ([]BatchResult, error) {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}

	auto := false
	qb := query.NewBuilder(projection, defaultSort).WhereEquals("AutoClassified", &auto)
	q, args := qb.Build()

	pending, err := repository.QueryMany(ctx, r.db, q, args, scanBill)
	if err != nil {
		return nil, fmt.Errorf("query unclassified bills: %w", err)
	}

	var (
		mu      sync.Mutex
		results = make([]BatchResult, 0, len(pending))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, bill := range pending {
		g.Go(func() error {
			res := BatchResult{BillID: bill.ID, Number: bill.Number}

			classified, err := r.Classify(gctx, bill.ID)
			if err != nil {
				res.Error = err.Error()
			} else {
				res.Primary = classified.PrimaryPolicyArea
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	r.logger.Info("bill batch classified", "total", len(pending))
	return results, nil
}

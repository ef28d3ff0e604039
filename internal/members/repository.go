package members

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/pagination"
	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a member repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "members"),
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
) (*pagination.PageResult[Member], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Constituency", "PoliticalAffiliation")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanMember)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Member, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

func (r *repo) FindByName(ctx context.Context, name string) (*Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalid
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("Name", &name).
		BuildSingleOrNull()

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Member, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return nil, ErrInvalid
	}
	if cmd.PartyCode == "" {
		cmd.PartyCode = PartyCodeFor(cmd.PoliticalAffiliation)
	}
	if cmd.Status == "" {
		cmd.Status = StatusActive
	}

	q := `
		INSERT INTO members(id, name, honourific_title, political_affiliation, party_code, constituency, province, status, first_elected, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name, constituency) DO UPDATE SET
			honourific_title = EXCLUDED.honourific_title,
			political_affiliation = EXCLUDED.political_affiliation,
			party_code = EXCLUDED.party_code,
			province = EXCLUDED.province,
			status = EXCLUDED.status,
			first_elected = COALESCE(EXCLUDED.first_elected, members.first_elected),
			last_active = COALESCE(EXCLUDED.last_active, members.last_active),
			updated_at = NOW()
		RETURNING id, name, honourific_title, political_affiliation, party_code, constituency, province, status, first_elected, last_active, created_at, updated_at`

	args := []any{
		uuid.New(),
		cmd.Name,
		cmd.HonourificTitle,
		cmd.PoliticalAffiliation,
		cmd.PartyCode,
		cmd.Constituency,
		cmd.Province,
		cmd.Status,
		cmd.FirstElected,
		cmd.LastActive,
	}

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMember)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("member upserted", "id", m.ID, "name", m.Name)
	return &m, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM members WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("member deleted", "id", id)
	return nil
}

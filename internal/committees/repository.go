package committees

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

// New creates a committee repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "committees"),
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
) (*pagination.PageResult[Committee], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Acronym", "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count committees: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCommittee)
	if err != nil {
		return nil, fmt.Errorf("query committees: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Committee, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCommittee)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindByAcronym(ctx context.Context, acronym string) (*Committee, error) {
	acronym = strings.ToUpper(strings.TrimSpace(acronym))
	if acronym == "" {
		return nil, ErrInvalid
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("Acronym", &acronym).
		BuildSingleOrNull()

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCommittee)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Committee, error) {
	cmd.Acronym = strings.ToUpper(strings.TrimSpace(cmd.Acronym))
	if cmd.Acronym == "" {
		return nil, ErrInvalid
	}
	if cmd.CommitteeType == "" {
		cmd.CommitteeType = TypeStanding
	}

	q := `
		INSERT INTO committees(id, acronym, name, committee_type, url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (acronym) DO UPDATE SET
			name = EXCLUDED.name,
			committee_type = EXCLUDED.committee_type,
			url = CASE WHEN EXCLUDED.url <> '' THEN EXCLUDED.url ELSE committees.url END,
			updated_at = NOW()
		RETURNING id, acronym, name, committee_type, url, created_at, updated_at`

	args := []any{uuid.New(), cmd.Acronym, cmd.Name, cmd.CommitteeType, cmd.URL}

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCommittee)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("committee upserted", "id", c.ID, "acronym", c.Acronym)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM committees WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("committee deleted", "id", id)
	return nil
}

func (r *repo) Members(ctx context.Context, id uuid.UUID) ([]Membership, error) {
	q := `
		SELECT cm.id, cm.committee_id, cm.member_id, m.name, m.political_affiliation, cm.role, cm.start_date, cm.end_date
		FROM committee_members cm
		INNER JOIN members m ON m.id = cm.member_id
		WHERE cm.committee_id = $1
		ORDER BY
			CASE cm.role
				WHEN 'CHAIR' THEN 0
				WHEN 'VICE_CHAIR' THEN 1
				WHEN 'MEMBER' THEN 2
				ELSE 3
			END,
			m.name`

	members, err := repository.QueryMany(ctx, r.db, q, []any{id}, scanMembership)
	if err != nil {
		return nil, fmt.Errorf("query committee members: %w", err)
	}
	return members, nil
}

func (r *repo) Seat(ctx context.Context, id uuid.UUID, cmd SeatCommand) (*Membership, error) {
	switch cmd.Role {
	case "":
		cmd.Role = RoleMember
	case RoleChair, RoleViceChair, RoleMember, RoleAssociate:
	default:
		return nil, fmt.Errorf("%w: role %q", ErrInvalid, cmd.Role)
	}

	q := `
		INSERT INTO committee_members(id, committee_id, member_id, role, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (committee_id, member_id) DO UPDATE SET
			role = EXCLUDED.role,
			start_date = COALESCE(EXCLUDED.start_date, committee_members.start_date),
			end_date = EXCLUDED.end_date,
			updated_at = NOW()
		RETURNING id`

	var seatID uuid.UUID
	err := r.db.QueryRowContext(ctx, q, uuid.New(), id, cmd.MemberID, cmd.Role, cmd.StartDate, cmd.EndDate).Scan(&seatID)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	mq := `
		SELECT cm.id, cm.committee_id, cm.member_id, m.name, m.political_affiliation, cm.role, cm.start_date, cm.end_date
		FROM committee_members cm
		INNER JOIN members m ON m.id = cm.member_id
		WHERE cm.id = $1`

	membership, err := repository.QueryOne(ctx, r.db, mq, []any{seatID}, scanMembership)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("committee seat assigned", "committee", id, "member", cmd.MemberID, "role", cmd.Role)
	return &membership, nil
}

func (r *repo) Unseat(ctx context.Context, id, memberID uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM committee_members WHERE committee_id = $1 AND member_id = $2",
		id, memberID,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("committee seat removed", "committee", id, "member", memberID)
	return nil
}

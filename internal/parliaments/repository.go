package parliaments

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "parliaments", "p").
	Project("id", "ID").
	Project("number", "Number").
	Project("start_date", "StartDate").
	Project("end_date", "EndDate").
	Project("is_current", "IsCurrent").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "Number",
	Descending: true,
}

func scanParliament(s repository.Scanner) (Parliament, error) {
	var p Parliament
	err := s.Scan(
		&p.ID,
		&p.Number,
		&p.StartDate,
		&p.EndDate,
		&p.IsCurrent,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a parliament repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "parliaments"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Parliament, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanParliament)
	if err != nil {
		return nil, fmt.Errorf("query parliaments: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Parliament, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanParliament)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) FindByNumber(ctx context.Context, number int) (*Parliament, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Number", number)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanParliament)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Ensure(ctx context.Context, number int) (*Parliament, error) {
	if number < 1 {
		return nil, ErrInvalid
	}

	q := `
		INSERT INTO parliaments(id, number)
		VALUES ($1, $2)
		ON CONFLICT (number) DO UPDATE SET updated_at = NOW()
		RETURNING id, number, start_date, end_date, is_current, created_at, updated_at`

	p, err := repository.QueryOne(ctx, r.db, q, []any{uuid.New(), number}, scanParliament)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) SetCurrent(ctx context.Context, number int) (*Parliament, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Parliament, error) {
		if _, err := tx.ExecContext(ctx, "UPDATE parliaments SET is_current = FALSE, updated_at = NOW() WHERE is_current"); err != nil {
			return Parliament{}, err
		}

		q := `
			UPDATE parliaments SET is_current = TRUE, updated_at = NOW()
			WHERE number = $1
			RETURNING id, number, start_date, end_date, is_current, created_at, updated_at`
		return repository.QueryOne(ctx, tx, q, []any{number}, scanParliament)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("current parliament set", "number", number)
	return &p, nil
}

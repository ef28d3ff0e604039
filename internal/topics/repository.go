package topics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "policy_topics", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("keywords", "Keywords").
	Project("weight", "Weight").
	Project("color", "Color").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "Name"}

func scanTopic(s repository.Scanner) (Topic, error) {
	var (
		t        Topic
		keywords []byte
	)

	err := s.Scan(
		&t.ID,
		&t.Name,
		&keywords,
		&t.Weight,
		&t.Color,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}

	if err := json.Unmarshal(keywords, &t.Keywords); err != nil {
		return t, fmt.Errorf("decode keywords: %w", err)
	}
	if t.Keywords == nil {
		t.Keywords = []string{}
	}
	return t, nil
}

type repo struct {
	db      *sql.DB
	catalog *classify.Catalog
	logger  *slog.Logger
}

// New creates a topic repository implementing the System interface.
// The catalog provides the built-in areas used by Seed.
func New(db *sql.DB, catalog *classify.Catalog, logger *slog.Logger) System {
	return &repo{
		db:      db,
		catalog: catalog,
		logger:  logger.With("system", "topics"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Topic, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanTopic)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Topic, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTopic)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) FindByName(ctx context.Context, name string) (*Topic, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Name", name)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTopic)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Topic, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	keywords, err := json.Marshal(cmd.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	q := `
		INSERT INTO policy_topics(id, name, keywords, weight, color)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			keywords = EXCLUDED.keywords,
			weight = EXCLUDED.weight,
			color = EXCLUDED.color,
			updated_at = NOW()
		RETURNING id, name, keywords, weight, color, created_at, updated_at`

	t, err := repository.QueryOne(ctx, r.db, q, []any{uuid.New(), cmd.Name, keywords, cmd.Weight, cmd.Color}, scanTopic)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("topic upserted", "name", t.Name, "keywords", len(t.Keywords))
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM policy_topics WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("topic deleted", "id", id)
	return nil
}

func (r *repo) Seed(ctx context.Context) (int, error) {
	inserted := 0

	for _, area := range r.catalog.Areas() {
		keywords, err := json.Marshal(area.Keywords)
		if err != nil {
			return inserted, fmt.Errorf("encode keywords for %q: %w", area.Name, err)
		}

		q := `
			INSERT INTO policy_topics(id, name, keywords, weight)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING`

		res, err := r.db.ExecContext(ctx, q, uuid.New(), area.Name, keywords, area.Weight)
		if err != nil {
			return inserted, fmt.Errorf("seed topic %q: %w", area.Name, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}

	r.logger.Info("topics seeded", "inserted", inserted)
	return inserted, nil
}

func (r *repo) Catalog(ctx context.Context) (*classify.Catalog, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	areas := make([]classify.PolicyArea, 0, len(items))
	for _, t := range items {
		areas = append(areas, classify.PolicyArea{
			Name:     t.Name,
			Keywords: t.Keywords,
			Weight:   t.Weight,
		})
	}

	return classify.NewCatalog(areas)
}

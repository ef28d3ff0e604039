package query_test

import (
	"testing"

	"github.com/openparl/tally/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "members", "m").
		Project("id", "ID").
		Project("name", "Name").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	if got, want := p.Table(), "public.members m"; got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	if got, want := p.Columns(), "m.id, m.name, m.created_at"; got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumn(t *testing.T) {
	p := testProjection()
	if got := p.Column("Name"); got != "m.name" {
		t.Errorf("Column(Name) = %q, want m.name", got)
	}
	if got := p.Column("Unmapped"); got != "Unmapped" {
		t.Errorf("Column(Unmapped) = %q, want passthrough", got)
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := query.NewProjectionMap("public", "vote_records", "v").
		Project("id", "ID").
		Join("public", "parliaments", "p", "INNER JOIN", "v.parliament_id = p.id").
		Project("number", "ParliamentNumber")

	want := "public.vote_records v INNER JOIN public.parliaments p ON v.parliament_id = p.id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Column("ParliamentNumber"); got != "p.number" {
		t.Errorf("Column(ParliamentNumber) = %q, want p.number", got)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "name", []query.SortField{{Field: "name"}}},
		{"single descending", "-name", []query.SortField{{Field: "name", Descending: true}}},
		{
			"mixed with whitespace",
			" name , -created_at ",
			[]query.SortField{{Field: "name"}, {Field: "created_at", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"})
	sql, args := b.Build()

	want := "SELECT m.id, m.name, m.created_at FROM public.members m ORDER BY m.name ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"})
	sql, _ := b.BuildPage(3, 25)

	want := "SELECT m.id, m.name, m.created_at FROM public.members m ORDER BY m.name ASC LIMIT 25 OFFSET 50"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereEquals("Name", ptr("Smith"))
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.members m WHERE m.name = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args length = %d, want 1", len(args))
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("ID", "abc")

	want := "SELECT m.id, m.name, m.created_at FROM public.members m WHERE m.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilderParameterNumbering(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereContains("Name", ptr("smith")).
		WhereEquals("ID", ptr("x")).
		WhereSearch(ptr("ont"), "Name")
	sql, args := b.Build()

	want := "SELECT m.id, m.name, m.created_at FROM public.members m" +
		" WHERE m.name ILIKE $1 AND m.id = $2 AND (m.name ILIKE $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args length = %d, want 3", len(args))
	}
}

func TestBuilderWhereSkipsNils(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereContains("Name", nil).
		WhereEquals("ID", nil).
		WhereIn("ID", nil).
		WhereSearch(nil, "Name")
	sql, args := b.Build()

	want := "SELECT m.id, m.name, m.created_at FROM public.members m"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereIn(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereIn("ID", []any{"a", "b", "c"})
	sql, args := b.Build()

	want := "SELECT m.id, m.name, m.created_at FROM public.members m WHERE m.id IN ($1, $2, $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args length = %d, want 3", len(args))
	}
}

func TestBuilderOrderByOverride(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Name"}).
		OrderByFields([]query.SortField{{Field: "CreatedAt", Descending: true}})
	sql, _ := b.Build()

	want := "SELECT m.id, m.name, m.created_at FROM public.members m ORDER BY m.created_at DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

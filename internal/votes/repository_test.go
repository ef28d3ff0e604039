package votes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
	"github.com/openparl/tally/pkg/pagination"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func voteColumns() []string {
	return []string{
		"id", "vote_number", "parliament_id", "session", "subject",
		"vote_type", "result", "vote_date", "bill_id",
		"yea_count", "nay_count", "paired_count", "absent_count",
		"classification", "classified_at", "policy_tags",
		"created_at", "updated_at", "number",
	}
}

func addVoteRow(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, 12, uuid.NewString(), 1, "2nd reading of Bill C-5",
		TypeRecorded, ResultAgreed, nil, nil,
		0, 0, 0, 0,
		"", nil, []byte("[]"),
		now, now, 45,
	)
}

func TestLinkBillsSurfacesIterationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "subject", "session", "number"}).
		AddRow(uuid.NewString(), "2nd reading of Bill C-5", 1, 45).
		RowError(0, errors.New("connection reset"))
	mock.ExpectQuery("SELECT v.id, v.subject").WillReturnRows(rows)

	r := &repo{db: db, logger: discardLogger()}

	_, err = r.LinkBills(context.Background())
	if err == nil {
		t.Fatal("LinkBills succeeded, want iteration error")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("error = %v, want wrapped connection reset", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestClassifyAllStopsOnPersistentFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	voteID := uuid.NewString()

	// Full first page: one unclassified record with page size 1.
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("LIMIT 1 OFFSET 0").
		WillReturnRows(addVoteRow(sqlmock.NewRows(voteColumns()), voteID))
	// Classification of that record keeps failing.
	mock.ExpectQuery("WHERE v.id").
		WillReturnError(errors.New("boom"))

	r := &repo{
		db:         db,
		classifier: classify.New(nil, nil, nil),
		logger:     discardLogger(),
		pagination: pagination.Config{DefaultPageSize: 1, MaxPageSize: 1},
	}

	classified, err := r.ClassifyAll(context.Background())
	if err != nil {
		t.Fatalf("ClassifyAll failed: %v", err)
	}
	if classified != 0 {
		t.Errorf("classified = %d, want 0", classified)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

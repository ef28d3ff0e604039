package api

import (
	"github.com/openparl/tally/internal/bills"
	"github.com/openparl/tally/internal/committees"
	"github.com/openparl/tally/internal/ingest"
	"github.com/openparl/tally/internal/members"
	"github.com/openparl/tally/internal/parliaments"
	"github.com/openparl/tally/internal/stances"
	"github.com/openparl/tally/internal/topics"
	"github.com/openparl/tally/internal/votes"
	"github.com/openparl/tally/pkg/storage"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Parliaments parliaments.System
	Members     members.System
	Bills       bills.System
	Votes       votes.System
	Committees  committees.System
	Topics      topics.System
	Stances     stances.System
	Ingest      *ingest.Ingestor
}

// NewDomain creates all domain systems from the API runtime. The ingest
// fetcher doubles as the bill content source for classification.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	fetcher := ingest.NewFetcher(
		runtime.Ingest.UserAgent,
		runtime.Ingest.TimeoutDuration(),
		runtime.Ingest.MaxRetries,
		runtime.Ingest.DelayDuration(),
	)

	var snapshots storage.System
	if runtime.Ingest.Snapshots {
		snapshots = runtime.Storage
	}
	extractor := ingest.NewExtractor(fetcher, snapshots, runtime.Logger)

	parliamentSys := parliaments.New(db, runtime.Logger)
	memberSys := members.New(db, runtime.Logger, runtime.Pagination)
	committeeSys := committees.New(db, runtime.Logger, runtime.Pagination)

	billSys := bills.New(
		db,
		runtime.Classifier,
		extractor,
		parliamentSys,
		runtime.Ingest.LegisURL,
		runtime.Logger,
		runtime.Pagination,
	)

	voteSys := votes.New(
		db,
		runtime.Classifier,
		billSys,
		parliamentSys,
		runtime.Logger,
		runtime.Pagination,
	)

	topicSys := topics.New(db, runtime.Classifier.Catalog(), runtime.Logger)
	stanceSys := stances.New(db, memberSys, runtime.Classifier, runtime.Logger)

	ingestor := ingest.New(
		runtime.Ingest,
		fetcher,
		memberSys,
		voteSys,
		billSys,
		committeeSys,
		runtime.Logger,
	)

	return &Domain{
		Parliaments: parliamentSys,
		Members:     memberSys,
		Bills:       billSys,
		Votes:       voteSys,
		Committees:  committeeSys,
		Topics:      topicSys,
		Stances:     stanceSys,
		Ingest:      ingestor,
	}
}

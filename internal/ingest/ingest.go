package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openparl/tally/internal/bills"
	"github.com/openparl/tally/internal/committees"
	"github.com/openparl/tally/internal/config"
	"github.com/openparl/tally/internal/members"
	"github.com/openparl/tally/internal/votes"
	"github.com/openparl/tally/pkg/pagination"
)

// Report summarizes one ingestion stage.
type Report struct {
	Pages   int `json:"pages,omitempty"`
	Scanned int `json:"scanned"`
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
}

// Ingestor drives the scraping stages against the parliamentary sites
// and stores results through the domain systems.
type Ingestor struct {
	fetcher    *Fetcher
	members    members.System
	votes      votes.System
	bills      bills.System
	committees committees.System
	commonsURL string
	legisURL   string
	emptyPages int
	logger     *slog.Logger
}

// New creates an ingestor from the ingest configuration and the domain
// systems it stores into.
func New(
	cfg config.IngestConfig,
	fetcher *Fetcher,
	memberSys members.System,
	voteSys votes.System,
	billSys bills.System,
	committeeSys committees.System,
	logger *slog.Logger,
) *Ingestor {
	return &Ingestor{
		fetcher:    fetcher,
		members:    memberSys,
		votes:      voteSys,
		bills:      billSys,
		committees: committeeSys,
		commonsURL: cfg.CommonsURL,
		legisURL:   cfg.LegisURL,
		emptyPages: cfg.EmptyPages,
		logger:     logger.With("system", "ingest"),
	}
}

// Members scrapes the full member search page and upserts every member.
func (g *Ingestor) Members(ctx context.Context) (*Report, error) {
	url := g.commonsURL + "/members/en/search?parliament=all&caucusId=all&province=all&gender=all"

	page, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	rows, err := ParseMembers(page)
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(rows)}
	for _, row := range rows {
		_, err := g.members.Upsert(ctx, members.UpsertCommand{
			Name:                 row.Name,
			HonourificTitle:      row.Honourific,
			PoliticalAffiliation: row.Affiliation,
			PartyCode:            members.PartyCodeFor(row.Affiliation),
			Constituency:         row.Constituency,
			Province:             row.Province,
			Status:               row.Status,
		})
		if err != nil {
			g.logger.Warn("member upsert failed", "name", row.Name, "error", err)
			report.Skipped++
			continue
		}
		report.Stored++
	}

	g.logger.Info("members ingested", "scanned", report.Scanned, "stored", report.Stored)
	return report, nil
}

// Votes scrapes the vote listing for one parliament-session and upserts
// every vote record.
func (g *Ingestor) Votes(ctx context.Context, parliament, session int) (*Report, error) {
	url := fmt.Sprintf("%s/members/en/votes?parlSession=%d-%d", g.commonsURL, parliament, session)

	page, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	rows, err := ParseVoteListing(page)
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(rows)}
	for _, row := range rows {
		_, err := g.votes.Upsert(ctx, votes.UpsertCommand{
			VoteNumber:       row.VoteNumber,
			ParliamentNumber: parliament,
			Session:          session,
			Subject:          row.Subject,
			VoteType:         votes.TypeRecorded,
			Result:           row.Result,
			VoteDate:         row.VoteDate,
		})
		if err != nil {
			g.logger.Warn("vote upsert failed", "vote", row.VoteNumber, "error", err)
			report.Skipped++
			continue
		}
		report.Stored++
	}

	g.logger.Info("votes ingested",
		"parliament", parliament,
		"session", session,
		"scanned", report.Scanned,
		"stored", report.Stored)
	return report, nil
}

// Ballots scrapes the member detail page of every stored vote in the
// parliament-session and records individual choices. Active members
// missing from a vote page are recorded as absent.
func (g *Ingestor) Ballots(ctx context.Context, parliament, session int) (*Report, error) {
	resolver, err := g.loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	filters := votes.Filters{ParliamentNumber: &parliament, Session: &session}

	for pageNum := 1; ; pageNum++ {
		result, err := g.votes.List(ctx, pagination.PageRequest{Page: pageNum, PageSize: 100}, filters)
		if err != nil {
			return nil, err
		}
		if len(result.Data) == 0 {
			break
		}

		for _, vote := range result.Data {
			if err := g.fetcher.Pace(ctx); err != nil {
				return report, err
			}

			stored, err := g.ballotsForVote(ctx, resolver, vote)
			if err != nil {
				g.logger.Warn("ballot scrape failed",
					"parliament", parliament,
					"session", session,
					"vote", vote.VoteNumber,
					"error", err)
				report.Skipped++
				continue
			}

			report.Scanned++
			report.Stored += stored
		}

		if pageNum >= result.TotalPages {
			break
		}
	}

	g.logger.Info("ballots ingested",
		"parliament", parliament,
		"session", session,
		"votes", report.Scanned,
		"ballots", report.Stored)
	return report, nil
}

func (g *Ingestor) ballotsForVote(ctx context.Context, resolver *memberResolver, vote votes.VoteRecord) (int, error) {
	url := fmt.Sprintf("%s/members/en/votes/%d/%d/%d?view=member",
		g.commonsURL, vote.ParliamentNumber, vote.Session, vote.VoteNumber)

	page, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	choices, err := ParseBallots(page)
	if err != nil {
		return 0, err
	}
	if len(choices) == 0 {
		return 0, fmt.Errorf("no ballots found")
	}

	var commands []votes.BallotCommand
	seen := make(map[string]bool)
	for name, choice := range choices {
		member, ok := resolver.Resolve(name)
		if !ok {
			g.logger.Debug("unmatched member name", "name", name, "vote", vote.VoteNumber)
			continue
		}
		commands = append(commands, votes.BallotCommand{MemberID: member.ID, Choice: choice})
		seen[member.Name] = true
	}

	for _, member := range resolver.Active() {
		if !seen[member.Name] {
			commands = append(commands, votes.BallotCommand{MemberID: member.ID, Choice: "ABSENT"})
		}
	}

	if _, err := g.votes.RecordBallots(ctx, vote.ID, commands); err != nil {
		return 0, err
	}
	return len(commands), nil
}

// Bills scrapes LEGISinfo listing pages until the configured number of
// consecutive empty pages, upserting every bill.
func (g *Ingestor) Bills(ctx context.Context) (*Report, error) {
	report := &Report{}
	empty := 0

	for pageNum := 1; ; pageNum++ {
		if pageNum > 1 {
			if err := g.fetcher.Pace(ctx); err != nil {
				return report, err
			}
		}

		url := fmt.Sprintf("%s/legisinfo/en/bills?parlsession=all&view=list&page=%d", g.legisURL, pageNum)
		page, err := g.fetcher.Fetch(ctx, url)
		if err != nil {
			return report, err
		}
		report.Pages++

		rows, err := ParseBillListing(page)
		if err != nil {
			return report, err
		}

		if len(rows) == 0 {
			empty++
			if empty >= g.emptyPages {
				break
			}
			continue
		}
		empty = 0

		for _, row := range rows {
			if row.ParliamentNumber == 0 {
				report.Skipped++
				continue
			}

			cmd := bills.UpsertCommand{
				Number:           row.Number,
				ParliamentNumber: row.ParliamentNumber,
				Session:          row.Session,
				Subject:          row.Subject,
				Status:           row.Status,
				IntroducedDate:   row.SessionStart,
			}
			if row.BillType != "" {
				billType := row.BillType
				cmd.BillType = &billType
			}

			if _, err := g.bills.Upsert(ctx, cmd); err != nil {
				g.logger.Warn("bill upsert failed", "number", row.Number, "error", err)
				report.Skipped++
				continue
			}
			report.Scanned++
			report.Stored++
		}
	}

	g.logger.Info("bills ingested", "pages", report.Pages, "stored", report.Stored)
	return report, nil
}

// Committees scrapes the committee list and each committee's roster,
// upserting committees and seating resolved members.
func (g *Ingestor) Committees(ctx context.Context) (*Report, error) {
	listPage, err := g.fetcher.Fetch(ctx, g.commonsURL+"/Committees/en/List")
	if err != nil {
		return nil, err
	}

	rows, err := ParseCommittees(listPage)
	if err != nil {
		return nil, err
	}

	resolver, err := g.loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Scanned: len(rows)}
	for _, row := range rows {
		committee, err := g.committees.Upsert(ctx, committees.UpsertCommand{
			Acronym:       row.Acronym,
			Name:          row.Name,
			CommitteeType: row.Type,
		})
		if err != nil {
			g.logger.Warn("committee upsert failed", "acronym", row.Acronym, "error", err)
			report.Skipped++
			continue
		}
		report.Stored++

		if err := g.fetcher.Pace(ctx); err != nil {
			return report, err
		}
		if err := g.seatCommittee(ctx, resolver, committee); err != nil {
			g.logger.Warn("committee roster failed", "acronym", row.Acronym, "error", err)
		}
	}

	g.logger.Info("committees ingested", "scanned", report.Scanned, "stored", report.Stored)
	return report, nil
}

func (g *Ingestor) seatCommittee(ctx context.Context, resolver *memberResolver, committee *committees.Committee) error {
	url := fmt.Sprintf("%s/committees/en/%s/Members?includeAssociates=True", g.commonsURL, committee.Acronym)

	page, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	roster, err := ParseCommitteeMembers(page)
	if err != nil {
		return err
	}

	for _, entry := range roster {
		member, ok := resolver.Resolve(entry.Name)
		if !ok {
			g.logger.Debug("unmatched committee member", "name", entry.Name, "committee", committee.Acronym)
			continue
		}

		_, err := g.committees.Seat(ctx, committee.ID, committees.SeatCommand{
			MemberID: member.ID,
			Role:     entry.Role,
		})
		if err != nil {
			g.logger.Warn("committee seat failed",
				"committee", committee.Acronym,
				"member", member.Name,
				"error", err)
		}
	}
	return nil
}

// loadResolver pages through all stored members and builds the name
// resolver used to match scraped names to member records.
func (g *Ingestor) loadResolver(ctx context.Context) (*memberResolver, error) {
	resolver := newMemberResolver()

	for pageNum := 1; ; pageNum++ {
		result, err := g.members.List(ctx, pagination.PageRequest{Page: pageNum, PageSize: 100}, members.Filters{})
		if err != nil {
			return nil, err
		}
		if len(result.Data) == 0 {
			break
		}

		for _, member := range result.Data {
			resolver.add(member)
		}

		if pageNum >= result.TotalPages {
			break
		}
	}
	return resolver, nil
}

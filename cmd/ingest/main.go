package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/openparl/tally/internal/api"
	"github.com/openparl/tally/internal/config"
	"github.com/openparl/tally/internal/infrastructure"
)

// defaultSessions covers every parliament with recorded votes on the
// Commons site, newest first.
const defaultSessions = "45-1,44-1,43-2,43-1,42-1,41-2,41-1,40-3,40-2,40-1,39-2,39-1,38-1"

type session struct {
	parliament int
	session    int
}

func main() {
	var (
		stages      = flag.String("stages", "", "Comma-separated stages to run (members, bills, votes, ballots, committees, classify, link, seed)")
		sessions    = flag.String("sessions", defaultSessions, "Parliament-session pairs for the votes and ballots stages")
		concurrency = flag.Int("concurrency", 4, "Concurrent bill classifications during the classify stage")
	)
	flag.Parse()

	if *stages == "" {
		fmt.Println("usage: ingest -stages <stage,...> [-sessions 45-1,44-1] [-concurrency N]")
		flag.PrintDefaults()
		return
	}

	pairs, err := parseSessions(*sessions)
	if err != nil {
		log.Fatalf("invalid -sessions: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize infrastructure: %v", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatalf("failed to start infrastructure: %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	domain := api.NewDomain(api.NewRuntime(cfg, infra))
	logger := infra.Logger.With("module", "ingest")

	var failed error
	for _, stage := range strings.Split(*stages, ",") {
		stage = strings.TrimSpace(stage)
		if stage == "" {
			continue
		}
		if failed = runStage(ctx, domain, logger, stage, pairs, *concurrency); failed != nil {
			logger.Error("stage failed", "stage", stage, "error", failed)
			break
		}
	}

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	if failed != nil {
		os.Exit(1)
	}
}

func runStage(ctx context.Context, domain *api.Domain, logger *slog.Logger, stage string, pairs []session, concurrency int) error {
	switch stage {
	case "members":
		report, err := domain.Ingest.Members(ctx)
		if err != nil {
			return err
		}
		logger.Info("members ingested", "scanned", report.Scanned, "stored", report.Stored, "skipped", report.Skipped)
	case "bills":
		report, err := domain.Ingest.Bills(ctx)
		if err != nil {
			return err
		}
		logger.Info("bills ingested", "pages", report.Pages, "scanned", report.Scanned, "stored", report.Stored, "skipped", report.Skipped)
	case "votes":
		for _, p := range pairs {
			report, err := domain.Ingest.Votes(ctx, p.parliament, p.session)
			if err != nil {
				return err
			}
			logger.Info("votes ingested",
				"parliament", p.parliament,
				"session", p.session,
				"scanned", report.Scanned,
				"stored", report.Stored,
			)
		}
	case "ballots":
		for _, p := range pairs {
			report, err := domain.Ingest.Ballots(ctx, p.parliament, p.session)
			if err != nil {
				return err
			}
			logger.Info("ballots ingested",
				"parliament", p.parliament,
				"session", p.session,
				"scanned", report.Scanned,
				"stored", report.Stored,
			)
		}
	case "committees":
		report, err := domain.Ingest.Committees(ctx)
		if err != nil {
			return err
		}
		logger.Info("committees ingested", "scanned", report.Scanned, "stored", report.Stored)
	case "classify":
		results, err := domain.Bills.ClassifyBatch(ctx, concurrency)
		if err != nil {
			return err
		}
		var failures int
		for _, r := range results {
			if r.Error != "" {
				failures++
			}
		}
		logger.Info("bills classified", "classified", len(results)-failures, "failed", failures)

		classified, err := domain.Votes.ClassifyAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("votes classified", "classified", classified)
	case "link":
		report, err := domain.Votes.LinkBills(ctx)
		if err != nil {
			return err
		}
		logger.Info("votes linked", "scanned", report.Scanned, "linked", report.Linked)

		synced, err := domain.Votes.SyncPolicyTags(ctx)
		if err != nil {
			return err
		}
		logger.Info("policy tags synced", "synced", synced)
	case "seed":
		inserted, err := domain.Topics.Seed(ctx)
		if err != nil {
			return err
		}
		logger.Info("topics seeded", "inserted", inserted)
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	return nil
}

func parseSessions(raw string) ([]session, error) {
	var pairs []session
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, s, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", part)
		}
		parliament, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("malformed pair %q", part)
		}
		sess, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("malformed pair %q", part)
		}
		pairs = append(pairs, session{parliament: parliament, session: sess})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no parliament-session pairs")
	}
	return pairs, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

const (
	ImportStatusStored   = "stored"
	ImportStatusRejected = "rejected"
	ImportStatusFailed   = "failed"

	defaultImportWorkers = 4
)

type ImportItem struct {
	FixtureID string
	Score     result.RawScore
}

type ImportItemResult struct {
	Index     int
	FixtureID string
	Status    string
	Message   string
	Result    *result.MatchResult
}

type ImportReport struct {
	Total       int
	Stored      int
	Rejected    int
	Failed      int
	WorkerCount int
	Items       []ImportItemResult
}

type ResultService struct {
	leagueRepo    league.Repository
	fixtureRepo   fixture.Repository
	standings     StandingsInvalidator
	importWorkers int
	logger        *logging.Logger
}

func NewResultService(
	leagueRepo league.Repository,
	fixtureRepo fixture.Repository,
	standings StandingsInvalidator,
	importWorkers int,
	logger *logging.Logger,
) *ResultService {
	if standings == nil {
		standings = noopInvalidator{}
	}
	if importWorkers <= 0 {
		importWorkers = defaultImportWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultService{
		leagueRepo:    leagueRepo,
		fixtureRepo:   fixtureRepo,
		standings:     standings,
		importWorkers: importWorkers,
		logger:        logger,
	}
}

// Submit validates a score against the league rules and stores it on the fixture.
func (s *ResultService) Submit(ctx context.Context, leagueID, fixtureID string, raw result.RawScore) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Submit", leagueAttr(leagueID))
	defer span.End()

	lg, item, err := s.loadFixture(ctx, leagueID, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	validated, err := result.Validate(raw, lg.Rules)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if validated.HasPlaceholder {
		s.logger.WarnContext(ctx, "result contains 0:0 placeholder set",
			"league_id", lg.ID,
			"fixture_id", item.ID,
		)
	}

	if err := s.fixtureRepo.SaveResult(ctx, lg.ID, item.ID, &validated); err != nil {
		recordSpanError(span, err)
		return fixture.Fixture{}, fmt.Errorf("save result: %w", err)
	}
	s.standings.Invalidate(ctx, lg.ID)

	item.Result = &validated
	return item, nil
}

// Clear removes a reported result.
func (s *ResultService) Clear(ctx context.Context, leagueID, fixtureID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Clear", leagueAttr(leagueID))
	defer span.End()

	lg, item, err := s.loadFixture(ctx, leagueID, fixtureID)
	if err != nil {
		return err
	}
	if !item.HasResult() {
		return nil
	}

	if err := s.fixtureRepo.SaveResult(ctx, lg.ID, item.ID, nil); err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("clear result: %w", err)
	}
	s.standings.Invalidate(ctx, lg.ID)
	return nil
}

// Import validates and stores many results at once on a worker pool. Items that fail
// validation are reported back instead of aborting the batch.
func (s *ResultService) Import(ctx context.Context, leagueID string, items []ImportItem) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Import", leagueAttr(leagueID))
	defer span.End()

	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return ImportReport{}, err
	}
	if len(items) == 0 {
		return ImportReport{}, fmt.Errorf("%w: at least one result is required", ErrInvalidInput)
	}

	fixtures, err := s.fixtureRepo.ListByLeague(ctx, lg.ID)
	if err != nil {
		return ImportReport{}, fmt.Errorf("list fixtures by league: %w", err)
	}
	byID := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		byID[item.ID] = item
	}

	workerCount := s.importWorkers
	if workerCount > len(items) {
		workerCount = len(items)
	}
	report := ImportReport{
		Total:       len(items),
		WorkerCount: workerCount,
		Items:       make([]ImportItemResult, 0, len(items)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ImportReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan ImportItemResult, len(items))
	var stored, rejected, failed atomic.Int32
	var workers sync.WaitGroup

	seen := make(map[string]struct{}, len(items))
	for index, item := range items {
		fixtureID := strings.TrimSpace(item.FixtureID)
		row := ImportItemResult{Index: index, FixtureID: fixtureID}

		target, known := byID[fixtureID]
		_, duplicate := seen[fixtureID]
		seen[fixtureID] = struct{}{}
		switch {
		case !known:
			row.Status, row.Message = ImportStatusRejected, "fixture not found"
			rejected.Add(1)
			rows <- row
			continue
		case duplicate:
			row.Status, row.Message = ImportStatusRejected, "fixture listed more than once"
			rejected.Add(1)
			rows <- row
			continue
		}

		score := item.Score
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			validated, err := result.Validate(score, lg.Rules)
			if err != nil {
				row.Status, row.Message = ImportStatusRejected, err.Error()
				rejected.Add(1)
				rows <- row
				return
			}
			if err := s.fixtureRepo.SaveResult(ctx, lg.ID, target.ID, &validated); err != nil {
				s.logger.ErrorContext(ctx, "store imported result failed",
					"league_id", lg.ID,
					"fixture_id", target.ID,
					"error", err,
				)
				row.Status, row.Message = ImportStatusFailed, "could not store result"
				failed.Add(1)
				rows <- row
				return
			}
			row.Status = ImportStatusStored
			row.Result = &validated
			stored.Add(1)
			rows <- row
		}); err != nil {
			workers.Done()
			return ImportReport{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		report.Items = append(report.Items, row)
	}
	sort.Slice(report.Items, func(i, j int) bool {
		return report.Items[i].Index < report.Items[j].Index
	})

	report.Stored = int(stored.Load())
	report.Rejected = int(rejected.Load())
	report.Failed = int(failed.Load())
	if report.Stored > 0 {
		s.standings.Invalidate(ctx, lg.ID)
	}

	s.logger.InfoContext(ctx, "results imported",
		"league_id", lg.ID,
		"total", report.Total,
		"stored", report.Stored,
		"rejected", report.Rejected,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *ResultService) loadFixture(ctx context.Context, leagueID, fixtureID string) (league.League, fixture.Fixture, error) {
	lg, err := requireLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, fixture.Fixture{}, err
	}

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return league.League{}, fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, lg.ID, fixtureID)
	if err != nil {
		return league.League{}, fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return league.League{}, fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	return lg, item, nil
}

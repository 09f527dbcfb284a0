package service

import (
	"log/slog"
	"sort"
	"time"

	"github.com/jarx/after15/internal/domain"
	"github.com/jarx/after15/internal/ledger"
	"github.com/jarx/after15/internal/logscan"
)

type overtimeService struct {
	scanner *logscan.Scanner
	store   *ledger.Store
	sched   domain.Schedule
	loc     *time.Location
	now     func() time.Time
}

// Option tweaks service construction; used by tests to pin the clock.
type Option func(*overtimeService)

func WithClock(now func() time.Time) Option {
	return func(s *overtimeService) { s.now = now }
}

func NewOvertimeService(scanner *logscan.Scanner, store *ledger.Store, sched domain.Schedule, loc *time.Location, opts ...Option) OvertimeService {
	s := &overtimeService{
		scanner: scanner,
		store:   store,
		sched:   sched,
		loc:     loc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *overtimeService) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

func (s *overtimeService) Overview(lookbackDays int) (domain.DayTotals, error) {
	file := s.store.Load()
	totals := file.DayTotals()
	today := s.today()

	fresh := s.compute(s.scanner.FindRecent(lookbackDays, s.now()), "")

	// Today is still accumulating and always takes the fresh value. Any
	// other date from the lookback window only fills gaps: the ledger
	// (possibly manually reconciled) wins where it already has data.
	for dateStr, hours := range fresh.Hours {
		if dateStr == today || !hasKey(totals.Hours, dateStr) {
			totals.Hours[dateStr] = hours
		}
	}
	for dateStr, projects := range fresh.Projects {
		if dateStr == today || !hasKey(totals.Projects, dateStr) {
			totals.Projects[dateStr] = projects
		}
	}

	updated := ledger.Merge(file, totals, s.sched, today)
	if updated == 0 {
		return totals, nil
	}
	slog.Debug("merging recomputed days into ledger", "updated", updated)
	if err := s.store.Save(file); err != nil {
		return totals, err
	}
	return totals, nil
}

func (s *overtimeService) ExplainDate(date time.Time) (*DateExplanation, error) {
	dateStr := date.Format("2006-01-02")

	exp := &DateExplanation{
		Date:  date,
		Shift: s.sched.Classify(date),
	}
	if w, ok := s.sched.Window(date); ok {
		exp.Window = &w
	}

	events := s.scanner.CollectEvents(s.scanner.FindAll())
	for _, sess := range domain.Reconstruct(events) {
		startLocal := sess.Start.In(s.loc)
		endLocal := sess.End.In(s.loc)
		if dateStr < startLocal.Format("2006-01-02") || dateStr > endLocal.Format("2006-01-02") {
			continue
		}

		daily := domain.SliceOvertime(sess, s.loc, s.sched)
		view := SessionView{
			StartLocal:    startLocal,
			EndLocal:      endLocal,
			Duration:      sess.Duration(),
			OvertimeHours: daily[dateStr],
			Projects:      projectShares(sess),
		}
		exp.TotalOvertimeHours += view.OvertimeHours
		exp.Sessions = append(exp.Sessions, view)
	}

	return exp, nil
}

func (s *overtimeService) Resync() (int, error) {
	totals := s.compute(s.scanner.FindAll(), "")
	file := ledger.Replace(totals, s.sched, s.today())
	if err := s.store.Save(file); err != nil {
		return 0, err
	}
	return len(file.Days), nil
}

// compute runs the full pipeline over the given files: collect, sort,
// reconstruct sessions, slice per day, attribute per project.
func (s *overtimeService) compute(paths []string, dateFilter string) domain.DayTotals {
	events := s.scanner.CollectEvents(paths)
	if len(events) == 0 {
		return domain.NewDayTotals()
	}

	sessions := domain.Reconstruct(events)
	slog.Debug("reconstructed sessions", "events", len(events), "sessions", len(sessions))

	slices := make([]domain.SessionOvertime, 0, len(sessions))
	for _, sess := range sessions {
		slices = append(slices, domain.SessionOvertime{
			Session: sess,
			Daily:   domain.SliceOvertime(sess, s.loc, s.sched),
		})
	}

	return domain.Attribute(slices, dateFilter)
}

func projectShares(sess domain.Session) []ProjectShare {
	total := 0
	for source, count := range sess.SourceCounts {
		if source != domain.SourceTranscripts {
			total += count
		}
	}
	if total == 0 {
		return nil
	}

	shares := make([]ProjectShare, 0, len(sess.SourceCounts))
	for source, count := range sess.SourceCounts {
		if source == domain.SourceTranscripts {
			continue
		}
		shares = append(shares, ProjectShare{
			Name:  source,
			Count: count,
			Share: float64(count) / float64(total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

func hasKey[V any](m map[string]V, key string) bool {
	_, ok := m[key]
	return ok
}

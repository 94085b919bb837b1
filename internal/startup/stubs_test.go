package startup

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/events"
)

type repoStub struct {
	mu        sync.Mutex
	rows      map[int64]*Startup
	getErr    error
	finishErr error
}

func newRepoStub(rows ...Startup) *repoStub {
	r := &repoStub{rows: map[int64]*Startup{}}
	for i := range rows {
		row := rows[i]
		r.rows[row.ID] = &row
	}

	return r
}

func (r *repoStub) row(id int64) Startup {
	r.mu.Lock()
	defer r.mu.Unlock()

	return *r.rows[id]
}

func (r *repoStub) GetByID(id int64) (*Startup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}

	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	cp := *row

	return &cp, nil
}

// Find understands the analysis filters only, rows come back ordered by id
func (r *repoStub) Find(filters ...Filter) ([]Startup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]Startup, 0, len(r.rows))
	for _, row := range r.rows {
		if matches(row, filters) {
			res = append(res, *row)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res, nil
}

func matches(row *Startup, filters []Filter) bool {
	for _, f := range filters {
		switch flt := f.(type) {
		case StatusFilter:
			if !slices.Contains(flt.Statuses, row.AnalysisStatus) {
				return false
			}
		case AnalyzedBeforeFilter:
			if row.AnalysisTimestamp == nil || !row.AnalysisTimestamp.Before(flt.Before) {
				return false
			}
		}
	}

	return true
}

func (r *repoStub) MarkProcessing(id int64, claimedAt, staleBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return false, nil
	}

	if row.AnalysisStatus == StatusProcessing && row.AnalysisTimestamp != nil && !row.AnalysisTimestamp.Before(staleBefore) {
		return false, nil
	}

	row.AnalysisStatus = StatusProcessing
	row.AnalysisTimestamp = &claimedAt

	return true, nil
}

func (r *repoStub) FinishAnalysis(id int64, claimedAt time.Time, status AnalysisStatus, analysis datatypes.JSON, finishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finishErr != nil && status == StatusCompleted {
		return r.finishErr
	}

	row := r.rows[id]
	if row.AnalysisStatus != StatusProcessing || row.AnalysisTimestamp == nil || !row.AnalysisTimestamp.Equal(claimedAt) {
		return ErrClaimLost
	}

	row.AnalysisStatus = status
	row.AIAnalysis = analysis
	row.AnalysisTimestamp = &finishedAt

	return nil
}

func (r *repoStub) UpdateReadinessScore(id int64, score *int, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.FundingReadinessScore = score

	return nil
}

func (r *repoStub) UpdateInsights(id int64, insights *string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.AIInsights = insights

	return nil
}

type completerStub struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []ai.Request

	// started and release pause the call when set
	started chan struct{}
	release chan struct{}
}

func (c *completerStub) Complete(ctx context.Context, req ai.Request) (string, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if c.started != nil {
		close(c.started)
		<-c.release
	}

	return c.reply, c.err
}

type publisherStub struct {
	mu       sync.Mutex
	statuses []string
}

func (p *publisherStub) PublishAnalysis(event events.AnalysisEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.statuses = append(p.statuses, event.Status)

	return nil
}

type notifierStub struct {
	mu       sync.Mutex
	statuses []string
	messages []string
}

func (n *notifierStub) NotifyAnalysis(_ uuid.UUID, _ int64, status, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.statuses = append(n.statuses, status)
	n.messages = append(n.messages, message)

	return nil
}

type fixture struct {
	repo      *repoStub
	completer *completerStub
	publisher *publisherStub
	notifier  *notifierStub
	service   *Service
}

func newFixture(now time.Time, rows ...Startup) *fixture {
	f := &fixture{
		repo:      newRepoStub(rows...),
		completer: &completerStub{},
		publisher: &publisherStub{},
		notifier:  &notifierStub{},
	}

	f.service = NewService(f.repo, f.completer, f.publisher, f.notifier, 10*time.Minute, "")
	f.service.now = func() time.Time { return now }

	return f
}

package startup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rise-platform/rise-edge/internal/ai"
)

var testNow = time.Date(2025, 5, 4, 12, 30, 0, 0, time.UTC)

func bareStartup(id int64) Startup {
	return Startup{
		ID:             id,
		UserID:         uuid.New(),
		Name:           "Tamr Labs",
		AnalysisStatus: StatusPending,
	}
}

func TestUnitRequestAnalysis(t *testing.T) {
	for name, tc := range map[string]struct {
		reply      string
		replyErr   error
		status     AnalysisStatus
		errText    string
		notified   []string
		published  []string
		storedKeys []string
	}{
		"completed": {
			reply:      `{"executive_summary":"Solid team","swot_analysis":{"strengths":["team"]}}`,
			status:     StatusCompleted,
			notified:   []string{"completed"},
			published:  []string{"processing", "completed"},
			storedKeys: []string{"executive_summary", "swot_analysis"},
		},
		"completed from fenced reply": {
			reply:      "```json\n{\"executive_summary\":\"ok\"}\n```",
			status:     StatusCompleted,
			notified:   []string{"completed"},
			published:  []string{"processing", "completed"},
			storedKeys: []string{"executive_summary"},
		},
		"non json reply": {
			reply:      "Sure! Here is the analysis you asked for.",
			status:     StatusFailed,
			errText:    ai.ErrInvalidJSON.Error(),
			notified:   []string{"failed"},
			published:  []string{"processing", "failed"},
			storedKeys: []string{"error"},
		},
		"array reply": {
			reply:      `[{"executive_summary":"ok"}]`,
			status:     StatusFailed,
			errText:    ai.ErrInvalidJSON.Error(),
			notified:   []string{"failed"},
			published:  []string{"processing", "failed"},
			storedKeys: []string{"error"},
		},
		"provider error": {
			replyErr:   errors.New("429 Too Many Requests"),
			status:     StatusFailed,
			errText:    "429 Too Many Requests",
			notified:   []string{"failed"},
			published:  []string{"processing", "failed"},
			storedKeys: []string{"error"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(testNow, bareStartup(1))
			f.completer.reply = tc.reply
			f.completer.err = tc.replyErr

			err := f.service.RequestAnalysis(context.Background(), 1)
			if tc.errText != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errText)
			} else {
				require.NoError(t, err)
			}

			row := f.repo.row(1)
			require.Equal(t, tc.status, row.AnalysisStatus)
			require.Equal(t, tc.published, f.publisher.statuses)
			require.Equal(t, tc.notified, f.notifier.statuses)

			var stored map[string]any
			require.NoError(t, json.Unmarshal(row.AIAnalysis, &stored))
			for _, key := range tc.storedKeys {
				require.Contains(t, stored, key)
			}
			if tc.status == StatusFailed {
				require.Equal(t, err.Error(), stored["error"])
			}

			require.Len(t, f.completer.requests, 1)
			req := f.completer.requests[0]
			require.True(t, req.JSON)
			require.InDelta(t, 0.5, req.Temperature, 0.0001)
		})
	}
}

func TestUnitRequestAnalysisAllKPIMissing(t *testing.T) {
	f := newFixture(testNow, bareStartup(3))
	f.completer.reply = "not json at all"

	err := f.service.RequestAnalysis(context.Background(), 3)
	require.ErrorIs(t, err, ai.ErrInvalidJSON)

	sent := f.completer.requests[0].Messages[0].Content
	for _, label := range []string{
		"- CAC: N/A", "- CLV: N/A", "- Retention Rate: N/A", "- Conversion Rate: N/A",
		"- Monthly Growth Rate: N/A", "- Payback Period (Months): N/A", "- Churn Rate: N/A",
		"- NPS: N/A", "- TAM Size Estimate: N/A", "- Avg. Order Value: N/A",
		"- Market Share Estimate: N/A", "- YoY Growth: N/A",
	} {
		require.Contains(t, sent, label)
	}

	row := f.repo.row(3)
	require.Equal(t, StatusFailed, row.AnalysisStatus)
	require.JSONEq(t, `{"error":"AI returned invalid JSON format"}`, string(row.AIAnalysis))
}

func TestUnitRequestAnalysisPreconditions(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		f := newFixture(testNow)
		require.ErrorIs(t, f.service.RequestAnalysis(context.Background(), 0), ErrMissingStartupID)
		require.Empty(t, f.completer.requests)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(testNow)
		require.ErrorIs(t, f.service.RequestAnalysis(context.Background(), 99), ErrStartupNotFound)
		require.Empty(t, f.publisher.statuses)
	})

	t.Run("fetch error leaves row alone", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(5))
		f.repo.getErr = errors.New("connection reset by peer")

		err := f.service.RequestAnalysis(context.Background(), 5)
		require.ErrorIs(t, err, f.repo.getErr)

		f.repo.getErr = nil
		require.Equal(t, StatusPending, f.repo.row(5).AnalysisStatus)
	})

	t.Run("fresh processing row is not touched", func(t *testing.T) {
		row := bareStartup(6)
		row.AnalysisStatus = StatusProcessing
		claimed := testNow.Add(-time.Minute)
		row.AnalysisTimestamp = &claimed

		f := newFixture(testNow, row)
		err := f.service.RequestAnalysis(context.Background(), 6)
		require.ErrorIs(t, err, ErrAnalysisInProgress)
		require.Empty(t, f.completer.requests)

		got := f.repo.row(6)
		require.Equal(t, StatusProcessing, got.AnalysisStatus)
		require.True(t, claimed.Equal(*got.AnalysisTimestamp))
	})

	t.Run("stale processing row is reclaimed", func(t *testing.T) {
		row := bareStartup(7)
		row.AnalysisStatus = StatusProcessing
		stale := testNow.Add(-11 * time.Minute)
		row.AnalysisTimestamp = &stale

		f := newFixture(testNow, row)
		f.completer.reply = `{"executive_summary":"ok"}`

		require.NoError(t, f.service.RequestAnalysis(context.Background(), 7))
		require.Equal(t, StatusCompleted, f.repo.row(7).AnalysisStatus)
	})

	t.Run("final write error marks row failed", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(8))
		f.completer.reply = `{"executive_summary":"ok"}`
		f.repo.finishErr = errors.New("deadlock detected")

		err := f.service.RequestAnalysis(context.Background(), 8)
		require.ErrorIs(t, err, f.repo.finishErr)
		require.Equal(t, StatusFailed, f.repo.row(8).AnalysisStatus)
	})
}

func TestUnitRequestAnalysisConcurrent(t *testing.T) {
	f := newFixture(testNow, bareStartup(10))
	f.completer.reply = `{"executive_summary":"ok"}`
	f.completer.started = make(chan struct{})
	f.completer.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- f.service.RequestAnalysis(context.Background(), 10)
	}()

	<-f.completer.started
	require.Equal(t, StatusProcessing, f.repo.row(10).AnalysisStatus)

	second := &completerStub{reply: `{"executive_summary":"second"}`}
	f.service.ai = second
	err := f.service.RequestAnalysis(context.Background(), 10)
	require.ErrorIs(t, err, ErrAnalysisInProgress)
	require.Empty(t, second.requests)

	close(f.completer.release)
	require.NoError(t, <-done)

	row := f.repo.row(10)
	require.Equal(t, StatusCompleted, row.AnalysisStatus)
	require.True(t, strings.Contains(string(row.AIAnalysis), `"ok"`))
}

func TestUnitRequestAnalysisDetachedFromCaller(t *testing.T) {
	f := newFixture(testNow, bareStartup(11))
	f.completer.reply = `{"executive_summary":"ok"}`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.service.RequestAnalysis(ctx, 11))
	require.Equal(t, StatusCompleted, f.repo.row(11).AnalysisStatus)
}

func TestUnitRequestFinetunedAnalysis(t *testing.T) {
	t.Run("uses fine-tuned model", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(20))
		f.service.finetunedModel = "tunedModels/rise-analyst-v2"
		f.completer.reply = `{"executive_summary":"tuned"}`

		require.NoError(t, f.service.RequestFinetunedAnalysis(context.Background(), 20))

		require.Len(t, f.completer.requests, 1)
		require.Equal(t, "tunedModels/rise-analyst-v2", f.completer.requests[0].Model)
		require.Equal(t, StatusCompleted, f.repo.row(20).AnalysisStatus)
	})

	t.Run("regular analysis keeps configured model", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(21))
		f.service.finetunedModel = "tunedModels/rise-analyst-v2"
		f.completer.reply = `{"executive_summary":"ok"}`

		require.NoError(t, f.service.RequestAnalysis(context.Background(), 21))
		require.Empty(t, f.completer.requests[0].Model)
	})

	t.Run("not configured", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(22))

		err := f.service.RequestFinetunedAnalysis(context.Background(), 22)
		require.ErrorIs(t, err, ErrFinetunedModelMissing)
		require.Empty(t, f.completer.requests)
		require.Equal(t, StatusPending, f.repo.row(22).AnalysisStatus)
	})
}

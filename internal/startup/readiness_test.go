package startup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/rise-platform/rise-edge/internal/ai"
)

func TestUnitParseReadinessScore(t *testing.T) {
	for name, tc := range map[string]struct {
		reply    string
		expected *int
	}{
		"plain":           {reply: "72", expected: pointy.Int(72)},
		"with text":       {reply: "Score: 64/100", expected: pointy.Int(64)},
		"above range":     {reply: "150", expected: pointy.Int(100)},
		"huge":            {reply: "99999999999999999999999", expected: pointy.Int(100)},
		"negative sign":   {reply: "-5", expected: pointy.Int(5)},
		"zero":            {reply: "0", expected: pointy.Int(0)},
		"no digits":       {reply: "I cannot estimate this.", expected: nil},
		"empty":           {reply: "", expected: nil},
		"first integer":   {reply: "between 40 and 60", expected: pointy.Int(40)},
		"decimal point":   {reply: "55.7", expected: pointy.Int(55)},
		"leading newline": {reply: "\n 88 \n", expected: pointy.Int(88)},
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, ParseReadinessScore(tc.reply))
		})
	}
}

func TestUnitCalculateReadiness(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(1))
		f.completer.reply = " 81 "

		score, err := f.service.CalculateReadiness(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, pointy.Int(81), score)
		require.Equal(t, pointy.Int(81), f.repo.row(1).FundingReadinessScore)

		req := f.completer.requests[0]
		require.Equal(t, 15, req.MaxTokens)
		require.InDelta(t, 0.1, req.Temperature, 0.0001)
		require.False(t, req.JSON)
	})

	t.Run("unparseable reply clears score", func(t *testing.T) {
		row := bareStartup(2)
		row.FundingReadinessScore = pointy.Int(40)

		f := newFixture(testNow, row)
		f.completer.reply = "n/a"

		score, err := f.service.CalculateReadiness(context.Background(), 2)
		require.NoError(t, err)
		require.Nil(t, score)
		require.Nil(t, f.repo.row(2).FundingReadinessScore)
	})

	t.Run("provider error", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(3))
		f.completer.err = errors.New("invalid api key")

		_, err := f.service.CalculateReadiness(context.Background(), 3)
		require.ErrorIs(t, err, f.completer.err)
	})

	t.Run("missing startup", func(t *testing.T) {
		f := newFixture(testNow)

		_, err := f.service.CalculateReadiness(context.Background(), 3)
		require.ErrorIs(t, err, ErrStartupNotFound)
		require.Empty(t, f.completer.requests)
	})
}

func TestUnitGenerateInsights(t *testing.T) {
	t.Run("stored trimmed", func(t *testing.T) {
		f := newFixture(testNow, bareStartup(1))
		f.completer.reply = "\n* Strong founder market fit\n* Revenue is not disclosed\n"

		insights, err := f.service.GenerateInsights(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, "* Strong founder market fit\n* Revenue is not disclosed", *insights)
		require.Equal(t, insights, f.repo.row(1).AIInsights)

		req := f.completer.requests[0]
		require.Equal(t, 300, req.MaxTokens)
		require.InDelta(t, 0.6, req.Temperature, 0.0001)
	})

	t.Run("empty reply stored as null", func(t *testing.T) {
		row := bareStartup(2)
		row.AIInsights = pointy.String("old")

		f := newFixture(testNow, row)
		f.completer.err = ai.ErrEmptyReply

		insights, err := f.service.GenerateInsights(context.Background(), 2)
		require.NoError(t, err)
		require.Nil(t, insights)
		require.Nil(t, f.repo.row(2).AIInsights)
	})
}

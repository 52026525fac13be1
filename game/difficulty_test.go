package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ziyuew/habitquest/models"
)

func TestHeuristicScorer(t *testing.T) {
	scorer := HeuristicScorer{}

	short := "Run"
	medium := strings.Repeat("a", 80)
	long := strings.Repeat("a", 200)

	cases := []struct {
		description string
		frequency   string
		want        int
	}{
		{short, models.FreqDaily, 3},
		{medium, models.FreqDaily, 4},
		{long, models.FreqDaily, 6},
		{short, models.FreqWeekly, 4},
		{medium, models.FreqWeekly, 5},
		{long, models.FreqWeekly, 7},
		{short, models.FreqMonthly, 5},
		{long, models.FreqMonthly, 8},
		{medium, "unknown", 5},
	}
	for _, tc := range cases {
		got := scorer.Score("habit", tc.description, tc.frequency)
		assert.Equal(t, tc.want, got, "frequency=%s len(description)=%d", tc.frequency, len(tc.description))
	}
}

func TestHeuristicScorerBounds(t *testing.T) {
	scorer := HeuristicScorer{}
	for _, freq := range []string{models.FreqDaily, models.FreqWeekly, models.FreqMonthly} {
		for _, desc := range []string{"", strings.Repeat("x", 500)} {
			d := scorer.Score("h", desc, freq)
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, 10)
		}
	}
}

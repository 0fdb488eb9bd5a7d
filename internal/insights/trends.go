package insights

import (
	"math"

	"github.com/sagewell/backend/internal/models"
)

// ClassifyTrends compares the current week's stats against the prior week's
// and assigns a direction per metric. With no prior week every trend is
// stable: there is no history to compare against, and the all-stable result
// is deliberate rather than a zero-value fallthrough.
//
// Values are considered equal when they round to the same value at the
// stat's stated precision (1 decimal for mood/sleep, whole cents for
// spending, integers for steps and score).
func ClassifyTrends(current models.WeeklyStats, previous *models.WeeklyStats) models.TrendSet {
	if previous == nil {
		return models.AllStable()
	}

	return models.TrendSet{
		Mood:     direction(round1(current.MoodAverage), round1(previous.MoodAverage)),
		Sleep:    direction(round1(current.SleepAverage), round1(previous.SleepAverage)),
		Activity: direction(float64(current.StepsTotal), float64(previous.StepsTotal)),
		// Inverted polarity: spending less than last week is the
		// improving direction.
		Spending: direction(round2(previous.ExpensesTotal), round2(current.ExpensesTotal)),
		Overall:  direction(float64(Score(current)), float64(Score(*previous))),
	}
}

func direction(current, previous float64) models.Trend {
	switch {
	case current > previous:
		return models.TrendUp
	case current < previous:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// Score computes the composite 1-10 wellness score from mood and sleep:
// round(moodAverage*2 + (sleepAverage/8*10)/2), clamped to [1, 10].
func Score(stats models.WeeklyStats) int {
	raw := math.Round(stats.MoodAverage*2 + (stats.SleepAverage/8*10)/2)
	score := int(raw)
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

package insights

import (
	"testing"

	"github.com/sagewell/backend/internal/models"
)

func TestClassifyTrendsNoHistory(t *testing.T) {
	current := models.WeeklyStats{MoodAverage: 4.2, SleepAverage: 7.0, StepsTotal: 50000}
	trends := ClassifyTrends(current, nil)

	want := models.AllStable()
	if trends != want {
		t.Errorf("ClassifyTrends(current, nil) = %+v, want all stable", trends)
	}
}

func TestClassifyTrendsDirections(t *testing.T) {
	previous := models.WeeklyStats{MoodAverage: 3.0, SleepAverage: 8.0, StepsTotal: 40000, ExpensesTotal: 200}
	current := models.WeeklyStats{MoodAverage: 3.8, SleepAverage: 6.5, StepsTotal: 55000, ExpensesTotal: 200}

	trends := ClassifyTrends(current, &previous)

	if trends.Mood != models.TrendUp {
		t.Errorf("Mood = %s, want up", trends.Mood)
	}
	if trends.Sleep != models.TrendDown {
		t.Errorf("Sleep = %s, want down", trends.Sleep)
	}
	if trends.Activity != models.TrendUp {
		t.Errorf("Activity = %s, want up", trends.Activity)
	}
	if trends.Spending != models.TrendStable {
		t.Errorf("Spending = %s, want stable", trends.Spending)
	}
}

func TestClassifyTrendsSpendingPolarityInverted(t *testing.T) {
	previous := models.WeeklyStats{ExpensesTotal: 200}
	current := models.WeeklyStats{ExpensesTotal: 100}

	if got := ClassifyTrends(current, &previous).Spending; got != models.TrendUp {
		t.Errorf("spending 200 -> 100: trend = %s, want up (less spending improves)", got)
	}
	if got := ClassifyTrends(previous, &current).Spending; got != models.TrendDown {
		t.Errorf("spending 100 -> 200: trend = %s, want down", got)
	}
}

func TestClassifyTrendsEqualityAtStatedPrecision(t *testing.T) {
	// 3.64 and 3.61 both round to 3.6 at the mood average's 1-decimal
	// precision, so the trend must be stable.
	previous := models.WeeklyStats{MoodAverage: 3.64, SleepAverage: 7.04}
	current := models.WeeklyStats{MoodAverage: 3.61, SleepAverage: 7.01}

	trends := ClassifyTrends(current, &previous)
	if trends.Mood != models.TrendStable {
		t.Errorf("Mood = %s, want stable at 1-decimal precision", trends.Mood)
	}
	if trends.Sleep != models.TrendStable {
		t.Errorf("Sleep = %s, want stable at 1-decimal precision", trends.Sleep)
	}
}

func TestScoreClampedToRange(t *testing.T) {
	for _, tc := range []struct {
		mood, sleep float64
	}{
		{0, 0}, {1, 0}, {2.5, 6}, {3.6, 7.4}, {5, 8}, {5, 24}, {4.9, 0.5},
	} {
		stats := models.WeeklyStats{MoodAverage: tc.mood, SleepAverage: tc.sleep}
		got := Score(stats)
		if got < 1 || got > 10 {
			t.Errorf("Score(mood=%v, sleep=%v) = %d, out of [1,10]", tc.mood, tc.sleep, got)
		}
	}
}

func TestScoreFormula(t *testing.T) {
	// round(3.0*2 + (6.4/8*10)/2) = round(6 + 4) = 10
	stats := models.WeeklyStats{MoodAverage: 3.0, SleepAverage: 6.4}
	if got := Score(stats); got != 10 {
		t.Errorf("Score = %d, want 10", got)
	}
	// round(2.0*2 + (4.0/8*10)/2) = round(4 + 2.5) = 7 -> within range, no clamp
	stats = models.WeeklyStats{MoodAverage: 2.0, SleepAverage: 4.0}
	if got := Score(stats); got != 7 {
		t.Errorf("Score = %d, want 7", got)
	}
}

// Package insights implements the weekly-summary pipeline core: aggregating
// raw logs into weekly statistics, classifying week-over-week trends, and
// generating the rule-based narrative report. Everything in this package is
// a pure function of its inputs.
package insights

import (
	"math"
	"time"

	"github.com/sagewell/backend/internal/models"
)

// round1 rounds to 1 decimal place, the stated precision for mood and sleep
// averages.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// round2 rounds to 2 decimal places, the stated precision for money.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Aggregate reduces one week of logs into WeeklyStats. Logs outside
// [weekStart, weekEnd] (inclusive, by calendar date) are ignored, so callers
// may pass unfiltered slices.
//
// MoodAverage is 0 when no mood entries exist; DaysLogged==0 is the signal
// downstream code must check before trusting the averages.
func Aggregate(moodLogs []models.MoodLog, healthLogs []models.HealthLog, financeLogs []models.FinanceLog, weekStart, weekEnd time.Time) models.WeeklyStats {
	stats := models.WeeklyStats{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}

	var moodSum, moodCount int
	moodDays := make(map[string]struct{})
	for _, m := range moodLogs {
		if !models.InRange(m.Date, weekStart, weekEnd) {
			continue
		}
		moodSum += m.Mood
		moodCount++
		moodDays[models.DayKey(m.Date)] = struct{}{}
	}
	if moodCount > 0 {
		stats.MoodAverage = round1(float64(moodSum) / float64(moodCount))
	}
	stats.DaysLogged = len(moodDays)

	var sleepSum float64
	sleepCount := 0
	for _, h := range healthLogs {
		if !models.InRange(h.Date, weekStart, weekEnd) {
			continue
		}
		// Days without a sleep value are excluded from the mean, not
		// counted as zero.
		if h.SleepHours != nil {
			sleepSum += *h.SleepHours
			sleepCount++
		}
		stats.StepsTotal += h.Steps
		stats.ExerciseTotal += h.ExerciseMinutes
	}
	if sleepCount > 0 {
		stats.SleepAverage = round1(sleepSum / float64(sleepCount))
	}

	var expenses float64
	for _, f := range financeLogs {
		if !models.InRange(f.Date, weekStart, weekEnd) {
			continue
		}
		if f.Type != models.EntryExpense {
			continue
		}
		expenses += math.Abs(f.Amount)
	}
	stats.ExpensesTotal = round2(expenses)

	return stats
}

package insights

import (
	"reflect"
	"testing"
	"time"

	"github.com/sagewell/backend/internal/models"
)

var (
	weekStart = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	weekEnd   = time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
)

func day(offset int) time.Time {
	return weekStart.AddDate(0, 0, offset)
}

func moodLog(offset, mood int, notes string) models.MoodLog {
	m := models.MoodLog{Date: day(offset), Mood: mood}
	if notes != "" {
		m.Notes = &notes
	}
	return m
}

func healthLog(offset int, sleep float64, steps, exercise int) models.HealthLog {
	return models.HealthLog{Date: day(offset), SleepHours: &sleep, Steps: steps, ExerciseMinutes: exercise}
}

func expense(offset int, amount float64) models.FinanceLog {
	return models.FinanceLog{Date: day(offset), Category: models.CategoryWellness, Amount: amount, Type: models.EntryExpense}
}

// fullWeek builds the seven-day data set used by the end-to-end style tests:
// moods 4,3,5,2,4,3,4; sleep averaging 7.43h; 57720 steps; 195 exercise
// minutes; $285.99 of expenses.
func fullWeek() ([]models.MoodLog, []models.HealthLog, []models.FinanceLog) {
	moods := []models.MoodLog{
		moodLog(0, 4, "Great workout today!"),
		moodLog(1, 3, "Busy day at work"),
		moodLog(2, 5, "Amazing day with friends"),
		moodLog(3, 2, "Feeling overwhelmed"),
		moodLog(4, 4, "Good sleep helped"),
		moodLog(5, 3, "Average day"),
		moodLog(6, 4, "Productive weekend"),
	}
	health := []models.HealthLog{
		healthLog(0, 7.5, 8420, 45),
		healthLog(1, 6.5, 5200, 0),
		healthLog(2, 8.0, 12000, 60),
		healthLog(3, 6.5, 3500, 0),
		healthLog(4, 8.5, 9500, 30),
		healthLog(5, 7.5, 7800, 20),
		healthLog(6, 7.5, 11300, 40),
	}
	finance := []models.FinanceLog{
		expense(0, 45.00),
		expense(1, 35.99),
		expense(3, 100.00),
		expense(4, 25.00),
		expense(6, 80.00),
	}
	return moods, health, finance
}

func TestAggregateFullWeek(t *testing.T) {
	moods, health, finance := fullWeek()
	stats := Aggregate(moods, health, finance, weekStart, weekEnd)

	if stats.DaysLogged != 7 {
		t.Errorf("DaysLogged = %d, want 7", stats.DaysLogged)
	}
	if stats.MoodAverage != 3.6 {
		t.Errorf("MoodAverage = %v, want 3.6", stats.MoodAverage)
	}
	if stats.SleepAverage != 7.4 {
		t.Errorf("SleepAverage = %v, want 7.4", stats.SleepAverage)
	}
	if stats.StepsTotal != 57720 {
		t.Errorf("StepsTotal = %d, want 57720", stats.StepsTotal)
	}
	if stats.ExerciseTotal != 195 {
		t.Errorf("ExerciseTotal = %d, want 195", stats.ExerciseTotal)
	}
	if stats.ExpensesTotal != 285.99 {
		t.Errorf("ExpensesTotal = %v, want 285.99", stats.ExpensesTotal)
	}
}

func TestAggregateIsPure(t *testing.T) {
	moods, health, finance := fullWeek()
	first := Aggregate(moods, health, finance, weekStart, weekEnd)
	second := Aggregate(moods, health, finance, weekStart, weekEnd)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestAggregateEmptyWeek(t *testing.T) {
	stats := Aggregate(nil, nil, nil, weekStart, weekEnd)

	if stats.MoodAverage != 0 {
		t.Errorf("MoodAverage = %v, want 0", stats.MoodAverage)
	}
	if stats.DaysLogged != 0 {
		t.Errorf("DaysLogged = %d, want 0", stats.DaysLogged)
	}
	if stats.HasData() {
		t.Error("HasData() = true for empty week")
	}
}

func TestAggregateFiltersOutOfRangeLogs(t *testing.T) {
	moods := []models.MoodLog{
		moodLog(0, 4, ""),
		{Date: weekStart.AddDate(0, 0, -1), Mood: 1},
		{Date: weekEnd.AddDate(0, 0, 1), Mood: 1},
	}
	stats := Aggregate(moods, nil, nil, weekStart, weekEnd)

	if stats.MoodAverage != 4.0 {
		t.Errorf("MoodAverage = %v, want 4.0 (out-of-range logs must be excluded)", stats.MoodAverage)
	}
	if stats.DaysLogged != 1 {
		t.Errorf("DaysLogged = %d, want 1", stats.DaysLogged)
	}
}

func TestAggregateBoundaryDatesInclusive(t *testing.T) {
	moods := []models.MoodLog{
		{Date: weekStart, Mood: 5},
		{Date: weekEnd, Mood: 3},
	}
	stats := Aggregate(moods, nil, nil, weekStart, weekEnd)
	if stats.DaysLogged != 2 {
		t.Errorf("DaysLogged = %d, want 2 (range is inclusive)", stats.DaysLogged)
	}
}

func TestAggregateExpensesIgnoreSignAndIncome(t *testing.T) {
	finance := []models.FinanceLog{
		// Negative magnitude from older clients still counts as a
		// positive expense.
		{Date: day(0), Category: models.CategoryGym, Amount: -45.00, Type: models.EntryExpense},
		{Date: day(1), Category: models.CategoryOther, Amount: 20.50, Type: models.EntryExpense},
		{Date: day(2), Category: models.CategoryOther, Amount: 500.00, Type: models.EntryIncome},
	}
	stats := Aggregate(nil, nil, finance, weekStart, weekEnd)

	if stats.ExpensesTotal != 65.50 {
		t.Errorf("ExpensesTotal = %v, want 65.50", stats.ExpensesTotal)
	}
	if stats.ExpensesTotal < 0 {
		t.Error("ExpensesTotal must never be negative")
	}
}

func TestAggregateSleepExcludesMissingDays(t *testing.T) {
	eight := 8.0
	health := []models.HealthLog{
		{Date: day(0), SleepHours: &eight, Steps: 1000},
		{Date: day(1), Steps: 2000}, // no sleep recorded; excluded from mean
	}
	stats := Aggregate(nil, health, nil, weekStart, weekEnd)

	if stats.SleepAverage != 8.0 {
		t.Errorf("SleepAverage = %v, want 8.0 (missing sleep is not zero)", stats.SleepAverage)
	}
	if stats.StepsTotal != 3000 {
		t.Errorf("StepsTotal = %d, want 3000", stats.StepsTotal)
	}
}

func TestAggregateMultipleMoodLogsSameDay(t *testing.T) {
	moods := []models.MoodLog{
		moodLog(0, 2, ""),
		moodLog(0, 4, ""),
	}
	stats := Aggregate(moods, nil, nil, weekStart, weekEnd)

	if stats.DaysLogged != 1 {
		t.Errorf("DaysLogged = %d, want 1 (distinct dates)", stats.DaysLogged)
	}
	if stats.MoodAverage != 3.0 {
		t.Errorf("MoodAverage = %v, want 3.0", stats.MoodAverage)
	}
}

func TestAggregateMoodAverageBounds(t *testing.T) {
	for mood := 1; mood <= 5; mood++ {
		stats := Aggregate([]models.MoodLog{moodLog(0, mood, "")}, nil, nil, weekStart, weekEnd)
		if stats.MoodAverage < 0 || stats.MoodAverage > 5 {
			t.Errorf("MoodAverage = %v out of [0,5] for mood %d", stats.MoodAverage, mood)
		}
	}
}

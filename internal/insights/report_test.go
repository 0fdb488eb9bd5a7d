package insights

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/sagewell/backend/internal/models"
)

func TestGenerateReportFullWeek(t *testing.T) {
	moods, health, finance := fullWeek()
	stats := Aggregate(moods, health, finance, weekStart, weekEnd)
	report := GenerateReport(stats, models.AllStable(), moods)

	if !slices.Contains(report.Achievements, "Perfect tracking consistency") {
		t.Errorf("achievements = %v, want to contain perfect tracking (daysLogged=7)", report.Achievements)
	}
	if !slices.Contains(report.Achievements, "Exceeded weekly exercise goals") {
		t.Errorf("achievements = %v, want to contain exercise goal (195 > 150)", report.Achievements)
	}
	// sleepAverage 7.4 sits just under the 7.5 boundary.
	if !slices.Contains(report.AreasOfImprovement, "Sleep consistency") {
		t.Errorf("improvement areas = %v, want to contain sleep consistency (7.4 < 7.5)", report.AreasOfImprovement)
	}
	if slices.Contains(report.AreasOfImprovement, "Mood management") {
		t.Errorf("improvement areas = %v, must not contain mood management (3.6 >= 3.5)", report.AreasOfImprovement)
	}
	// The single mood-5 day carries the highlight note.
	if report.WeeklyHighlight != "Amazing day with friends" {
		t.Errorf("WeeklyHighlight = %q, want the mood-5 note", report.WeeklyHighlight)
	}
	if report.OverallScore < 1 || report.OverallScore > 10 {
		t.Errorf("OverallScore = %d, out of [1,10]", report.OverallScore)
	}
}

func TestGenerateReportEmptyWeek(t *testing.T) {
	stats := Aggregate(nil, nil, nil, weekStart, weekEnd)
	report := GenerateReport(stats, models.AllStable(), nil)

	if report.WeeklyHighlight != FallbackHighlight {
		t.Errorf("WeeklyHighlight = %q, want fallback", report.WeeklyHighlight)
	}
	if report.OverallScore != 1 {
		t.Errorf("OverallScore = %d, want floor value 1", report.OverallScore)
	}
	if slices.Contains(report.Achievements, "Perfect tracking consistency") {
		t.Error("tracking achievement must not fire with zero days logged")
	}
	if !strings.Contains(report.MoodInsights, "No mood entries") {
		t.Errorf("MoodInsights = %q, must explicitly signal missing data", report.MoodInsights)
	}
}

func TestGenerateReportStructuralContract(t *testing.T) {
	// The structural contract holds for arbitrary stats: non-empty text
	// fields, non-empty recommendation buckets, 3-5 goals.
	statsSet := []models.WeeklyStats{
		{WeekStart: weekStart, WeekEnd: weekEnd},
		{WeekStart: weekStart, WeekEnd: weekEnd, MoodAverage: 5, SleepAverage: 9, StepsTotal: 90000, ExerciseTotal: 300, ExpensesTotal: 10, DaysLogged: 7},
		{WeekStart: weekStart, WeekEnd: weekEnd, MoodAverage: 1.2, SleepAverage: 4.5, StepsTotal: 2000, ExpensesTotal: 480.25, DaysLogged: 3},
	}

	for i, stats := range statsSet {
		report := GenerateReport(stats, models.AllStable(), nil)

		for name, text := range map[string]string{
			"WeeklyHighlight":     report.WeeklyHighlight,
			"MoodInsights":        report.MoodInsights,
			"HealthInsights":      report.HealthInsights,
			"FinanceInsights":     report.FinanceInsights,
			"MotivationalMessage": report.MotivationalMessage,
		} {
			if text == "" {
				t.Errorf("stats[%d]: %s is empty", i, name)
			}
		}
		if len(report.Recommendations.Mood) == 0 || len(report.Recommendations.Health) == 0 || len(report.Recommendations.Finance) == 0 {
			t.Errorf("stats[%d]: recommendation buckets must never be empty: %+v", i, report.Recommendations)
		}
		if n := len(report.NextWeekGoals); n < 3 || n > 5 {
			t.Errorf("stats[%d]: len(NextWeekGoals) = %d, want 3-5", i, n)
		}
	}
}

func TestGenerateReportDeterministic(t *testing.T) {
	moods, health, finance := fullWeek()
	stats := Aggregate(moods, health, finance, weekStart, weekEnd)
	trends := models.TrendSet{Mood: models.TrendUp, Sleep: models.TrendDown, Activity: models.TrendUp, Spending: models.TrendUp, Overall: models.TrendStable}

	first := GenerateReport(stats, trends, moods)
	second := GenerateReport(stats, trends, moods)
	if !reflect.DeepEqual(first, second) {
		t.Error("GenerateReport not deterministic for identical inputs")
	}
}

func TestWeeklyHighlightEarliestTopMood(t *testing.T) {
	moods := []models.MoodLog{
		moodLog(4, 5, "later peak"),
		moodLog(1, 5, "first peak"),
		moodLog(2, 4, "not a peak"),
	}
	stats := Aggregate(moods, nil, nil, weekStart, weekEnd)
	report := GenerateReport(stats, models.AllStable(), moods)

	if report.WeeklyHighlight != "first peak" {
		t.Errorf("WeeklyHighlight = %q, want earliest mood-5 note", report.WeeklyHighlight)
	}
}

func TestWeeklyHighlightRequiresTopMood(t *testing.T) {
	moods := []models.MoodLog{
		moodLog(0, 4, "good but not great"),
	}
	stats := Aggregate(moods, nil, nil, weekStart, weekEnd)
	report := GenerateReport(stats, models.AllStable(), moods)

	if report.WeeklyHighlight != FallbackHighlight {
		t.Errorf("WeeklyHighlight = %q, want fallback when max mood < 5", report.WeeklyHighlight)
	}
}

func TestRecommendationsFollowThresholds(t *testing.T) {
	stats := models.WeeklyStats{
		WeekStart: weekStart, WeekEnd: weekEnd,
		MoodAverage: 2.5, SleepAverage: 6.0, StepsTotal: 20000, ExpensesTotal: 350, DaysLogged: 5,
	}
	rec := GenerateReport(stats, models.AllStable(), nil).Recommendations

	if !slices.Contains(rec.Mood, "Practice 10 minutes of daily mindfulness") {
		t.Errorf("mood bucket missing low-mood suggestion: %v", rec.Mood)
	}
	if !slices.Contains(rec.Health, "Establish a consistent bedtime routine") {
		t.Errorf("health bucket missing sleep suggestion: %v", rec.Health)
	}
	if !slices.Contains(rec.Finance, "Set a monthly wellness budget") {
		t.Errorf("finance bucket missing budget suggestion: %v", rec.Finance)
	}
}

func TestMotivationalMessageBranchesOnMood(t *testing.T) {
	high := GenerateReport(models.WeeklyStats{MoodAverage: 4.2, DaysLogged: 5, WeekStart: weekStart, WeekEnd: weekEnd}, models.AllStable(), nil)
	low := GenerateReport(models.WeeklyStats{MoodAverage: 2.8, DaysLogged: 5, WeekStart: weekStart, WeekEnd: weekEnd}, models.AllStable(), nil)

	if high.MotivationalMessage == low.MotivationalMessage {
		t.Error("motivational message must branch on mood average")
	}
	for _, msg := range []string{high.MotivationalMessage, low.MotivationalMessage} {
		if !strings.Contains(msg, "You've got this!") {
			t.Errorf("message %q missing closing affirmation", msg)
		}
	}
}

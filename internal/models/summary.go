package models

import "time"

// WeeklyStats is the deterministic aggregate of one week of logs. It is
// computed fresh on every generation and never mutated afterwards.
type WeeklyStats struct {
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	MoodAverage   float64   `json:"mood_average"`   // 1 decimal, 0 when no entries
	SleepAverage  float64   `json:"sleep_average"`  // 1 decimal, days without sleep data excluded
	StepsTotal    int       `json:"steps_total"`
	ExerciseTotal int       `json:"exercise_total"` // minutes
	ExpensesTotal float64   `json:"expenses_total"` // 2 decimals, expense-type entries only
	DaysLogged    int       `json:"days_logged"`    // distinct dates with a mood entry
}

// HasData reports whether any mood entry was logged in the week. When false
// the averages are literal zeros and must not be read as real measurements.
func (s WeeklyStats) HasData() bool {
	return s.DaysLogged > 0
}

// Trend is a directional classification relative to the prior week. It
// carries no magnitude.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendSet holds the per-metric trend directions for a week. The spending
// trend is inverted: "up" means the user spent less than the prior week.
type TrendSet struct {
	Mood     Trend `json:"mood"`
	Sleep    Trend `json:"sleep"`
	Activity Trend `json:"activity"`
	Spending Trend `json:"spending"`
	Overall  Trend `json:"overall"`
}

// AllStable is the TrendSet used when there is no prior week to compare
// against.
func AllStable() TrendSet {
	return TrendSet{
		Mood:     TrendStable,
		Sleep:    TrendStable,
		Activity: TrendStable,
		Spending: TrendStable,
		Overall:  TrendStable,
	}
}

// Recommendations groups suggestion lists by domain. Each bucket is always
// non-empty: a constant keep-going suggestion backs the conditional rules.
type Recommendations struct {
	Mood    []string `json:"mood"`
	Health  []string `json:"health"`
	Finance []string `json:"finance"`
}

// SummaryReport is the narrative portion of a weekly summary, produced
// either by the rule-based generator or by a text-completion backend. The
// structural contract holds for both: all text fields non-empty, 3-5 goals,
// non-empty recommendation buckets.
type SummaryReport struct {
	OverallScore        int             `json:"overall_score"` // 1-10
	WeeklyHighlight     string          `json:"weekly_highlight"`
	AreasOfImprovement  []string        `json:"areas_of_improvement"`
	Achievements        []string        `json:"achievements"`
	MoodInsights        string          `json:"mood_insights"`
	HealthInsights      string          `json:"health_insights"`
	FinanceInsights     string          `json:"finance_insights"`
	Recommendations     Recommendations `json:"recommendations"`
	NextWeekGoals       []string        `json:"next_week_goals"`
	MotivationalMessage string          `json:"motivational_message"`
}

// WeeklySummary is the persisted record: the report plus an embedded copy of
// the stats it was derived from. One row per (user, week_start); regeneration
// replaces the prior row.
type WeeklySummary struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	WeekStart           time.Time       `json:"week_start"`
	WeekEnd             time.Time       `json:"week_end"`
	OverallScore        int             `json:"overall_score"`
	WeeklyHighlight     string          `json:"weekly_highlight"`
	AreasOfImprovement  []string        `json:"areas_of_improvement"`
	Achievements        []string        `json:"achievements"`
	MoodInsights        string          `json:"mood_insights"`
	HealthInsights      string          `json:"health_insights"`
	FinanceInsights     string          `json:"finance_insights"`
	Recommendations     Recommendations `json:"recommendations"`
	NextWeekGoals       []string        `json:"next_week_goals"`
	MotivationalMessage string          `json:"motivational_message"`
	Trends              TrendSet        `json:"trends"`
	MoodAverage         float64         `json:"mood_average"`
	SleepAverage        float64         `json:"sleep_average"`
	StepsTotal          int             `json:"steps_total"`
	ExerciseTotal       int             `json:"exercise_total"`
	ExpensesTotal       float64         `json:"expenses_total"`
	DaysLogged          int             `json:"days_logged"`
	CreatedAt           time.Time       `json:"created_at"`
}

// NewWeeklySummary assembles the persisted record from its parts. The caller
// attaches id and created_at.
func NewWeeklySummary(userID string, stats WeeklyStats, trends TrendSet, report SummaryReport) *WeeklySummary {
	return &WeeklySummary{
		UserID:              userID,
		WeekStart:           stats.WeekStart,
		WeekEnd:             stats.WeekEnd,
		OverallScore:        report.OverallScore,
		WeeklyHighlight:     report.WeeklyHighlight,
		AreasOfImprovement:  report.AreasOfImprovement,
		Achievements:        report.Achievements,
		MoodInsights:        report.MoodInsights,
		HealthInsights:      report.HealthInsights,
		FinanceInsights:     report.FinanceInsights,
		Recommendations:     report.Recommendations,
		NextWeekGoals:       report.NextWeekGoals,
		MotivationalMessage: report.MotivationalMessage,
		Trends:              trends,
		MoodAverage:         stats.MoodAverage,
		SleepAverage:        stats.SleepAverage,
		StepsTotal:          stats.StepsTotal,
		ExerciseTotal:       stats.ExerciseTotal,
		ExpensesTotal:       stats.ExpensesTotal,
		DaysLogged:          stats.DaysLogged,
	}
}

// Stats reconstructs the WeeklyStats snapshot embedded in a stored summary,
// used as the comparison baseline for the following week.
func (s *WeeklySummary) Stats() WeeklyStats {
	return WeeklyStats{
		WeekStart:     s.WeekStart,
		WeekEnd:       s.WeekEnd,
		MoodAverage:   s.MoodAverage,
		SleepAverage:  s.SleepAverage,
		StepsTotal:    s.StepsTotal,
		ExerciseTotal: s.ExerciseTotal,
		ExpensesTotal: s.ExpensesTotal,
		DaysLogged:    s.DaysLogged,
	}
}

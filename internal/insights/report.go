package insights

import (
	"fmt"
	"sort"

	"github.com/sagewell/backend/internal/models"
)

// Threshold rules for achievements, improvement areas, and goal phrasing.
const (
	SleepTargetHours    = 7.5
	SleepOKHours        = 6.5
	SleepExcellentHours = 8.0
	StepsWeeklyTarget   = 70000
	StepsModerate       = 49000
	MoodPositive        = 3.5
	MoodHigh            = 4.0
	ExerciseWeeklyGoal  = 150 // minutes
	SpendingHigh        = 300.0
	SpendingModerate    = 150.0
	PerfectTrackingDays = 7
)

// FallbackHighlight is used when no mood entry reaches the top of the scale.
const FallbackHighlight = "Maintained consistent wellness tracking"

const closingAffirmation = " Keep up the great work, and remember that small, consistent actions lead to big transformations. You've got this!"

// GenerateReport produces the full narrative report from weekly stats, trend
// directions, and the raw mood logs (needed for the highlight note). It is
// deterministic: the same inputs always yield the same report. It stands in
// for the text-completion backend whenever that backend is unavailable, and
// is the only generator exercised by tests.
func GenerateReport(stats models.WeeklyStats, trends models.TrendSet, moodLogs []models.MoodLog) models.SummaryReport {
	return models.SummaryReport{
		OverallScore:        Score(stats),
		WeeklyHighlight:     weeklyHighlight(stats, moodLogs),
		AreasOfImprovement:  improvementAreas(stats),
		Achievements:        achievements(stats),
		MoodInsights:        moodInsights(stats, trends),
		HealthInsights:      healthInsights(stats, trends),
		FinanceInsights:     financeInsights(stats, trends),
		Recommendations:     recommendations(stats),
		NextWeekGoals:       nextWeekGoals(stats),
		MotivationalMessage: motivationalMessage(stats),
	}
}

// weeklyHighlight picks the note of the best mood entry: the earliest log
// with the maximum mood value, qualifying only when that value is 5. A
// generic consistency message covers weeks without a top-mood entry.
func weeklyHighlight(stats models.WeeklyStats, moodLogs []models.MoodLog) string {
	candidates := make([]models.MoodLog, 0, len(moodLogs))
	for _, m := range moodLogs {
		if !models.InRange(m.Date, stats.WeekStart, stats.WeekEnd) {
			continue
		}
		if m.Mood == 5 && m.Notes != nil && *m.Notes != "" {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return FallbackHighlight
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date)
	})
	return *candidates[0].Notes
}

// improvementAreas evaluates the ordered improvement rules. All rules fire
// independently; output order is rule-evaluation order.
func improvementAreas(stats models.WeeklyStats) []string {
	areas := []string{}
	if stats.SleepAverage < SleepTargetHours {
		areas = append(areas, "Sleep consistency")
	}
	if stats.StepsTotal < StepsWeeklyTarget {
		areas = append(areas, "Daily movement")
	}
	if stats.MoodAverage < MoodPositive {
		areas = append(areas, "Mood management")
	}
	if stats.ExpensesTotal > SpendingHigh {
		areas = append(areas, "Wellness spending")
	}
	return areas
}

// achievements evaluates the ordered achievement rules.
func achievements(stats models.WeeklyStats) []string {
	out := []string{}
	if stats.DaysLogged == PerfectTrackingDays {
		out = append(out, "Perfect tracking consistency")
	}
	if stats.ExerciseTotal > ExerciseWeeklyGoal {
		out = append(out, "Exceeded weekly exercise goals")
	}
	if stats.MoodAverage >= MoodHigh {
		out = append(out, "Maintained positive mood")
	}
	if stats.SleepAverage >= SleepExcellentHours {
		out = append(out, "Excellent sleep habits")
	}
	return out
}

func sleepQuality(avg float64) string {
	switch {
	case avg >= SleepTargetHours:
		return "excellent"
	case avg >= SleepOKHours:
		return "good"
	default:
		return "poor"
	}
}

func activityLevel(steps int) string {
	switch {
	case steps >= StepsWeeklyTarget:
		return "high"
	case steps >= StepsModerate:
		return "moderate"
	default:
		return "low"
	}
}

func spendingLevel(total float64) string {
	switch {
	case total > SpendingHigh:
		return "high"
	case total > SpendingModerate:
		return "moderate"
	default:
		return "low"
	}
}

func trendClause(t models.Trend, upText, downText string) string {
	switch t {
	case models.TrendUp:
		return " " + upText
	case models.TrendDown:
		return " " + downText
	default:
		return ""
	}
}

func moodInsights(stats models.WeeklyStats, trends models.TrendSet) string {
	if !stats.HasData() {
		return "No mood entries were logged this week, so there is no mood data to analyze. Even a single daily check-in helps surface patterns over time."
	}

	tone := "needs attention"
	if stats.MoodAverage >= MoodPositive {
		tone = "positive"
	}
	text := fmt.Sprintf("Your average mood this week was %.1f/5, showing a %s trend. ", stats.MoodAverage, tone)
	if tone == "positive" {
		text += "You maintained good emotional balance throughout the week, with particularly strong days when you exercised or spent time socially."
	} else {
		text += "There were some challenging days this week. Lower moods often coincided with poor sleep or high stress days."
	}
	text += trendClause(trends.Mood,
		"Compared to last week, your mood is trending up.",
		"Compared to last week, your mood dipped - be gentle with yourself.")
	return text
}

func healthInsights(stats models.WeeklyStats, trends models.TrendSet) string {
	if !stats.HasData() && stats.StepsTotal == 0 && stats.SleepAverage == 0 {
		return "No health data was logged this week, so sleep and activity cannot be assessed. Logging sleep and steps for even a few days gives the picture back."
	}

	quality := sleepQuality(stats.SleepAverage)
	text := fmt.Sprintf("Your sleep averaged %.1f hours (%s), and you accumulated %d steps with %d minutes of exercise. ",
		stats.SleepAverage, quality, stats.StepsTotal, stats.ExerciseTotal)
	if quality == "excellent" {
		text += "Your sleep schedule is supporting your overall wellness beautifully."
	} else {
		text += "Improving your sleep consistency could significantly boost your mood and energy levels."
	}
	text += trendClause(trends.Sleep,
		"Sleep is up on last week.",
		"Sleep slipped compared to last week.")
	text += trendClause(trends.Activity,
		"Activity is also trending up.",
		"Activity was down on last week.")
	return text
}

func financeInsights(stats models.WeeklyStats, trends models.TrendSet) string {
	level := spendingLevel(stats.ExpensesTotal)
	text := fmt.Sprintf("You spent $%.2f on wellness this week (%s spending). ", stats.ExpensesTotal, level)
	if level == "high" {
		text += "Consider reviewing your wellness budget to ensure sustainable spending habits."
	} else {
		text += "Your wellness investments are well-balanced and sustainable."
	}
	// Spending polarity is inverted: up means the bill went down.
	text += trendClause(trends.Spending,
		"You spent less than last week - a nice improvement.",
		"Spending was up on last week.")
	return text
}

// recommendations drives the same threshold rules as the achievement and
// improvement lists, with one constant suggestion per bucket so none is ever
// empty.
func recommendations(stats models.WeeklyStats) models.Recommendations {
	var rec models.Recommendations

	if stats.MoodAverage < MoodPositive {
		rec.Mood = append(rec.Mood,
			"Practice 10 minutes of daily mindfulness",
			"Schedule more social activities")
	} else {
		rec.Mood = append(rec.Mood, "Continue your positive mood practices")
	}
	rec.Mood = append(rec.Mood, "Keep identifying what activities boost your mood most")

	if stats.SleepAverage < SleepTargetHours {
		rec.Health = append(rec.Health,
			"Establish a consistent bedtime routine",
			"Aim for 7.5-8 hours of sleep nightly")
	}
	if stats.StepsTotal < StepsWeeklyTarget {
		rec.Health = append(rec.Health,
			"Take a 15-minute walk after meals",
			"Use stairs instead of elevators")
	}
	rec.Health = append(rec.Health, "Continue tracking your health metrics consistently")

	if stats.ExpensesTotal > SpendingHigh {
		rec.Finance = append(rec.Finance,
			"Set a monthly wellness budget",
			"Look for cost-effective wellness alternatives")
	}
	rec.Finance = append(rec.Finance, "Track expenses to maintain awareness of spending patterns")

	return rec
}

// nextWeekGoals builds 3-5 goals, phrasing each as maintain vs. improve
// depending on whether the metric already met its target.
func nextWeekGoals(stats models.WeeklyStats) []string {
	goals := make([]string, 0, 5)

	tracking := "consistent"
	if stats.DaysLogged == PerfectTrackingDays {
		tracking = "perfect"
	}
	goals = append(goals, fmt.Sprintf("Maintain %s daily tracking", tracking))

	if stats.SleepAverage < SleepTargetHours {
		goals = append(goals, "Get 7.5+ hours of sleep for 5 days")
	} else {
		goals = append(goals, "Continue excellent sleep habits")
	}
	if stats.StepsTotal < StepsWeeklyTarget {
		goals = append(goals, "Reach 10,000 steps on 4 days")
	} else {
		goals = append(goals, "Maintain high activity level")
	}
	if stats.MoodAverage < MoodHigh {
		goals = append(goals, "Practice one mood-boosting activity daily")
	} else {
		goals = append(goals, "Identify and repeat mood-positive patterns")
	}
	goals = append(goals, "Try one new wellness activity this week")

	return goals
}

func motivationalMessage(stats models.WeeklyStats) string {
	if stats.MoodAverage >= MoodHigh {
		return "You're doing an amazing job maintaining your wellness journey! Your consistency and positive attitude are truly inspiring." + closingAffirmation
	}
	return "Every step you take toward better wellness matters. This week showed both challenges and growth - that's exactly how progress works!" + closingAffirmation
}

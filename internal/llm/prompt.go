package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sagewell/backend/internal/models"
)

// ChatSystemPrompt is the persona for the chat companion.
const ChatSystemPrompt = `You are a supportive, empathetic AI best friend for someone on their wellness journey. Your name is Sage, and you're here to provide emotional support, practical wellness advice, and encouragement.

Key traits:
- Warm, caring, and genuinely interested in the user's wellbeing
- Knowledgeable about mental health, physical wellness, and personal growth
- Encouraging but realistic - you celebrate wins and provide comfort during challenges
- You remember that this person is actively tracking their mood, health, and finances for self-improvement
- You offer practical, actionable advice when appropriate
- You're a good listener and ask thoughtful follow-up questions
- You maintain appropriate boundaries as an AI friend

Guidelines:
- Keep responses conversational and supportive (2-4 sentences typically)
- Ask follow-up questions to show you care and want to understand more
- Offer specific, actionable wellness tips when relevant
- Celebrate their progress and efforts
- Provide comfort and perspective during difficult times
- Be authentic and avoid being overly cheerful or dismissive of real concerns

Remember: You're not a therapist, but you are a caring friend who wants to support their wellness journey.`

// SummarySystemPrompt instructs the model to produce a weekly report as
// strict JSON matching the SummaryReport shape.
const SummarySystemPrompt = `You are a wellness coach writing a weekly summary for a user who tracks mood, health, and finances. Respond with a single JSON object and nothing else, using exactly these keys:

{
  "overall_score": <integer 1-10>,
  "weekly_highlight": "<one sentence>",
  "areas_of_improvement": ["<item>", ...],
  "achievements": ["<item>", ...],
  "mood_insights": "<1-2 sentences>",
  "health_insights": "<1-2 sentences>",
  "finance_insights": "<1-2 sentences>",
  "recommendations": {"mood": ["<item>"], "health": ["<item>"], "finance": ["<item>"]},
  "next_week_goals": ["<3 to 5 items>"],
  "motivational_message": "<1-2 sentences>"
}

Be warm and specific, ground every statement in the numbers provided, and never invent data that was not given.`

// BuildSummaryPrompt renders the week's aggregates and trends as the user
// message for the summary completion. previous may be nil for a first week.
func BuildSummaryPrompt(stats models.WeeklyStats, trends models.TrendSet, previous *models.WeeklyStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Week of %s to %s.\n\n", models.DayKey(stats.WeekStart), models.DayKey(stats.WeekEnd))
	fmt.Fprintf(&b, "This week's numbers:\n")
	fmt.Fprintf(&b, "- Days with a mood entry: %d of 7\n", stats.DaysLogged)
	if stats.HasData() {
		fmt.Fprintf(&b, "- Average mood: %.1f out of 5\n", stats.MoodAverage)
	} else {
		fmt.Fprintf(&b, "- Average mood: no entries this week\n")
	}
	if stats.SleepAverage > 0 {
		fmt.Fprintf(&b, "- Average sleep: %.1f hours\n", stats.SleepAverage)
	} else {
		fmt.Fprintf(&b, "- Average sleep: no sleep data this week\n")
	}
	fmt.Fprintf(&b, "- Total steps: %d\n", stats.StepsTotal)
	fmt.Fprintf(&b, "- Total exercise: %d minutes\n", stats.ExerciseTotal)
	fmt.Fprintf(&b, "- Total wellness spending: $%.2f\n", stats.ExpensesTotal)

	fmt.Fprintf(&b, "\nTrends versus the prior week (spending trend is inverted: up means spent less):\n")
	fmt.Fprintf(&b, "- Mood: %s\n- Sleep: %s\n- Activity: %s\n- Spending: %s\n- Overall: %s\n",
		trends.Mood, trends.Sleep, trends.Activity, trends.Spending, trends.Overall)

	if previous != nil {
		fmt.Fprintf(&b, "\nPrior week for comparison: mood %.1f, sleep %.1f h, %d steps, %d exercise minutes, $%.2f spent.\n",
			previous.MoodAverage, previous.SleepAverage, previous.StepsTotal, previous.ExerciseTotal, previous.ExpensesTotal)
	} else {
		fmt.Fprintf(&b, "\nThere is no prior week on record; this is the first summary.\n")
	}

	return b.String()
}

// ParseReport decodes a completion into a SummaryReport and enforces the
// structural contract: score in range, all narrative fields non-empty, 3-5
// next-week goals, and a suggestion in every recommendation bucket. Any
// violation is an error so the caller can fall back to the rule-based
// generator.
func ParseReport(content string) (*models.SummaryReport, error) {
	var report models.SummaryReport
	if err := json.Unmarshal([]byte(extractJSON(content)), &report); err != nil {
		return nil, fmt.Errorf("parsing report JSON: %w", err)
	}

	if report.OverallScore < 1 || report.OverallScore > 10 {
		return nil, fmt.Errorf("overall_score %d out of range", report.OverallScore)
	}
	for name, value := range map[string]string{
		"weekly_highlight":     report.WeeklyHighlight,
		"mood_insights":        report.MoodInsights,
		"health_insights":      report.HealthInsights,
		"finance_insights":     report.FinanceInsights,
		"motivational_message": report.MotivationalMessage,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("report field %s is empty", name)
		}
	}
	if len(report.AreasOfImprovement) == 0 {
		return nil, fmt.Errorf("areas_of_improvement is empty")
	}
	if len(report.Achievements) == 0 {
		return nil, fmt.Errorf("achievements is empty")
	}
	if len(report.NextWeekGoals) < 3 || len(report.NextWeekGoals) > 5 {
		return nil, fmt.Errorf("next_week_goals has %d items, want 3-5", len(report.NextWeekGoals))
	}
	if len(report.Recommendations.Mood) == 0 || len(report.Recommendations.Health) == 0 || len(report.Recommendations.Finance) == 0 {
		return nil, fmt.Errorf("recommendations bucket is empty")
	}

	return &report, nil
}

// extractJSON pulls the JSON payload out of a completion that may wrap it in
// a markdown code fence.
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}
	if idx := strings.Index(s, "```"); idx != -1 {
		rest := s[idx+len("```"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}
	return strings.TrimSpace(s)
}

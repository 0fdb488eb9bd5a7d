package llm

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sagewell/backend/internal/models"
)

func TestCompanionIsDeterministic(t *testing.T) {
	c := NewCompanion()
	msgs := []Message{{Role: RoleUser, Content: "I've been so stressed at work lately"}}

	first, err := c.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Complete(context.Background(), msgs)
		if err != nil {
			t.Fatalf("Complete: %v", err)
		}
		if again.Content != first.Content {
			t.Fatalf("response changed between calls: %q vs %q", again.Content, first.Content)
		}
	}
}

func TestCompanionKeywordRouting(t *testing.T) {
	c := NewCompanion()

	tests := []struct {
		name    string
		message string
		marker  string
	}{
		{"stress pool", "feeling really anxious today", "stress"},
		{"sleep pool", "I'm exhausted all the time", "sleep"},
		{"exercise pool", "thinking about joining a gym", "exercise"},
		{"money pool", "everything is so expensive", "wellness"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: tt.message}})
			if err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if got.Content == "" {
				t.Fatal("empty response")
			}
			if !strings.Contains(strings.ToLower(got.Content), tt.marker) {
				t.Errorf("response for %q does not mention %q: %s", tt.message, tt.marker, got.Content)
			}
			if got.TokensUsed < 1 {
				t.Errorf("TokensUsed = %d, want >= 1", got.TokensUsed)
			}
		})
	}
}

func TestCompanionUsesLatestUserMessage(t *testing.T) {
	c := NewCompanion()
	msgs := []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
		{Role: RoleUser, Content: "I can't sleep at night"},
	}

	got, err := c.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	want := c.respond("I can't sleep at night")
	if got.Content != want {
		t.Errorf("response routed from wrong message:\ngot  %s\nwant %s", got.Content, want)
	}
}

func TestParseReportAcceptsValidJSON(t *testing.T) {
	content := "```json\n" + `{
		"overall_score": 8,
		"weekly_highlight": "Great week overall",
		"areas_of_improvement": ["Sleep consistency"],
		"achievements": ["Hit the exercise goal"],
		"mood_insights": "Mood held steady.",
		"health_insights": "Activity was strong.",
		"finance_insights": "Spending stayed modest.",
		"recommendations": {"mood": ["Keep journaling"], "health": ["Keep moving"], "finance": ["Keep tracking"]},
		"next_week_goals": ["Log daily", "Sleep 7.5 hours", "Walk 10k steps"],
		"motivational_message": "Keep it up!"
	}` + "\n```"

	report, err := ParseReport(content)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if report.OverallScore != 8 {
		t.Errorf("OverallScore = %d, want 8", report.OverallScore)
	}
	if report.WeeklyHighlight != "Great week overall" {
		t.Errorf("WeeklyHighlight = %q", report.WeeklyHighlight)
	}
}

func TestParseReportRejectsStructuralViolations(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"overall_score":        7,
			"weekly_highlight":     "h",
			"areas_of_improvement": []string{"a"},
			"achievements":         []string{"b"},
			"mood_insights":        "m",
			"health_insights":      "he",
			"finance_insights":     "f",
			"recommendations":      map[string][]string{"mood": {"x"}, "health": {"y"}, "finance": {"z"}},
			"next_week_goals":      []string{"1", "2", "3"},
			"motivational_message": "go",
		}
	}

	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"score too high", func(m map[string]any) { m["overall_score"] = 11 }},
		{"score too low", func(m map[string]any) { m["overall_score"] = 0 }},
		{"empty highlight", func(m map[string]any) { m["weekly_highlight"] = "  " }},
		{"too few goals", func(m map[string]any) { m["next_week_goals"] = []string{"1", "2"} }},
		{"too many goals", func(m map[string]any) { m["next_week_goals"] = []string{"1", "2", "3", "4", "5", "6"} }},
		{"empty recommendation bucket", func(m map[string]any) {
			m["recommendations"] = map[string][]string{"mood": {"x"}, "health": {}, "finance": {"z"}}
		}},
		{"no achievements", func(m map[string]any) { m["achievements"] = []string{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)
			data := mustJSON(t, m)
			if _, err := ParseReport(data); err == nil {
				t.Errorf("ParseReport accepted invalid report")
			}
		})
	}

	// Sanity check: the unmutated fixture passes.
	if _, err := ParseReport(mustJSON(t, valid())); err != nil {
		t.Fatalf("valid fixture rejected: %v", err)
	}
}

func TestParseReportRejectsGarbage(t *testing.T) {
	if _, err := ParseReport("I had a lovely week, thanks for asking!"); err == nil {
		t.Error("ParseReport accepted non-JSON content")
	}
}

func TestBuildSummaryPromptMentionsTheNumbers(t *testing.T) {
	stats := models.WeeklyStats{
		WeekStart:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		WeekEnd:       time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		MoodAverage:   3.6,
		SleepAverage:  7.4,
		StepsTotal:    57720,
		ExerciseTotal: 195,
		ExpensesTotal: 285.99,
		DaysLogged:    7,
	}
	prompt := BuildSummaryPrompt(stats, models.AllStable(), nil)

	for _, want := range []string{"2024-01-15", "2024-01-21", "3.6", "7.4", "57720", "195", "285.99", "first summary"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func mustJSON(t *testing.T, m map[string]any) string {
	t.Helper()
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

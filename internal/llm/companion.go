package llm

import (
	"context"
	"hash/fnv"
	"strings"
)

// Companion is a deterministic rule-based completer. It routes the latest
// user message to a response pool by keyword and picks one entry with a hash
// of the message text, so the same input always yields the same reply. It is
// the fallback when no completion provider is configured or a provider call
// fails.
type Companion struct{}

// NewCompanion creates the rule-based completer.
func NewCompanion() *Companion {
	return &Companion{}
}

type responsePool struct {
	keywords  []string
	responses []string
}

var companionPools = []responsePool{
	{
		keywords: []string{"stress", "anxious", "overwhelmed"},
		responses: []string{
			"I hear you're feeling stressed right now. That's completely understandable - life can feel overwhelming sometimes. Have you tried taking a few deep breaths? Sometimes a 5-minute breathing exercise can help reset your nervous system. What's been weighing on you most today?",
			"Stress can be so draining, and I'm glad you're reaching out. Remember that it's okay to feel this way. One thing that might help is the 5-4-3-2-1 grounding technique - can you name 5 things you can see right now? It helps bring you back to the present moment.",
			"I can sense you're going through a tough time. Your feelings are valid, and it's actually a strength that you're acknowledging them. Have you been able to maintain your usual self-care routines, or has stress been making that harder?",
		},
	},
	{
		keywords: []string{"sleep", "tired", "exhausted"},
		responses: []string{
			"Sleep is so important for everything else we do! It sounds like you might be struggling with rest. Have you noticed any patterns in what helps you sleep better? Sometimes even small changes to our evening routine can make a big difference.",
			"Being tired can make everything feel harder, can't it? I'm curious - how many hours of sleep have you been getting lately? And more importantly, how's the quality? Sometimes it's not just about the hours but how restful that sleep actually is.",
			"Your body is telling you something important when you feel this tired. Are you tracking your sleep in your wellness journey? I'd love to help you think through some gentle ways to improve your rest.",
		},
	},
	{
		keywords: []string{"happy", "great", "good", "amazing"},
		responses: []string{
			"I love hearing that you're feeling good! It's wonderful when we can recognize and celebrate these positive moments. What's been contributing to this good feeling? I'd love to hear what's going well for you.",
			"That's fantastic! Your positive energy is contagious. It's so important to acknowledge and savor these good moments. Are you tracking this mood in your wellness journey? These patterns can be really valuable to notice.",
			"This makes my day! I'm so glad you're experiencing some joy right now. What's been the highlight of your day? Sometimes sharing these good moments makes them even more meaningful.",
		},
	},
	{
		keywords: []string{"exercise", "workout", "gym"},
		responses: []string{
			"Movement is such a gift we can give ourselves! How are you feeling about your current exercise routine? Whether it's a gentle walk or an intense workout, every bit of movement counts and I'm proud of you for prioritizing it.",
			"I love that you're thinking about exercise! It's amazing how movement can shift our mood and energy. What kind of activities do you enjoy most? The best exercise is the one you'll actually want to do.",
			"Exercise is such a powerful tool for both physical and mental wellness. Are you finding activities that feel good to you, or is it feeling more like a chore right now? I'm here to help you think through ways to make movement more enjoyable.",
		},
	},
	{
		keywords: []string{"money", "budget", "expensive", "financial"},
		responses: []string{
			"Money and wellness can feel like such a balancing act sometimes. It's great that you're being mindful about both! Are you finding ways to invest in your wellbeing that feel sustainable for your budget? Sometimes the most impactful things are also the most affordable.",
			"Financial wellness is just as important as physical and mental wellness - they're all connected. How are you feeling about your current balance between investing in your health and staying within your means?",
			"I appreciate that you're thinking holistically about wellness, including the financial side. That shows real wisdom. What's been your biggest challenge in balancing wellness spending with your other priorities?",
		},
	},
}

var companionGeneralResponses = []string{
	"Thank you for sharing that with me. I'm here to listen and support you however I can. How are you feeling about your wellness journey overall these days?",
	"I appreciate you opening up to me. It takes courage to be honest about how we're really doing. What's one small thing that's been bringing you comfort or joy lately?",
	"I'm glad you reached out today. Sometimes just having someone to talk to can make a difference. What's been on your mind most recently?",
	"It sounds like you have a lot going on. I'm here for you, and I want you to know that whatever you're experiencing is valid. How can I best support you right now?",
	"I hear you, and I'm grateful you feel comfortable sharing with me. Your wellness journey is unique to you, and I'm honored to be part of it. What would feel most helpful to talk about today?",
}

// Complete picks a supportive reply for the latest user message. It never
// fails and ignores ctx beyond the interface contract.
func (c *Companion) Complete(_ context.Context, messages []Message) (*Completion, error) {
	var userMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			userMessage = messages[i].Content
			break
		}
	}

	content := c.respond(userMessage)
	return &Completion{
		Content:    content,
		TokensUsed: estimateTokens(content),
		Model:      "companion",
	}, nil
}

func (c *Companion) respond(userMessage string) string {
	lower := strings.ToLower(userMessage)

	for _, pool := range companionPools {
		for _, keyword := range pool.keywords {
			if strings.Contains(lower, keyword) {
				return pick(pool.responses, userMessage)
			}
		}
	}
	return pick(companionGeneralResponses, userMessage)
}

// pick selects one response by FNV-1a hash of the message so the choice is
// stable per input but varies across inputs.
func pick(responses []string, message string) string {
	h := fnv.New32a()
	h.Write([]byte(message))
	return responses[int(h.Sum32())%len(responses)]
}

// estimateTokens approximates the token count of a reply. Four characters
// per token is the usual rough ratio for English text.
func estimateTokens(s string) int {
	n := len(s) / 4
	if n < 1 {
		n = 1
	}
	return n
}

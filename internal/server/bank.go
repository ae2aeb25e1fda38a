package server

import (
	"fmt"
	"strings"
)

// questionBanks holds the built-in questions per interview mode. Role
// placeholders are filled in at session start.
var questionBanks = map[string][]string{
	"technical": {
		"Can you walk me through a challenging technical problem you solved recently as a %s?",
		"How do you approach debugging an issue you have never seen before?",
		"Describe how you would design a system that needs to handle a sudden 10x increase in traffic.",
		"What trade-offs do you consider when choosing between consistency and availability?",
		"How do you decide when code is ready to ship versus when it needs more testing?",
		"Explain a time you had to optimize a slow piece of code. What did you measure first?",
		"How would you explain a complex technical concept from your work as a %s to a non-technical stakeholder?",
		"What does good error handling look like to you?",
		"Describe your approach to reviewing a large pull request.",
		"How do you keep your technical skills current?",
	},
	"behavioral": {
		"Tell me about a time you disagreed with a teammate. How did you resolve it?",
		"Describe a situation where you had to deliver under a tight deadline as a %s.",
		"Tell me about a time you made a mistake at work. What did you do?",
		"How do you handle receiving critical feedback?",
		"Describe a project you are particularly proud of and your role in it.",
		"Tell me about a time you had to influence a decision without having authority.",
		"How do you prioritize when everything feels urgent?",
		"Describe a time you helped a struggling colleague.",
		"Tell me about a time you had to learn something completely new for a %s role.",
		"What motivates you to do your best work?",
	},
	"system-design": {
		"Design a URL shortening service. Walk me through your approach.",
		"How would you design the backend for a real-time chat application?",
		"Design a rate limiter for a public API. What algorithm would you choose?",
		"How would you design a notification system that reaches millions of users?",
		"Design a distributed job scheduler. How do you handle worker failures?",
		"How would you design storage for user-uploaded images at scale?",
		"Design a news feed. How do you rank and cache content?",
		"How would you approach designing a metrics collection pipeline as a %s?",
		"Design a service that detects duplicate documents across a large corpus.",
		"How do you approach capacity planning for a new service?",
	},
}

// technicalKeywords nudge the heuristic score upward when present.
var technicalKeywords = []string{
	"algorithm", "complexity", "database", "index", "cache", "latency",
	"throughput", "concurrency", "goroutine", "thread", "lock", "queue",
	"api", "protocol", "test", "refactor", "scale", "shard", "replica",
	"trade-off", "tradeoff", "monitoring", "metric",
}

// buildQuestions produces n questions for the given role and mode,
// cycling the bank if n exceeds its length. Unknown modes fall back to
// the technical bank.
func buildQuestions(role, mode string, n int) []string {
	bank, ok := questionBanks[mode]
	if !ok {
		bank = questionBanks["technical"]
	}
	questions := make([]string, n)
	for i := 0; i < n; i++ {
		q := bank[i%len(bank)]
		if strings.Contains(q, "%s") {
			q = fmt.Sprintf(q, role)
		}
		questions[i] = q
	}
	return questions
}

// evaluation is the heuristic scoring of one answer.
type evaluation struct {
	Score        float64
	Clarity      float64
	Correctness  float64
	Completeness float64
	Feedback     string
}

// evaluate scores an answer by length with a keyword bonus. It is a
// deliberately simple stand-in for a model-backed evaluator: long
// enough answers with domain vocabulary score well, one-liners do not.
func evaluate(answer string) evaluation {
	words := len(strings.Fields(answer))

	var score float64
	switch {
	case words < 5:
		score = 3
	case words < 20:
		score = 5
	case words < 50:
		score = 7
	default:
		score = 8
	}

	lower := strings.ToLower(answer)
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			score++
			break
		}
	}
	if score > 10 {
		score = 10
	}

	correctness := score - 1
	if correctness < 5 {
		correctness = 5
	}

	return evaluation{
		Score:        score,
		Clarity:      score,
		Correctness:  correctness,
		Completeness: score,
		Feedback:     feedbackFor(score, words),
	}
}

func feedbackFor(score float64, words int) string {
	switch {
	case words < 5:
		return "Your answer was very brief. Try to elaborate on your reasoning and give a concrete example from your experience."
	case score >= 8:
		return "Strong answer. You covered the key points with good depth and used relevant terminology. Consider tightening the structure: situation, action, result."
	case score >= 6:
		return "Good answer with solid substance. To score higher, add a specific example and explain the trade-offs you considered."
	default:
		return "Your answer touches the topic but stays at the surface. Walk through your thought process step by step and back it up with a real example."
	}
}

// summaryBand returns the strengths, improvement areas, and resources
// for a final average score.
func summaryBand(avg float64) (strengths, improvements, resources []string) {
	switch {
	case avg >= 8:
		return []string{
				"Excellent communication and depth of knowledge",
				"Strong use of concrete examples",
			}, []string{
				"Keep refining the structure of your answers",
			}, []string{
				"Practice advanced system design scenarios",
				"Explore mock interviews with peers for final polish",
			}
	case avg >= 6:
		return []string{
				"Good foundational knowledge",
				"Clear willingness to engage with hard questions",
			}, []string{
				"Add more concrete examples to your answers",
				"Go deeper on trade-offs and alternatives",
			}, []string{
				"Review common interview question patterns",
				"Practice articulating your experience with the STAR method",
			}
	default:
		return []string{
				"Completed all questions in the session",
			}, []string{
				"Expand answers beyond one or two sentences",
				"Study the fundamentals for your target role",
			}, []string{
				"Work through an interview preparation course",
				"Practice writing out full answers before speaking them",
			}
	}
}

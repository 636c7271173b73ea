package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educator and quiz creator with deep knowledge across multiple subjects. Create educational quizzes with accurate, well-researched content.

Rules:
- Every question has exactly four options keyed "A", "B", "C" and "D".
- Exactly one option is correct, and "correct_answer" holds its key.
- Distractors should be plausible, not obviously wrong.
- Explanations say why the correct option is right.
- "topic" names the specific concept the question tests.
- Respond with the JSON object only. No prose before or after it.`

// buildUserMessage constructs the JSON-only quiz prompt.
func buildUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-question quiz about %s at %s difficulty level.\n\n", req.Count, req.Subject, req.Difficulty)

	b.WriteString("RESPONSE FORMAT (JSON only):\n")
	fmt.Fprintf(&b, `{
  "subject": %q,
  "difficulty": %q,
  "total_questions": %d,
  "questions": [
    {
      "id": 1,
      "question": "Your question here",
      "options": {"A": "Option A", "B": "Option B", "C": "Option C", "D": "Option D"},
      "correct_answer": "B",
      "explanation": "Detailed explanation",
      "topic": "Specific topic"
    }
  ]
}`, req.Subject, string(req.Difficulty), req.Count)

	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Questions must be educational and accurate\n")
	b.WriteString("- Include clear explanations\n")
	b.WriteString("- Ensure one correct answer per question\n")
	fmt.Fprintf(&b, "- Cover different aspects of %s\n", req.Subject)
	fmt.Fprintf(&b, "- Appropriate for %s level (%s)", strings.ToLower(string(req.Difficulty)), req.Difficulty.Label())

	return b.String()
}

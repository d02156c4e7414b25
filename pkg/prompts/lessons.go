package prompts

import (
	"fmt"
	"strings"
)

// SystemPrompt sets the model's role for every analysis request.
const SystemPrompt = "You are an expert post-mortem analyst."

// BuildLessonsPrompt turns the raw post-mortem lines into a single
// instruction string that pins the exact JSON output shape. Lines are
// embedded verbatim, joined by newlines.
func BuildLessonsPrompt(lines []string) string {
	return fmt.Sprintf(`Analyze these post-mortem lessons and respond in JSON format with this structure:
{
  "unrecoverable_lines": ["lines with no recoverable meaning"],
  "common_ideas": [
    {
      "title": "theme title",
      "overall_confidence": 90,
      "examples": [
        {"text": "input line supporting this theme", "confidence": 85}
      ]
    }
  ],
  "uncategorized_lines": ["meaningful lines that didn't fit any theme"],
  "summary": "concise summary of the post-mortem",
  "observations": ["key observations"],
  "recommendations": ["improvement suggestions"]
}

Rules:
- All confidence values must be integers between 0 and 100.
- Respond with ONLY the JSON object: no text outside it, no markdown fences.
- Every input line must appear in exactly one of unrecoverable_lines, a theme's examples, or uncategorized_lines.

Input data:
%s`, strings.Join(lines, "\n"))
}

package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// snippetLimit bounds how much of a broken response is carried in a
// ParseError for diagnosis.
const snippetLimit = 500

// ParseError is a JSON parse failure that survived the repair pass.
type ParseError struct {
	Reason  string
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in model response: %s", e.Reason)
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n|```")

// Normalize reduces a raw model reply to a candidate JSON string. It never
// fails; worst case the trimmed input comes back unchanged for the parse
// stage to reject.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = stripFences(s)
	}
	if strings.HasPrefix(s, "{") {
		return s
	}
	if obj, ok := extractObject(s); ok {
		return obj
	}
	return s
}

// Parse attempts strict JSON parsing of the candidate, applying one repair
// pass when the first attempt fails. The result is always a JSON object.
func Parse(candidate string) (map[string]interface{}, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
		return parsed, nil
	}

	repaired := Repair(candidate)
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return nil, &ParseError{Reason: err.Error(), Snippet: snippet(repaired)}
	}
	return parsed, nil
}

// Repair applies the known fixups for model output quirks, in order:
// residual fence markers, stray text around the object, over-escaped
// quotes, literal newline escapes.
func Repair(s string) string {
	s = stripFences(s)
	if obj, ok := extractObject(s); ok {
		s = obj
	}
	s = unescapeQuotes(s)
	s = collapseNewlineEscapes(s)
	return s
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}

// extractObject returns the last top-level {...} block in the text. The
// scan walks back from the final closing brace to its matching opener.
func extractObject(s string) (string, bool) {
	end := strings.LastIndex(s, "}")
	if end < 0 {
		return "", false
	}
	depth := 0
	for i := end; i >= 0; i-- {
		switch s[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return s[i : end+1], true
			}
		}
	}
	return "", false
}

// unescapeQuotes collapses \" to " for responses where the model escaped
// the whole object as if it were embedded in a string.
func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

// collapseNewlineEscapes replaces literal \n sequences with a space.
func collapseNewlineEscapes(s string) string {
	return strings.ReplaceAll(s, `\n`, " ")
}

func snippet(s string) string {
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}

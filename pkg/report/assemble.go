package report

import (
	"fmt"
	"strconv"
)

// Mode selects how missing top-level fields are handled.
type Mode string

const (
	// ModeStrict rejects reports missing any required top-level field.
	ModeStrict Mode = "strict"
	// ModeLenient backfills missing top-level fields with empty defaults.
	ModeLenient Mode = "lenient"
)

// Assemble validates the parsed model output and builds the final Report.
// In strict mode every top-level field must be present with the right
// kind; in lenient mode absent fields default to their empty value.
// Nested theme shape is enforced in both modes, and every confidence is
// coerced to an integer clamped to [0,100].
func Assemble(parsed map[string]interface{}, mode Mode) (*Report, error) {
	if mode == ModeStrict {
		for _, field := range []string{
			"unrecoverable_lines", "common_ideas", "uncategorized_lines",
			"summary", "observations", "recommendations",
		} {
			if _, ok := parsed[field]; !ok {
				return nil, fmt.Errorf("missing required field %q", field)
			}
		}
	}

	rep := &Report{
		UnrecoverableLines: []string{},
		CommonIdeas:        []Theme{},
		UncategorizedLines: []string{},
		Observations:       []string{},
		Recommendations:    []string{},
	}

	var err error
	if rep.UnrecoverableLines, err = stringList(parsed, "unrecoverable_lines"); err != nil {
		return nil, err
	}
	if rep.UncategorizedLines, err = stringList(parsed, "uncategorized_lines"); err != nil {
		return nil, err
	}
	if rep.Observations, err = stringList(parsed, "observations"); err != nil {
		return nil, err
	}
	if rep.Recommendations, err = stringList(parsed, "recommendations"); err != nil {
		return nil, err
	}

	if v, ok := parsed["summary"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", "summary")
		}
		rep.Summary = s
	}

	if rep.CommonIdeas, err = themeList(parsed); err != nil {
		return nil, err
	}
	return rep, nil
}

func stringList(parsed map[string]interface{}, field string) ([]string, error) {
	v, ok := parsed[field]
	if !ok || v == nil {
		return []string{}, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q must be a list of strings", field)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a list of strings", field)
		}
		out = append(out, s)
	}
	return out, nil
}

func themeList(parsed map[string]interface{}) ([]Theme, error) {
	v, ok := parsed["common_ideas"]
	if !ok || v == nil {
		return []Theme{}, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q must be a list", "common_ideas")
	}

	themes := make([]Theme, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d] must be an object", i)
		}
		title, ok := obj["title"].(string)
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d] is missing title", i)
		}
		confRaw, ok := obj["overall_confidence"]
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d] is missing overall_confidence", i)
		}
		conf, err := coerceConfidence(confRaw)
		if err != nil {
			return nil, fmt.Errorf("common_ideas[%d].overall_confidence: %w", i, err)
		}
		examplesRaw, ok := obj["examples"]
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d] is missing examples", i)
		}
		examples, err := exampleList(examplesRaw, i)
		if err != nil {
			return nil, err
		}
		themes = append(themes, Theme{Title: title, OverallConfidence: conf, Examples: examples})
	}
	return themes, nil
}

func exampleList(v interface{}, theme int) ([]Example, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("common_ideas[%d].examples must be a list", theme)
	}
	examples := make([]Example, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d].examples[%d] must be an object", theme, i)
		}
		text, ok := obj["text"].(string)
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d].examples[%d] is missing text", theme, i)
		}
		confRaw, ok := obj["confidence"]
		if !ok {
			return nil, fmt.Errorf("common_ideas[%d].examples[%d] is missing confidence", theme, i)
		}
		conf, err := coerceConfidence(confRaw)
		if err != nil {
			return nil, fmt.Errorf("common_ideas[%d].examples[%d].confidence: %w", theme, i, err)
		}
		examples = append(examples, Example{Text: text, Confidence: conf})
	}
	return examples, nil
}

// coerceConfidence turns whatever the model produced for a confidence
// value into an integer, clamped to [0,100]. Non-numeric values fail.
func coerceConfidence(v interface{}) (int, error) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case int:
		n = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("confidence value %q is not numeric", val)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("confidence value %v is not numeric", v)
	}
	return clamp(int(n)), nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedFixture(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	return parsed
}

const fullResponse = `{
	"unrecoverable_lines": ["asdf"],
	"common_ideas": [
		{
			"title": "Deployment hygiene",
			"overall_confidence": 90,
			"examples": [
				{"text": "we skipped the canary", "confidence": 85}
			]
		}
	],
	"uncategorized_lines": ["the coffee machine broke"],
	"summary": "Deploys need guardrails.",
	"observations": ["canary skipped twice"],
	"recommendations": ["enforce canary stage"]
}`

func TestAssembleFullReport(t *testing.T) {
	rep, err := Assemble(parsedFixture(t, fullResponse), ModeStrict)
	require.NoError(t, err)

	assert.Equal(t, []string{"asdf"}, rep.UnrecoverableLines)
	assert.Equal(t, []string{"the coffee machine broke"}, rep.UncategorizedLines)
	assert.Equal(t, "Deploys need guardrails.", rep.Summary)
	require.Len(t, rep.CommonIdeas, 1)
	assert.Equal(t, "Deployment hygiene", rep.CommonIdeas[0].Title)
	assert.Equal(t, 90, rep.CommonIdeas[0].OverallConfidence)
	require.Len(t, rep.CommonIdeas[0].Examples, 1)
	assert.Equal(t, 85, rep.CommonIdeas[0].Examples[0].Confidence)
}

func TestAssembleStrictRejectsMissingSummary(t *testing.T) {
	parsed := parsedFixture(t, fullResponse)
	delete(parsed, "summary")

	_, err := Assemble(parsed, ModeStrict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}

func TestAssembleLenientBackfillsMissingFields(t *testing.T) {
	rep, err := Assemble(parsedFixture(t, `{"summary": "just a summary"}`), ModeLenient)
	require.NoError(t, err)

	assert.Equal(t, "just a summary", rep.Summary)
	assert.Empty(t, rep.UnrecoverableLines)
	assert.NotNil(t, rep.UnrecoverableLines)
	assert.Empty(t, rep.CommonIdeas)
	assert.NotNil(t, rep.CommonIdeas)
	assert.Empty(t, rep.Observations)
	assert.Empty(t, rep.Recommendations)
}

func TestAssembleLenientBackfillsSummary(t *testing.T) {
	rep, err := Assemble(parsedFixture(t, `{"observations": ["a"]}`), ModeLenient)
	require.NoError(t, err)
	assert.Equal(t, "", rep.Summary)
}

func TestAssembleRejectsWrongKind(t *testing.T) {
	parsed := parsedFixture(t, fullResponse)
	parsed["observations"] = "not a list"

	_, err := Assemble(parsed, ModeLenient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "observations")
}

func TestAssembleRejectsThemeMissingTitle(t *testing.T) {
	parsed := parsedFixture(t, `{
		"common_ideas": [{"overall_confidence": 90, "examples": []}]
	}`)

	_, err := Assemble(parsed, ModeLenient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "common_ideas[0]")
	assert.Contains(t, err.Error(), "title")
}

func TestAssembleRejectsExampleMissingConfidence(t *testing.T) {
	parsed := parsedFixture(t, `{
		"common_ideas": [{
			"title": "x",
			"overall_confidence": 50,
			"examples": [{"text": "y"}]
		}]
	}`)

	_, err := Assemble(parsed, ModeLenient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "examples[0]")
	assert.Contains(t, err.Error(), "confidence")
}

func TestCoerceConfidence(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    int
		wantErr bool
	}{
		{"float", 82.0, 82, false},
		{"numeric string", "82", 82, false},
		{"fractional float truncates", 82.9, 82, false},
		{"above range clamps", 150.0, 100, false},
		{"below range clamps", -5.0, 0, false},
		{"word fails", "high", 0, true},
		{"bool fails", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceConfidence(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalysisErrorMarshalsErrorKey(t *testing.T) {
	data, err := json.Marshal(&AnalysisError{Message: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "boom"}`, string(data))

	data, err = json.Marshal(&AnalysisError{Message: "boom", DebugInfo: "details"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "boom", "debug_info": "details"}`, string(data))
}

package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsFencedJSON(t *testing.T) {
	raw := "```json\n{\"summary\": \"ok\"}\n```"
	assert.Equal(t, `{"summary": "ok"}`, Normalize(raw))
}

func TestNormalizeStripsFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"summary\": \"ok\"}\n```"
	assert.Equal(t, `{"summary": "ok"}`, Normalize(raw))
}

func TestNormalizeIsIdentityOnCleanJSON(t *testing.T) {
	raw := `{"summary": "ok", "observations": []}`
	assert.Equal(t, raw, Normalize(raw))
}

func TestNormalizeExtractsLastObjectFromNoise(t *testing.T) {
	raw := "Here is the analysis you asked for:\n{\"summary\": \"ok\"}\nLet me know if you need more."
	assert.Equal(t, `{"summary": "ok"}`, Normalize(raw))
}

func TestNormalizeExtractsNestedObjectWhole(t *testing.T) {
	raw := "prefix {\"a\": {\"b\": 1}} suffix"
	assert.Equal(t, `{"a": {"b": 1}}`, Normalize(raw))
}

func TestNormalizeFallsBackToFullText(t *testing.T) {
	raw := "  no json here  "
	assert.Equal(t, "no json here", Normalize(raw))
}

func TestParseStrictSuccess(t *testing.T) {
	parsed, err := Parse(`{"summary": "ok"}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", parsed["summary"])
}

func TestParseRepairsOverEscapedQuotes(t *testing.T) {
	broken := `{\"title\": \"deploys\", \"confidence\": 90}`

	// The strict pass must fail on this input.
	var strict map[string]interface{}
	require.Error(t, json.Unmarshal([]byte(broken), &strict))

	parsed, err := Parse(broken)
	require.NoError(t, err)
	assert.Equal(t, "deploys", parsed["title"])
}

func TestParseRepairsLiteralNewlineEscapes(t *testing.T) {
	broken := "{\"summary\": \"first\" }x\n{\\\"summary\\\": \\\"line one\\nline two\\\"}"
	parsed, err := Parse(broken)
	require.NoError(t, err)
	assert.Equal(t, "line one line two", parsed["summary"])
}

func TestParseFailureCarriesTruncatedSnippet(t *testing.T) {
	garbage := strings.Repeat("not json ", 100)
	_, err := Parse(garbage)
	require.Error(t, err)

	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.NotEmpty(t, perr.Reason)
	assert.LessOrEqual(t, len(perr.Snippet), 500)
	assert.Contains(t, perr.Error(), "invalid JSON")
}

func TestStripFencesRemovesResidualMarkers(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripFences("```json\n{\"a\": 1}\n```"))
}

func TestExtractObjectFindsTrailingBlock(t *testing.T) {
	obj, ok := extractObject(`ignored {"a": 1} also {"b": 2}`)
	require.True(t, ok)
	assert.Equal(t, `{"b": 2}`, obj)
}

func TestExtractObjectReportsAbsence(t *testing.T) {
	_, ok := extractObject("nothing here")
	assert.False(t, ok)
}

func TestUnescapeQuotes(t *testing.T) {
	assert.Equal(t, `{"a": "b"}`, unescapeQuotes(`{\"a\": \"b\"}`))
}

func TestCollapseNewlineEscapes(t *testing.T) {
	assert.Equal(t, `{"a": "x y"}`, collapseNewlineEscapes(`{"a": "x\ny"}`))
}

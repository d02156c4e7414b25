package report

// Report is the fixed output shape of one analysis. All six fields are
// always present in a successful report.
type Report struct {
	UnrecoverableLines []string `json:"unrecoverable_lines" yaml:"unrecoverable_lines"`
	CommonIdeas        []Theme  `json:"common_ideas" yaml:"common_ideas"`
	UncategorizedLines []string `json:"uncategorized_lines" yaml:"uncategorized_lines"`
	Summary            string   `json:"summary" yaml:"summary"`
	Observations       []string `json:"observations" yaml:"observations"`
	Recommendations    []string `json:"recommendations" yaml:"recommendations"`
}

// Theme groups input lines that share a common idea.
type Theme struct {
	Title             string    `json:"title" yaml:"title"`
	OverallConfidence int       `json:"overall_confidence" yaml:"overall_confidence"`
	Examples          []Example `json:"examples" yaml:"examples"`
}

// Example is a single input line assigned to a theme.
type Example struct {
	Text       string `json:"text" yaml:"text"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

// AnalysisError is the typed failure payload of one analysis. It is
// mutually exclusive with Report; the two are distinguished by the error
// key.
type AnalysisError struct {
	Message   string `json:"error" yaml:"error"`
	DebugInfo string `json:"debug_info,omitempty" yaml:"debug_info,omitempty"`
}

func (e *AnalysisError) Error() string {
	return e.Message
}

package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ademicho123/post-mortem-analyzer/pkg/report"
)

// DisplayReport formats and displays the analysis report
func DisplayReport(rep *report.Report, format string) error {
	switch format {
	case "json":
		return displayJSON(rep)
	case "yaml":
		return displayYAML(rep)
	case "human":
		fallthrough
	default:
		displayHuman(rep)
	}
	return nil
}

// DisplayError renders a failed analysis. Debug info stays hidden unless
// the caller asked for it.
func DisplayError(aerr *report.AnalysisError, format string, showDebug bool) error {
	switch format {
	case "json":
		return displayJSON(aerr)
	case "yaml":
		return displayYAML(aerr)
	default:
		red := color.New(color.FgRed, color.Bold)
		red.Printf("Analysis error: %s\n", aerr.Message)
		if showDebug && aerr.DebugInfo != "" {
			fmt.Println()
			color.New(color.FgYellow).Println("Debug info:")
			fmt.Println(aerr.DebugInfo)
		}
	}
	return nil
}

func displayJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayYAML(v interface{}) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func displayHuman(rep *report.Report) {
	// Colors
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)
	info := color.New(color.FgBlue)

	fmt.Println()

	yellow.Println("🧩 UNRECOVERABLE LINES:")
	if len(rep.UnrecoverableLines) > 0 {
		for _, line := range rep.UnrecoverableLines {
			fmt.Printf("   - %s\n", line)
		}
	} else {
		info.Println("   All lines had recoverable meaning")
	}
	fmt.Println()

	cyan.Println("💡 COMMON THEMES:")
	if len(rep.CommonIdeas) > 0 {
		for _, theme := range rep.CommonIdeas {
			fmt.Printf("   %s (Confidence: %d%%)\n", theme.Title, theme.OverallConfidence)
			for _, example := range theme.Examples {
				fmt.Printf("      - %s (Fit: %d%%)\n", example.Text, example.Confidence)
			}
		}
	} else {
		info.Println("   No common themes identified")
	}
	fmt.Println()

	yellow.Println("❓ UNCATEGORIZED LINES:")
	if len(rep.UncategorizedLines) > 0 {
		for _, line := range rep.UncategorizedLines {
			fmt.Printf("   - %s\n", line)
		}
	} else {
		info.Println("   All meaningful lines were categorized")
	}
	fmt.Println()

	white.Println("📋 SUMMARY:")
	fmt.Printf("   %s\n\n", rep.Summary)

	cyan.Println("🔍 KEY OBSERVATIONS:")
	for _, obs := range rep.Observations {
		fmt.Printf("   - %s\n", obs)
	}
	fmt.Println()

	green.Println("🚀 RECOMMENDATIONS:")
	for _, rec := range rep.Recommendations {
		fmt.Printf("   - %s\n", rec)
	}
	fmt.Println()
}

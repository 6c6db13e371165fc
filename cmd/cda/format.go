package main

import (
	"fmt"
	"strings"

	"cda/internal/analysis"
	"cda/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse renders an analysis result in the requested format
func FormatResponse(result *analysis.Result, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := output.DeterministicEncodeIndented(result, "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		return formatHuman(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatHuman(result *analysis.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Run %s\n", result.RunID))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if !result.Success {
		b.WriteString(fmt.Sprintf("Analysis failed: %s\n", result.Error))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Components analyzed: %d\n", result.AnalyzedComponents))
	b.WriteString(fmt.Sprintf("Cycles found:        %d\n", len(result.Cycles)))
	if result.Metrics != nil {
		b.WriteString(fmt.Sprintf("Health score:        %s\n", output.FormatFloat(result.Metrics.HealthScore)))
		b.WriteString(fmt.Sprintf("Complexity score:    %s\n", output.FormatFloat(result.Metrics.ComplexityScore)))
	}
	b.WriteString("\n")

	for i, c := range result.Cycles {
		b.WriteString(fmt.Sprintf("%d. [%s] %s cycle (length %d, risk %s)\n", i+1, c.Severity, c.Type, c.Length, c.Risk))
		b.WriteString("   " + c.Describe() + "\n")
		if c.Resolved {
			b.WriteString("   Already resolved by lazy initialization.\n")
		}
		for _, s := range c.Strategies {
			target := ""
			if s.TargetComponent != "" {
				target = " -> " + s.TargetComponent
			}
			mark := ""
			if s.Recommended {
				mark = " [recommended]"
			}
			b.WriteString(fmt.Sprintf("   - %s (%s, priority %d)%s%s\n", s.Type, s.Complexity, s.Priority, target, mark))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Completed in %dms\n", result.ElapsedMs))
	return b.String()
}

// Package lint wraps the configured linters and formatters, scrapes their
// plain-text output into errors and suggestions, and renders the analysis
// report. Tool failures never fail the run; a tool that cannot run is
// reported in its own section.
package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
)

type Section struct {
	Name        string
	Command     string
	Errors      []string
	Suggestions []string
	Unavailable string
}

func (s Section) Clean() bool {
	return s.Unavailable == "" && len(s.Errors) == 0 && len(s.Suggestions) == 0
}

// Classify splits raw tool output into error lines and suggestion lines.
// Unrecognized lines count as errors, matching the cautious default of the
// CI workflow this replaces.
func Classify(output string) (errors []string, suggestions []string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "error") || strings.Contains(line, "E:"):
			errors = append(errors, line)
		case strings.Contains(lower, "warning") || strings.Contains(line, "W:") || strings.Contains(lower, "suggestion"):
			suggestions = append(suggestions, line)
		default:
			errors = append(errors, line)
		}
	}
	return errors, suggestions
}

// Analyze runs every configured linter in order. It never returns an
// error: an unavailable tool becomes a section note.
func Analyze(ctx context.Context, runner Runner, specs []config.LinterSpec) []Section {
	sections := make([]Section, 0, len(specs))
	for _, spec := range specs {
		section := Section{Name: spec.Name, Command: spec.Command}
		output, err := runner.Run(ctx, spec.Command, spec.Args...)
		if err != nil {
			section.Unavailable = err.Error()
			sections = append(sections, section)
			continue
		}
		section.Errors, section.Suggestions = Classify(output)
		sections = append(sections, section)
	}
	return sections
}

// BuildMarkdown renders the analysis report with one section per tool and
// the consolidated quick-reference list of suggestions at the end.
func BuildMarkdown(branch, shortSHA string, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Code Analysis Report — %s @ %s\n\n", branch, shortSHA)

	var allSuggestions []string
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n", section.Name)
		switch {
		case section.Unavailable != "":
			fmt.Fprintf(&b, "- ⚠️ Skipped: %s\n", section.Unavailable)
		case section.Clean():
			b.WriteString("- ✅ No issues found\n")
		default:
			if len(section.Errors) > 0 {
				b.WriteString("### Errors\n")
				for _, line := range section.Errors {
					fmt.Fprintf(&b, "- %s\n", line)
				}
			}
			if len(section.Suggestions) > 0 {
				b.WriteString("### Suggestions & Fixes\n")
				for _, line := range section.Suggestions {
					fmt.Fprintf(&b, "- %s\n", line)
				}
			}
		}
		b.WriteString("\n")
		allSuggestions = append(allSuggestions, section.Suggestions...)
	}

	b.WriteString("---\n## Consolidated Updates (Quick Reference)\n")
	if len(allSuggestions) > 0 {
		for _, line := range allSuggestions {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	} else {
		b.WriteString("- No fixes required 🎉\n")
	}
	return b.String()
}

package diffscan

import "fmt"

// Narrative turns the finding sequence into plain-English summary lines, in
// finding order. An empty result means the heuristics saw nothing worth
// telling.
func Narrative(findings []Finding) []string {
	var lines []string
	for _, f := range findings {
		switch f.Kind {
		case KindClassAdded:
			if f.Path != "" {
				lines = append(lines, fmt.Sprintf("Introduced class `%s` in `%s`.", f.Name, f.Path))
			} else {
				lines = append(lines, fmt.Sprintf("Introduced class `%s`.", f.Name))
			}
		case KindFunctionAdded:
			lines = append(lines, fmt.Sprintf("Added function `%s()`.", f.Name))
		case KindFunctionRemoved:
			lines = append(lines, fmt.Sprintf("Removed function `%s()`.", f.Name))
		}
	}
	return dedupeLines(lines)
}

func dedupeLines(lines []string) []string {
	seen := map[string]bool{}
	out := lines[:0]
	for _, line := range lines {
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out
}

package diffscan

import (
	"regexp"
	"strings"
)

// LineClassifier maps one diff line plus the current-file context to zero or
// more findings. Each heuristic lives in its own classifier so the rule set
// stays testable in isolation.
type LineClassifier interface {
	Classify(line string, file string) []Finding
}

var (
	funcDefRe  = regexp.MustCompile(`^(?:def|func)\s+([A-Za-z_]\w*)\s*\(`)
	classDefRe = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*[:(]`)
	binaryRe   = regexp.MustCompile(`^Binary files (?:a/)?(\S+) and (?:b/)?(\S+) differ`)
)

func addedCode(line string) (string, bool) {
	if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
		return "", false
	}
	return strings.TrimSpace(line[1:]), true
}

func removedCode(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") || strings.HasPrefix(line, "---") {
		return "", false
	}
	return strings.TrimSpace(line[1:]), true
}

// functionClassifier reports function definitions appearing on added or
// removed lines.
type functionClassifier struct{}

func (functionClassifier) Classify(line string, file string) []Finding {
	if code, ok := addedCode(line); ok {
		if m := funcDefRe.FindStringSubmatch(code); m != nil {
			return []Finding{{Kind: KindFunctionAdded, Name: m[1], Path: file}}
		}
	}
	if code, ok := removedCode(line); ok {
		if m := funcDefRe.FindStringSubmatch(code); m != nil {
			return []Finding{{Kind: KindFunctionRemoved, Name: m[1], Path: file}}
		}
	}
	return nil
}

// classClassifier reports class definitions on added lines.
type classClassifier struct{}

func (classClassifier) Classify(line string, file string) []Finding {
	code, ok := addedCode(line)
	if !ok {
		return nil
	}
	if m := classDefRe.FindStringSubmatch(code); m != nil {
		return []Finding{{Kind: KindClassAdded, Name: m[1], Path: file}}
	}
	return nil
}

// todoClassifier reports TODO/FIXME markers; markers on removed lines still
// count.
type todoClassifier struct{}

func (todoClassifier) Classify(line string, file string) []Finding {
	code, ok := addedCode(line)
	if !ok {
		code, ok = removedCode(line)
	}
	if !ok {
		return nil
	}
	if strings.Contains(code, "TODO") || strings.Contains(code, "FIXME") {
		return []Finding{{Kind: KindTodoMarker, Text: code, Path: file}}
	}
	return nil
}

// binaryClassifier reports git's "Binary files ... differ" marker lines.
type binaryClassifier struct{}

func (binaryClassifier) Classify(line string, file string) []Finding {
	trimmed := strings.TrimSpace(line)
	if m := binaryRe.FindStringSubmatch(trimmed); m != nil {
		path := m[2]
		if path == "/dev/null" {
			path = m[1]
		}
		return []Finding{{Kind: KindBinaryFileChanged, Path: path, Text: trimmed}}
	}
	return nil
}

func defaultClassifiers() []LineClassifier {
	return []LineClassifier{
		functionClassifier{},
		classClassifier{},
		todoClassifier{},
		binaryClassifier{},
	}
}

package diffscan

// Kind identifies one class of noteworthy fact extracted from a diff.
type Kind string

const (
	KindFunctionAdded     Kind = "function_added"
	KindFunctionRemoved   Kind = "function_removed"
	KindClassAdded        Kind = "class_added"
	KindTodoMarker        Kind = "todo_marker"
	KindBinaryFileChanged Kind = "binary_file_changed"
	KindLargeFile         Kind = "large_file"
	KindPossibleSecret    Kind = "possible_secret"
	KindMissingTests      Kind = "missing_tests"
)

// Finding is one detected fact. Which fields are set depends on Kind:
// Name for function/class findings, Path for file findings, Text for
// marker findings, Size for large files.
type Finding struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
	Size int64  `json:"size,omitempty"`
}

func filterKind(findings []Finding, kind Kind) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func hasKind(findings []Finding, kind Kind) bool {
	for _, f := range findings {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

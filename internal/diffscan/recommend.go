package diffscan

import "strings"

// Recommendation is a human-readable suggestion with a stable rationale
// category. Derivation is a pure function of the finding set and commit
// message, so identical input always yields the identical list.
type Recommendation struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

const (
	CategoryTests   = "tests"
	CategorySecrets = "secrets"
	CategorySize    = "size"
	CategoryDocs    = "docs"
	CategoryProcess = "process"
)

// shortMessageLimit is the minimum first-line length before a commit
// message is flagged.
const shortMessageLimit = 10

// Recommend derives the recommendation list from the findings and the
// latest commit message, in fixed order. The last two entries are always
// present.
func Recommend(findings []Finding, commitMessage string) []Recommendation {
	var recs []Recommendation

	if hasKind(findings, KindTodoMarker) {
		recs = append(recs, Recommendation{
			Category: CategoryProcess,
			Text:     "Resolve TODO/FIXME items before merging; they often indicate incomplete logic or edge cases.",
		})
	}
	if hasKind(findings, KindBinaryFileChanged) {
		recs = append(recs, Recommendation{
			Category: CategorySize,
			Text:     "Binary files changed — ensure these are intended (e.g., models, images). Prefer storing large artifacts in releases or object storage.",
		})
	}
	if hasKind(findings, KindLargeFile) {
		recs = append(recs, Recommendation{
			Category: CategorySize,
			Text:     "Large file changes detected; consider storing large assets outside the repo (S3/GCS) and reference them instead.",
		})
	}
	if hasKind(findings, KindMissingTests) {
		recs = append(recs, Recommendation{
			Category: CategoryTests,
			Text:     "Code changes detected without test changes — add unit/integration tests focused on the modified modules.",
		})
	}
	if shortCommitMessage(commitMessage) {
		recs = append(recs, Recommendation{
			Category: CategoryProcess,
			Text:     "Commit message is short or missing. Use descriptive commit messages: [TYPE] scope: short description (e.g., feat(auth): add token refresh).",
		})
	}
	if hasKind(findings, KindFunctionAdded) {
		recs = append(recs, Recommendation{
			Category: CategoryDocs,
			Text:     "New functions added; ensure they include docstrings and are covered by unit tests.",
		})
	}
	if hasKind(findings, KindPossibleSecret) {
		recs = append(recs, Recommendation{
			Category: CategorySecrets,
			Text:     "Possible secrets detected in diff — ensure secrets are stored in secure secrets manager and not committed.",
		})
	}

	recs = append(recs, Recommendation{
		Category: CategoryProcess,
		Text:     "Run automated linters/formatters (e.g., black/isort/flake8 for Python) and fail the CI on lint errors.",
	})
	recs = append(recs, Recommendation{
		Category: CategoryProcess,
		Text:     "For changes touching infra/CI/CD or dependencies, require at least one approving review and run full integration tests.",
	})
	return recs
}

func shortCommitMessage(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return true
	}
	firstLine := trimmed
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		firstLine = trimmed[:idx]
	}
	return len(firstLine) < shortMessageLimit
}

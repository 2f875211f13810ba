package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/wasim-s-creator/sdlc-demo/internal/diffscan"
)

// Report is the assembled change summary. Build it once; rendering never
// mutates it.
type Report struct {
	Branch          string
	ShortSHA        string
	GeneratedAt     time.Time
	Stat            string
	Narrative       []string
	Findings        []diffscan.Finding
	Recommendations []diffscan.Recommendation
	Notes           []string
	RawDiff         string
	TodoLimit       int
}

type Params struct {
	Branch          string
	ShortSHA        string
	GeneratedAt     time.Time
	Stat            string
	Findings        []diffscan.Finding
	Recommendations []diffscan.Recommendation
	Notes           []string
	RawDiff         string
	TodoLimit       int
}

func Build(p Params) Report {
	limit := p.TodoLimit
	if limit <= 0 {
		limit = 20
	}
	return Report{
		Branch:          p.Branch,
		ShortSHA:        p.ShortSHA,
		GeneratedAt:     p.GeneratedAt.UTC(),
		Stat:            p.Stat,
		Narrative:       diffscan.Narrative(p.Findings),
		Findings:        p.Findings,
		Recommendations: p.Recommendations,
		Notes:           p.Notes,
		RawDiff:         p.RawDiff,
		TodoLimit:       limit,
	}
}

func (r Report) Title() string {
	return fmt.Sprintf("Code summary — `%s` @ `%s`", r.Branch, r.ShortSHA)
}

func (r Report) todos() []diffscan.Finding {
	return r.byKind(diffscan.KindTodoMarker)
}

func (r Report) binaries() []diffscan.Finding {
	return r.byKind(diffscan.KindBinaryFileChanged)
}

func (r Report) largeFiles() []diffscan.Finding {
	return r.byKind(diffscan.KindLargeFile)
}

func (r Report) byKind(kind diffscan.Kind) []diffscan.Finding {
	var out []diffscan.Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Markdown renders the fixed section order: header, stat block, narrative,
// TODOs, binary files, large files, degraded steps, recommendations, raw
// diff. Empty sections render an explicit placeholder instead of being
// omitted; the raw diff always renders.
func (r Report) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", r.Title())
	fmt.Fprintf(&b, "*Generated: %s*\n\n", r.GeneratedAt.Format("2006-01-02T15:04:05Z"))

	b.WriteString("## Changed files (stat)\n")
	if strings.TrimSpace(r.Stat) != "" {
		fmt.Fprintf(&b, "```\n%s\n```\n", strings.TrimSpace(r.Stat))
	} else {
		b.WriteString("_No file stat available._\n")
	}
	b.WriteString("\n")

	b.WriteString("## English Summary (automated)\n")
	if len(r.Narrative) > 0 {
		for _, line := range r.Narrative {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	} else {
		b.WriteString("_No clear changes detected by heuristics._\n")
	}
	b.WriteString("\n")

	b.WriteString("## TODO / FIXME found\n")
	todos := r.todos()
	if len(todos) > 0 {
		limit := r.TodoLimit
		if len(todos) < limit {
			limit = len(todos)
		}
		for _, todo := range todos[:limit] {
			fmt.Fprintf(&b, "- `%s`\n", strings.TrimSpace(todo.Text))
		}
	} else {
		b.WriteString("_None found._\n")
	}
	b.WriteString("\n")

	b.WriteString("## Binary files changed (warning)\n")
	if binaries := r.binaries(); len(binaries) > 0 {
		for _, bin := range binaries {
			fmt.Fprintf(&b, "- %s\n", bin.Text)
		}
	} else {
		b.WriteString("_None found._\n")
	}
	b.WriteString("\n")

	b.WriteString("## Large file changes (>= 500 KB)\n")
	if large := r.largeFiles(); len(large) > 0 {
		for _, file := range large {
			fmt.Fprintf(&b, "- `%s` — %d bytes\n", file.Path, file.Size)
		}
	} else {
		b.WriteString("_None found._\n")
	}
	b.WriteString("\n")

	b.WriteString("## Degraded steps\n")
	if len(r.Notes) > 0 {
		for _, note := range r.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	} else {
		b.WriteString("_None: all steps completed normally._\n")
	}
	b.WriteString("\n")

	b.WriteString("## Review: Automated code & process recommendations\n")
	if len(r.Recommendations) > 0 {
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- **[%s]** %s\n", rec.Category, rec.Text)
		}
	} else {
		b.WriteString("- No automatic recommendations generated.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Raw Diff\n")
	fmt.Fprintf(&b, "```diff\n%s\n```\n", strings.TrimSpace(r.RawDiff))

	return b.String()
}

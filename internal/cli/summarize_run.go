package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wasim-s-creator/sdlc-demo/internal/config"
	"github.com/wasim-s-creator/sdlc-demo/internal/diffscan"
	"github.com/wasim-s-creator/sdlc-demo/internal/render"
	"github.com/wasim-s-creator/sdlc-demo/internal/report"
	"github.com/wasim-s-creator/sdlc-demo/internal/store"
)

type summarizeResult struct {
	Report       report.Report
	MarkdownPath string
	PDFPath      string
}

// runSummarize executes the whole pipeline: resolve range, collect diff,
// scan heuristics, build and render the report, record the run. External
// failures degrade into report notes; only writing the artifacts can error.
func runSummarize(cmd *cobra.Command, app *App) (summarizeResult, error) {
	ctx := cmd.Context()
	cfg := app.Config

	var notes []string
	notes = append(notes, app.Git.EnsureHistory(ctx, cfg.BaseBranch)...)

	rng, resolveNotes := app.Git.Resolve(ctx, cfg.BaseBranch)
	notes = append(notes, resolveNotes...)

	col := app.Git.Collect(ctx, rng, cfg.DiffContext, cfg.Fallback)
	notes = append(notes, col.Notes...)

	commitMsg, msgNotes := app.Git.LastCommitMessage(ctx)
	notes = append(notes, msgNotes...)

	scanner := diffscan.NewScanner(cfg.LargeFileBytes)
	findings := scanner.Scan(col.Patch, col.Files)
	recommendations := diffscan.Recommend(findings, commitMsg)

	rep := report.Build(report.Params{
		Branch:          cfg.Branch,
		ShortSHA:        cfg.ShortSHA,
		GeneratedAt:     config.Now(),
		Stat:            col.Stat,
		Findings:        findings,
		Recommendations: recommendations,
		Notes:           notes,
		RawDiff:         col.Patch,
		TodoLimit:       cfg.TodoLimit,
	})
	markdown := rep.Markdown()

	mdPath, pdfPath := summaryPaths(cfg)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return summarizeResult{}, fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return summarizeResult{}, fmt.Errorf("failed to write summary: %w", err)
	}

	note, err := render.WriteDocument(markdown, pdfPath, app.Renderer)
	if err != nil {
		return summarizeResult{}, err
	}
	if note != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] %s\n", note)
	}

	recordRun(cmd, app, rep, mdPath, pdfPath)

	return summarizeResult{Report: rep, MarkdownPath: mdPath, PDFPath: pdfPath}, nil
}

// recordRun persists the run for history/view. Store trouble is logged and
// swallowed; the report on disk is the deliverable.
func recordRun(cmd *cobra.Command, app *App, rep report.Report, mdPath, pdfPath string) {
	data, err := rep.JSON()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] failed to encode run payload: %v\n", err)
		return
	}
	_, err = app.Store.RecordRun(store.RunParams{
		Branch:              rep.Branch,
		ShortSHA:            rep.ShortSHA,
		CreatedAt:           rep.GeneratedAt,
		ReportPath:          mdPath,
		PDFPath:             pdfPath,
		FindingsJSON:        string(data),
		FindingCount:        len(rep.Findings),
		RecommendationCount: len(rep.Recommendations),
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] failed to record run: %v\n", err)
	}
}

func summaryPaths(cfg config.Config) (string, string) {
	base := fmt.Sprintf("summary_%s_%s", cfg.Branch, cfg.ShortSHA)
	return filepath.Join(cfg.OutputDir, base+".md"), filepath.Join(cfg.OutputDir, base+".pdf")
}

func analysisPath(cfg config.Config) string {
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("analysis_%s_%s.md", cfg.Branch, cfg.ShortSHA))
}

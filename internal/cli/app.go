package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasim-s-creator/sdlc-demo/internal/config"
	"github.com/wasim-s-creator/sdlc-demo/internal/gitx"
	"github.com/wasim-s-creator/sdlc-demo/internal/lint"
	"github.com/wasim-s-creator/sdlc-demo/internal/notify"
	"github.com/wasim-s-creator/sdlc-demo/internal/render"
	"github.com/wasim-s-creator/sdlc-demo/internal/store"
)

type appKey struct{}

type App struct {
	Config   config.Config
	Git      *gitx.Client
	Lint     lint.Runner
	Renderer render.Renderer
	Telegram *notify.Telegram
	Store    *store.Store
}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func getApp(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("internal error: app not initialized")
	}
	return app, nil
}

func initApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var gitRunner gitx.Runner = gitx.RealRunner{}
	var lintRunner lint.Runner = lint.RealRunner{}
	var renderer render.Renderer = render.NewPDFRenderer()
	if os.Getenv("SDLC_MOCK") == "1" {
		fixtures := os.Getenv("SDLC_MOCK_DIR")
		if fixtures == "" {
			fixtures = "testdata"
		}
		gitRunner = gitx.NewFixtureRunner(filepath.Join(fixtures, "git"))
		lintRunner = lint.NewFixtureRunner(filepath.Join(fixtures, "lint"))
	}
	if os.Getenv("SDLC_NO_PDF") == "1" {
		renderer = nil
	}

	storePath := os.Getenv("SDLC_DB_PATH")
	if storePath == "" {
		storePath = filepath.Join(os.Getenv("HOME"), ".sdlc", "sdlc.db")
	}
	st, err := store.Open(storePath)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Git:      gitx.NewClient(gitRunner),
		Lint:     lintRunner,
		Renderer: renderer,
		Telegram: notify.NewTelegram(cfg.Telegram),
		Store:    st,
	}, nil
}

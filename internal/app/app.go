package app

import (
	"io"
	"log/slog"

	"github.com/seapack/seapack/internal/pipeline"
	"github.com/seapack/seapack/internal/runner"
)

// App wires one packaging run together: configuration, an isolated logger,
// the external toolchain and the process runner that spawns it.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	tools  pipeline.Toolchain
	run    runner.Runner
}

// NewApp creates an App with an isolated logger writing to outW and the
// default toolchain. Tests swap tools and run before calling Run.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		cfg:    cfg,
		tools:  pipeline.DefaultToolchain(),
		run:    &runner.ExecRunner{Dir: cfg.WorkDir},
	}
}

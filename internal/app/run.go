package app

import (
	"context"
	"fmt"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/node"
	"github.com/seapack/seapack/internal/pipeline"
)

// Run executes the full packaging lifecycle: runtime discovery, the version
// gate, then the build pipeline. The version gate runs before any stage so
// an old runtime never leaves partial artifacts behind.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	nodePath, err := node.Resolve(a.cfg.NodeBin)
	if err != nil {
		return err
	}

	version, err := node.Version(ctx, a.run, nodePath)
	if err != nil {
		return err
	}
	if err := node.CheckVersion(ctx, version); err != nil {
		return fmt.Errorf("checking node runtime: %w", err)
	}
	a.logger.Info("Using node runtime.", "path", nodePath, "version", version)

	p := pipeline.New(pipeline.Options{
		Entry:     a.cfg.Entry,
		Platform:  a.cfg.Platform,
		Icon:      a.cfg.Icon,
		Obfuscate: a.cfg.Obfuscate,
		ExeName:   a.cfg.ExeName,
		WorkDir:   a.cfg.WorkDir,
		NodePath:  nodePath,
	}, a.tools, a.run)

	return p.Run(ctx)
}

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/fsutil"
	"github.com/seapack/seapack/internal/platform"
)

// copyExecutable copies the resolved host runtime binary to the dist output
// path, creating the directory tree first. The copy is what later stages
// mutate; the original runtime binary is never touched.
func (p *Pipeline) copyExecutable(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	distDir := filepath.Join(p.opts.WorkDir, DistDir)
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, DistDir, err)
	}

	out := p.OutputPath()
	if err := fsutil.CopyFile(p.opts.NodePath, out, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	if host := platform.Host(); host != p.opts.Platform {
		logger.Warn("Target platform differs from host; the embedded runtime is still the host's node binary.",
			"target", p.opts.Platform.String(), "host", host.String())
	}
	logger.Debug("Runtime executable copied.", "from", p.opts.NodePath, "to", out)
	return nil
}

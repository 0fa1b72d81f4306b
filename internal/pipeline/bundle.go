package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/seapack/seapack/internal/ctxlog"
)

// bundle runs esbuild over the entry file, producing the single bundled
// module at BundleFile. The bundler itself stays external to the bundle so
// it remains resolvable at runtime instead of being inlined.
func (p *Pipeline) bundle(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	entry := p.entryPath()
	if _, err := os.Stat(entry); err != nil {
		return fmt.Errorf("%w: entry file %s: %v", ErrBundle, p.opts.Entry, err)
	}

	args := []string{
		entry,
		"--bundle",
		"--platform=node",
		"--external:esbuild",
		"--outfile=" + BundleFile,
	}
	if _, err := p.run.Run(ctx, p.tools.Esbuild, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrBundle, err)
	}

	logger.Debug("Entry bundled into single module.", "entry", p.opts.Entry, "module", BundleFile)
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/fsutil"
)

// obfuscationPolicy is the fixed transform set applied to the bundled
// module. It is a constant of the design, not user-tunable.
var obfuscationPolicy = []string{
	"--compact", "true",
	"--control-flow-flattening", "true",
	"--identifier-names-generator", "hexadecimal",
	"--string-array", "true",
	"--string-array-encoding", "base64",
	"--self-defending", "true",
	"--debug-protection", "true",
}

// obfTempFile is where the obfuscator writes before the atomic replace.
const obfTempFile = BundleFile + ".obf"

// obfuscate rewrites the bundled module in place when enabled. The tool
// writes to a temp path which then replaces BundleFile via rename, so a
// failed run never leaves a half-written module behind.
func (p *Pipeline) obfuscate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if !p.opts.Obfuscate {
		logger.Debug("Obfuscation not requested, skipping.")
		return nil
	}

	args := append([]string{BundleFile, "--output", obfTempFile}, obfuscationPolicy...)
	if _, err := p.run.Run(ctx, p.tools.Obfuscator, args...); err != nil {
		os.Remove(p.workPath(obfTempFile))
		return fmt.Errorf("%w: %w", ErrObfuscation, err)
	}

	if !fsutil.Exists(p.workPath(obfTempFile)) {
		return fmt.Errorf("%w: obfuscator exited 0 but wrote no output", ErrObfuscation)
	}
	if err := os.Rename(p.workPath(obfTempFile), p.workPath(BundleFile)); err != nil {
		os.Remove(p.workPath(obfTempFile))
		return fmt.Errorf("%w: replacing module: %w", ErrObfuscation, err)
	}

	logger.Debug("Bundled module obfuscated in place.", "module", BundleFile)
	return nil
}

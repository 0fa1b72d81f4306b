package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/fsutil"
)

// SegmentName is the reserved segment the host runtime looks up to find its
// embedded application blob.
const SegmentName = "NODE_SEA_BLOB"

// The sentinel fuse is stored base64-encoded so this binary's own string
// table never contains the pattern the runtime's blob scanner matches on.
const fuseEncoded = "Tk9ERV9TRUFfRlVTRV9mY2U2ODBhYjJjYzQ2N2I2ZTA3MmI4YjVkZjE5OTZiMg=="

// fuse is the runtime's fixed sentinel marker; it must reach the injector
// unmodified or the produced executable will not recognize its blob.
var fuse = mustDecodeFuse()

func mustDecodeFuse() string {
	b, err := base64.StdEncoding.DecodeString(fuseEncoded)
	if err != nil {
		panic("pipeline: corrupt fuse encoding: " + err.Error())
	}
	return string(b)
}

// inject embeds the preparation blob into the copied executable under
// SegmentName, then removes the transient blob and module files. Cleanup
// failures are logged only: the executable is already complete.
func (p *Pipeline) inject(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if !fsutil.Exists(p.workPath(BlobFile)) {
		return fmt.Errorf("%w: %s", ErrMissingArtifact, BlobFile)
	}

	args := []string{p.OutputPath(), SegmentName, BlobFile, "--sentinel-fuse", fuse}
	// Only the segmented-image target takes a named-segment hint; the
	// injector must not see the flag elsewhere.
	if hint := p.opts.Platform.SegmentHint(); hint != "" {
		args = append(args, "--macho-segment-name", hint)
	}

	if _, err := p.run.Run(ctx, p.tools.Postject, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrInjection, err)
	}

	for _, name := range []string{BlobFile, BundleFile} {
		if err := os.Remove(p.workPath(name)); err != nil {
			logger.Warn("Could not remove transient build file.", "file", name, "error", err)
		}
	}

	logger.Debug("Blob injected into executable.", "segment", SegmentName, "executable", p.OutputPath())
	return nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/fsutil"
)

// seaConfig mirrors the runtime's SEA configuration schema. The key names
// are a compatibility contract with node's --experimental-sea-config reader
// and must not change.
type seaConfig struct {
	Main                          string `json:"main"`
	Output                        string `json:"output"`
	DisableExperimentalSEAWarning bool   `json:"disableExperimentalSEAWarning"`
}

// generateBlob serializes the SEA descriptor and has the host runtime turn
// the bundled module into the preparation blob. The descriptor is deleted on
// success and retained on any failure so the failing input stays available.
func (p *Pipeline) generateBlob(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	cfg := seaConfig{
		Main:                          BundleFile,
		Output:                        BlobFile,
		DisableExperimentalSEAWarning: true,
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding descriptor: %w", ErrBlobGeneration, err)
	}
	if err := os.WriteFile(p.workPath(SEAConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrBlobGeneration, SEAConfigFile, err)
	}

	res, err := p.run.Run(ctx, p.opts.NodePath, "--experimental-sea-config", SEAConfigFile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBlobGeneration, err)
	}

	// Some runtime builds exit 0 without writing the blob when SEA support
	// is absent, so the exit code alone proves nothing.
	if !fsutil.Exists(p.workPath(BlobFile)) {
		return fmt.Errorf("%w: node exited 0 but %s was not produced (stdout: %s) (stderr: %s)",
			ErrBlobGeneration, BlobFile, strings.TrimSpace(res.Stdout), strings.TrimSpace(res.Stderr))
	}

	if err := os.Remove(p.workPath(SEAConfigFile)); err != nil {
		logger.Warn("Could not remove transient descriptor file.", "file", SEAConfigFile, "error", err)
	}
	logger.Debug("Preparation blob generated.", "blob", BlobFile)
	return nil
}

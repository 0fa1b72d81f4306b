// Package node locates the host Node.js runtime and enforces the minimum
// version the SEA toolchain needs. The gate runs once at startup, before any
// pipeline stage.
package node

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/runner"
)

// MinVersion is the oldest runtime release whose SEA config generation and
// fuse layout this pipeline targets.
const MinVersion = "v20.0.0"

// ErrUnsupportedVersion marks a host runtime older than MinVersion.
var ErrUnsupportedVersion = errors.New("unsupported node runtime version")

// Resolve returns the path of the runtime binary. A bare name is searched on
// PATH; a name containing a separator is checked directly.
func Resolve(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("locating node runtime %q: %w", bin, err)
	}
	return path, nil
}

// Version asks the runtime at nodePath for its version string, e.g.
// "v20.11.1". Node already prints canonical semver with a leading v.
func Version(ctx context.Context, r runner.Runner, nodePath string) (string, error) {
	res, err := r.Run(ctx, nodePath, "--version")
	if err != nil {
		return "", fmt.Errorf("querying node version: %w", err)
	}

	v := strings.TrimSpace(res.Stdout)
	if !semver.IsValid(v) {
		return "", fmt.Errorf("node printed unrecognized version %q", v)
	}
	return v, nil
}

// CheckVersion fails when version is older than MinVersion.
func CheckVersion(ctx context.Context, version string) error {
	if semver.Compare(version, MinVersion) < 0 {
		return fmt.Errorf("%w: found %s, need %s or newer", ErrUnsupportedVersion, version, MinVersion)
	}
	ctxlog.FromContext(ctx).Debug("Node runtime version accepted.", "version", version, "minimum", MinVersion)
	return nil
}

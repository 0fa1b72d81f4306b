package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/env/v2"

	"github.com/seapack/seapack/internal/app"
	"github.com/seapack/seapack/internal/pipeline"
	"github.com/seapack/seapack/internal/platform"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a packaging test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	WorkDir   string
}

// WorkFile resolves a build layout filename against the run's working
// directory.
func (r *HarnessResult) WorkFile(name string) string {
	return filepath.Join(r.WorkDir, name)
}

// OutputPath returns the dist artifact path the run should have produced for
// name on target.
func (r *HarnessResult) OutputPath(target platform.Platform, name string) string {
	return filepath.Join(r.WorkDir, pipeline.DistDir, name+target.ExeSuffix())
}

// RunPackagingTest executes the full application lifecycle against an
// isolated working directory, with a scripted external toolchain on PATH.
// The files map seeds the working directory; the tools map overrides
// individual DefaultToolScripts entries. The node stub doubles as the
// runtime binary that gets copied into dist.
func RunPackagingTest(t *testing.T, files map[string]string, tools map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	workDir := t.TempDir()
	binDir := t.TempDir()

	if cfg.Entry == "" {
		cfg.Entry = "index.js"
	}
	if _, ok := files[cfg.Entry]; !ok && !filepath.IsAbs(cfg.Entry) {
		if files == nil {
			files = map[string]string{}
		}
		files[cfg.Entry] = `console.log("hello");`
	}

	for name, content := range files {
		filePath := filepath.Join(workDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	scripts := DefaultToolScripts()
	for name, body := range tools {
		scripts[name] = body
	}
	for name, body := range scripts {
		StubTool(t, binDir, name, body)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	cfg.WorkDir = workDir
	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.NodeBin == "" {
		cfg.NodeBin = filepath.Join(binDir, "node")
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig)
	runErr := testApp.Run(context.Background())

	if env.Bool("SEAPACK_TEST_LOGS") {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		WorkDir:   workDir,
	}
}

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/seapack/seapack/internal/ctxlog"
	"github.com/seapack/seapack/internal/platform"
	"github.com/seapack/seapack/internal/runner"
)

// Fixed file layout of a pipeline run, relative to the working directory.
// BundleFile and SEAConfigFile are transient; only the dist output survives.
const (
	BundleFile    = "out.js"
	SEAConfigFile = "sea-config.json"
	BlobFile      = "sea-prep.blob"
	DistDir       = "dist"
)

// DefaultExeName is the output basename used when the caller does not pick
// one; the platform suffix is appended on top.
const DefaultExeName = "app"

// Options carries everything one pipeline run needs. The zero value is not
// usable: Entry, Platform and NodePath come from the app configuration.
type Options struct {
	Entry     string
	Platform  platform.Platform
	Icon      string
	Obfuscate bool
	ExeName   string
	WorkDir   string
	NodePath  string
}

// Toolchain names the external commands each stage launches. Tests substitute
// fakes; real runs use DefaultToolchain.
type Toolchain struct {
	Esbuild    string
	Obfuscator string
	Postject   string
	Rcedit     string
}

// DefaultToolchain returns the conventional command names, resolved through
// PATH at spawn time.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Esbuild:    "esbuild",
		Obfuscator: "javascript-obfuscator",
		Postject:   "postject",
		Rcedit:     "rcedit",
	}
}

// Pipeline executes the build stages strictly in order against one working
// directory. Concurrent runs must not share a working directory; that
// isolation is the caller's responsibility.
type Pipeline struct {
	opts  Options
	tools Toolchain
	run   runner.Runner
}

// New builds a Pipeline, applying the ExeName and WorkDir defaults.
func New(opts Options, tools Toolchain, r runner.Runner) *Pipeline {
	if opts.ExeName == "" {
		opts.ExeName = DefaultExeName
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	return &Pipeline{opts: opts, tools: tools, run: r}
}

// OutputPath returns the path of the final executable.
func (p *Pipeline) OutputPath() string {
	return filepath.Join(p.opts.WorkDir, DistDir, p.opts.ExeName+p.opts.Platform.ExeSuffix())
}

// workPath resolves a layout filename against the working directory.
func (p *Pipeline) workPath(name string) string {
	return filepath.Join(p.opts.WorkDir, name)
}

// entryPath resolves the entry file; relative paths are rooted at the
// working directory so filesystem checks and tool invocations agree.
func (p *Pipeline) entryPath() string {
	if filepath.IsAbs(p.opts.Entry) {
		return p.opts.Entry
	}
	return filepath.Join(p.opts.WorkDir, p.opts.Entry)
}

// stage is one named unit of the fixed build order.
type stage struct {
	name string
	run  func(context.Context) error
}

// stages returns the build order. Order matters: blob generation needs the
// bundled (and possibly obfuscated) module, injection needs both the blob
// and the copied executable, and icon branding must precede injection.
func (p *Pipeline) stages() []stage {
	return []stage{
		{"bundle", p.bundle},
		{"obfuscate", p.obfuscate},
		{"blob", p.generateBlob},
		{"executable", p.copyExecutable},
		{"icon", p.applyIcon},
		{"inject", p.inject},
	}
}

// Run executes all stages sequentially, short-circuiting on the first error.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting build pipeline", "entry", p.opts.Entry, "platform", p.opts.Platform.String())

	for _, st := range p.stages() {
		stageLogger := logger.With("stage", st.name)
		stageLogger.Info("▶️ Stage starting")
		if err := st.run(ctx); err != nil {
			stageLogger.Error("Stage failed.", "error", err)
			return fmt.Errorf("stage %s: %w", st.name, err)
		}
		stageLogger.Info("✅ Stage finished")
	}

	logger.Info("🏁 Build finished", "output", p.OutputPath())
	return nil
}

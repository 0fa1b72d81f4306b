package app

import (
	"errors"

	"github.com/seapack/seapack/internal/pipeline"
	"github.com/seapack/seapack/internal/platform"
)

// Config holds everything one packaging run needs. It is built once from
// CLI flags plus the optional manifest, validated here, and never mutated
// afterwards.
type Config struct {
	Entry     string            // path of the application entry file
	Platform  platform.Platform // packaging target
	Icon      string            // optional icon file
	Obfuscate bool              // rewrite the bundled module through the obfuscator
	ExeName   string            // output basename under dist/
	NodeBin   string            // runtime binary name or path
	WorkDir   string            // directory owning the run's file layout

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills the defaulted fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Entry == "" {
		return nil, errors.New("an entry file is required")
	}
	if cfg.Platform == platform.Unknown {
		return nil, errors.New("a target platform is required")
	}
	if cfg.ExeName == "" {
		cfg.ExeName = pipeline.DefaultExeName
	}
	if cfg.NodeBin == "" {
		cfg.NodeBin = "node"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	return &cfg, nil
}

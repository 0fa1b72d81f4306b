package pipeline

import "errors"

// Stage error taxonomy. Every stage failure is fatal to the run; stages wrap
// the underlying cause onto one of these sentinels so callers can branch with
// errors.Is while the rendered message keeps the tool output.
var (
	ErrBundle          = errors.New("bundling failed")
	ErrObfuscation     = errors.New("obfuscation failed")
	ErrBlobGeneration  = errors.New("blob generation failed")
	ErrFilesystem      = errors.New("filesystem operation failed")
	ErrMissingArtifact = errors.New("expected build artifact missing")
	ErrInjection       = errors.New("blob injection failed")
)

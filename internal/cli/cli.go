package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/seapack/seapack/internal/app"
	"github.com/seapack/seapack/internal/fsutil"
	"github.com/seapack/seapack/internal/manifest"
	"github.com/seapack/seapack/internal/platform"
)

// DefaultManifest is the manifest filename picked up from the working
// directory when -config does not name one.
const DefaultManifest = "seapack.hcl"

// NodeEnv names the environment variable that overrides the runtime binary
// when neither the -node flag nor the manifest picks one.
const NodeEnv = "SEAPACK_NODE"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and the optional build manifest.
// It returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError. Flags win over manifest attributes; the
// obfuscate switch is on when either source enables it.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("seapack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Usage:
  seapack [options] ENTRY

Arguments:
  ENTRY
    Path to the application's entry JavaScript file.

Options:
`)
		flagSet.PrintDefaults()
	}

	platformFlag := flagSet.String("platform", "", "Target platform. Options: 'win32', 'linux' or 'darwin'.")
	iconFlag := flagSet.String("icon", "", "Path to an .ico file stamped onto win32 executables.")
	obfuscateFlag := flagSet.Bool("obfuscate", false, "Obfuscate the bundled source before embedding it.")
	configFlag := flagSet.String("config", "", "Path to an HCL build manifest.")
	nameFlag := flagSet.String("name", "", "Basename of the produced executable. Defaults to 'app'.")
	nodeFlag := flagSet.String("node", "", "Node.js binary to embed and to generate the blob with.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	entry := ""
	if flagSet.NArg() > 0 {
		entry = flagSet.Arg(0)
	}

	platformName := *platformFlag
	icon := *iconFlag
	obfuscate := *obfuscateFlag
	exeName := *nameFlag
	nodeBin := *nodeFlag

	manifestPath := *configFlag
	if manifestPath == "" && fsutil.Exists(DefaultManifest) {
		manifestPath = DefaultManifest
	}
	if manifestPath != "" {
		man, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, false, err
		}
		slog.Debug("Manifest loaded.", "path", manifestPath)
		if entry == "" {
			entry = man.Entry
		}
		if platformName == "" {
			platformName = man.Platform
		}
		if icon == "" {
			icon = man.Icon
		}
		obfuscate = obfuscate || man.Obfuscate
		if exeName == "" {
			exeName = man.Name
		}
		if nodeBin == "" {
			nodeBin = man.Node
		}
	}
	slog.Debug("Entry file determined.", "entry", entry)

	if entry == "" {
		slog.Debug("No entry file provided, printing usage and exiting.")
		splash(output)
		flagSet.Usage()
		return nil, true, nil
	}

	if platformName == "" {
		return nil, false, &ExitError{Code: 2, Message: "a target platform is required: pass -platform or set it in the manifest"}
	}
	target, err := platform.Parse(platformName)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if nodeBin == "" {
		nodeBin = env.Str(NodeEnv)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Entry:     entry,
		Platform:  target,
		Icon:      icon,
		Obfuscate: obfuscate,
		ExeName:   exeName,
		NodeBin:   nodeBin,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// StubTool writes an executable shell script for name into binDir and
// returns its path.
func StubTool(t *testing.T, binDir, name, body string) string {
	t.Helper()
	path := filepath.Join(binDir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// DefaultToolScripts returns shell bodies for a well-behaved toolchain. Each
// stub mimics exactly the on-disk behavior a pipeline stage depends on:
// esbuild writes the bundled module, the obfuscator writes a transformed
// copy to its --output path, node turns the module into the blob, postject
// and rcedit append markers to the executable so tests can observe the
// mutations.
func DefaultToolScripts() map[string]string {
	return map[string]string{
		"esbuild": `out=""
for a in "$@"; do
  case "$a" in
    --outfile=*) out="${a#--outfile=}" ;;
  esac
done
if [ ! -f "$1" ]; then
  echo "no such entry: $1" >&2
  exit 1
fi
printf 'bundled:' > "$out"
cat "$1" >> "$out"`,

		"javascript-obfuscator": `src="$1"
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--output" ]; then out="$a"; fi
  prev="$a"
done
printf 'obfuscated:' > "$out"
cat "$src" >> "$out"`,

		"node": `if [ "$1" = "--version" ]; then
  echo "v20.11.1"
  exit 0
fi
if [ "$1" = "--experimental-sea-config" ]; then
  printf 'blob:' > sea-prep.blob
  cat out.js >> sea-prep.blob
  exit 0
fi
exit 1`,

		"postject": `if [ ! -f "$3" ]; then
  echo "blob missing: $3" >&2
  exit 1
fi
printf '+SEA' >> "$1"`,

		"rcedit": `printf '+ICON' >> "$1"`,
	}
}

package integration_tests

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapack/seapack/internal/app"
	"github.com/seapack/seapack/internal/pipeline"
	"github.com/seapack/seapack/internal/platform"
	"github.com/seapack/seapack/internal/testutil"
)

// listFiles returns every regular file under root, relative to it, sorted.
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

// TestPipeline_ProducesSingleArtifactPerPlatform runs the whole lifecycle
// against a scripted toolchain and verifies that exactly one artifact is
// retained and every transient file is cleaned up, for each target.
func TestPipeline_ProducesSingleArtifactPerPlatform(t *testing.T) {
	cases := []struct {
		name     string
		target   platform.Platform
		outFile  string
		wantHint bool
	}{
		{"win32", platform.Win32, "dist/app.exe", false},
		{"linux", platform.Linux, "dist/app", false},
		{"darwin", platform.Darwin, "dist/app", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			// No icon root: win32 must fall through to the stock icon.
			t.Setenv(pipeline.IconRootEnv, "")

			// --- Act ---
			result := testutil.RunPackagingTest(t,
				map[string]string{"index.js": `console.log("hi");`},
				nil,
				app.Config{Entry: "index.js", Platform: tc.target},
			)

			// --- Assert ---
			require.NoError(t, result.Err, "logs:\n%s", result.LogOutput)

			want := []string{tc.outFile, "index.js"}
			got := listFiles(t, result.WorkDir)
			require.Empty(t, cmp.Diff(want, got), "working directory should hold exactly the entry and the artifact")

			out, err := os.ReadFile(result.OutputPath(tc.target, "app"))
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(string(out), "+SEA"), "blob segment marker missing from executable")

			if tc.wantHint {
				assert.Contains(t, result.LogOutput, "--macho-segment-name")
			} else {
				assert.NotContains(t, result.LogOutput, "--macho-segment-name")
			}
			assert.Contains(t, result.LogOutput, "Build finished")
		})
	}
}

// TestPipeline_CustomExecutableName verifies the -name knob reaches the dist
// path.
func TestPipeline_CustomExecutableName(t *testing.T) {
	// --- Act ---
	result := testutil.RunPackagingTest(t, nil, nil,
		app.Config{Entry: "index.js", Platform: platform.Win32, ExeName: "mytool"},
	)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.FileExists(t, filepath.Join(result.WorkDir, "dist", "mytool.exe"))
}

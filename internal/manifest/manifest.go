// Package manifest loads the optional HCL build manifest. A manifest carries
// the same knobs as the command line; flags always win when both are given.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Manifest is the decoded content of a build block. Every attribute is
// optional here; requiredness is enforced after flags are merged on top.
type Manifest struct {
	Entry     string
	Platform  string
	Icon      string
	Obfuscate bool
	Name      string
	Node      string
}

// buildBlock is the HCL shape of the single build block.
type buildBlock struct {
	Entry     string `hcl:"entry,optional"`
	Platform  string `hcl:"platform,optional"`
	Icon      string `hcl:"icon,optional"`
	Obfuscate bool   `hcl:"obfuscate,optional"`
	Name      string `hcl:"name,optional"`
	Node      string `hcl:"node,optional"`
}

// manifestFile is the top-level structure of a manifest file.
type manifestFile struct {
	Build *buildBlock `hcl:"build,block"`
}

// Load parses and decodes the manifest at path. Attribute expressions may
// reference the process environment through the env object, e.g.
// icon = env.ICON_DIR.
func Load(path string) (*Manifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var parsed manifestFile
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}
	if parsed.Build == nil {
		return nil, fmt.Errorf("manifest %s has no build block", path)
	}

	b := parsed.Build
	return &Manifest{
		Entry:     b.Entry,
		Platform:  b.Platform,
		Icon:      b.Icon,
		Obfuscate: b.Obfuscate,
		Name:      b.Name,
		Node:      b.Node,
	}, nil
}

// evalContext exposes the process environment to manifest expressions as a
// single env object.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}

	envVal := cty.EmptyObjectVal
	if len(vars) > 0 {
		envVal = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}
}

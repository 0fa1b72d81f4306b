// Package pipeline implements the build pipeline that turns a Node.js entry
// file into a standalone executable: bundle, optionally obfuscate, generate
// the SEA blob, copy the runtime binary, optionally brand it with an icon,
// and inject the blob into the copy. Stages run in that fixed order and the
// first failure aborts the run.
package pipeline

// Package setup manages installation of the hooksmith git hooks.
//
// Hooks are thin shell shims written to .git/hooks that delegate to
// "hooksmith hook run <name>" when the binary is on PATH. Existing hooks
// can be preserved: install moves them to <name>.backup and the shim
// chains to the backup after hooksmith's own logic passes.
package setup

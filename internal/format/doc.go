// Package format produces the canonical layout of a Verus source file.
//
// Source lexes, parses and lays the file out through the doc renderer.
// Comments are reattached to the tokens they belong to and at most one
// blank line survives between list elements. With Options.Delegate set,
// runs of plain Rust items are handed to a delegate.Formatter; a region
// whose result changes tokens or comments keeps the built-in layout and
// yields a DelegationWarning.
package format

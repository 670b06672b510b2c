// Package main hosts the vctag CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into editor
// sessions against the external vorbiscomment tool: listing, appending, and
// rewriting comments, journal inspection, and configuration scaffolding. It
// centralizes configuration resolution and logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main

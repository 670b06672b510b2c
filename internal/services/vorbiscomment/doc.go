// Package vorbiscomment mediates access to the vorbiscomment CLI from
// vorbis-tools.
//
// It normalizes command invocation into argument vectors, captures exit
// status and stderr into classified errors, and exposes a seam for
// substituting the spawned process in tests.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// the tool so flag layout and failure reporting stay consistent.
package vorbiscomment

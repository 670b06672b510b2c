// Package editor provides the tag editing facade: one session per target
// Ogg Vorbis file, with append, write, list, and version operations
// delegated to the external vorbiscomment tool.
//
// Construction is fail-soft. A missing or unreadable target does not
// produce a hard failure; the session records the error and every
// operation reports it, so callers can rely on HasError and LastError
// after each call. Only the most recent result is retained.
package editor

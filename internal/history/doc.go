// Package history persists a journal of tag edit operations in SQLite so
// earlier appends and rewrites against a library can be audited later.
package history

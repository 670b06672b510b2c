// Package services defines the shared error taxonomy used by the editor
// facade and external tool integrations.
//
// Failures are tagged with sentinel markers (missing file, unreadable file,
// empty input, malformed line, external tool failure) through the Wrap helper
// so callers can classify them with errors.Is while still reading a single
// human-oriented message.
package services

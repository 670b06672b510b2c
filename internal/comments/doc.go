// Package comments normalizes heterogeneous comment input into canonical
// (name, value) tag pairs and parses vorbiscomment list output back into
// grouped form.
//
// A Source is a tagged variant over the supported input shapes: an import
// file of name=value lines, a flat list of pre-formatted strings, explicit
// pairs, a scalar-valued mapping, or a multi-valued mapping. Shape selection
// happens at the call site through the constructor instead of runtime
// introspection, so mixed-shape collections cannot occur.
//
// Sanitization restricts names to the vorbis field-name alphabet and strips
// control characters from NFC-normalized values; pairs that sanitize to an
// empty name or value are rejected rather than silently truncated.
package comments

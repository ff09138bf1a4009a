// Package manifest loads the addon manifest template and produces the
// bytes embedded in the archive.
//
// The template is mutated in place on the raw JSON document (sjson), so
// the author's key ordering survives re-serialization: only the "mod"
// timestamp and, optionally, the "version" field change. Output is
// indented with two spaces and keeps non-ASCII characters literal.
package manifest

// Package gplist implements encoding and decoding of Apple's "property
// list" format in both its XML and binary (bplist00) encodings, plus a
// path-addressed mutation API over the decoded value tree. The companion
// provision subpackage builds a Mobile Provisioning Profile reader on top
// of this package's XML decoder.
//
// The binary format is documented in terms of a token grammar: every value
// is preceded by a one-byte tag whose high nibble selects a type and whose
// low nibble carries a length (or an escape to a following packed integer
// for longer lengths). Values are stored once in an object table and
// referenced by index from their containers, so decoding walks an
// offset-indexed, partially shared graph rather than a flat byte stream.
package gplist

// Package jsonstream provides a cursor-based streaming tokeniser over a JSON
// byte range. It exposes structural events, scalar byte spans, composite
// skipping, byte-accurate cursor snapshots via Fork, and a canonical
// normalised form used as an equality kernel for JSON values.
package jsonstream

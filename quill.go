// Package quill is a JSON document library: a dynamic DOM value type, a
// recursive-descent parser with configurable extensions (comments, trailing
// commas, depth limits), and a serializer with compact and pretty output.
//
// Parsing reports failures as a *ParseError carrying the error category,
// byte offset, 1-based line and column, and a diagnostic message. The DOM
// supports structural equality and total ordering, deep copies, and
// auto-converting container accessors.
package quill

import (
	"io"
)

// ### Core Functions ###

// Parse converts UTF-8 JSON text into a DOM tree allocated through the
// default arena. On failure the returned error is a *ParseError.
func Parse(data []byte, opts ParseOptions) (*Value, error) {
	return DefaultArena().Parse(data, opts)
}

// ParseString is Parse for string input.
func ParseString(text string, opts ParseOptions) (*Value, error) {
	return DefaultArena().Parse([]byte(text), opts)
}

// Parse converts UTF-8 JSON text into a DOM tree allocated through this
// arena. On failure the returned error is a *ParseError.
func (a *Arena) Parse(data []byte, opts ParseOptions) (*Value, error) {
	s := newScanner(data, opts, a)
	v, err := parseDocument(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Dump serializes the tree to JSON text.
func Dump(v *Value, opts WriteOptions) []byte {
	buf := getBuffer()
	defer putBuffer(buf)
	dumpValue(buf, v, opts, 0)
	return buf.Detach()
}

// DumpString is Dump returning a string.
func DumpString(v *Value, opts WriteOptions) string {
	buf := getBuffer()
	defer putBuffer(buf)
	dumpValue(buf, v, opts, 0)
	return string(buf.Bytes())
}

// DumpTo serializes the tree into w without surfacing an intermediate byte
// slice to the caller.
func DumpTo(w io.Writer, v *Value, opts WriteOptions) error {
	buf := getBuffer()
	defer putBuffer(buf)
	dumpValue(buf, v, opts, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

package quill

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ### File and Stream Adapters ###
//
// Thin wrappers over the core: read all bytes, delegate to Parse; serialize,
// delegate to the writer. No parsing happens against the stream itself.

// ParseReader reads r to the end and parses the contents.
func ParseReader(r io.Reader, opts ParseOptions) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return Parse(data, opts)
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ParseOptions) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(data, opts)
}

// DumpFile serializes the tree to the file at path, creating or truncating
// it. A trailing newline is appended.
func DumpFile(path string, v *Value, opts WriteOptions) error {
	buf := getBuffer()
	defer putBuffer(buf)
	dumpValue(buf, v, opts, 0)
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

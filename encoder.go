package quill

import (
	"math"
	"strconv"
)

// ### Serializer ###

const hexDigits = "0123456789ABCDEF"

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// escapeMap covers the two-character escape forms; remaining control bytes
// get the \u00XX form.
var escapeMap = [256][]byte{
	'"':  []byte(`\"`),
	'\\': []byte(`\\`),
	'\b': []byte(`\b`),
	'\f': []byte(`\f`),
	'\n': []byte(`\n`),
	'\r': []byte(`\r`),
	'\t': []byte(`\t`),
}

func writeEscapedString(buf *Buffer, s string) {
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		esc := escapeMap[c]
		if esc == nil && c >= 0x20 {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		if esc != nil {
			buf.Write(esc)
		} else {
			buf.Write([]byte{'\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF]})
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
	buf.WriteByte('"')
}

func writeIndent(buf *Buffer, opts WriteOptions, depth int) {
	if !opts.Pretty || opts.Indent <= 0 {
		return
	}
	for i := 0; i < depth*opts.Indent; i++ {
		buf.WriteByte(' ')
	}
}

func dumpValue(buf *Buffer, v *Value, opts WriteOptions, depth int) {
	switch v.kind {
	case KindNull:
		buf.Write(jsonNull)
	case KindBool:
		if v.b {
			buf.Write(jsonTrue)
		} else {
			buf.Write(jsonFalse)
		}
	case KindNumber:
		// JSON has no representation for NaN or infinities.
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			buf.Write(jsonNull)
			return
		}
		buf.buf = strconv.AppendFloat(buf.buf, v.f, 'g', -1, 64)
	case KindString:
		writeEscapedString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		if len(v.arr) == 0 {
			buf.WriteByte(']')
			return
		}
		if opts.Pretty {
			buf.WriteByte('\n')
		}
		for i, e := range v.arr {
			writeIndent(buf, opts, depth+1)
			dumpValue(buf, e, opts, depth+1)
			if i+1 < len(v.arr) {
				buf.WriteByte(',')
			}
			if opts.Pretty {
				buf.WriteByte('\n')
			}
		}
		writeIndent(buf, opts, depth)
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		if len(v.obj) == 0 {
			buf.WriteByte('}')
			return
		}
		if opts.Pretty {
			buf.WriteByte('\n')
		}
		// Members are stored sorted, so output is already in ascending key
		// order; WriteOptions.SortKeys needs no extra work.
		for i, m := range v.obj {
			writeIndent(buf, opts, depth+1)
			writeEscapedString(buf, m.key)
			if opts.Pretty {
				buf.WriteString(": ")
			} else {
				buf.WriteByte(':')
			}
			dumpValue(buf, m.val, opts, depth+1)
			if i+1 < len(v.obj) {
				buf.WriteByte(',')
			}
			if opts.Pretty {
				buf.WriteByte('\n')
			}
		}
		writeIndent(buf, opts, depth)
		buf.WriteByte('}')
	}
}

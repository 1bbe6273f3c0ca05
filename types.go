package quill

// ### Type Definitions ###

// Kind identifies the active variant of a Value. The declaration order is
// load-bearing: cross-kind ordering in Value.Compare follows it.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseOptions tunes how Parse behaves. The zero value is strict RFC 8259.
type ParseOptions struct {
	// AllowComments accepts // line and /* block */ comments wherever
	// whitespace is allowed.
	AllowComments bool

	// AllowTrailingCommas accepts a comma before the closing ] or }.
	AllowTrailingCommas bool

	// MaxDepth limits array/object nesting. 0 means unlimited.
	MaxDepth int
}

// WriteOptions tunes how Dump formats output. The zero value is compact.
type WriteOptions struct {
	// Pretty enables newlines and indentation.
	Pretty bool

	// Indent is the number of spaces per nesting level in pretty mode.
	// Ignored when Pretty is false.
	Indent int

	// SortKeys is accepted for API stability. Objects already iterate in
	// ascending key order, so it has no observable effect.
	SortKeys bool
}

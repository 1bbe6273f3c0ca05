package quill

import (
	"strconv"
)

// ### Error Types ###

// ErrorCode categorizes a parse failure.
type ErrorCode uint8

const (
	UnexpectedCharacter ErrorCode = iota
	InvalidNumber
	InvalidString
	InvalidEscape
	InvalidUnicodeEscape
	UnexpectedEndOfInput
	TrailingCharacters
	DepthLimitExceeded
)

var errorCodeNames = [...]string{
	UnexpectedCharacter:  "unexpected character",
	InvalidNumber:        "invalid number",
	InvalidString:        "invalid string",
	InvalidEscape:        "invalid escape",
	InvalidUnicodeEscape: "invalid unicode escape",
	UnexpectedEndOfInput: "unexpected end of input",
	TrailingCharacters:   "trailing characters",
	DepthLimitExceeded:   "depth limit exceeded",
}

func (c ErrorCode) String() string {
	if int(c) < len(errorCodeNames) {
		return errorCodeNames[c]
	}
	return "unknown"
}

// ParseError describes the first failure encountered while parsing.
//
// Offset is a byte index into the input in [0, len(input)]. Line and Column
// are 1-based; Column counts bytes within the current line and resets after
// each line feed. Msg is for diagnostics only and is not stable across
// releases.
type ParseError struct {
	Msg    string
	Code   ErrorCode
	Offset int
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString("quill: ")
	b.WriteString(e.Code.String())
	b.WriteString(" at line ")
	b.WriteString(strconv.Itoa(e.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(e.Column))
	b.WriteString(" (offset ")
	b.WriteString(strconv.Itoa(e.Offset))
	b.WriteString("): ")
	b.WriteString(e.Msg)
	return b.String()
}

// KeyError reports a required object member lookup that found nothing.
// Returned by Value.Get; distinct from any parse failure.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString("quill: key not found: ")
	b.WriteString(strconv.Quote(e.Key))
	return b.String()
}

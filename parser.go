package quill

import (
	"strconv"
	"unicode/utf8"
)

// ### Parser ###
//
// Recursive descent over the scanner. Every production returns the parsed
// Value or the first error encountered; errors short-circuit at each call
// site and no partial results are surfaced.

// isDigit returns true if c is an ASCII digit
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSpace matches JSON whitespace only: space, tab, CR, LF.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// skipWhitespace consumes whitespace and, when AllowComments is set, line
// and block comments. A '/' that does not start a comment is left for the
// value parser to reject.
func skipWhitespace(s *scanner) *ParseError {
	for !s.atEnd() {
		c := s.peek()
		if isSpace(c) {
			s.advance()
			continue
		}
		if !s.opts.AllowComments || c != '/' {
			return nil
		}
		switch s.peekNext() {
		case '/':
			s.advance()
			s.advance()
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		case '*':
			s.advance()
			s.advance()
			closed := false
			for !s.atEnd() {
				if s.advance() == '*' && s.peek() == '/' {
					s.advance()
					closed = true
					break
				}
			}
			if !closed {
				return s.errorAt(UnexpectedEndOfInput, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

// parseLiteral matches an exact keyword. Running out of input mid-literal is
// an end-of-input error; a mismatching byte is an unexpected character.
func parseLiteral(s *scanner, literal, msg string) *ParseError {
	for i := 0; i < len(literal); i++ {
		if s.atEnd() {
			return s.errorAt(UnexpectedEndOfInput, msg)
		}
		if s.advance() != literal[i] {
			return s.errorAt(UnexpectedCharacter, msg)
		}
	}
	return nil
}

func parseHex4(s *scanner) (rune, *ParseError) {
	var val rune
	for i := 0; i < 4; i++ {
		if s.atEnd() {
			return 0, s.errorAt(InvalidUnicodeEscape, "unexpected end in unicode escape")
		}
		h := s.advance()
		var digit rune
		switch {
		case h >= '0' && h <= '9':
			digit = rune(h - '0')
		case h >= 'A' && h <= 'F':
			digit = rune(h-'A') + 10
		case h >= 'a' && h <= 'f':
			digit = rune(h-'a') + 10
		default:
			return 0, s.errorAt(InvalidUnicodeEscape, "invalid hex digit in unicode escape")
		}
		val = val<<4 | digit
	}
	return val, nil
}

// parseUnicodeEscape handles the four hex digits after \u, combining
// surrogate pairs into a single codepoint.
func parseUnicodeEscape(s *scanner) (rune, *ParseError) {
	first, err := parseHex4(s)
	if err != nil {
		return 0, err
	}
	if first >= 0xD800 && first <= 0xDBFF {
		if !s.match('\\') || !s.match('u') {
			return 0, s.errorAt(InvalidUnicodeEscape, "expected low surrogate after high surrogate")
		}
		second, err := parseHex4(s)
		if err != nil {
			return 0, err
		}
		if second < 0xDC00 || second > 0xDFFF {
			return 0, s.errorAt(InvalidUnicodeEscape, "invalid low surrogate")
		}
		return 0x10000 + (first-0xD800)<<10 + (second - 0xDC00), nil
	}
	if first >= 0xDC00 && first <= 0xDFFF {
		return 0, s.errorAt(InvalidUnicodeEscape, "unpaired low surrogate")
	}
	return first, nil
}

func parseString(s *scanner) (string, *ParseError) {
	if !s.match('"') {
		return "", s.errorAt(InvalidString, `expected '"' to start a string`)
	}
	buf := getBuffer()
	defer putBuffer(buf)

	for !s.atEnd() {
		c := s.advance()
		if c == '"' {
			// Escapes always assemble valid UTF-8; raw bytes may not.
			if !utf8.Valid(buf.Bytes()) {
				return "", s.errorAt(InvalidString, "invalid UTF-8 sequence in string")
			}
			return string(buf.Bytes()), nil
		}
		if c < 0x20 {
			return "", s.errorAt(InvalidString, "control character in string")
		}
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		if s.atEnd() {
			return "", s.errorAt(InvalidEscape, "unfinished escape sequence")
		}
		switch esc := s.advance(); esc {
		case '"', '\\', '/':
			buf.WriteByte(esc)
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case 'u':
			cp, err := parseUnicodeEscape(s)
			if err != nil {
				return "", err
			}
			var tmp [4]byte
			buf.Write(tmp[:utf8.EncodeRune(tmp[:], cp)])
		default:
			return "", s.errorAt(InvalidEscape, "invalid escape sequence")
		}
	}
	return "", s.errorAt(UnexpectedEndOfInput, "unterminated string")
}

func parseNumber(s *scanner) (float64, *ParseError) {
	start := s.idx

	if s.peek() == '-' {
		s.advance()
		if !isDigit(s.peek()) {
			return 0, s.errorAt(UnexpectedCharacter, "expected digit after '-'")
		}
	}

	first := s.advance()
	if !isDigit(first) {
		return 0, s.errorAt(InvalidNumber, "expected digit")
	}
	if first == '0' && isDigit(s.peek()) {
		return 0, s.errorAt(InvalidNumber, "leading zeros disallowed")
	}
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' {
		s.advance()
		if !isDigit(s.peek()) {
			return 0, s.errorAt(InvalidNumber, "expected digit after '.'")
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		s.advance()
		if c := s.peek(); c == '+' || c == '-' {
			s.advance()
		}
		if !isDigit(s.peek()) {
			return 0, s.errorAt(InvalidNumber, "expected digit in exponent")
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// The byte after a numeric token must be a structural delimiter,
	// whitespace, or end of input. This rejects forms like 1e1.2.
	if c := s.peek(); !s.atEnd() && c != ',' && c != ']' && c != '}' && !isSpace(c) {
		return 0, s.errorAt(InvalidNumber, "invalid character after number")
	}

	f, err := strconv.ParseFloat(string(s.data[start:s.idx]), 64)
	if err != nil {
		return 0, s.errorAt(InvalidNumber, "cannot convert number")
	}
	return f, nil
}

func parseArray(s *scanner) (*Value, *ParseError) {
	if !s.enterNesting() {
		return nil, s.errorAt(DepthLimitExceeded, "maximum nesting depth exceeded")
	}
	defer s.leaveNesting()

	if !s.match('[') {
		return nil, s.errorAt(UnexpectedCharacter, "expected '[' to start array")
	}
	v := s.arena.NewArray()

	if err := skipWhitespace(s); err != nil {
		return nil, err
	}
	if s.match(']') {
		return v, nil
	}

	for {
		elem, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		v.arr = append(v.arr, elem)

		if err := skipWhitespace(s); err != nil {
			return nil, err
		}
		switch c := s.peek(); {
		case c == ',':
			s.advance()
			if err := skipWhitespace(s); err != nil {
				return nil, err
			}
			if s.peek() == ']' {
				if !s.opts.AllowTrailingCommas {
					return nil, s.errorAt(TrailingCharacters, "trailing commas not allowed")
				}
				s.advance()
				return v, nil
			}
		case c == ']':
			s.advance()
			return v, nil
		case s.atEnd():
			return nil, s.errorAt(UnexpectedEndOfInput, "unterminated array, expected ',' or ']'")
		default:
			return nil, s.errorAt(UnexpectedCharacter, "expected ',' or ']' in array")
		}
	}
}

func parseObject(s *scanner) (*Value, *ParseError) {
	if !s.enterNesting() {
		return nil, s.errorAt(DepthLimitExceeded, "maximum nesting depth exceeded")
	}
	defer s.leaveNesting()

	if !s.match('{') {
		return nil, s.errorAt(UnexpectedCharacter, "expected '{' to start object")
	}
	v := s.arena.NewObject()

	if err := skipWhitespace(s); err != nil {
		return nil, err
	}
	if s.match('}') {
		return v, nil
	}

	for {
		if s.atEnd() {
			return nil, s.errorAt(UnexpectedEndOfInput, "unterminated object, expected '}' or string key")
		}
		if s.peek() != '"' {
			return nil, s.errorAt(UnexpectedCharacter, `expected '"' to start object key`)
		}
		key, err := parseString(s)
		if err != nil {
			return nil, err
		}

		if werr := skipWhitespace(s); werr != nil {
			return nil, werr
		}
		if s.atEnd() {
			return nil, s.errorAt(UnexpectedEndOfInput, "unterminated object, expected ':' after key")
		}
		if !s.match(':') {
			return nil, s.errorAt(UnexpectedCharacter, "expected ':' after object key")
		}
		if werr := skipWhitespace(s); werr != nil {
			return nil, werr
		}

		val, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		// Last write wins on duplicate keys.
		v.setMember(key, val)

		if werr := skipWhitespace(s); werr != nil {
			return nil, werr
		}
		switch c := s.peek(); {
		case c == ',':
			s.advance()
			if werr := skipWhitespace(s); werr != nil {
				return nil, werr
			}
			if s.peek() == '}' {
				if !s.opts.AllowTrailingCommas {
					return nil, s.errorAt(TrailingCharacters, "trailing commas not allowed")
				}
				s.advance()
				return v, nil
			}
		case c == '}':
			s.advance()
			return v, nil
		case s.atEnd():
			return nil, s.errorAt(UnexpectedEndOfInput, "unterminated object, expected ',' or '}'")
		default:
			return nil, s.errorAt(UnexpectedCharacter, "expected ',' or '}' in object")
		}
	}
}

func parseValue(s *scanner) (*Value, *ParseError) {
	if err := skipWhitespace(s); err != nil {
		return nil, err
	}
	if s.atEnd() {
		return nil, s.errorAt(UnexpectedEndOfInput, "expected JSON value")
	}
	switch c := s.peek(); {
	case c == 'n':
		if err := parseLiteral(s, "null", "invalid 'null' literal"); err != nil {
			return nil, err
		}
		return s.arena.NewValue(), nil
	case c == 't':
		if err := parseLiteral(s, "true", "invalid 'true' literal"); err != nil {
			return nil, err
		}
		return s.arena.NewBool(true), nil
	case c == 'f':
		if err := parseLiteral(s, "false", "invalid 'false' literal"); err != nil {
			return nil, err
		}
		return s.arena.NewBool(false), nil
	case c == '"':
		str, err := parseString(s)
		if err != nil {
			return nil, err
		}
		return s.arena.NewString(str), nil
	case c == '[':
		return parseArray(s)
	case c == '{':
		return parseObject(s)
	case c == '-' || isDigit(c):
		f, err := parseNumber(s)
		if err != nil {
			return nil, err
		}
		return s.arena.NewNumber(f), nil
	case c == '.':
		// .5 is a common but invalid form, worth a pointed message.
		return nil, s.errorAt(InvalidNumber, "fractional values must start with a 0")
	default:
		return nil, s.errorAt(UnexpectedCharacter, "unexpected character while parsing value")
	}
}

// parseDocument parses one top-level value and requires the rest of the
// input to be whitespace or comments.
func parseDocument(s *scanner) (*Value, *ParseError) {
	v, err := parseValue(s)
	if err != nil {
		return nil, err
	}
	if err := skipWhitespace(s); err != nil {
		return nil, err
	}
	if !s.atEnd() {
		return nil, s.errorAt(TrailingCharacters, "trailing characters after top-level value")
	}
	return v, nil
}

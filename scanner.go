package quill

// ### Scanner ###

// scanner tracks the parser's position in the input: byte offset, 1-based
// line and column, and current nesting depth. Column counts bytes within the
// current line.
type scanner struct {
	data   []byte
	arena  *Arena
	opts   ParseOptions
	idx    int
	line   int
	column int
	depth  int
}

func newScanner(data []byte, opts ParseOptions, arena *Arena) *scanner {
	return &scanner{data: data, arena: arena, opts: opts, line: 1, column: 1}
}

func (s *scanner) atEnd() bool {
	return s.idx >= len(s.data)
}

// peek returns the current byte, or 0 at end of input.
func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.data[s.idx]
}

func (s *scanner) peekNext() byte {
	if s.idx+1 >= len(s.data) {
		return 0
	}
	return s.data[s.idx+1]
}

// advance consumes and returns one byte. A line feed bumps the line counter
// and resets the column to 1; every other byte bumps the column.
func (s *scanner) advance() byte {
	if s.atEnd() {
		return 0
	}
	c := s.data[s.idx]
	s.idx++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// match consumes the current byte iff it equals c.
func (s *scanner) match(c byte) bool {
	if !s.atEnd() && s.data[s.idx] == c {
		s.advance()
		return true
	}
	return false
}

// enterNesting records one more nesting level. It fails, without
// incrementing, when the configured MaxDepth would be exceeded; a MaxDepth
// of 0 never fails. Every successful call must be paired with leaveNesting,
// including on error paths.
func (s *scanner) enterNesting() bool {
	if s.opts.MaxDepth != 0 && s.depth+1 > s.opts.MaxDepth {
		return false
	}
	s.depth++
	return true
}

func (s *scanner) leaveNesting() {
	s.depth--
}

// errorAt builds a ParseError at the scanner's current position.
func (s *scanner) errorAt(code ErrorCode, msg string) *ParseError {
	return &ParseError{
		Msg:    msg,
		Code:   code,
		Offset: s.idx,
		Line:   s.line,
		Column: s.column,
	}
}

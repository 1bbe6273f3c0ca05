package quill_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill"
)

func mustParse(t *testing.T, text string, opts quill.ParseOptions) *quill.Value {
	t.Helper()
	v, err := quill.ParseString(text, opts)
	require.NoError(t, err)
	return v
}

func parseErr(t *testing.T, text string, opts quill.ParseOptions) *quill.ParseError {
	t.Helper()
	_, err := quill.ParseString(text, opts)
	require.Error(t, err)
	pe, ok := err.(*quill.ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	return pe
}

func TestParsePrimitives(t *testing.T) {
	v := mustParse(t, "null", quill.ParseOptions{})
	assert.True(t, v.IsNull())

	v = mustParse(t, "true", quill.ParseOptions{})
	require.True(t, v.IsBool())
	assert.True(t, v.Bool())

	v = mustParse(t, "false", quill.ParseOptions{})
	require.True(t, v.IsBool())
	assert.False(t, v.Bool())

	v = mustParse(t, "123.5e-1", quill.ParseOptions{})
	require.True(t, v.IsNumber())
	assert.InDelta(t, 12.35, v.Float(), 1e-12)

	v = mustParse(t, `"hello"`, quill.ParseOptions{})
	require.True(t, v.IsString())
	assert.Equal(t, "hello", v.Str())
}

func TestParseSurroundingWhitespace(t *testing.T) {
	v := mustParse(t, " \t\r\n 42 \n", quill.ParseOptions{})
	assert.Equal(t, 42.0, v.Float())
}

func TestParseNumberForms(t *testing.T) {
	cases := map[string]float64{
		"0":       0,
		"-0":      0,
		"42":      42,
		"-17":     -17,
		"3.25":    3.25,
		"1e3":     1000,
		"1E3":     1000,
		"2e+2":    200,
		"2e-2":    0.02,
		"1e308":   1e308,
		"0.5":     0.5,
		"-0.0001": -0.0001,
	}
	for text, want := range cases {
		v := mustParse(t, text, quill.ParseOptions{})
		assert.Equal(t, want, v.Float(), "input %q", text)
	}
}

func TestParseNumberErrors(t *testing.T) {
	cases := []struct {
		text string
		code quill.ErrorCode
	}{
		{"01", quill.InvalidNumber},
		{"-01", quill.InvalidNumber},
		{"1.", quill.InvalidNumber},
		{"1e", quill.InvalidNumber},
		{"1e+", quill.InvalidNumber},
		{"1e1.2", quill.InvalidNumber},
		{"1x", quill.InvalidNumber},
		{"1e400", quill.InvalidNumber},
		{".5", quill.InvalidNumber},
		{"-", quill.UnexpectedCharacter},
		{"-x", quill.UnexpectedCharacter},
		{"+1", quill.UnexpectedCharacter},
	}
	for _, tc := range cases {
		pe := parseErr(t, tc.text, quill.ParseOptions{})
		assert.Equal(t, tc.code, pe.Code, "input %q: %v", tc.text, pe)
	}
}

func TestParseLiteralErrors(t *testing.T) {
	// Input exhausted mid-literal reports end of input; a wrong byte before
	// the end reports the character.
	pe := parseErr(t, "nul", quill.ParseOptions{})
	assert.Equal(t, quill.UnexpectedEndOfInput, pe.Code)

	pe = parseErr(t, "nulx", quill.ParseOptions{})
	assert.Equal(t, quill.UnexpectedCharacter, pe.Code)

	pe = parseErr(t, "tru", quill.ParseOptions{})
	assert.Equal(t, quill.UnexpectedEndOfInput, pe.Code)

	pe = parseErr(t, "fals0", quill.ParseOptions{})
	assert.Equal(t, quill.UnexpectedCharacter, pe.Code)
}

func TestParseStringEscapes(t *testing.T) {
	v := mustParse(t, `"line\nbreak"`, quill.ParseOptions{})
	assert.Equal(t, "line\nbreak", v.Str())

	v = mustParse(t, `"\"\\\/\b\f\n\r\t"`, quill.ParseOptions{})
	assert.Equal(t, "\"\\/\b\f\n\r\t", v.Str())

	v = mustParse(t, `"€"`, quill.ParseOptions{})
	assert.Equal(t, "€", v.Str())

	v = mustParse(t, `"Al"`, quill.ParseOptions{})
	assert.Equal(t, "Al", v.Str())
}

func TestParseStringErrors(t *testing.T) {
	cases := []struct {
		text string
		code quill.ErrorCode
	}{
		{`"abc`, quill.UnexpectedEndOfInput},
		{"\"a\x01b\"", quill.InvalidString},
		{"\"a\nb\"", quill.InvalidString},
		{`"\q"`, quill.InvalidEscape},
		{`"\`, quill.InvalidEscape},
		{`"\u12"`, quill.InvalidUnicodeEscape},
		{`"\u12G4"`, quill.InvalidUnicodeEscape},
		{`"\u`, quill.InvalidUnicodeEscape},
		{"\"\xff\"", quill.InvalidString},
		{"\"\xc3\x28\"", quill.InvalidString},
		{"\"\xe0\x80\xaf\"", quill.InvalidString}, // overlong encoding
	}
	for _, tc := range cases {
		pe := parseErr(t, tc.text, quill.ParseOptions{})
		assert.Equal(t, tc.code, pe.Code, "input %q: %v", tc.text, pe)
	}
}

func TestParseSurrogatePairs(t *testing.T) {
	v := mustParse(t, `"\uD83D\uDE00"`, quill.ParseOptions{})
	require.True(t, v.IsString())
	assert.Equal(t, "\U0001F600", v.Str())
	assert.Len(t, v.Str(), 4)

	cases := []string{
		`"\uD83D"`,         // unpaired high surrogate
		`"\uD83Dx"`,        // high surrogate not followed by \u
		`"\uD83D\n"`,       // ditto
		`"\uD83D\uD83D"`,   // low surrogate out of range
		`"\uDE00"`,         // bare low surrogate
		`"\uD83D\u"`,       // truncated low surrogate
	}
	for _, text := range cases {
		pe := parseErr(t, text, quill.ParseOptions{})
		assert.Equal(t, quill.InvalidUnicodeEscape, pe.Code, "input %q", text)
	}
}

func TestParseArrays(t *testing.T) {
	v := mustParse(t, "[]", quill.ParseOptions{})
	require.True(t, v.IsArray())
	assert.Equal(t, 0, v.Len())

	v = mustParse(t, `[1, "two", true, null, [3]]`, quill.ParseOptions{})
	require.Equal(t, 5, v.Len())
	assert.Equal(t, 1.0, v.At(0).Float())
	assert.Equal(t, "two", v.At(1).Str())
	assert.True(t, v.At(2).Bool())
	assert.True(t, v.At(3).IsNull())
	assert.Equal(t, 3.0, v.At(4).At(0).Float())
}

func TestParseArrayErrors(t *testing.T) {
	cases := []struct {
		text string
		code quill.ErrorCode
	}{
		{"[1", quill.UnexpectedEndOfInput},
		{"[1 2]", quill.UnexpectedCharacter},
		{"[1;2]", quill.UnexpectedCharacter},
		{"[,]", quill.UnexpectedCharacter},
		{"[", quill.UnexpectedEndOfInput},
		{"[1,", quill.UnexpectedEndOfInput},
	}
	for _, tc := range cases {
		pe := parseErr(t, tc.text, quill.ParseOptions{})
		assert.Equal(t, tc.code, pe.Code, "input %q: %v", tc.text, pe)
	}
}

func TestParseObjects(t *testing.T) {
	v := mustParse(t, "{}", quill.ParseOptions{})
	require.True(t, v.IsObject())
	assert.Equal(t, 0, v.Len())

	v = mustParse(t, `{"b": 2, "a": 1, "c": {"d": [true]}}`, quill.ParseOptions{})
	require.Equal(t, 3, v.Len())
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())

	a, ok := v.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, a.Float())

	d, err := v.Key("c").Get("d")
	require.NoError(t, err)
	assert.True(t, d.At(0).Bool())
}

func TestParseObjectDuplicateKeys(t *testing.T) {
	v := mustParse(t, `{"a":1,"a":2}`, quill.ParseOptions{})
	require.Equal(t, 1, v.Len())
	a, ok := v.Find("a")
	require.True(t, ok)
	assert.Equal(t, 2.0, a.Float())
}

func TestParseObjectErrors(t *testing.T) {
	cases := []struct {
		text string
		code quill.ErrorCode
	}{
		{"{", quill.UnexpectedEndOfInput},
		{`{"a"`, quill.UnexpectedEndOfInput},
		{`{"a":`, quill.UnexpectedEndOfInput},
		{`{"a":1`, quill.UnexpectedEndOfInput},
		{`{"a":1,`, quill.UnexpectedEndOfInput},
		{`{"a" 1}`, quill.UnexpectedCharacter},
		{`{a:1}`, quill.UnexpectedCharacter},
		{`{1:2}`, quill.UnexpectedCharacter},
		{`{"a":1 "b":2}`, quill.UnexpectedCharacter},
	}
	for _, tc := range cases {
		pe := parseErr(t, tc.text, quill.ParseOptions{})
		assert.Equal(t, tc.code, pe.Code, "input %q: %v", tc.text, pe)
	}
}

func TestTrailingCommaPolicy(t *testing.T) {
	strict := quill.ParseOptions{}
	relaxed := quill.ParseOptions{AllowTrailingCommas: true}

	pe := parseErr(t, "[1,]", strict)
	assert.Equal(t, quill.TrailingCharacters, pe.Code)

	v := mustParse(t, "[1,]", relaxed)
	require.Equal(t, 1, v.Len())
	assert.Equal(t, 1.0, v.At(0).Float())

	pe = parseErr(t, `{"a": 1,}`, strict)
	assert.Equal(t, quill.TrailingCharacters, pe.Code)

	v = mustParse(t, `{"a": 1,}`, relaxed)
	assert.Equal(t, 1, v.Len())
}

func TestComments(t *testing.T) {
	text := `
        // leading comment
        {
            "x": 1, /* inline */ "y": 2
            // trailing
        }
    `
	v := mustParse(t, text, quill.ParseOptions{AllowComments: true})
	assert.Equal(t, 2, v.Len())

	// Without the option a comment is just an unexpected '/'; there is no
	// dedicated error category for it.
	pe := parseErr(t, "{ // comment\n \"x\": 1 }", quill.ParseOptions{})
	assert.Equal(t, quill.UnexpectedCharacter, pe.Code)

	pe = parseErr(t, "/* never closed", quill.ParseOptions{AllowComments: true})
	assert.Equal(t, quill.UnexpectedEndOfInput, pe.Code)

	// A slash that does not open a comment is still an error.
	pe = parseErr(t, "/x", quill.ParseOptions{AllowComments: true})
	assert.Equal(t, quill.UnexpectedCharacter, pe.Code)
}

func TestDepthLimit(t *testing.T) {
	opts := quill.ParseOptions{MaxDepth: 3}

	_, err := quill.ParseString("[[[]]]", opts)
	require.NoError(t, err)

	pe := parseErr(t, "[[[[]]]]", opts)
	assert.Equal(t, quill.DepthLimitExceeded, pe.Code)

	pe = parseErr(t, `{"a":{"b":{"c":{}}}}`, opts)
	assert.Equal(t, quill.DepthLimitExceeded, pe.Code)

	// Depth is released on the way out, so siblings at the limit are fine.
	_, err = quill.ParseString("[[[]],[[]]]", opts)
	require.NoError(t, err)

	// Zero means unlimited.
	deep := strings.Repeat("[", 64) + strings.Repeat("]", 64)
	_, err = quill.ParseString(deep, quill.ParseOptions{})
	require.NoError(t, err)
}

func TestTrailingCharacters(t *testing.T) {
	pe := parseErr(t, "1 2", quill.ParseOptions{})
	assert.Equal(t, quill.TrailingCharacters, pe.Code)

	pe = parseErr(t, "{} []", quill.ParseOptions{})
	assert.Equal(t, quill.TrailingCharacters, pe.Code)

	// Trailing comments are fine when comments are on.
	_, err := quill.ParseString("1 // done", quill.ParseOptions{AllowComments: true})
	require.NoError(t, err)
}

func TestEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\r "} {
		pe := parseErr(t, text, quill.ParseOptions{})
		assert.Equal(t, quill.UnexpectedEndOfInput, pe.Code, "input %q", text)
	}

	pe := parseErr(t, "// only a comment", quill.ParseOptions{AllowComments: true})
	assert.Equal(t, quill.UnexpectedEndOfInput, pe.Code)
}

func TestErrorPositions(t *testing.T) {
	text := "{\n  \"x\": 1,\n  oops\n}"
	pe := parseErr(t, text, quill.ParseOptions{})
	assert.LessOrEqual(t, pe.Offset, len(text))
	assert.GreaterOrEqual(t, pe.Offset, 0)
	assert.Equal(t, 3, pe.Line)
	assert.GreaterOrEqual(t, pe.Column, 1)
	assert.NotEmpty(t, pe.Msg)
	assert.Contains(t, pe.Error(), "line 3")

	// Column counts bytes and resets after each line feed.
	pe = parseErr(t, "[true,\n false,\n !]", quill.ParseOptions{})
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 2, pe.Column)

	for _, text := range []string{"", "x", "[1,", `{"a"`, "\"\\u12", "nul"} {
		pe := parseErr(t, text, quill.ParseOptions{})
		assert.GreaterOrEqual(t, pe.Offset, 0, "input %q", text)
		assert.LessOrEqual(t, pe.Offset, len(text), "input %q", text)
		assert.GreaterOrEqual(t, pe.Line, 1, "input %q", text)
		assert.GreaterOrEqual(t, pe.Column, 1, "input %q", text)
	}
}

func TestParseBytes(t *testing.T) {
	v, err := quill.Parse([]byte(`{"n": 1}`), quill.ParseOptions{})
	require.NoError(t, err)
	n, err := v.Get("n")
	require.NoError(t, err)
	assert.Equal(t, 1.0, n.Float())
}

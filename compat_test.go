package quill_test

import (
	"encoding/json"
	"testing"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	segjson "github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"quill"
)

// compatDocs are parsed by every engine and compared structurally; all of
// them decode numbers as float64 when targeting interface{}.
var compatDocs = []string{
	`null`,
	`true`,
	`-12.75`,
	`"plain \"quoted\" text"`,
	`[1,2,[3,[4]],null]`,
	`{"a":1,"b":{"c":[true,false]},"d":"x"}`,
	`{"unicode":"café 😀","empty":{},"list":[]}`,
	`{"big":1e300,"small":-2.5e-9,"zero":0}`,
}

func TestAgreesWithStandardLibrary(t *testing.T) {
	for _, doc := range compatDocs {
		v := mustParse(t, doc, quill.ParseOptions{})

		var want interface{}
		require.NoError(t, json.Unmarshal([]byte(doc), &want), "doc %s", doc)
		require.Equal(t, want, v.Interface(), "doc %s", doc)

		// Output must be accepted by the standard decoder too.
		var back interface{}
		require.NoError(t, json.Unmarshal(quill.Dump(v, quill.WriteOptions{}), &back), "doc %s", doc)
		require.Equal(t, want, back, "doc %s", doc)
	}
}

func TestAgreesWithSonic(t *testing.T) {
	for _, doc := range compatDocs {
		v := mustParse(t, doc, quill.ParseOptions{})
		var want interface{}
		require.NoError(t, sonic.Unmarshal([]byte(doc), &want), "doc %s", doc)
		require.Equal(t, want, v.Interface(), "doc %s", doc)
	}
}

func TestAgreesWithGoccy(t *testing.T) {
	for _, doc := range compatDocs {
		v := mustParse(t, doc, quill.ParseOptions{})
		var want interface{}
		require.NoError(t, gojson.Unmarshal([]byte(doc), &want), "doc %s", doc)
		require.Equal(t, want, v.Interface(), "doc %s", doc)
	}
}

func TestAgreesWithJsoniter(t *testing.T) {
	api := jsoniter.ConfigCompatibleWithStandardLibrary
	for _, doc := range compatDocs {
		v := mustParse(t, doc, quill.ParseOptions{})
		var want interface{}
		require.NoError(t, api.Unmarshal([]byte(doc), &want), "doc %s", doc)
		require.Equal(t, want, v.Interface(), "doc %s", doc)
	}
}

func TestAgreesWithSegmentio(t *testing.T) {
	for _, doc := range compatDocs {
		v := mustParse(t, doc, quill.ParseOptions{})
		var want interface{}
		require.NoError(t, segjson.Unmarshal([]byte(doc), &want), "doc %s", doc)
		require.Equal(t, want, v.Interface(), "doc %s", doc)
	}
}

func TestOutputQueryableWithGjson(t *testing.T) {
	v := mustParse(t, `{"store":{"books":[{"title":"one","price":9.5},{"title":"two","price":12}]}}`, quill.ParseOptions{})
	out := quill.Dump(v, quill.WriteOptions{})

	require.True(t, gjson.ValidBytes(out))
	require.Equal(t, "one", gjson.GetBytes(out, "store.books.0.title").String())
	require.Equal(t, 12.0, gjson.GetBytes(out, "store.books.1.price").Float())
	require.Equal(t, int64(2), gjson.GetBytes(out, "store.books.#").Int())
}

func TestRejectsWhatStandardLibraryRejects(t *testing.T) {
	bad := []string{
		``,
		`{`,
		`[1,,2]`,
		`"unterminated`,
		`tru`,
		`01`,
		`{"a":1}extra`,
	}
	for _, doc := range bad {
		_, err := quill.ParseString(doc, quill.ParseOptions{})
		require.Error(t, err, "doc %q", doc)

		var sink interface{}
		require.Error(t, json.Unmarshal([]byte(doc), &sink), "doc %q", doc)
	}
}

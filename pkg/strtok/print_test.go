package strtok

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func splitSession(t *testing.T, text, delims string) *Session {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.SetString(text))
	require.NoError(t, s.Split(delims))
	return s
}

func TestTrimValue(t *testing.T) {
	tests := []struct {
		value string
		trim  int
		want  string
	}{
		{"hello", 0, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "h"},
		{"αβγδ", 3, "αβ…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimValue(tt.value, tt.trim), "TrimValue(%q, %d)", tt.value, tt.trim)
	}
}

func TestPickPrintFunc(t *testing.T) {
	for _, format := range []string{"text", "INDEXED", "Json", "yaml", "asciitree"} {
		fn, err := PickPrintFunc(format)
		require.NoError(t, err, format)
		assert.NotNil(t, fn, format)
	}
	_, err := PickPrintFunc("xml")
	assert.Error(t, err)
}

func TestPrintString(t *testing.T) {
	s := newSession(t)
	var out bytes.Buffer
	require.NoError(t, PrintString(s, &out))
	assert.Empty(t, out.String())

	require.NoError(t, s.SetString("hello world"))
	require.NoError(t, PrintString(s, &out))
	assert.Equal(t, "string: hello world\n", out.String())

	out.Reset()
	require.NoError(t, s.Split(" "))
	require.NoError(t, PrintString(s, &out))
	assert.Equal(t, "string: hello\n", out.String())
}

func TestPrintTokensText(t *testing.T) {
	s := splitSession(t, "a;b;c", ";")
	var out bytes.Buffer
	require.NoError(t, PrintTokensText(s, &out, nil))
	assert.Equal(t, "a\nb\nc\n", out.String())
}

func TestPrintTokensIndexed(t *testing.T) {
	s := splitSession(t, "kakakaka|lalalala-yayayayaya", "|-")
	var out bytes.Buffer
	require.NoError(t, PrintTokensIndexed(s, &out, &PrintOptions{TrimTokenOnOutput: 5}))
	assert.Equal(t, "str0: kaka…\nstr1: lala…\nstr2: yaya…\n", out.String())
}

func TestPrintNothingWhenStale(t *testing.T) {
	s := splitSession(t, "a b", " ")
	require.NoError(t, s.SetString("c d"))

	for _, format := range []string{"TEXT", "INDEXED", "JSON", "YAML", "ASCIITREE"} {
		fn, err := PickPrintFunc(format)
		require.NoError(t, err)
		var out bytes.Buffer
		require.NoError(t, fn(s, &out, nil), format)
		assert.Empty(t, out.String(), format)
	}
}

func TestPrintTokensJSON(t *testing.T) {
	s := splitSession(t, "x,y", ",")
	var out bytes.Buffer
	require.NoError(t, PrintTokensJSON(s, &out, nil))

	var doc tokenDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, []string{"x", "y"}, doc.Tokens)
}

func TestPrintTokensYAML(t *testing.T) {
	s := splitSession(t, "x,y", ",")
	var out bytes.Buffer
	require.NoError(t, PrintTokensYAML(s, &out, nil))

	var doc tokenDocument
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, []string{"x", "y"}, doc.Tokens)
}

func TestPrintTokensAsciiTree(t *testing.T) {
	s := splitSession(t, "ab cd", " ")
	tree, err := convertToTree(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "tokens", tree.Label)
	assert.Equal(t, []string{"count: 2"}, tree.Props)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "cd", tree.Children[1].Label)
	assert.Equal(t, []string{"index: 1", "span: 3 5"}, tree.Children[1].Props)

	var out bytes.Buffer
	require.NoError(t, PrintTokensAsciiTree(s, &out, nil))
	assert.True(t, strings.Contains(out.String(), "tokens"))
	assert.True(t, strings.Contains(out.String(), "ab"))
	assert.True(t, strings.Contains(out.String(), "cd"))
}

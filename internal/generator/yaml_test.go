package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonconv/internal/models"
)

func TestYAMLGenerator_Generate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     models.Options
		expected string
	}{
		{
			name:     "nested mappings",
			input:    `{"a":{"b":{"c":1}}}`,
			expected: "a:\n  b:\n    c: 1",
		},
		{
			name:     "custom indent",
			input:    `{"a":{"b":{"c":1}}}`,
			opts:     models.Options{Indent: 4},
			expected: "a:\n    b:\n        c: 1",
		},
		{
			name:     "scalars",
			input:    `{"s": "text", "n": 1.5, "t": true, "z": null}`,
			expected: "s: text\nn: 1.5\nt: true\nz: null",
		},
		{
			name:     "empty collections",
			input:    `{"list": [], "map": {}}`,
			expected: "list: []\nmap: {}",
		},
		{
			name:     "sequence of scalars under a key",
			input:    `{"tags": ["a", "b"]}`,
			expected: "tags:\n  - a\n  - b",
		},
		{
			name:     "sequence of mappings",
			input:    `{"users": [{"id": 1, "name": "Ann"}, {"id": 2, "name": "Bo"}]}`,
			expected: "users:\n  - id: 1\n    name: Ann\n  - id: 2\n    name: Bo",
		},
		{
			name:     "nested sequences",
			input:    `[[1, 2], [], [{"a": [true]}]]`,
			expected: "- - 1\n  - 2\n- []\n- - a:\n      - true",
		},
		{
			name:     "root scalar",
			input:    `"plain"`,
			expected: "plain",
		},
		{
			name:     "root null",
			input:    `null`,
			expected: "null",
		},
		{
			name:     "quoted keys",
			input:    `{"": 1, "true": 2, "a: b": 3, "#x": 4}`,
			expected: "\"\": 1\n\"true\": 2\n\"a: b\": 3\n\"#x\": 4",
		},
	}

	g := NewYAMLGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, g, tt.input, tt.opts))
		})
	}
}

func TestYAMLString_Quoting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"hello world", "hello world"},
		{"", `""`},
		{"true", `"true"`},
		{"false", `"false"`},
		{"null", `"null"`},
		{"123", `"123"`},
		{"1.5", `"1.5"`},
		{"-7", `"-7"`},
		{"0x1F", `"0x1F"`},
		{" lead", `" lead"`},
		{"trail ", `"trail "`},
		{"*ref", `"*ref"`},
		{"say \"hi\"", "say \"hi\""},
		{"\"hi\"", `"\"hi\""`},
		{"a: b", `"a: b"`},
		{"a #b", `"a #b"`},
		{"line\nbreak", `"line\nbreak"`},
		{"tab\there", `"tab\there"`},
		{"back\\slash", "back\\slash"},
		{"- item", `"- item"`},
		{"v1.2.3", "v1.2.3"},
		{"ünïcødé", "ünïcødé"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, yamlString(tt.input))
		})
	}
}

func TestYAMLGenerator_RoundTrip(t *testing.T) {
	input := `{
		"name": "Alice",
		"empty": "",
		"reserved": ["true", "false", "null", "123", "1e3", "0o17"],
		"age": 30,
		"ratio": 0.25,
		"active": false,
		"missing": null,
		"tricky": ["a: b", "# not a comment", "- dash", "x\ny", "{brace}", "it's", "C:\\path"],
		"nested": {"list": [{"k": [1, {"deep": "v"}]}, []], "obj": {}},
		"matrix": [[1, 2], [3]]
	}`

	out := render(t, NewYAMLGenerator(), input, models.Options{})

	var decoded any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded), out)

	expected := map[string]any{
		"name":     "Alice",
		"empty":    "",
		"reserved": []any{"true", "false", "null", "123", "1e3", "0o17"},
		"age":      30,
		"ratio":    0.25,
		"active":   false,
		"missing":  nil,
		"tricky":   []any{"a: b", "# not a comment", "- dash", "x\ny", "{brace}", "it's", `C:\path`},
		"nested": map[string]any{
			"list": []any{
				map[string]any{"k": []any{1, map[string]any{"deep": "v"}}},
				[]any{},
			},
			"obj": map[string]any{},
		},
		"matrix": []any{[]any{1, 2}, []any{3}},
	}
	assert.Equal(t, expected, decoded)
}

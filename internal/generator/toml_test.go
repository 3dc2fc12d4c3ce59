package generator

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonconv/internal/models"
)

func TestTOMLGenerator_Generate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain keys",
			input:    `{"title": "x", "n": 1, "f": 1.5, "ok": true, "list": [1, "a", [2]]}`,
			expected: "title = \"x\"\nn = 1\nf = 1.5\nok = true\nlist = [1, \"a\", [2]]\n",
		},
		{
			name:     "tables come after plain keys",
			input:    `{"server": {"host": "h", "port": 80}, "name": "app"}`,
			expected: "name = \"app\"\n\n[server]\nhost = \"h\"\nport = 80\n",
		},
		{
			name:  "nested table paths",
			input: `{"a": {"b": {"c": 1}, "d": 2}}`,
			expected: "[a]\nd = 2\n\n" +
				"[a.b]\nc = 1\n",
		},
		{
			name:  "array of tables",
			input: `{"users": [{"id": 1}, {"id": 2, "role": {"admin": true}}], "count": 2}`,
			expected: "count = 2\n\n" +
				"[[users]]\nid = 1\n\n" +
				"[[users]]\nid = 2\n\n" +
				"[users.role]\nadmin = true\n",
		},
		{
			name:     "nulls are omitted",
			input:    `{"a": null, "b": [1, null, 2], "c": {"d": null}}`,
			expected: "b = [1, 2]\n\n[c]\n",
		},
		{
			name:     "quoted keys",
			input:    `{"first name": 1, "a.b": {"x": 2}}`,
			expected: "\"first name\" = 1\n\n[\"a.b\"]\nx = 2\n",
		},
		{
			name:     "strings with quotes or newlines use literal blocks",
			input:    `{"q": "say \"hi\"", "nl": "a\nb", "tab": "a\tb", "bs": "C:\\dir"}`,
			expected: "q = '''say \"hi\"'''\nnl = '''a\nb'''\ntab = \"a\\tb\"\nbs = \"C:\\\\dir\"\n",
		},
		{
			name:     "objects inside arrays are inline tables",
			input:    `{"mixed": [1, {"k": "v", "n": null}, {}]}`,
			expected: "mixed = [1, { k = \"v\" }, {}]\n",
		},
		{
			name:     "empty array",
			input:    `{"none": []}`,
			expected: "none = []\n",
		},
		{
			name:     "null root",
			input:    `null`,
			expected: "",
		},
		{
			name:     "scalar root",
			input:    `7`,
			expected: "7",
		},
	}

	g := NewTOMLGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, g, tt.input, models.Options{}))
		})
	}
}

func TestTOMLGenerator_RoundTrip(t *testing.T) {
	input := `{
		"title": "Config \\ \"main\"",
		"version": 3,
		"ratio": 0.5,
		"enabled": true,
		"ports": [80, 443],
		"owner": {"name": "Tom", "contact": {"email": "t@example.com"}},
		"late": "after tables",
		"servers": [
			{"name": "alpha", "tags": ["a"]},
			{"name": "beta", "meta": {"zone": "eu"}}
		]
	}`

	out := render(t, NewTOMLGenerator(), input, models.Options{})

	var decoded map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded), out)

	expected := map[string]any{
		"title":   "Config \\ \"main\"",
		"version": int64(3),
		"ratio":   0.5,
		"enabled": true,
		"ports":   []any{int64(80), int64(443)},
		"owner": map[string]any{
			"name":    "Tom",
			"contact": map[string]any{"email": "t@example.com"},
		},
		"late": "after tables",
		"servers": []any{
			map[string]any{"name": "alpha", "tags": []any{"a"}},
			map[string]any{"name": "beta", "meta": map[string]any{"zone": "eu"}},
		},
	}
	assert.Equal(t, expected, decoded)
}

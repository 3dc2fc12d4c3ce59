package generator

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonconv/internal/models"
)

func TestCSVGenerator_Generate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single object",
			input:    `{"name":"Alice","age":30}`,
			expected: "name,age\nAlice,30",
		},
		{
			name:     "empty array",
			input:    `[]`,
			expected: "",
		},
		{
			name:     "array without objects",
			input:    `[1, 2, "x"]`,
			expected: "",
		},
		{
			name:     "header names are quoted like string cells",
			input:    `{"a,b": 1, "c\"d": 2, "plain": 3}`,
			expected: "\"a,b\",\"c\"\"d\",plain\n1,2,3",
		},
		{
			name:     "missing and null cells are empty",
			input:    `[{"a": 1, "b": null}, {"c": true}]`,
			expected: "a,b,c\n1,,\n,,true",
		},
		{
			name:     "nested objects use dotted columns",
			input:    `[{"id": 1, "geo": {"lat": 1.5, "lng": -2}}]`,
			expected: "id,geo.lat,geo.lng\n1,1.5,-2",
		},
		{
			name:     "arrays are quoted JSON",
			input:    `{"tags": ["a", "b"], "empty": []}`,
			expected: "tags,empty\n\"[\"\"a\"\",\"\"b\"\"]\",[]",
		},
		{
			name:     "quoting only where needed",
			input:    `{"text": "a,b", "quote": "say \"hi\"", "line": "x\ny", "plain": "hello world"}`,
			expected: "text,quote,line,plain\n\"a,b\",\"say \"\"hi\"\"\",\"x\ny\",hello world",
		},
		{
			name:     "scalar root",
			input:    `42`,
			expected: "value\n42",
		},
		{
			name:     "unwrapped single array entry",
			input:    `{"rows": [{"x": 1}, {"x": 2}]}`,
			expected: "x\n1\n2",
		},
		{
			name:     "numbers use shortest form",
			input:    `{"big": 1e21, "small": 0.0000001, "int": 100.0}`,
			expected: "big,small,int\n1e+21,1e-7,100",
		},
	}

	g := NewCSVGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, g, tt.input, models.Options{}))
		})
	}
}

func TestCSVGenerator_NoRaggedRows(t *testing.T) {
	input := `[
		{"id": 1, "name": "a,b", "meta": {"k": "v"}},
		{"id": 2, "tags": ["x"], "note": "line\nbreak"},
		{"other": null},
		{"name": "\"quoted\"", "meta": {"j": false}}
	]`

	out := render(t, NewCSVGenerator(), input, models.Options{})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	header := records[0]
	assert.Equal(t, []string{"id", "name", "meta.k", "tags", "note", "other", "meta.j"}, header)
	for _, record := range records[1:] {
		assert.Len(t, record, len(header))
	}
	assert.Equal(t, "a,b", records[1][1])
	assert.Equal(t, "line\nbreak", records[2][4])
	assert.Equal(t, `["x"]`, records[2][3])
	assert.Equal(t, `"quoted"`, records[4][1])
	assert.Equal(t, "false", records[4][6])
}

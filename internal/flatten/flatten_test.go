package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonconv/internal/models"
	"github.com/mcncl/jsonconv/internal/parser"
)

type field struct {
	Key   string
	Value any
}

// fields renders rows as comparable slices; collections are compared as compact JSON.
func fields(rows []Row) [][]field {
	out := make([][]field, 0, len(rows))
	for _, row := range rows {
		r := make([]field, 0, row.Len())
		for _, key := range row.Keys() {
			v, _ := row.Get(key)
			switch v.(type) {
			case *orderedmap.OrderedMap, []models.JSONValue:
				v = "json:" + models.Stringify(v)
			}
			r = append(r, field{Key: key, Value: v})
		}
		out = append(out, r)
	}
	return out
}

func mustParse(t *testing.T, input string) *models.Node {
	t.Helper()
	node, err := parser.ParseString(input)
	require.NoError(t, err)
	return node
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxDepth int
		expected [][]field
	}{
		{
			name:     "flat object",
			input:    `{"a": 1, "b": 2}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"a", 1.0}, {"b", 2.0}}},
		},
		{
			name:     "flat object at depth zero",
			input:    `{"a": 1, "b": 2}`,
			maxDepth: 0,
			expected: [][]field{{{"a", 1.0}, {"b", 2.0}}},
		},
		{
			name:     "nested object uses dotted keys",
			input:    `{"id": 1, "address": {"city": "Oslo", "geo": {"lat": 59.9}}}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"id", 1.0}, {"address.city", "Oslo"}, {"address.geo.lat", 59.9}}},
		},
		{
			name:     "depth limit keeps nested object",
			input:    `{"id": 1, "address": {"city": "Oslo", "geo": {"lat": 59.9}}}`,
			maxDepth: 1,
			expected: [][]field{{{"id", 1.0}, {"address.city", "Oslo"}, {"address.geo", `json:{"lat":59.9}`}}},
		},
		{
			name:     "arrays become JSON strings",
			input:    `{"tags": ["a", "b"], "empty": []}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"tags", `["a","b"]`}, {"empty", `[]`}}},
		},
		{
			name:     "null values are kept",
			input:    `{"a": null, "b": {"c": null}}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"a", nil}, {"b.c", nil}}},
		},
		{
			name:     "array of objects",
			input:    `[{"id": 1}, {"id": 2, "extra": true}]`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"id", 1.0}}, {{"id", 2.0}, {"extra", true}}},
		},
		{
			name:     "non-object elements are dropped",
			input:    `[{"id": 1}, 5, "x", null, [{"id": 3}], {"id": 2}]`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"id", 1.0}}, {{"id", 2.0}}},
		},
		{
			name:     "empty array",
			input:    `[]`,
			maxDepth: NoDepthLimit,
			expected: [][]field{},
		},
		{
			name:     "single array-valued entry is unwrapped",
			input:    `{"users": [{"id": 1}, {"id": 2}]}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"id", 1.0}}, {{"id", 2.0}}},
		},
		{
			name:     "single scalar-valued entry is not unwrapped",
			input:    `{"users": 3}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"users", 3.0}}},
		},
		{
			name:     "two entries are not unwrapped",
			input:    `{"users": [{"id": 1}], "total": 1}`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"users", `[{"id":1}]`}, {"total", 1.0}}},
		},
		{
			name:     "scalar root",
			input:    `"hello"`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"value", "hello"}}},
		},
		{
			name:     "null root",
			input:    `null`,
			maxDepth: NoDepthLimit,
			expected: [][]field{{{"value", nil}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Flatten(mustParse(t, tt.input), tt.maxDepth)
			if diff := cmp.Diff(tt.expected, fields(rows)); diff != "" {
				t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenObject_IdempotentOnFlatRows(t *testing.T) {
	node := mustParse(t, `{"a": 1, "b.c": "x", "d": null}`)

	once := FlattenObject(node.Object(), 0, NoDepthLimit)
	twice := FlattenObject(once, 0, NoDepthLimit)

	if diff := cmp.Diff(fields([]Row{once}), fields([]Row{twice})); diff != "" {
		t.Errorf("FlattenObject() not idempotent (-once +twice):\n%s", diff)
	}
}

func TestColumns(t *testing.T) {
	rows := Flatten(mustParse(t, `[{"a": 1, "b": 2}, {"c": 3, "a": 4}, {"d": null}]`), NoDepthLimit)

	assert.Equal(t, []string{"a", "b", "c", "d"}, Columns(rows))
	assert.Empty(t, Columns(nil))
}

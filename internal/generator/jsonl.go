package generator

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/models"
)

// JSONLGenerator renders newline-delimited JSON.
type JSONLGenerator struct{}

// NewJSONLGenerator creates a new JSONLGenerator instance
func NewJSONLGenerator() *JSONLGenerator {
	return &JSONLGenerator{}
}

func (g *JSONLGenerator) Name() models.Format { return models.FormatJSONL }

func (g *JSONLGenerator) Description() string {
	return "JSON Lines (newline-delimited JSON)"
}

// Generate writes one compact line per non-null object or array element of an
// array root. An object root is written as a single line, never split per entry,
// and a scalar root is wrapped as {"value": scalar}.
func (g *JSONLGenerator) Generate(node *models.Node, _ models.Options) string {
	switch node.Kind {
	case models.KindArray:
		lines := make([]string, 0, len(node.Array()))
		for _, item := range node.Array() {
			switch item.(type) {
			case *orderedmap.OrderedMap, []models.JSONValue:
				lines = append(lines, models.Stringify(item))
			}
		}
		return strings.Join(lines, "\n")
	case models.KindObject:
		return models.Stringify(node.Value)
	default:
		wrapped := orderedmap.New()
		wrapped.Set("value", node.Value)
		return models.Stringify(wrapped)
	}
}

package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/flatten"
	"github.com/mcncl/jsonconv/internal/models"
)

// CSVGenerator renders the flattened row set as comma-separated values.
type CSVGenerator struct{}

// NewCSVGenerator creates a new CSVGenerator instance
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

func (g *CSVGenerator) Name() models.Format { return models.FormatCSV }

func (g *CSVGenerator) Description() string {
	return "Comma-separated values (flat structure only)"
}

// Generate writes a header of all columns followed by one line per row.
// An empty row set produces an empty string.
func (g *CSVGenerator) Generate(node *models.Node, _ models.Options) string {
	rows := flatten.Flatten(node, flatten.NoDepthLimit)
	if len(rows) == 0 {
		return ""
	}

	columns := flatten.Columns(rows)
	header := make([]string, len(columns))
	for i, column := range columns {
		header[i] = csvString(column)
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, column := range columns {
			value, _ := row.Get(column)
			cells[i] = csvCell(value)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

func csvCell(value models.JSONValue) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return csvString(v)
	case *orderedmap.OrderedMap, []models.JSONValue:
		return `"` + strings.ReplaceAll(models.Stringify(v), `"`, `""`) + `"`
	case float64:
		return models.FormatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// csvString doubles quotes and wraps the field only when it holds a comma, quote or newline.
func csvString(s string) string {
	escaped := strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(escaped, ",\"\n") {
		return `"` + escaped + `"`
	}
	return escaped
}

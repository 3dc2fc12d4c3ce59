package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/flatten"
	"github.com/mcncl/jsonconv/internal/models"
)

var sqlIdentifierUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SQLGenerator renders the flattened row set as INSERT statements.
type SQLGenerator struct{}

// NewSQLGenerator creates a new SQLGenerator instance
func NewSQLGenerator() *SQLGenerator {
	return &SQLGenerator{}
}

func (g *SQLGenerator) Name() models.Format { return models.FormatSQL }

func (g *SQLGenerator) Description() string {
	return "SQL INSERT statements"
}

// Generate emits one INSERT per row into opts.TableName (default "data").
// Null fields are left out of their statement and rows without any
// non-null field produce no statement.
func (g *SQLGenerator) Generate(node *models.Node, opts models.Options) string {
	rows := flatten.Flatten(node, flatten.NoDepthLimit)
	if len(rows) == 0 {
		return ""
	}

	table := quoteIdentifier(opts.Table())
	columns := flatten.Columns(rows)
	statements := make([]string, 0, len(rows))

	for _, row := range rows {
		names := make([]string, 0, len(columns))
		values := make([]string, 0, len(columns))
		for _, column := range columns {
			value, found := row.Get(column)
			if !found || value == nil {
				continue
			}
			names = append(names, quoteIdentifier(column))
			values = append(values, sqlLiteral(value))
		}
		if len(names) == 0 {
			continue
		}
		statements = append(statements, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
			table, strings.Join(names, ", "), strings.Join(values, ", ")))
	}

	return strings.Join(statements, "\n")
}

// quoteIdentifier replaces every character outside [A-Za-z0-9_] and double-quotes the result.
func quoteIdentifier(name string) string {
	return `"` + sqlIdentifierUnsafe.ReplaceAllString(name, "_") + `"`
}

func sqlLiteral(value models.JSONValue) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return sqlString(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return models.FormatNumber(v)
	case *orderedmap.OrderedMap, []models.JSONValue:
		return sqlString(models.Stringify(v))
	default:
		return "NULL"
	}
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package generator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/models"
)

var tomlBareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TOMLGenerator renders an object root as a TOML document.
type TOMLGenerator struct{}

// NewTOMLGenerator creates a new TOMLGenerator instance
func NewTOMLGenerator() *TOMLGenerator {
	return &TOMLGenerator{}
}

func (g *TOMLGenerator) Name() models.Format { return models.FormatTOML }

func (g *TOMLGenerator) Description() string {
	return "TOML v1.0 format"
}

// Generate writes plain keys first, then [tables], then [[arrays of tables]],
// recursively for every table. TOML has no null, so null keys and null array
// elements are left out. A root that is not an object renders as a bare inline value.
func (g *TOMLGenerator) Generate(node *models.Node, _ models.Options) string {
	switch v := node.Value.(type) {
	case nil:
		return ""
	case *orderedmap.OrderedMap:
		var b strings.Builder
		writeTOMLTable(&b, v, "")
		return b.String()
	default:
		return tomlInline(v)
	}
}

func writeTOMLTable(b *strings.Builder, obj *orderedmap.OrderedMap, prefix string) {
	var tables, arrays []string

	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		switch v := value.(type) {
		case nil:
			continue
		case *orderedmap.OrderedMap:
			tables = append(tables, key)
		case []models.JSONValue:
			if isTableArray(v) {
				arrays = append(arrays, key)
				continue
			}
			b.WriteString(tomlKey(key) + " = " + tomlInline(v) + "\n")
		default:
			b.WriteString(tomlKey(key) + " = " + tomlInline(v) + "\n")
		}
	}

	for _, key := range tables {
		value, _ := obj.Get(key)
		path := tomlPath(prefix, key)
		writeTOMLHeader(b, "["+path+"]")
		writeTOMLTable(b, value.(*orderedmap.OrderedMap), path)
	}

	for _, key := range arrays {
		value, _ := obj.Get(key)
		path := tomlPath(prefix, key)
		for _, item := range value.([]models.JSONValue) {
			element, ok := item.(*orderedmap.OrderedMap)
			if !ok {
				continue
			}
			writeTOMLHeader(b, "[["+path+"]]")
			writeTOMLTable(b, element, path)
		}
	}
}

func writeTOMLHeader(b *strings.Builder, header string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(header + "\n")
}

// isTableArray reports whether arr holds at least one object and nothing but objects and nulls.
func isTableArray(arr []models.JSONValue) bool {
	found := false
	for _, item := range arr {
		switch item.(type) {
		case nil:
		case *orderedmap.OrderedMap:
			found = true
		default:
			return false
		}
	}
	return found
}

func tomlPath(prefix, key string) string {
	if prefix == "" {
		return tomlKey(key)
	}
	return prefix + "." + tomlKey(key)
}

func tomlKey(key string) string {
	if tomlBareKey.MatchString(key) {
		return key
	}
	return tomlBasicString(key)
}

func tomlInline(value models.JSONValue) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return tomlNumber(v)
	case string:
		if strings.ContainsAny(v, "\n\"") {
			return "'''" + v + "'''"
		}
		return tomlBasicString(v)
	case []models.JSONValue:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			items = append(items, tomlInline(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *orderedmap.OrderedMap:
		pairs := make([]string, 0, v.Len())
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			if item == nil {
				continue
			}
			pairs = append(pairs, tomlKey(key)+" = "+tomlInline(item))
		}
		if len(pairs) == 0 {
			return "{}"
		}
		return "{ " + strings.Join(pairs, ", ") + " }"
	default:
		return `""`
	}
}

func tomlNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return models.FormatNumber(f)
}

func tomlBasicString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

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

// yamlIndicators are the characters that cannot start a plain scalar.
const yamlIndicators = " \t\n\r,:{}[]&*#?|<>%'\"`!@"

var (
	yamlDigitsOnly  = regexp.MustCompile(`^\d+$`)
	yamlNumberLike  = regexp.MustCompile(`^[-+]?(\.\d+|\d+(\.\d*)?)([eE][-+]?\d+)?$`)
	yamlSpecialNum  = regexp.MustCompile(`^(0x[0-9a-fA-F]+|0o[0-7]+|[-+]?\.(inf|Inf|INF)|\.(nan|NaN|NAN))$`)
	yamlReservedLit = map[string]struct{}{
		"true": {}, "True": {}, "TRUE": {},
		"false": {}, "False": {}, "FALSE": {},
		"null": {}, "Null": {}, "NULL": {}, "~": {},
	}
)

// YAMLGenerator renders the raw value tree as block-style YAML.
type YAMLGenerator struct{}

// NewYAMLGenerator creates a new YAMLGenerator instance
func NewYAMLGenerator() *YAMLGenerator {
	return &YAMLGenerator{}
}

func (g *YAMLGenerator) Name() models.Format { return models.FormatYAML }

func (g *YAMLGenerator) Description() string {
	return "YAML 1.2 format"
}

// Generate renders node.Value, indenting nested blocks by opts.Indent spaces.
func (g *YAMLGenerator) Generate(node *models.Node, opts models.Options) string {
	return strings.Join(yamlLines(node.Value, opts.IndentWidth()), "\n")
}

// yamlLines renders value as lines relative to column zero.
func yamlLines(value models.JSONValue, width int) []string {
	switch v := value.(type) {
	case []models.JSONValue:
		if len(v) == 0 {
			return []string{"[]"}
		}
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if !yamlIsBlock(item) {
				lines = append(lines, "- "+yamlInline(item))
				continue
			}
			// Continuation lines line up under the first entry after "- ".
			for i, line := range yamlLines(item, width) {
				if i == 0 {
					lines = append(lines, "- "+line)
				} else {
					lines = append(lines, "  "+line)
				}
			}
		}
		return lines
	case *orderedmap.OrderedMap:
		if v.Len() == 0 {
			return []string{"{}"}
		}
		pad := strings.Repeat(" ", width)
		lines := make([]string, 0, v.Len())
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			if !yamlIsBlock(item) {
				lines = append(lines, yamlString(key)+": "+yamlInline(item))
				continue
			}
			lines = append(lines, yamlString(key)+":")
			for _, line := range yamlLines(item, width) {
				lines = append(lines, pad+line)
			}
		}
		return lines
	default:
		return []string{yamlInline(v)}
	}
}

// yamlIsBlock reports whether value needs its own indented block.
func yamlIsBlock(value models.JSONValue) bool {
	switch v := value.(type) {
	case []models.JSONValue:
		return len(v) > 0
	case *orderedmap.OrderedMap:
		return v.Len() > 0
	default:
		return false
	}
}

// yamlInline renders scalars and empty collections.
func yamlInline(value models.JSONValue) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		switch {
		case math.IsNaN(v):
			return ".nan"
		case math.IsInf(v, 1):
			return ".inf"
		case math.IsInf(v, -1):
			return "-.inf"
		}
		return models.FormatNumber(v)
	case string:
		return yamlString(v)
	case []models.JSONValue:
		return "[]"
	case *orderedmap.OrderedMap:
		return "{}"
	default:
		return "null"
	}
}

// yamlString emits s bare unless a plain scalar would be misread, then double-quotes it.
func yamlString(s string) string {
	if !yamlNeedsQuotes(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// yamlLooksNumeric reports whether a YAML loader would resolve s to a number.
func yamlLooksNumeric(s string) bool {
	if yamlNumberLike.MatchString(s) || yamlSpecialNum.MatchString(s) {
		return true
	}
	if !strings.ContainsRune("+-.0123456789", rune(s[0])) {
		return false
	}
	plain := strings.ReplaceAll(s, "_", "")
	if _, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseUint(plain, 0, 64); err == nil {
		return true
	}
	return false
}

func yamlNeedsQuotes(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsRune(yamlIndicators, rune(s[0])) {
		return true
	}
	if _, reserved := yamlReservedLit[s]; reserved {
		return true
	}
	if yamlDigitsOnly.MatchString(s) || yamlLooksNumeric(s) {
		return true
	}
	if s == "-" || strings.HasPrefix(s, "- ") || strings.HasSuffix(s, " ") || strings.HasSuffix(s, ":") {
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return true
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

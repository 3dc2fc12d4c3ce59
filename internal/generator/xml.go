package generator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/mcncl/jsonconv/internal/models"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	xmlItemTag     = "item"
	xmlIndent      = "  "
)

var (
	xmlNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	xmlEscaper    = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// XMLGenerator renders the raw value tree as nested XML elements.
type XMLGenerator struct{}

// NewXMLGenerator creates a new XMLGenerator instance
func NewXMLGenerator() *XMLGenerator {
	return &XMLGenerator{}
}

func (g *XMLGenerator) Name() models.Format { return models.FormatXML }

func (g *XMLGenerator) Description() string {
	return "XML format"
}

// Generate wraps node.Value in a root element named opts.RootName (default "root").
// Array elements become <item> children, object entries become sanitized child tags.
func (g *XMLGenerator) Generate(node *models.Node, opts models.Options) string {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	writeXMLElement(&b, node.Value, opts.RootOr(models.DefaultXMLRoot), 0)
	return b.String()
}

func writeXMLElement(b *strings.Builder, value models.JSONValue, tag string, depth int) {
	indent := strings.Repeat(xmlIndent, depth)

	switch v := value.(type) {
	case bool:
		writeXMLText(b, indent, tag, strconv.FormatBool(v))
	case float64:
		writeXMLText(b, indent, tag, models.FormatNumber(v))
	case string:
		writeXMLText(b, indent, tag, xmlEscaper.Replace(v))
	case []models.JSONValue:
		if len(v) == 0 {
			writeXMLEmpty(b, indent, tag)
			return
		}
		b.WriteString(indent + "<" + tag + ">\n")
		for _, item := range v {
			writeXMLElement(b, item, xmlItemTag, depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	case *orderedmap.OrderedMap:
		if v.Len() == 0 {
			writeXMLEmpty(b, indent, tag)
			return
		}
		b.WriteString(indent + "<" + tag + ">\n")
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			writeXMLElement(b, item, xmlName(key), depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	default:
		writeXMLEmpty(b, indent, tag)
	}
}

func writeXMLText(b *strings.Builder, indent, tag, text string) {
	b.WriteString(indent + "<" + tag + ">" + text + "</" + tag + ">\n")
}

func writeXMLEmpty(b *strings.Builder, indent, tag string) {
	b.WriteString(indent + "<" + tag + " />\n")
}

// xmlName replaces every character outside [A-Za-z0-9_-] with an underscore.
func xmlName(key string) string {
	name := xmlNameUnsafe.ReplaceAllString(key, "_")
	if name == "" {
		return "_"
	}
	return name
}

package generator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/mcncl/jsonconv/internal/models"
)

var (
	tsWordSeparator = regexp.MustCompile(`[^A-Za-z0-9]+`)
	tsIdentifier    = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

	tsReservedWords = []string{
		"break", "case", "catch", "class", "const", "continue", "debugger", "default",
		"delete", "do", "else", "enum", "export", "extends", "false", "finally",
		"for", "function", "if", "import", "in", "instanceof", "new", "null",
		"return", "super", "switch", "this", "throw", "true", "try", "typeof",
		"var", "void", "while", "with",
	}
)

// TypeScriptGenerator renders TypeScript interface declarations from the IR.
// It is the one generator that walks node children instead of raw values.
type TypeScriptGenerator struct{}

// NewTypeScriptGenerator creates a new TypeScriptGenerator instance
func NewTypeScriptGenerator() *TypeScriptGenerator {
	return &TypeScriptGenerator{}
}

func (g *TypeScriptGenerator) Name() models.Format { return models.FormatTypeScript }

func (g *TypeScriptGenerator) Description() string {
	return "TypeScript interface/type definitions"
}

// Generate declares one interface per object in the tree, the root first and
// nested objects after it in depth-first order.
func (g *TypeScriptGenerator) Generate(node *models.Node, opts models.Options) string {
	rootName := ToPascalCase(opts.RootOr(models.DefaultSchemaName))
	w := &tsWriter{
		indent: strings.Repeat(" ", opts.IndentWidth()),
		names:  make(map[string]int),
	}

	switch {
	case node.Kind == models.KindObject:
		w.declare(node, rootName)
	case node.Kind == models.KindArray && len(node.Children) == 1 && node.Children[0].Kind == models.KindObject:
		elemBase := Singularize(rootName)
		if elemBase == rootName {
			w.declare(node.Children[0], rootName)
			break
		}
		idx := w.reserveAlias(rootName)
		elemType := w.declare(node.Children[0], elemBase) + "[]"
		w.out[idx].body = elemType
	default:
		idx := w.reserveAlias(rootName)
		rootType := w.typeOf(node, rootName)
		w.out[idx].body = rootType
	}

	decls := make([]string, 0, len(w.out))
	for _, d := range w.out {
		decls = append(decls, d.String())
	}
	return strings.Join(decls, "\n")
}

// tsDecl is one top-level declaration. For an interface body holds everything
// after the name, for an alias it holds the aliased type.
type tsDecl struct {
	base  string
	name  string
	body  string
	alias bool
}

func (d tsDecl) String() string {
	if d.alias {
		return "type " + d.name + " = " + d.body + ";\n"
	}
	return "interface " + d.name + d.body
}

type tsWriter struct {
	indent string
	names  map[string]int
	out    []tsDecl
}

// declare emits an interface for an object node and returns its name.
// An interface identical to an earlier one with the same base name is reused.
func (w *tsWriter) declare(node *models.Node, base string) string {
	name := w.uniqueName(base)
	idx := len(w.out)
	w.out = append(w.out, tsDecl{base: base, name: name})

	var b strings.Builder
	b.WriteString(" {\n")
	for _, child := range node.Children {
		optional := "?"
		if child.Metadata.IsRequired {
			optional = ""
		}
		propType := w.typeOf(child, ToPascalCase(child.Name()))
		fmt.Fprintf(&b, "%s%s%s: %s;\n", w.indent, SafePropertyName(child.Name()), optional, propType)
	}
	b.WriteString("}\n")
	body := b.String()

	for _, prev := range w.out[:idx] {
		if prev.alias || prev.base != base || prev.body != body {
			continue
		}
		// A matching body means every nested object matched too, so nothing was
		// declared after the placeholder and the reserved name can be released.
		w.out = slices.Delete(w.out, idx, idx+1)
		w.names[base]--
		return prev.name
	}

	w.out[idx].body = body
	return name
}

// reserveAlias claims name for a type alias and returns its slot in the output.
func (w *tsWriter) reserveAlias(name string) int {
	w.names[name]++
	w.out = append(w.out, tsDecl{name: name, alias: true})
	return len(w.out) - 1
}

func (w *tsWriter) typeOf(node *models.Node, base string) string {
	switch node.Kind {
	case models.KindString:
		return "string"
	case models.KindNumber:
		return "number"
	case models.KindBoolean:
		return "boolean"
	case models.KindArray:
		if len(node.Children) == 0 {
			return "any[]"
		}
		return w.typeOf(node.Children[0], Singularize(base)) + "[]"
	case models.KindObject:
		return w.declare(node, base)
	default:
		return "null"
	}
}

func (w *tsWriter) uniqueName(base string) string {
	count := w.names[base]
	w.names[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, count+1)
}

// ToPascalCase splits s on runs of non-alphanumeric characters and upper-cases
// the first letter of every segment. The rest of each segment is kept as is.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, word := range tsWordSeparator.Split(s, -1) {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	name := b.String()
	if name == "" {
		return "Object"
	}
	if unicode.IsDigit(rune(name[0])) {
		return "_" + name
	}
	return name
}

// Singularize strips an English plural suffix: "ies" becomes "y", then "es"
// and "s" are dropped. It is a heuristic, "Status" becomes "Statu".
func Singularize(s string) string {
	var singular string
	switch {
	case strings.HasSuffix(s, "ies"):
		singular = s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "es"):
		singular = s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		singular = s[:len(s)-1]
	default:
		return s
	}
	if singular == "" {
		return s
	}
	return singular
}

// SafePropertyName returns name unchanged when it is a valid identifier and not
// a reserved word, otherwise as a quoted string literal.
func SafePropertyName(name string) string {
	if slices.Contains(tsReservedWords, name) || !tsIdentifier.MatchString(name) {
		return models.Stringify(name)
	}
	return name
}

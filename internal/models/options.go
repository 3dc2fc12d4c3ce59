package models

// Format identifies a target output format.
type Format string

// Formats with a shipped generator.
const (
	FormatCSV        Format = "csv"
	FormatSQL        Format = "sql"
	FormatXML        Format = "xml"
	FormatYAML       Format = "yaml"
	FormatTOML       Format = "toml"
	FormatTypeScript Format = "typescript"
	FormatJSONL      Format = "jsonl"
)

// Reserved identifiers. No generator is registered for them, so converting to
// one of these fails as unsupported.
const (
	FormatGo       Format = "go"
	FormatRust     Format = "rust"
	FormatJava     Format = "java"
	FormatCSharp   Format = "csharp"
	FormatPython   Format = "python"
	FormatGraphQL  Format = "graphql"
	FormatProtobuf Format = "protobuf"
	FormatAvro     Format = "avro"
)

// Default option values.
const (
	DefaultIndent     = 2
	DefaultTableName  = "data"
	DefaultSchemaName = "Data"
	DefaultXMLRoot    = "root"
)

// Options configures a single conversion. Zero values mean "use the default".
type Options struct {
	Format    Format
	Indent    int
	TableName string
	RootName  string
	// Pretty is accepted but no generator reads it.
	Pretty bool
	// Stream is reserved; no generator streams.
	Stream bool
}

// IndentWidth returns the indentation width, falling back to DefaultIndent.
func (o Options) IndentWidth() int {
	if o.Indent <= 0 {
		return DefaultIndent
	}
	return o.Indent
}

// Table returns the SQL table name, falling back to DefaultTableName.
func (o Options) Table() string {
	if o.TableName == "" {
		return DefaultTableName
	}
	return o.TableName
}

// RootOr returns the root name, or fallback when none is set.
func (o Options) RootOr(fallback string) string {
	if o.RootName == "" {
		return fallback
	}
	return o.RootName
}

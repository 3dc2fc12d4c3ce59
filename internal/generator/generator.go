package generator

import (
	"github.com/mcncl/jsonconv/internal/models"
)

// Generator renders an IR tree into one target format.
// Implementations are total over any IR: unexpected shapes degrade, they never fail.
type Generator interface {
	// Name is the format identifier the generator is registered under.
	Name() models.Format
	// Description is a one-line summary shown by format discovery.
	Description() string
	// Generate renders node using opts.
	Generate(node *models.Node, opts models.Options) string
}

// Func adapts a plain function into a Generator.
type Func struct {
	Format models.Format
	Desc   string
	Render func(node *models.Node, opts models.Options) string
}

// Name implements Generator.
func (f Func) Name() models.Format { return f.Format }

// Description implements Generator.
func (f Func) Description() string { return f.Desc }

// Generate implements Generator.
func (f Func) Generate(node *models.Node, opts models.Options) string {
	return f.Render(node, opts)
}

// Defaults returns the shipped generators in registration order.
func Defaults() []Generator {
	return []Generator{
		NewCSVGenerator(),
		NewSQLGenerator(),
		NewYAMLGenerator(),
		NewXMLGenerator(),
		NewTOMLGenerator(),
		NewTypeScriptGenerator(),
		NewJSONLGenerator(),
	}
}

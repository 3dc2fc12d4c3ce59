// Package converter dispatches a JSON document to the generator registered for a format.
package converter

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mcncl/jsonconv/internal/errors"
	"github.com/mcncl/jsonconv/internal/generator"
	"github.com/mcncl/jsonconv/internal/models"
	"github.com/mcncl/jsonconv/internal/parser"
)

// unknownFormatDescription is returned by FormatDescription for unregistered formats.
const unknownFormatDescription = "Unknown format"

// Converter owns a generator registry. It is safe for concurrent use,
// including registration while conversions are running.
type Converter struct {
	logger *zap.Logger

	mu sync.RWMutex
	// generators maps a format name to its generator in first-registration order.
	generators *orderedmap.OrderedMap

	// extra holds generators passed to New, registered after the defaults.
	extra []generator.Generator
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGenerators registers extra generators after the defaults.
func WithGenerators(gens ...generator.Generator) Option {
	return func(c *Converter) {
		c.extra = append(c.extra, gens...)
	}
}

// New creates a Converter with every shipped generator registered.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger:     zap.NewNop(),
		generators: orderedmap.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, g := range generator.Defaults() {
		c.register(g)
	}
	for _, g := range c.extra {
		c.register(g)
	}
	c.extra = nil
	return c
}

// Convert parses jsonText once and renders it with the generator for format.
// Parse errors are returned before the format is looked up.
func (c *Converter) Convert(jsonText string, format models.Format, opts models.Options) (string, error) {
	node, err := parser.ParseString(jsonText)
	if err != nil {
		return "", err
	}
	c.logger.Debug("parsed input",
		zap.String("kind", string(node.Kind)),
		zap.Int("bytes", len(jsonText)))

	return c.render(node, format, opts)
}

// ConvertFile reads one JSON document from path on fs and converts it.
func (c *Converter) ConvertFile(fs afero.Fs, path string, format models.Format, opts models.Options) (string, error) {
	node, err := parser.ParseFile(fs, path)
	if err != nil {
		return "", err
	}
	c.logger.Debug("parsed file",
		zap.String("path", path),
		zap.String("kind", string(node.Kind)))

	return c.render(node, format, opts)
}

func (c *Converter) render(node *models.Node, format models.Format, opts models.Options) (string, error) {
	g, ok := c.lookup(format)
	if !ok {
		return "", errors.NewUnsupportedFormatError(string(format))
	}

	opts.Format = format
	c.logger.Debug("rendering", zap.String("format", string(format)))
	out := g.Generate(node, opts)
	c.logger.Debug("rendered", zap.String("format", string(format)), zap.Int("bytes", len(out)))
	return out, nil
}

// ConvertObject serializes an already decoded value to JSON text and converts that.
func (c *Converter) ConvertObject(value any, format models.Format, opts models.Options) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", errors.NewInputError(fmt.Sprintf("value of type %T cannot be encoded as JSON", value), err)
	}
	return c.Convert(string(data), format, opts)
}

// SupportedFormats returns the registered format names in first-registration order.
func (c *Converter) SupportedFormats() []models.Format {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := c.generators.Keys()
	formats := make([]models.Format, 0, len(keys))
	for _, key := range keys {
		formats = append(formats, models.Format(key))
	}
	return formats
}

// FormatDescription returns the description of the generator for format,
// or "Unknown format" when none is registered.
func (c *Converter) FormatDescription(format models.Format) string {
	g, ok := c.lookup(format)
	if !ok {
		return unknownFormatDescription
	}
	return g.Description()
}

// IsFormatSupported reports whether a generator is registered for format.
func (c *Converter) IsFormatSupported(format models.Format) bool {
	_, ok := c.lookup(format)
	return ok
}

// RegisterGenerator adds g under g.Name(). A generator already registered under
// that name is replaced and keeps its position in SupportedFormats.
func (c *Converter) RegisterGenerator(g generator.Generator) {
	c.register(g)
}

func (c *Converter) register(g generator.Generator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := string(g.Name())
	if _, found := c.generators.Get(name); found {
		c.logger.Debug("replacing generator", zap.String("format", name))
	} else {
		c.logger.Debug("registering generator", zap.String("format", name))
	}
	c.generators.Set(name, g)
}

func (c *Converter) lookup(format models.Format) (generator.Generator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, found := c.generators.Get(string(format))
	if !found {
		return nil, false
	}
	g, ok := value.(generator.Generator)
	return g, ok
}

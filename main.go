package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mcncl/jsonconv/internal/config"
	"github.com/mcncl/jsonconv/internal/converter"
	"github.com/mcncl/jsonconv/internal/errors"
	"github.com/mcncl/jsonconv/internal/models"
)

// CLI defines the command-line interface.
// Pointer flags stay nil unless given, so they only override config when set.
var CLI struct {
	Input       string  `arg:"" optional:"" help:"Input JSON file, a literal JSON string, or '-' for stdin. Reads stdin when omitted."`
	Format      *string `help:"Output format (default: yaml)." short:"f"`
	Output      string  `help:"Output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent      *int    `help:"Indentation for pretty formats (default: 2)." short:"i"`
	TableName   *string `help:"Table name for SQL (default: data)." short:"t"`
	RootName    *string `help:"Root name for XML (default: root) and TypeScript (default: Data)." short:"r"`
	ListFormats bool    `help:"List all supported formats."`
	Config      string  `help:"Path to a config file. Searched for upward from the working directory when not set." short:"c" type:"path"`
	Debug       bool    `help:"Enable debug logging." short:"d"`
	Version     bool    `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Fs              afero.Fs
	Stdin           io.Reader
	Stdout          io.Writer
	Stderr          io.Writer
	StdinIsTerminal bool
	WorkDir         string
	LookupEnv       config.LookupFunc
	// Logger overrides the logger chosen from the debug setting.
	Logger *zap.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonconv"),
		kong.Description("Convert JSON to CSV, SQL, YAML, XML, TOML, TypeScript or JSON Lines"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError has already printed the usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonconv version %s\n", Version)
		return
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	ctx := &Context{
		Fs:              afero.NewOsFs(),
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsTerminal: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		WorkDir:         workDir,
		LookupEnv:       os.LookupEnv,
	}

	if err := run(ctx); err != nil {
		printError(ctx.Stderr, err)
		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger := ctx.Logger
	if logger == nil {
		logger = newLogger(cfg.Dev.Debug)
	}
	defer func() { _ = logger.Sync() }()

	conv := converter.New(converter.WithLogger(logger))

	if CLI.ListFormats {
		return listFormats(ctx.Stdout, conv)
	}

	format := models.Format(cfg.Format)
	if !conv.IsFormatSupported(format) {
		return errors.NewUnsupportedFormatError(cfg.Format)
	}

	out, err := convertInput(ctx, conv, format, cfg.Options())
	if err != nil {
		return err
	}
	logger.Debug("conversion finished", zap.String("format", cfg.Format), zap.Int("bytes", len(out)))

	return writeOutput(ctx, out)
}

// loadConfig resolves defaults, the config file, the environment and explicit flags.
func loadConfig(ctx *Context) (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile(ctx.Fs, ctx.WorkDir)
	}

	overrides := config.Overrides{
		Format:    CLI.Format,
		Indent:    CLI.Indent,
		TableName: CLI.TableName,
		RootName:  CLI.RootName,
	}
	if CLI.Debug {
		debug := true
		overrides.Debug = &debug
	}

	return config.LoadConfigWithCLI(ctx.Fs, configPath, ctx.LookupEnv, overrides)
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// convertInput reads JSON from stdin, a literal argument or a file and converts it.
func convertInput(ctx *Context, conv *converter.Converter, format models.Format, opts models.Options) (string, error) {
	input := CLI.Input

	switch {
	case input == "" || input == "-":
		if ctx.StdinIsTerminal {
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		data, err := io.ReadAll(ctx.Stdin)
		if err != nil {
			return "", errors.NewInputError("failed to read from stdin", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
		}
		return conv.Convert(text, format, opts)
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		return conv.Convert(input, format, opts)
	default:
		return conv.ConvertFile(ctx.Fs, input, format, opts)
	}
}

// writeOutput writes the result to the output file or stdout
func writeOutput(ctx *Context, out string) error {
	if CLI.Output != "" {
		if err := afero.WriteFile(ctx.Fs, CLI.Output, []byte(out), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		_, _ = color.New(color.FgGreen).Fprintf(ctx.Stderr, "✓ Output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, strings.TrimRight(out, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// listFormats prints every registered format with its description.
func listFormats(w io.Writer, conv *converter.Converter) error {
	formats := conv.SupportedFormats()
	width := 0
	for _, format := range formats {
		width = max(width, len(format))
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	if _, err := bold.Fprintln(w, "Supported formats:"); err != nil {
		return errors.NewOutputError("failed to write format list", err)
	}
	for _, format := range formats {
		_, _ = cyan.Fprintf(w, "%-*s", width+2, format)
		_, _ = gray.Fprint(w, "  # ")
		_, _ = fmt.Fprintln(w, conv.FormatDescription(format))
	}
	return nil
}

func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed).Fprintln(w, errors.UserFriendlyError(err))

	switch {
	case errors.IsUnsupportedFormatError(err):
		_, _ = color.New(color.FgHiBlack).Fprintln(w, "Run with --list-formats to see all options")
	case stderrors.Is(err, errors.ErrNoInput):
		gray := color.New(color.FgHiBlack)
		_, _ = gray.Fprintln(w, "Usage: jsonconv <input.json> --format <format>")
		_, _ = gray.Fprintln(w, "       cat data.json | jsonconv --format csv")
	default:
		_, _ = fmt.Fprintf(w, "\nFor help, run: jsonconv --help\n")
	}
}

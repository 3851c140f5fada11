package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/typedmind"
	"github.com/viant/typedmind/config"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/generator"
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/internal/logger"
	"github.com/viant/typedmind/parser"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

const usage = `usage: typedmind <command> [flags] file...

commands:
  check   parse, resolve imports and validate documents
  format  convert a document to shortform, longform or the other syntax
  detect  report the dominant syntax of a document
  export  write the entity graph as YAML nodes and edges
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return 2
	}
	ctx := context.Background()
	fs := afs.New()
	command, args := args[0], args[1:]

	var err error
	code := 0
	switch command {
	case "check":
		code, err = check(ctx, fs, args, stdout)
	case "format":
		err = format(ctx, fs, args, stdout)
	case "detect":
		err = detect(ctx, fs, args, stdout)
	case "export":
		err = export(ctx, fs, args, stdout)
	default:
		fmt.Fprint(stdout, usage)
		return 2
	}
	if err != nil {
		logger.Error("command failed", err, logger.Fields{"command": command})
		return 1
	}
	return code
}

// setup resolves config for location and binds logging and Sentry to it
func setup(ctx context.Context, fs afs.Service, location string) (*config.Config, func(), error) {
	cfg, err := config.Resolve(ctx, fs, filepath.Dir(location))
	if err != nil {
		return nil, nil, err
	}
	logger.SetDebug(cfg.Debug)
	done := func() {}
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     cfg.SentryDSN,
			Release: "typedmind@" + releaseVersion,
			Debug:   cfg.Debug,
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			done = func() { sentry.Flush(sentryFlushTimeout) }
		}
	}
	return cfg, done, nil
}

func absolute(location string) string {
	if result, err := filepath.Abs(location); err == nil {
		return result
	}
	return location
}

func check(ctx context.Context, fs afs.Service, args []string, stdout io.Writer) (int, error) {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	flags.SetOutput(stdout)
	quiet := flags.Bool("q", false, "print errors only")
	if err := flags.Parse(args); err != nil {
		return 2, nil
	}
	if flags.NArg() == 0 {
		return 2, errors.New("check: no input files")
	}
	code := 0
	for _, location := range flags.Args() {
		location = absolute(location)
		cfg, done, err := setup(ctx, fs, location)
		if err != nil {
			return 1, err
		}
		report, err := typedmind.CheckFile(ctx, location, cfg)
		done()
		if err != nil {
			return 1, err
		}
		for _, d := range report.Diagnostics {
			if *quiet && d.Severity != diagnostic.Error {
				continue
			}
			if d.File == "" {
				d.File = location
			}
			fmt.Fprintln(stdout, d.String())
		}
		errs := diagnostic.Filter(report.Diagnostics, diagnostic.Error)
		warnings := diagnostic.Filter(report.Diagnostics, diagnostic.Warning)
		fmt.Fprintf(stdout, "%s: %d entities, %d errors, %d warnings, fingerprint %016x\n",
			location, report.Graph.Len(), len(errs), len(warnings), report.Fingerprint)
		if !report.Valid {
			code = 1
		}
	}
	return code, nil
}

func read(ctx context.Context, fs afs.Service, location string) (string, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", location, err)
	}
	return string(data), nil
}

func single(name string, flags *flag.FlagSet, args []string) (string, error) {
	if err := flags.Parse(args); err != nil {
		return "", err
	}
	if flags.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one input file", name)
	}
	return absolute(flags.Arg(0)), nil
}

func format(ctx context.Context, fs afs.Service, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("format", flag.ContinueOnError)
	flags.SetOutput(stdout)
	target := flags.String("to", "toggle", "target syntax: shortform, longform or toggle")
	write := flags.Bool("w", false, "write result to the source file")
	location, err := single("format", flags, args)
	if err != nil {
		return err
	}
	cfg, done, err := setup(ctx, fs, location)
	if err != nil {
		return err
	}
	defer done()
	text, err := read(ctx, fs, location)
	if err != nil {
		return err
	}
	gen := cfg.Generator()
	var output string
	switch generator.Format(strings.ToLower(*target)) {
	case generator.Shortform, generator.Longform:
		result, err := parser.Parse(text, cfg.ParserOptions()...)
		if err != nil {
			return err
		}
		if diagnostic.HasErrors(result.ParseErrors) {
			return &generator.ConversionError{Message: "cannot convert document with parse errors", Diagnostics: result.ParseErrors}
		}
		if generator.Format(strings.ToLower(*target)) == generator.Shortform {
			output = gen.ToShortform(result.Graph, result.Imports)
		} else {
			output = gen.ToLongform(result.Graph, result.Imports)
		}
	case "toggle":
		if detection := generator.DetectFormat(text); detection.Format == generator.Mixed {
			logger.Warn("toggling mixed-syntax document", logger.Fields{"url": location, "shortform": detection.Shortform, "longform": detection.Longform})
		}
		if output, err = gen.Toggle(text); err != nil {
			return err
		}
	default:
		return fmt.Errorf("format: unsupported target %q", *target)
	}
	if *write {
		if err = fs.Upload(ctx, location, file.DefaultFileOsMode, strings.NewReader(output)); err != nil {
			return err
		}
		logger.Info("document formatted", logger.Fields{"url": location, "to": *target})
		return nil
	}
	_, err = io.WriteString(stdout, output)
	return err
}

func detect(ctx context.Context, fs afs.Service, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("detect", flag.ContinueOnError)
	flags.SetOutput(stdout)
	location, err := single("detect", flags, args)
	if err != nil {
		return err
	}
	text, err := read(ctx, fs, location)
	if err != nil {
		return err
	}
	detection := generator.DetectFormat(text)
	_, err = fmt.Fprintf(stdout, "%s %.2f (shortform lines: %d, longform lines: %d)\n",
		detection.Format, detection.Confidence, detection.Shortform, detection.Longform)
	return err
}

func export(ctx context.Context, fs afs.Service, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	flags.SetOutput(stdout)
	location, err := single("export", flags, args)
	if err != nil {
		return err
	}
	cfg, done, err := setup(ctx, fs, location)
	if err != nil {
		return err
	}
	defer done()
	report, err := typedmind.CheckFile(ctx, location, cfg)
	if err != nil {
		return err
	}
	exporter := &graph.YAMLExporter{Writer: stdout}
	return exporter.Export(graph.BuildIR(report.Graph))
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/arjunmahishi/snipq/config"
	"github.com/arjunmahishi/snipq/output"
	"github.com/arjunmahishi/snipq/query"
	"github.com/arjunmahishi/snipq/scanner"
	"github.com/arjunmahishi/snipq/snipq"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0-dev"

func main() {
	app := &cli.Command{
		Name:      "snipq",
		Usage:     "extract code snippets with selector queries",
		ArgsUsage: "<query> [file|-]",
		Version:   version,
		Description: "Select code by what it is instead of where it is.\n\n" +
			"Examples:\n" +
			"  snipq .render app.js                     # a declaration\n" +
			"  snipq \"'suite' 'case'\" app.test.js       # a test inside a describe block\n" +
			"  snipq 'comments(.Load)' config.go        # with its doc comment\n" +
			"  cat app.py | snipq -e python '.main'     # from stdin",
		Flags:  extractFlags(),
		Action: runExtract,
		Commands: []*cli.Command{
			enginesCommand(),
			examplesCommand(),
			skillCommand(),
			mcpCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		writeError(err)
		os.Exit(1)
	}
}

func extractFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "print the result as JSON",
		},
		&cli.BoolFlag{
			Name:    "short",
			Aliases: []string{"s"},
			Usage:   "print JSON without the code",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "do not indent JSON output",
		},
		&cli.StringFlag{
			Name:    "engine",
			Aliases: []string{"e"},
			Usage:   "engine to parse with (default: detected from the file extension)",
		},
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Usage:   "grammar hint for the treesitter engine",
		},
		&cli.StringFlag{
			Name:    "gapFiller",
			Aliases: []string{"g", "gap-filler"},
			Usage:   "text placed between distant selections",
		},
		&cli.BoolFlag{
			Name:  "no-gap-filler",
			Usage: "concatenate distant selections without a marker",
		},
		&cli.BoolFlag{
			Name:    "undent",
			Aliases: []string{"u"},
			Usage:   "strip common indentation",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on syntax errors in the source",
		},
		&cli.BoolFlag{
			Name:  "continue-on-error",
			Usage: "skip selections that fail instead of aborting",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Usage: "refuse inputs larger than this (default 2MiB)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "text or json",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file (default: .snipq.yaml in the working or home directory)",
		},
	}
}

func runExtract(ctx context.Context, cmd *cli.Command) error {
	switch {
	case cmd.Args().Len() == 0:
		return errors.New("query is required (usage: snipq [options] <query> [file|-])")
	case cmd.Args().Len() > 2:
		return errors.New("too many arguments (usage: snipq [options] <query> [file|-])")
	}

	// Query errors are reported before any input is read.
	nodes, err := query.Parse(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	sc := newScanner(cfg)
	in, err := sc.Load(cmd.Args().Get(1), os.Stdin)
	if err != nil {
		return err
	}

	opts := extractOptions(cfg)
	opts.Logger = logger
	if cfg.Engine == "" && in.Path != "-" {
		detected, err := sc.Detect(in.Path)
		if err != nil {
			return err
		}
		opts.Engine = detected.Engine
		if opts.Language == "" {
			opts.Language = detected.Language
		}
	}
	logger.Debug("extracting", "file", in.Path, "bytes", len(in.Source), "engine", engineName(opts))

	res, err := snipq.ExtractNodes(ctx, in.Source, nodes, opts)
	if err != nil {
		return err
	}

	short := cmd.Bool("short")
	w := output.New(output.Config{
		JSON:    cmd.Bool("json") || short,
		Short:   short,
		Compact: cmd.Bool("compact"),
		Output:  os.Stdout,
	})
	return w.Write(res)
}

// loadConfig loads the config file and applies flags set on the command line.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, err
		}
		cfg, err = config.Load(wd)
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("engine") {
		cfg.Engine = cmd.String("engine")
	}
	if cmd.IsSet("language") {
		cfg.Language = cmd.String("language")
	}
	if cmd.IsSet("gapFiller") {
		cfg.GapFiller = cmd.String("gapFiller")
	}
	if cmd.IsSet("no-gap-filler") {
		cfg.NoGapFiller = cmd.Bool("no-gap-filler")
	}
	if cmd.IsSet("undent") {
		cfg.Undent = cmd.Bool("undent")
	}
	if cmd.IsSet("strict") {
		cfg.Strict = cmd.Bool("strict")
	}
	if cmd.IsSet("continue-on-error") {
		cfg.ContinueOnError = cmd.Bool("continue-on-error")
	}
	if cmd.IsSet("max-bytes") {
		cfg.MaxBytes = cmd.Int64("max-bytes")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}

	return cfg, config.Validate(cfg)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return output.NewLogger(output.DefaultLoggerConfig().Override(cfg.Log.Level, cfg.Log.Format))
}

func newScanner(cfg *config.Config) *scanner.Scanner {
	rules := make([]scanner.Rule, 0, len(cfg.Engines))
	for _, r := range cfg.Engines {
		rules = append(rules, scanner.Rule{Glob: r.Glob, Engine: r.Engine, Language: r.Language})
	}
	return scanner.New(scanner.Config{MaxBytes: cfg.MaxBytes, Rules: rules})
}

// extractOptions maps settings onto snipq options. The engine is left for
// the caller to detect when none is configured.
func extractOptions(cfg *config.Config) snipq.Options {
	return snipq.Options{
		EngineName:       cfg.Engine,
		Language:         cfg.Language,
		GapFiller:        cfg.GapFiller,
		DisableGapFiller: cfg.NoGapFiller,
		Undent:           cfg.Undent,
		Strict:           cfg.Strict,
		ContinueOnError:  cfg.ContinueOnError,
	}
}

func engineName(opts snipq.Options) string {
	switch {
	case opts.Engine != nil:
		return opts.Engine.Name()
	case opts.EngineName != "":
		return opts.EngineName
	default:
		return snipq.DefaultEngine
	}
}

func writeError(err error) {
	_ = output.WriteError(os.Stderr, err)
}

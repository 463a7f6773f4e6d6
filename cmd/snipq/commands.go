package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/mcp"
	"github.com/arjunmahishi/snipq/output"
	"github.com/urfave/cli/v3"
)

//go:embed example_queries.txt
var examplesText string

//go:embed SKILL.md
var skillText string

// textCommand prints an embedded document.
func textCommand(name, usage, description, text string) *cli.Command {
	return &cli.Command{
		Name:        name,
		Usage:       usage,
		Description: description,
		Action: func(_ context.Context, _ *cli.Command) error {
			_, err := fmt.Fprint(os.Stdout, text)
			return err
		},
	}
}

func examplesCommand() *cli.Command {
	return textCommand("example-queries", "show example selector queries",
		"Print example queries for common extraction tasks.\n"+
			"Each query follows a comment line describing it.\n\n"+
			"Examples:\n"+
			"  snipq example-queries                    # show all examples\n"+
			"  snipq example-queries | grep -A1 python  # python examples with their query\n"+
			"  snipq example-queries | grep comments    # queries using comments()",
		examplesText)
}

func skillCommand() *cli.Command {
	return textCommand("skill", "print SKILL.md for agent configs",
		"Print the SKILL.md describing snipq to coding agents.\n\n"+
			"Examples:\n"+
			"  snipq skill > .claude/skills/snipq/SKILL.md",
		skillText)
}

type engineInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

func enginesCommand() *cli.Command {
	return &cli.Command{
		Name:  "engines",
		Usage: "list engines and the file extensions they handle",
		Action: func(_ context.Context, cmd *cli.Command) error {
			engines := make([]engineInfo, 0)
			for _, name := range engine.List() {
				exts := engine.Get(name).Extensions()
				if exts == nil {
					exts = []string{}
				}
				engines = append(engines, engineInfo{Name: name, Extensions: exts})
			}

			w := output.New(output.Config{Compact: cmd.Bool("compact"), Output: os.Stdout})
			return w.WriteValue(engines)
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the extract_code tool over MCP on stdio",
		Description: "Run a Model Context Protocol server on stdin/stdout.\n" +
			"Settings from .snipq.yaml and global flags become the tool defaults.\n\n" +
			"Examples:\n" +
			"  snipq mcp\n" +
			"  snipq --undent --log-level debug mcp",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := extractOptions(cfg)
			opts.Logger = newLogger(cfg)

			return mcp.NewServer(version, newScanner(cfg), opts).ServeStdio()
		},
	}
}

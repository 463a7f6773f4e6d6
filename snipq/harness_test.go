package snipq

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/datadriven"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		// Track sources created by "source" commands
		sources := make(map[string][]byte)

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "source":
				return handleSource(t, d, sources)
			case "extract":
				return handleExtract(t, d, sources)
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// handleSource stores the input under name. Inputs get back the trailing
// newline the test file format drops.
func handleSource(t *testing.T, d *datadriven.TestData, sources map[string][]byte) string {
	var name string
	d.ScanArgs(t, "name", &name)
	sources[name] = []byte(d.Input + "\n")
	return ""
}

// handleExtract runs the query in the input against a stored source and
// prints the code, preceded by the result metadata when meta is set.
func handleExtract(t *testing.T, d *datadriven.TestData, sources map[string][]byte) string {
	var name string
	d.ScanArgs(t, "source", &name)

	source, ok := sources[name]
	if !ok {
		t.Fatalf("unknown source: %s", name)
	}

	opts := Options{}
	if d.HasArg("engine") {
		d.ScanArgs(t, "engine", &opts.EngineName)
	}
	if d.HasArg("language") {
		d.ScanArgs(t, "language", &opts.Language)
	}
	if d.HasArg("gap") {
		d.ScanArgs(t, "gap", &opts.GapFiller)
	}
	opts.DisableGapFiller = d.HasArg("nogap")
	opts.Undent = d.HasArg("undent")
	opts.Strict = d.HasArg("strict")
	opts.ContinueOnError = d.HasArg("continue")

	res, err := Extract(context.Background(), source, d.Input, opts)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}

	if !d.HasArg("meta") {
		return res.Code
	}
	return fmt.Sprintf("=> start=%d end=%d lines=%d-%d disjoint=%t\n%s",
		res.Start,
		res.End,
		res.StartLine,
		res.EndLine,
		res.Disjoint,
		res.Code,
	)
}

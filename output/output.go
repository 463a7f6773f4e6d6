// Package output writes extraction results for the snipq CLI.
package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/arjunmahishi/snipq/snipq"
)

// Writer handles result output.
type Writer struct {
	out     io.Writer
	encoder *json.Encoder
	json    bool
	short   bool
}

// Config holds output configuration.
type Config struct {
	// JSON writes results as JSON objects instead of bare code.
	JSON bool

	// Short leaves the code out of JSON results.
	Short bool

	// Compact disables JSON indentation.
	Compact bool

	Output io.Writer
}

// summary is a result without its code.
type summary struct {
	Start     int  `json:"start"`
	End       int  `json:"end"`
	StartLine int  `json:"start_line"`
	EndLine   int  `json:"end_line"`
	Disjoint  bool `json:"disjoint"`
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	enc := json.NewEncoder(cfg.Output)
	enc.SetEscapeHTML(false)
	if !cfg.Compact {
		enc.SetIndent("", "  ")
	}

	return &Writer{
		out:     cfg.Output,
		encoder: enc,
		json:    cfg.JSON,
		short:   cfg.Short,
	}
}

// Write outputs a result: its code followed by a newline, or JSON.
func (w *Writer) Write(res *snipq.Result) error {
	if !w.json {
		_, err := io.WriteString(w.out, res.Code+"\n")
		return err
	}

	if w.short {
		return w.encoder.Encode(summary{
			Start:     res.Start,
			End:       res.End,
			StartLine: res.StartLine,
			EndLine:   res.EndLine,
			Disjoint:  res.Disjoint,
		})
	}
	return w.encoder.Encode(res)
}

// WriteValue outputs any value as JSON.
func (w *Writer) WriteValue(v any) error {
	return w.encoder.Encode(v)
}

// WriteError writes err as a JSON object to w.
func WriteError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}

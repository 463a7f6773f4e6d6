package snipq

import (
	"log/slog"

	"github.com/arjunmahishi/snipq/engine"
)

// Options configures Extract and ExtractNodes.
type Options struct {
	// Engine is the language backend to parse with.
	// If nil, EngineName is looked up in the engine registry.
	Engine engine.Engine

	// EngineName names a registered engine (e.g., "javascript").
	// Defaults to "javascript".
	EngineName string

	// Language is passed to multi-language engines as a grammar hint.
	Language string

	// GapFiller is inserted between selections that are more than one line
	// apart. If empty, the engine's line comment followed by " ..." is used.
	GapFiller string

	// DisableGapFiller concatenates distant selections directly, with no
	// separator, and leaves Result.Disjoint unset.
	DisableGapFiller bool

	// Undent strips the common leading whitespace from the assembled code.
	Undent bool

	// Strict fails on source with syntax errors instead of selecting from a
	// recovered tree.
	Strict bool

	// ContinueOnError skips top-level selections that fail to resolve.
	// The query only fails when every selection fails.
	ContinueOnError bool

	// Logger receives debug events about candidate selection.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultEngine is the engine used when Options names none.
const DefaultEngine = "javascript"

// Package scanner loads the source a query runs against and picks the
// engine for it.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrTooLarge is returned for inputs over Config.MaxBytes.
var ErrTooLarge = errors.New("input too large")

// Rule maps paths matching a doublestar glob to an engine. Globs without a
// slash are matched against the file name only.
type Rule struct {
	Glob     string
	Engine   string
	Language string
}

// Config holds scanner configuration.
type Config struct {
	// MaxBytes rejects larger inputs. If 0, no size limit is enforced.
	MaxBytes int64

	// Rules are tried in order before the file extension.
	Rules []Rule
}

// Input is a loaded source file.
type Input struct {
	// Path is the file path, or "-" for stdin.
	Path   string
	Source []byte
}

// Detection is the engine chosen for a path.
type Detection struct {
	Engine   engine.Engine
	Language string
}

// Scanner reads inputs.
type Scanner struct {
	cfg Config
}

// New creates a new Scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Load reads path, or stdin when path is empty or "-".
func (s *Scanner) Load(path string, stdin io.Reader) (Input, error) {
	if path == "" || path == "-" {
		source, err := s.readLimited(stdin)
		if err != nil {
			return Input{}, fmt.Errorf("read stdin: %w", err)
		}
		return Input{Path: "-", Source: source}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return Input{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return Input{}, fmt.Errorf("%s is a directory", path)
	}
	if s.cfg.MaxBytes > 0 && info.Size() > s.cfg.MaxBytes {
		return Input{}, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, info.Size(), s.cfg.MaxBytes)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read file: %w", err)
	}
	return Input{Path: path, Source: source}, nil
}

func (s *Scanner) readLimited(r io.Reader) ([]byte, error) {
	if s.cfg.MaxBytes <= 0 {
		return io.ReadAll(r)
	}

	source, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(source)) > s.cfg.MaxBytes {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, s.cfg.MaxBytes)
	}
	return source, nil
}

// Detect picks the engine for path: the first matching rule, then the
// engine registered for the file extension.
func (s *Scanner) Detect(path string) (Detection, error) {
	slashed := filepath.ToSlash(path)

	for _, rule := range s.cfg.Rules {
		target := slashed
		if !strings.Contains(rule.Glob, "/") {
			target = filepath.Base(path)
		}

		matched, err := doublestar.Match(rule.Glob, target)
		if err != nil {
			return Detection{}, fmt.Errorf("invalid engine rule %q: %w", rule.Glob, err)
		}
		if !matched {
			continue
		}

		e := engine.Get(rule.Engine)
		if e == nil {
			return Detection{}, errors.New(rule.Engine + " engine not registered")
		}
		return Detection{Engine: e, Language: rule.Language}, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if e := engine.ByExtension(ext); e != nil {
		return Detection{Engine: e}, nil
	}
	return Detection{}, fmt.Errorf("no engine for %s, pass --engine", path)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arjunmahishi/snipq/engine"
	"github.com/arjunmahishi/snipq/snipq"
	"github.com/mark3labs/mcp-go/mcp"
)

func extractCodeTool() mcp.Tool {
	return mcp.NewTool(
		"extract_code",
		mcp.WithDescription("Extract a code snippet from a source file with a selector query. "+
			"Selectors: .name (declaration or reference), 'text' (string literal), 12 (line), A-B (range), "+
			"space separated chains search inside the previous match, commas join selections. "+
			"Modifiers: "+strings.Join(snipq.Operators, ", ")+"."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Selector query (e.g. '.render', \"'suite' 'case'\", 'context(.main, 2, 0)')")),
		mcp.WithString("file",
			mcp.Description("Path of the file to extract from. Either file or source is required.")),
		mcp.WithString("source",
			mcp.Description("Inline source code to extract from, used instead of file")),
		mcp.WithString("engine",
			mcp.Description("Engine name (see list_engines). Defaults to detection from the file extension.")),
		mcp.WithString("language",
			mcp.Description("Grammar hint for the multi-language 'treesitter' engine (e.g. 'py')")),
		mcp.WithString("gap_filler",
			mcp.Description("Text placed between distant selections (default: a '...' line comment)")),
		mcp.WithBoolean("undent",
			mcp.Description("Strip the common indentation of the snippet")),
	)
}

func listEnginesTool() mcp.Tool {
	return mcp.NewTool(
		"list_engines",
		mcp.WithDescription("List the available engines and the file extensions each handles."),
	)
}

// extractResponse is the JSON payload of extract_code.
type extractResponse struct {
	File   string `json:"file,omitempty"`
	Engine string `json:"engine"`
	*snipq.Result
}

// engineInfo describes one registered engine.
type engineInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

func (s *Server) handleExtractCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	queryText, _ := argsMap["query"].(string)
	if queryText == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	file, _ := argsMap["file"].(string)
	source, hasSource := argsMap["source"].(string)
	if file == "" && !hasSource {
		return mcp.NewToolResultError("file or source parameter is required"), nil
	}

	opts := s.defaults
	if v, ok := argsMap["engine"].(string); ok && v != "" {
		opts.Engine, opts.EngineName = nil, v
	}
	if v, ok := argsMap["language"].(string); ok && v != "" {
		opts.Language = v
	}
	if v, ok := argsMap["gap_filler"].(string); ok && v != "" {
		opts.GapFiller = v
	}
	if v, ok := argsMap["undent"].(bool); ok {
		opts.Undent = v
	}

	var input []byte
	if hasSource {
		input = []byte(source)
	} else {
		in, err := s.scanner.Load(file, nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		input = in.Source

		if opts.Engine == nil && opts.EngineName == "" {
			detected, err := s.scanner.Detect(file)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			opts.Engine = detected.Engine
			if opts.Language == "" {
				opts.Language = detected.Language
			}
		}
	}

	s.mu.Lock()
	res, err := snipq.Extract(ctx, input, queryText, opts)
	s.mu.Unlock()
	if err != nil {
		s.logger.Debug("extract_code failed", "query", queryText, "file", file, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := opts.EngineName
	if opts.Engine != nil {
		name = opts.Engine.Name()
	} else if name == "" {
		name = snipq.DefaultEngine
	}

	jsonData, err := json.Marshal(extractResponse{File: file, Engine: name, Result: res})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	// Return as text result (mcp-go convention)
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (s *Server) handleListEngines(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var engines []engineInfo
	for _, name := range engine.List() {
		engines = append(engines, engineInfo{
			Name:       name,
			Extensions: engine.Get(name).Extensions(),
		})
	}

	jsonData, err := json.Marshal(engines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

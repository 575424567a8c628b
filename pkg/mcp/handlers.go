package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers return tool-level errors (mcp.NewToolResultError) for bad
// arguments and unknown components, and Go errors only for internal
// failures, following the mcp-go convention.

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"components": s.store.List(),
		"total":      s.store.Len(),
	})
}

func (s *Server) handleGetComponentSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requiredString(req, "component")
	if errResult != nil {
		return errResult, nil
	}
	componentSchema, ok := s.store.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown component: %s", name)), nil
	}
	return jsonResult(componentSchema)
}

func (s *Server) handleGetComponentCommands(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requiredString(req, "component")
	if errResult != nil {
		return errResult, nil
	}
	componentSchema, ok := s.store.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown component: %s", name)), nil
	}
	return jsonResult(map[string]any{
		"component": componentSchema.ComponentName,
		"commands":  componentSchema.Commands,
	})
}

func (s *Server) handleSearchComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, errResult := requiredString(req, "keyword")
	if errResult != nil {
		return errResult, nil
	}
	matches := s.store.Search(keyword)
	return jsonResult(map[string]any{
		"components": matches,
		"total":      len(matches),
	})
}

// requiredString extracts a required string argument, returning a tool
// error result when it is missing or empty.
func requiredString(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	args := req.GetArguments()
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s parameter is required", key))
	}
	return value, nil
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

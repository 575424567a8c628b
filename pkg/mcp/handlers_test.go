package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/nativegen/pkg/generator"
	"github.com/gnana997/nativegen/pkg/schema"
)

// --- helpers ---

func testServer() *Server {
	store := generator.NewStore()
	store.Put(&schema.ComponentSchema{
		Filename:      "SliderNativeComponent",
		ComponentName: "Slider",
		ExtendsProps: []schema.ExtendsProp{
			{Type: schema.ExtendsTypeBuiltIn, KnownTypeName: schema.KnownTypeCoreViewProps},
		},
		Props: []schema.Prop{
			{Name: "value", TypeAnnotation: schema.TypeAnnotation{Type: schema.TypeFloat}},
			{Name: "enabled", Optional: true, TypeAnnotation: schema.TypeAnnotation{Type: schema.TypeBoolean, Default: true}},
		},
		Events: []schema.Event{
			{Name: "onChange", Optional: true, BubblingType: schema.BubblingTypeBubble, Payload: []schema.Prop{}},
		},
		Commands: []schema.Command{
			{Name: "setValue", Params: []schema.CommandParam{
				{Name: "value", TypeAnnotation: schema.TypeAnnotation{Type: schema.TypeFloat}},
			}},
		},
		State: &schema.State{Properties: []schema.Prop{
			{Name: "value", TypeAnnotation: schema.TypeAnnotation{Type: schema.TypeDouble}},
		}},
	})
	store.Put(&schema.ComponentSchema{
		Filename:      "SwitchNativeComponent",
		ComponentName: "Switch",
		Props: []schema.Prop{
			{Name: "on", TypeAnnotation: schema.TypeAnnotation{Type: schema.TypeBoolean}},
		},
		Events:   []schema.Event{},
		Commands: []schema.Command{},
	})
	return NewServer(store, nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	switch req.Params.Name {
	case "list_components":
		handler = s.handleListComponents
	case "get_component_schema":
		handler = s.handleGetComponentSchema
	case "get_component_commands":
		handler = s.handleGetComponentCommands
	case "search_components":
		handler = s.handleSearchComponents
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- list_components ---

func TestHandleListComponents(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_components", nil))
	assert.False(t, result.IsError)

	var payload struct {
		Components []map[string]any `json:"components"`
		Total      int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Equal(t, 2, payload.Total)
	require.Len(t, payload.Components, 2)
	assert.Equal(t, "Slider", payload.Components[0]["componentName"])
	assert.Equal(t, float64(2), payload.Components[0]["props"])
	assert.Equal(t, true, payload.Components[0]["hasState"])
	assert.Equal(t, "Switch", payload.Components[1]["componentName"])
	assert.Equal(t, false, payload.Components[1]["hasState"])
}

// --- get_component_schema ---

func TestHandleGetComponentSchema(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component_schema", map[string]any{"component": "Slider"}))
	assert.False(t, result.IsError)

	var got schema.ComponentSchema
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &got))
	assert.Equal(t, "Slider", got.ComponentName)
	assert.Len(t, got.Props, 2)
	require.NotNil(t, got.State)
	assert.Len(t, got.State.Properties, 1)
}

func TestHandleGetComponentSchemaUnknown(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component_schema", map[string]any{"component": "Nope"}))
	assert.True(t, result.IsError)
	assert.Contains(t, resultJSON(t, result), "unknown component: Nope")
}

func TestHandleGetComponentSchemaMissingArgument(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component_schema", nil))
	assert.True(t, result.IsError)
	assert.Contains(t, resultJSON(t, result), "component parameter is required")
}

// --- get_component_commands ---

func TestHandleGetComponentCommands(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component_commands", map[string]any{"component": "Slider"}))
	assert.False(t, result.IsError)

	var payload struct {
		Component string           `json:"component"`
		Commands  []schema.Command `json:"commands"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Equal(t, "Slider", payload.Component)
	require.Len(t, payload.Commands, 1)
	assert.Equal(t, "setValue", payload.Commands[0].Name)
}

func TestHandleGetComponentCommandsUnknown(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("get_component_commands", map[string]any{"component": "Nope"}))
	assert.True(t, result.IsError)
}

// --- search_components ---

func TestHandleSearchComponents(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_components", map[string]any{"keyword": "slid"}))
	assert.False(t, result.IsError)

	var payload struct {
		Components []map[string]any `json:"components"`
		Total      int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Equal(t, 1, payload.Total)
	require.Len(t, payload.Components, 1)
	assert.Equal(t, "Slider", payload.Components[0]["componentName"])
}

func TestHandleSearchComponentsNoMatches(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_components", map[string]any{"keyword": "zzz"}))
	assert.False(t, result.IsError)

	var payload struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &payload))
	assert.Equal(t, 0, payload.Total)
}

func TestHandleSearchComponentsMissingKeyword(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("search_components", nil))
	assert.True(t, result.IsError)
	assert.Contains(t, resultJSON(t, result), "keyword parameter is required")
}

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func listComponentsTool() mcp.Tool {
	return mcp.NewTool(
		"list_components",
		mcp.WithDescription("List every native component in the generated schema library with prop/event/command counts."),
	)
}

func getComponentSchemaTool() mcp.Tool {
	return mcp.NewTool(
		"get_component_schema",
		mcp.WithDescription("Full normalized schema for one component: props, events, commands, options, extends groups, and native state."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component name as declared in the spec file (e.g. 'Slider')")),
	)
}

func getComponentCommandsTool() mcp.Tool {
	return mcp.NewTool(
		"get_component_commands",
		mcp.WithDescription("Imperative commands supported by one component, with parameter types."),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component name as declared in the spec file")),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool(
		"search_components",
		mcp.WithDescription("Search components by keyword against component and module names."),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Case-insensitive substring to match")),
	)
}

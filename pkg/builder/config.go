package builder

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/resolver"
)

// componentDeclarationCallee and commandsDeclarationCallee are the call
// names that mark a file as declaring a native component.
const (
	componentDeclarationCallee = "codegenNativeComponent"
	commandsDeclarationCallee  = "codegenNativeCommands"
	stateTypeNameFragment      = "NativeState"
)

// ComponentConfig is the flat descriptor of a located component
// declaration: the names and sub-expressions the assembler resolves
// against. ComponentName and PropsTypeName are always present.
type ComponentConfig struct {
	ComponentName string
	PropsTypeName string

	// StateTypeName is empty when the file declares no NativeState type.
	StateTypeName string

	// CommandTypeName is empty when the file declares no commands.
	// CommandOptionsExpr is the verbatim options argument node.
	CommandTypeName    string
	CommandOptionsExpr *ts.Node

	// OptionsExpr is the verbatim second argument of the component
	// declaration call, nil when absent.
	OptionsExpr *ts.Node
}

// FindComponentConfig scans the top-level statements of a parsed spec file
// for the single component declaration, its commands declaration, and its
// state type.
//
// Searching tolerates any statement shape: a statement that does not match
// the declaration pattern is skipped, never an error. Once a statement
// matches, its required parts are validated strictly.
func FindComponentConfig(root *ts.Node, source []byte) (*ComponentConfig, error) {
	type componentMatch struct {
		name      string
		propsType string
		options   *ts.Node
	}
	var components []componentMatch

	for _, stmt := range resolver.NamedChildren(root) {
		expr := defaultExportExpression(stmt)
		expr = resolver.UnwrapTypeCast(expr)
		if resolver.CalleeName(expr, source) != componentDeclarationCallee {
			continue
		}

		propsType, ok := firstNamedTypeArgument(expr, source)
		if !ok {
			continue
		}
		args := resolver.CallArguments(expr)
		if len(args) == 0 {
			continue
		}
		name, ok := resolver.StringLiteralValue(args[0], source)
		if !ok {
			continue
		}

		match := componentMatch{name: name, propsType: propsType}
		if len(args) > 1 {
			match.options = args[1]
		}
		components = append(components, match)
	}

	if len(components) == 0 {
		return nil, structuralErrorf("could not find component config for native component")
	}
	if len(components) > 1 {
		return nil, structuralErrorf("only one component is supported per file")
	}

	config := &ComponentConfig{
		ComponentName: components[0].name,
		PropsTypeName: components[0].propsType,
		OptionsExpr:   components[0].options,
	}

	if err := findCommandsConfig(root, source, config); err != nil {
		return nil, err
	}
	if err := findStateType(root, source, config); err != nil {
		return nil, err
	}
	return config, nil
}

// findCommandsConfig locates the (at most one) codegenNativeCommands call
// among the file's named exports and validates its shape strictly.
func findCommandsConfig(root *ts.Node, source []byte, config *ComponentConfig) error {
	found := false
	for _, stmt := range resolver.NamedChildren(root) {
		call := namedExportInitializer(stmt)
		if resolver.CalleeName(call, source) != commandsDeclarationCallee {
			continue
		}
		if found {
			return structuralErrorf("codegenNativeCommands may only be called once in a file")
		}
		found = true

		args := resolver.CallArguments(call)
		if len(args) != 1 {
			return shapeMismatchErrorf("codegenNativeCommands must be passed options including supportedCommands")
		}
		typeArgs := resolver.TypeArguments(call)
		if len(typeArgs) != 1 || typeArgs[0].Kind() != "type_identifier" {
			return shapeMismatchErrorf("codegenNativeCommands does not support inline definitions, use a file-local type alias")
		}

		config.CommandTypeName = typeArgs[0].Utf8Text(source)
		config.CommandOptionsExpr = args[0]
	}
	return nil
}

// findStateType collects NativeState candidates from two scan passes:
// bare top-level interface declarations, and named-export declarations.
// The two passes are unioned without deduplication, matching the behavior
// downstream tooling has always depended on.
func findStateType(root *ts.Node, source []byte, config *ComponentConfig) error {
	var candidates []string

	for _, stmt := range resolver.NamedChildren(root) {
		if stmt.Kind() != "interface_declaration" {
			continue
		}
		if name := resolver.DeclarationName(stmt, source); strings.Contains(name, stateTypeNameFragment) {
			candidates = append(candidates, name)
		}
	}
	for _, stmt := range resolver.NamedChildren(root) {
		if stmt.Kind() != "export_statement" || resolver.HasChildOfKind(stmt, "default") {
			continue
		}
		decl := stmt.ChildByFieldName("declaration")
		if name := resolver.DeclarationName(decl, source); strings.Contains(name, stateTypeNameFragment) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) > 1 {
		return structuralErrorf("found %d NativeStates for %s; only one NativeState is allowed per component",
			len(candidates), config.ComponentName)
	}
	if len(candidates) == 1 {
		config.StateTypeName = candidates[0]
	}
	return nil
}

// defaultExportExpression returns the expression of a default-export
// statement, nil for any other statement shape.
func defaultExportExpression(stmt *ts.Node) *ts.Node {
	if stmt == nil || stmt.Kind() != "export_statement" {
		return nil
	}
	if !resolver.HasChildOfKind(stmt, "default") {
		return nil
	}
	if value := stmt.ChildByFieldName("value"); value != nil {
		return value
	}
	return stmt.ChildByFieldName("declaration")
}

// namedExportInitializer returns the initializer call of a named-export
// variable declaration (`export const X = f(...)`), nil for any other
// statement shape.
func namedExportInitializer(stmt *ts.Node) *ts.Node {
	if stmt == nil || stmt.Kind() != "export_statement" {
		return nil
	}
	if resolver.HasChildOfKind(stmt, "default") {
		return nil
	}
	decl := stmt.ChildByFieldName("declaration")
	if decl == nil || decl.Kind() != "lexical_declaration" {
		return nil
	}
	for _, declarator := range resolver.NamedChildren(decl) {
		if declarator.Kind() != "variable_declarator" {
			continue
		}
		value := resolver.UnwrapTypeCast(declarator.ChildByFieldName("value"))
		if value != nil && value.Kind() == "call_expression" {
			return value
		}
	}
	return nil
}

// firstNamedTypeArgument probes for a call's first type argument being a
// plain named type reference.
func firstNamedTypeArgument(call *ts.Node, source []byte) (string, bool) {
	typeArgs := resolver.TypeArguments(call)
	if len(typeArgs) == 0 || typeArgs[0].Kind() != "type_identifier" {
		return "", false
	}
	return typeArgs[0].Utf8Text(source), true
}

package resolver

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// Options resolves the optional second argument of the component
// declaration call. A nil expression yields zero-valued options. Unknown
// keys are errors: silently ignoring a misspelled option would change
// generated code without warning.
func (r *TS) Options(expr *ts.Node) (schema.Options, error) {
	var options schema.Options
	if expr == nil {
		return options, nil
	}
	pairs, err := r.objectPairs(expr, "component options")
	if err != nil {
		return options, err
	}

	for key, value := range pairs {
		switch key {
		case "interfaceOnly":
			b, err := r.boolValue(value)
			if err != nil {
				return options, fmt.Errorf("option interfaceOnly: %w", err)
			}
			options.InterfaceOnly = b
		case "paperComponentName":
			s, ok := StringLiteralValue(value, r.source)
			if !ok {
				return options, fmt.Errorf("option paperComponentName must be a string literal")
			}
			options.PaperComponentName = s
		case "paperComponentNameDeprecated":
			s, ok := StringLiteralValue(value, r.source)
			if !ok {
				return options, fmt.Errorf("option paperComponentNameDeprecated must be a string literal")
			}
			options.PaperComponentNameDeprecated = s
		case "excludedPlatforms":
			platforms, err := r.stringArray(value)
			if err != nil {
				return options, fmt.Errorf("option excludedPlatforms: %w", err)
			}
			options.ExcludedPlatforms = platforms
		default:
			return options, fmt.Errorf("unsupported component option %q", key)
		}
	}
	return options, nil
}

// CommandOptions resolves the options argument of a commands declaration.
// A nil expression resolves to nil; a present expression must carry a
// supportedCommands string array.
func (r *TS) CommandOptions(expr *ts.Node) (*CommandOptions, error) {
	if expr == nil {
		return nil, nil
	}
	pairs, err := r.objectPairs(expr, "command options")
	if err != nil {
		return nil, err
	}

	value, ok := pairs["supportedCommands"]
	if !ok {
		return nil, fmt.Errorf("codegenNativeCommands options must include a supportedCommands array")
	}
	commands, err := r.stringArray(value)
	if err != nil {
		return nil, fmt.Errorf("supportedCommands: %w", err)
	}
	return &CommandOptions{SupportedCommands: commands}, nil
}

// objectPairs reads an object literal expression into a key → value-node
// map. Shorthand and computed keys are not part of the convention.
func (r *TS) objectPairs(expr *ts.Node, what string) (map[string]*ts.Node, error) {
	if expr.Kind() != "object" {
		return nil, fmt.Errorf("%s must be an object literal, found %s", what, expr.Kind())
	}
	pairs := make(map[string]*ts.Node)
	for _, entry := range NamedChildren(expr) {
		if entry.Kind() != "pair" {
			return nil, fmt.Errorf("%s must use plain key: value entries", what)
		}
		key := entry.ChildByFieldName("key")
		value := entry.ChildByFieldName("value")
		if key == nil || value == nil {
			return nil, fmt.Errorf("%s must use plain key: value entries", what)
		}
		name := r.text(key)
		if s, ok := StringLiteralValue(key, r.source); ok {
			name = s
		}
		pairs[name] = value
	}
	return pairs, nil
}

func (r *TS) boolValue(node *ts.Node) (bool, error) {
	switch node.Kind() {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected a boolean literal, found %s", r.text(node))
	}
}

func (r *TS) stringArray(node *ts.Node) ([]string, error) {
	if node.Kind() != "array" {
		return nil, fmt.Errorf("expected an array literal, found %s", node.Kind())
	}
	var values []string
	for _, element := range NamedChildren(node) {
		value, ok := StringLiteralValue(element, r.source)
		if !ok {
			return nil, fmt.Errorf("expected string literals, found %s", element.Kind())
		}
		values = append(values, value)
	}
	return values, nil
}

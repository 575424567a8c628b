package resolver

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// Commands resolves the validated command interface members into command
// schema entries. Each member must be a method signature or a property
// typed with a function type. A leading parameter typed React.ElementRef
// (the receiving view) is dropped from the schema; the remaining parameters
// resolve with the prop type language.
func (r *TS) Commands(props []Property, types TypeMap) ([]schema.Command, error) {
	commands := make([]schema.Command, 0, len(props))
	for _, prop := range props {
		if prop.Kind != PropertyMember {
			return nil, fmt.Errorf("command interfaces cannot extend other types")
		}
		formal, ok := commandParameterList(prop.Node)
		if !ok {
			return nil, fmt.Errorf("command %s must be a method", prop.Name)
		}

		params, err := r.commandParams(prop, formal, types)
		if err != nil {
			return nil, err
		}
		commands = append(commands, schema.Command{
			Name:     prop.Name,
			Optional: prop.Optional,
			Params:   params,
		})
	}
	return commands, nil
}

// commandParameterList returns the formal parameter list of a command
// member, accepting both declaration forms:
//
//	focus(viewRef: ElementRef): void;
//	focus: (viewRef: ElementRef) => void;
func commandParameterList(member *ts.Node) (*ts.Node, bool) {
	if member == nil {
		return nil, false
	}
	switch member.Kind() {
	case "method_signature":
		return member.ChildByFieldName("parameters"), true
	case "property_signature":
		typeNode := annotatedType(member, "type")
		if typeNode != nil && typeNode.Kind() == "function_type" {
			return typeNode.ChildByFieldName("parameters"), true
		}
	}
	return nil, false
}

func (r *TS) commandParams(command Property, formal *ts.Node, types TypeMap) ([]schema.CommandParam, error) {
	params := make([]schema.CommandParam, 0)

	first := true
	for _, param := range NamedChildren(formal) {
		switch param.Kind() {
		case "required_parameter", "optional_parameter":
		default:
			continue
		}

		typeNode := annotatedType(param, "type")
		if first {
			first = false
			if r.isViewRef(typeNode) {
				continue
			}
			return nil, fmt.Errorf("command %s: the first parameter must be a React.ElementRef to the component", command.Name)
		}

		pattern := param.ChildByFieldName("pattern")
		if pattern == nil || pattern.Kind() != "identifier" {
			return nil, fmt.Errorf("command %s: parameters must be plain identifiers", command.Name)
		}

		annotation, err := r.resolveTypeAnnotation(typeNode, types)
		if err != nil {
			return nil, fmt.Errorf("command %s, parameter %s: %w", command.Name, r.text(pattern), err)
		}

		params = append(params, schema.CommandParam{
			Name:           r.text(pattern),
			Optional:       param.Kind() == "optional_parameter",
			TypeAnnotation: annotation,
		})
	}
	return params, nil
}

// isViewRef probes for the React.ElementRef receiver parameter type.
func (r *TS) isViewRef(typeNode *ts.Node) bool {
	if typeNode == nil {
		return false
	}
	text := r.text(typeNode)
	return strings.Contains(text, "ElementRef") || strings.Contains(text, "ComponentRef")
}

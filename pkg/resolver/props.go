package resolver

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// Props resolves ordinary members into typed prop schema entries. Event
// handler members are identified by shape and skipped here; Events owns
// them. Method members cannot appear on a props type.
func (r *TS) Props(props []Property, types TypeMap) ([]schema.Prop, error) {
	result := make([]schema.Prop, 0, len(props))
	for _, prop := range props {
		if prop.Kind != PropertyMember {
			continue
		}
		typeNode := annotatedType(prop.Node, "type")
		if _, ok := r.eventHandlerType(typeNode); ok {
			continue
		}
		if prop.Node.Kind() == "method_signature" {
			return nil, fmt.Errorf("prop %s: methods are not allowed on props types", prop.Name)
		}
		annotation, err := r.resolveTypeAnnotation(typeNode, types)
		if err != nil {
			return nil, fmt.Errorf("prop %s: %w", prop.Name, err)
		}
		result = append(result, schema.Prop{
			Name:           prop.Name,
			Optional:       prop.Optional,
			TypeAnnotation: annotation,
		})
	}
	return result, nil
}

// State resolves the properties of a NativeState type. State properties use
// the same type language as props.
func (r *TS) State(props []Property, types TypeMap) (*schema.State, error) {
	properties := make([]schema.Prop, 0, len(props))
	for _, prop := range props {
		if prop.Kind != PropertyMember {
			return nil, fmt.Errorf("state types cannot extend prop groups")
		}
		annotation, err := r.resolveTypeAnnotation(annotatedType(prop.Node, "type"), types)
		if err != nil {
			return nil, fmt.Errorf("state property %s: %w", prop.Name, err)
		}
		properties = append(properties, schema.Prop{
			Name:           prop.Name,
			Optional:       prop.Optional,
			TypeAnnotation: annotation,
		})
	}
	return &schema.State{Properties: properties}, nil
}

// eventHandlerType probes whether a type node is one of the event handler
// convention types, unwrapping optional null/undefined union members first.
// Returns the generic_type node on a match.
func (r *TS) eventHandlerType(node *ts.Node) (*ts.Node, bool) {
	if node == nil {
		return nil, false
	}
	if node.Kind() == "union_type" {
		for _, leaf := range flattenUnion(node) {
			if handler, ok := r.eventHandlerType(leaf); ok {
				return handler, true
			}
		}
		return nil, false
	}
	switch genericTypeName(node, r.source) {
	case "BubblingEventHandler", "DirectEventHandler":
		return node, true
	}
	return nil, false
}

package resolver

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// knownExtends maps base prop-set names to their builtin schema descriptor.
// Only ViewProps is defined by the convention today.
var knownExtends = map[string]schema.ExtendsProp{
	"ViewProps": {
		Type:          schema.ExtendsTypeBuiltIn,
		KnownTypeName: schema.KnownTypeCoreViewProps,
	},
}

// Properties resolves a type name into its ordered raw property list.
//
// Interfaces and object-literal type aliases yield their members in source
// order. Extends clauses naming a file-local type are flattened recursively
// into the list; extends clauses naming anything else (imported base prop
// sets like ViewProps) become PropertyExtends entries for ExtendsProps to
// classify later.
func (r *TS) Properties(typeName string, types TypeMap) ([]Property, error) {
	return r.properties(typeName, types, make(map[string]bool))
}

func (r *TS) properties(typeName string, types TypeMap, seen map[string]bool) ([]Property, error) {
	if seen[typeName] {
		return nil, fmt.Errorf("circular reference while resolving type %s", typeName)
	}
	seen[typeName] = true

	decl, ok := types[typeName]
	if !ok {
		return nil, fmt.Errorf("could not find type %s", typeName)
	}

	switch decl.Kind() {
	case "interface_declaration":
		var props []Property
		extends, err := r.heritageProperties(decl, types, seen)
		if err != nil {
			return nil, err
		}
		props = append(props, extends...)
		members, err := r.memberProperties(decl.ChildByFieldName("body"), typeName)
		if err != nil {
			return nil, err
		}
		return append(props, members...), nil

	case "type_alias_declaration":
		value := decl.ChildByFieldName("value")
		return r.typeValueProperties(value, typeName, types, seen)

	default:
		return nil, fmt.Errorf("expected %s to be an interface or type alias, found %s", typeName, decl.Kind())
	}
}

// typeValueProperties resolves the right-hand side of a type alias.
func (r *TS) typeValueProperties(value *ts.Node, typeName string, types TypeMap, seen map[string]bool) ([]Property, error) {
	if value == nil {
		return nil, fmt.Errorf("type %s has no definition", typeName)
	}
	switch value.Kind() {
	case "object_type":
		return r.memberProperties(value, typeName)
	case "type_identifier":
		return r.properties(r.text(value), types, seen)
	case "generic_type":
		// Readonly<{...}> and $ReadOnly<{...}> wrappers are transparent.
		name := genericTypeName(value, r.source)
		if name == "Readonly" || name == "$ReadOnly" {
			args := genericTypeArguments(value)
			if len(args) == 1 {
				return r.typeValueProperties(args[0], typeName, types, seen)
			}
		}
		return nil, fmt.Errorf("cannot resolve properties of type %s", typeName)
	case "intersection_type":
		var props []Property
		for _, part := range NamedChildren(value) {
			partProps, err := r.typeValueProperties(part, typeName, types, seen)
			if err != nil {
				return nil, err
			}
			props = append(props, partProps...)
		}
		return props, nil
	default:
		return nil, fmt.Errorf("cannot resolve properties of type %s (found %s)", typeName, value.Kind())
	}
}

// memberProperties reads the member list of an interface_body or
// object_type node.
func (r *TS) memberProperties(body *ts.Node, typeName string) ([]Property, error) {
	if body == nil {
		return nil, fmt.Errorf("could not find a valid type definition for %s, check that the codegen file is valid", typeName)
	}
	switch body.Kind() {
	case "interface_body", "object_type":
	default:
		return nil, fmt.Errorf("could not find a valid type definition for %s, check that the codegen file is valid", typeName)
	}

	var props []Property
	for _, member := range NamedChildren(body) {
		switch member.Kind() {
		case "property_signature", "method_signature":
			name := member.ChildByFieldName("name")
			if name == nil {
				continue
			}
			props = append(props, Property{
				Kind:     PropertyMember,
				Name:     name.Utf8Text(r.source),
				Optional: HasChildOfKind(member, "?"),
				Node:     member,
			})
		}
	}
	return props, nil
}

// heritageProperties resolves an interface's extends clause: file-local base
// types flatten into members, everything else stays as an extends entry.
func (r *TS) heritageProperties(decl *ts.Node, types TypeMap, seen map[string]bool) ([]Property, error) {
	clause := ChildOfKind(decl, "extends_type_clause")
	if clause == nil {
		return nil, nil
	}
	var props []Property
	for _, base := range NamedChildren(clause) {
		if base.Kind() != "type_identifier" {
			return nil, fmt.Errorf("unsupported extends clause: %s", r.text(base))
		}
		baseName := r.text(base)
		if _, local := types[baseName]; local {
			flattened, err := r.properties(baseName, types, seen)
			if err != nil {
				return nil, err
			}
			props = append(props, flattened...)
			continue
		}
		props = append(props, Property{Kind: PropertyExtends, Name: baseName, Node: base})
	}
	return props, nil
}

// ExtendsProps extracts the inherited prop groups from a property list,
// mapping each to its builtin descriptor. An extends entry outside the
// known set cannot be code-generated and is an error.
func (r *TS) ExtendsProps(props []Property, types TypeMap) ([]schema.ExtendsProp, error) {
	var extends []schema.ExtendsProp
	for _, prop := range props {
		if prop.Kind != PropertyExtends {
			continue
		}
		known, ok := knownExtends[prop.Name]
		if !ok {
			return nil, fmt.Errorf("unable to handle extended prop group %s", prop.Name)
		}
		extends = append(extends, known)
	}
	return extends, nil
}

// RemoveKnownExtends returns the subset of props that are ordinary members.
func (r *TS) RemoveKnownExtends(props []Property, types TypeMap) []Property {
	members := make([]Property, 0, len(props))
	for _, prop := range props {
		if prop.Kind == PropertyExtends {
			continue
		}
		members = append(members, prop)
	}
	return members
}

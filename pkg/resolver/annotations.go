package resolver

import (
	"fmt"
	"strconv"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// reservedPrimitives maps convention type names to reserved schema
// primitives that platform generators special-case.
var reservedPrimitives = map[string]string{
	"ColorValue":          schema.ReservedColor,
	"ProcessedColorValue": schema.ReservedColor,
	"ImageSource":         schema.ReservedImageSource,
	"PointValue":          schema.ReservedPoint,
	"EdgeInsetsValue":     schema.ReservedEdgeInsets,
}

// resolveTypeAnnotation normalizes a type node into a schema annotation.
// Unknown shapes are errors: a spec file that uses a type the generators
// cannot express must not silently produce a partial schema.
func (r *TS) resolveTypeAnnotation(node *ts.Node, types TypeMap) (schema.TypeAnnotation, error) {
	if node == nil {
		return schema.TypeAnnotation{}, fmt.Errorf("missing type annotation")
	}

	switch node.Kind() {
	case "parenthesized_type", "readonly_type":
		return r.resolveTypeAnnotation(node.NamedChild(0), types)

	case "predefined_type":
		switch r.text(node) {
		case "boolean":
			return schema.TypeAnnotation{Type: schema.TypeBoolean}, nil
		case "string":
			return schema.TypeAnnotation{Type: schema.TypeString}, nil
		case "number":
			// Bare number defaults to double precision; spec files use the
			// Float/Int32 aliases when they need anything narrower.
			return schema.TypeAnnotation{Type: schema.TypeDouble}, nil
		default:
			return schema.TypeAnnotation{}, fmt.Errorf("unsupported type: %s", r.text(node))
		}

	case "type_identifier":
		return r.resolveNamedType(r.text(node), types)

	case "literal_type":
		value, ok := StringLiteralValue(node.NamedChild(0), r.source)
		if !ok {
			return schema.TypeAnnotation{}, fmt.Errorf("unsupported literal type: %s", r.text(node))
		}
		return schema.TypeAnnotation{Type: schema.TypeStringEnum, Options: []string{value}}, nil

	case "union_type":
		return r.resolveUnionType(node, types)

	case "generic_type":
		return r.resolveGenericType(node, types)

	case "array_type":
		element, err := r.resolveTypeAnnotation(node.NamedChild(0), types)
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		return schema.TypeAnnotation{Type: schema.TypeArray, ElementType: &element}, nil

	case "object_type":
		props, err := r.objectProperties(node, types)
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		return schema.TypeAnnotation{Type: schema.TypeObject, Properties: props}, nil

	default:
		return schema.TypeAnnotation{}, fmt.Errorf("unsupported type annotation: %s", node.Kind())
	}
}

// resolveNamedType handles type references by name: the numeric aliases,
// reserved primitives, then file-local declarations.
func (r *TS) resolveNamedType(name string, types TypeMap) (schema.TypeAnnotation, error) {
	switch name {
	case "Float":
		return schema.TypeAnnotation{Type: schema.TypeFloat}, nil
	case "Double":
		return schema.TypeAnnotation{Type: schema.TypeDouble}, nil
	case "Int32":
		return schema.TypeAnnotation{Type: schema.TypeInt32}, nil
	}
	if reserved, ok := reservedPrimitives[name]; ok {
		return schema.TypeAnnotation{Type: schema.TypeReserved, Name: reserved}, nil
	}

	decl, ok := types[name]
	if !ok {
		return schema.TypeAnnotation{}, fmt.Errorf("could not find type %s", name)
	}
	switch decl.Kind() {
	case "type_alias_declaration":
		return r.resolveTypeAnnotation(decl.ChildByFieldName("value"), types)
	case "enum_declaration":
		return r.resolveEnumType(decl)
	case "interface_declaration":
		props, err := r.objectProperties(decl.ChildByFieldName("body"), types)
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		return schema.TypeAnnotation{Type: schema.TypeObject, Properties: props}, nil
	default:
		return schema.TypeAnnotation{}, fmt.Errorf("unsupported type declaration for %s: %s", name, decl.Kind())
	}
}

// resolveUnionType handles unions. Only unions of string literals are
// expressible (a string enum); null and undefined members are tolerated and
// dropped, so `'a' | 'b' | null` enumerates to ['a', 'b'].
func (r *TS) resolveUnionType(node *ts.Node, types TypeMap) (schema.TypeAnnotation, error) {
	var options []string
	var nonLiteral []*ts.Node

	for _, leaf := range flattenUnion(node) {
		if leaf.Kind() == "literal_type" {
			inner := leaf.NamedChild(0)
			if inner != nil && (inner.Kind() == "null" || inner.Kind() == "undefined") {
				continue
			}
			if value, ok := StringLiteralValue(inner, r.source); ok {
				options = append(options, value)
				continue
			}
		}
		if leaf.Kind() == "predefined_type" && r.text(leaf) == "undefined" {
			continue
		}
		nonLiteral = append(nonLiteral, leaf)
	}

	if len(nonLiteral) == 0 && len(options) > 0 {
		return schema.TypeAnnotation{Type: schema.TypeStringEnum, Options: options}, nil
	}
	if len(nonLiteral) == 1 && len(options) == 0 {
		// e.g. `Float | null`
		return r.resolveTypeAnnotation(nonLiteral[0], types)
	}
	return schema.TypeAnnotation{}, fmt.Errorf("unsupported union type: %s", r.text(node))
}

// resolveGenericType handles the parameterized convention types.
func (r *TS) resolveGenericType(node *ts.Node, types TypeMap) (schema.TypeAnnotation, error) {
	name := genericTypeName(node, r.source)
	args := genericTypeArguments(node)

	switch name {
	case "WithDefault":
		if len(args) != 2 {
			return schema.TypeAnnotation{}, fmt.Errorf("WithDefault requires a type and a default value")
		}
		annotation, err := r.resolveTypeAnnotation(args[0], types)
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		def, err := r.literalValue(args[1])
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		annotation.Default = def
		return annotation, nil

	case "ReadonlyArray", "Array", "$ReadOnlyArray":
		if len(args) != 1 {
			return schema.TypeAnnotation{}, fmt.Errorf("%s requires exactly one type argument", name)
		}
		element, err := r.resolveTypeAnnotation(args[0], types)
		if err != nil {
			return schema.TypeAnnotation{}, err
		}
		return schema.TypeAnnotation{Type: schema.TypeArray, ElementType: &element}, nil

	case "Readonly", "$ReadOnly":
		if len(args) != 1 {
			return schema.TypeAnnotation{}, fmt.Errorf("%s requires exactly one type argument", name)
		}
		return r.resolveTypeAnnotation(args[0], types)

	default:
		return schema.TypeAnnotation{}, fmt.Errorf("unsupported generic type: %s", r.text(node))
	}
}

// resolveEnumType maps a TypeScript enum onto a string enum annotation.
// Member initializer strings win over member names.
func (r *TS) resolveEnumType(decl *ts.Node) (schema.TypeAnnotation, error) {
	body := decl.ChildByFieldName("body")
	if body == nil {
		return schema.TypeAnnotation{}, fmt.Errorf("enum %s has no body", DeclarationName(decl, r.source))
	}
	var options []string
	for _, member := range NamedChildren(body) {
		switch member.Kind() {
		case "enum_assignment":
			value := member.ChildByFieldName("value")
			if text, ok := StringLiteralValue(value, r.source); ok {
				options = append(options, text)
				continue
			}
			return schema.TypeAnnotation{}, fmt.Errorf("enum %s has a non-string member", DeclarationName(decl, r.source))
		case "property_identifier":
			options = append(options, r.text(member))
		}
	}
	return schema.TypeAnnotation{Type: schema.TypeStringEnum, Options: options}, nil
}

// objectProperties resolves the members of an object_type or interface_body
// into fully typed prop entries (used for nested objects, event payloads,
// and state).
func (r *TS) objectProperties(body *ts.Node, types TypeMap) ([]schema.Prop, error) {
	members, err := r.memberProperties(body, "object literal")
	if err != nil {
		return nil, err
	}
	props := make([]schema.Prop, 0, len(members))
	for _, member := range members {
		annotation, err := r.resolveTypeAnnotation(annotatedType(member.Node, "type"), types)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", member.Name, err)
		}
		props = append(props, schema.Prop{
			Name:           member.Name,
			Optional:       member.Optional,
			TypeAnnotation: annotation,
		})
	}
	return props, nil
}

// literalValue evaluates a literal_type node used as a default value.
func (r *TS) literalValue(node *ts.Node) (any, error) {
	if node == nil {
		return nil, fmt.Errorf("missing default value")
	}
	if node.Kind() == "literal_type" {
		node = node.NamedChild(0)
		if node == nil {
			return nil, fmt.Errorf("missing default value")
		}
	}
	switch node.Kind() {
	case "string":
		value, _ := StringLiteralValue(node, r.source)
		return value, nil
	case "number":
		return parseNumber(r.text(node))
	case "unary_expression":
		// Negative numeric defaults parse as unary expressions.
		return parseNumber(r.text(node))
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported default value: %s", r.text(node))
	}
}

func parseNumber(text string) (any, error) {
	text = strings.TrimSpace(text)
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric default %q", text)
	}
	return f, nil
}

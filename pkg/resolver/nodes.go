package resolver

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Non-failing AST probe helpers. Everything in this file answers "does this
// node have that shape?" with a zero value on mismatch; strict validation
// lives with the callers.

// NamedChildren returns all named children of a node.
func NamedChildren(node *ts.Node) []*ts.Node {
	if node == nil {
		return nil
	}
	count := uint(node.NamedChildCount())
	children := make([]*ts.Node, 0, count)
	for i := uint(0); i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// HasChildOfKind reports whether any direct child (named or anonymous, so
// tokens like "?" and "default" count) has the given kind.
func HasChildOfKind(node *ts.Node, kind string) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if node.Child(i).Kind() == kind {
			return true
		}
	}
	return false
}

// ChildOfKind returns the first direct child with the given kind, nil if none.
func ChildOfKind(node *ts.Node, kind string) *ts.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if child := node.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

// CalleeName returns the callee text of a call_expression, "" when the node
// is not a call or the callee is not a plain identifier.
func CalleeName(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "call_expression" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" {
		return ""
	}
	return fn.Utf8Text(source)
}

// TypeArguments returns the named type nodes of a call's type argument list,
// nil when the call carries none.
func TypeArguments(call *ts.Node) []*ts.Node {
	if call == nil {
		return nil
	}
	args := call.ChildByFieldName("type_arguments")
	if args == nil {
		// Some grammar versions expose type arguments as an unnamed child.
		args = ChildOfKind(call, "type_arguments")
	}
	return NamedChildren(args)
}

// CallArguments returns the ordinary argument nodes of a call expression.
func CallArguments(call *ts.Node) []*ts.Node {
	if call == nil {
		return nil
	}
	return NamedChildren(call.ChildByFieldName("arguments"))
}

// StringLiteralValue returns the unquoted value of a string literal node,
// with ok=false when the node is not a string literal.
func StringLiteralValue(node *ts.Node, source []byte) (string, bool) {
	if node == nil || node.Kind() != "string" {
		return "", false
	}
	fragment := ChildOfKind(node, "string_fragment")
	if fragment == nil {
		// Empty string literal: quotes with no fragment.
		return "", true
	}
	return fragment.Utf8Text(source), true
}

// UnwrapTypeCast removes a single type-cast wrapper from an expression:
// `expr as T`, `expr satisfies T`, and one level of parentheses around
// either. Anything else is returned unchanged.
func UnwrapTypeCast(expr *ts.Node) *ts.Node {
	if expr == nil {
		return nil
	}
	if expr.Kind() == "parenthesized_expression" {
		if inner := expr.NamedChild(0); inner != nil {
			expr = inner
		}
	}
	switch expr.Kind() {
	case "as_expression", "satisfies_expression":
		if inner := expr.NamedChild(0); inner != nil {
			return inner
		}
	}
	return expr
}

// DeclarationName returns the name of an interface, type alias, enum, or
// class declaration, "" for anything else.
func DeclarationName(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "interface_declaration", "type_alias_declaration", "enum_declaration", "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Utf8Text(source)
		}
	}
	return ""
}

// flattenUnion collects the leaf types of a (possibly nested) union_type.
func flattenUnion(node *ts.Node) []*ts.Node {
	if node == nil {
		return nil
	}
	if node.Kind() != "union_type" {
		return []*ts.Node{node}
	}
	var leaves []*ts.Node
	for _, child := range NamedChildren(node) {
		leaves = append(leaves, flattenUnion(child)...)
	}
	return leaves
}

// annotatedType returns the type node inside a type_annotation field,
// nil when absent.
func annotatedType(owner *ts.Node, field string) *ts.Node {
	if owner == nil {
		return nil
	}
	annotation := owner.ChildByFieldName(field)
	if annotation == nil {
		return nil
	}
	if annotation.Kind() == "type_annotation" {
		return annotation.NamedChild(0)
	}
	return annotation
}

// genericTypeName returns the base name of a generic_type like
// `WithDefault<...>`, "" when node is not a generic type with a simple name.
func genericTypeName(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "generic_type" {
		return ""
	}
	name := node.ChildByFieldName("name")
	if name == nil || name.Kind() != "type_identifier" {
		return ""
	}
	return name.Utf8Text(source)
}

// genericTypeArguments returns the named type argument nodes of a
// generic_type.
func genericTypeArguments(node *ts.Node) []*ts.Node {
	if node == nil || node.Kind() != "generic_type" {
		return nil
	}
	return NamedChildren(ChildOfKind(node, "type_arguments"))
}

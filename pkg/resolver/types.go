package resolver

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Types collects every type declared at the top level of the file, looking
// through export statements. Later declarations win on (invalid) duplicate
// names, matching source order.
func (r *TS) Types(root *ts.Node) TypeMap {
	types := make(TypeMap)
	if root == nil {
		return types
	}
	for _, stmt := range NamedChildren(root) {
		decl := stmt
		if stmt.Kind() == "export_statement" {
			decl = exportedDeclaration(stmt)
			if decl == nil {
				continue
			}
		}
		if name := DeclarationName(decl, r.source); name != "" {
			types[name] = decl
		}
	}
	return types
}

// exportedDeclaration returns the declaration wrapped by an export
// statement, nil when the export has no inner declaration (e.g. a
// re-export or an expression export).
func exportedDeclaration(stmt *ts.Node) *ts.Node {
	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		return decl
	}
	for _, child := range NamedChildren(stmt) {
		switch child.Kind() {
		case "interface_declaration", "type_alias_declaration", "enum_declaration":
			return child
		}
	}
	return nil
}

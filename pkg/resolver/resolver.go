// Package resolver turns fragments of a parsed component spec file into
// schema fragments: the declared type table, property lists, prop and event
// annotations, command signatures, options, and native state.
//
// All functions are pure over the tree and the file's source bytes; the
// resolver keeps no state between calls. Probing helpers never fail — they
// return zero values when a node does not have the expected shape — while
// the exported resolution methods validate strictly and return errors.
package resolver

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// TypeMap maps a locally declared type name to its declaration node
// (interface, type alias, or enum). Keys are unique per file; the map is
// read-only to consumers.
type TypeMap map[string]*ts.Node

// PropertyKind distinguishes ordinary members from inherited prop groups.
type PropertyKind string

const (
	// PropertyMember is a property or method declared directly on the type.
	PropertyMember PropertyKind = "member"
	// PropertyExtends is a prop group pulled in through an extends clause
	// that did not resolve to a file-local type (e.g. ViewProps).
	PropertyExtends PropertyKind = "extends"
)

// Property is one raw entry of a resolved property list. Node points back
// into the tree: for members it is the property_signature or
// method_signature, for extends entries the heritage type node.
type Property struct {
	Kind     PropertyKind
	Name     string
	Optional bool
	Node     *ts.Node
}

// CommandOptions is the resolved options object of a commands declaration.
type CommandOptions struct {
	SupportedCommands []string
}

// TS resolves types against the TypeScript/TSX grammar. The zero value is
// not usable; construct with New, which binds the resolver to one file's
// source bytes.
type TS struct {
	source []byte
}

// New creates a resolver bound to the source bytes the tree was parsed from.
func New(source []byte) *TS {
	return &TS{source: source}
}

func (r *TS) text(node *ts.Node) string {
	return node.Utf8Text(r.source)
}

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/parser"
)

// parseSource parses a TypeScript snippet and returns its root node. The
// tree and parser are closed via test cleanup.
func parseSource(t *testing.T, source string) *ts.Node {
	t.Helper()
	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.Parse([]byte(source), parser.LanguageTypeScript, false)
	require.NoError(t, err, "snippet should parse")
	t.Cleanup(func() { tree.Close() })
	return tree.RootNode()
}

// resolveType parses a snippet and resolves typeName's raw property list.
func resolveType(t *testing.T, source, typeName string) (*TS, []Property, TypeMap) {
	t.Helper()
	root := parseSource(t, source)
	r := New([]byte(source))
	types := r.Types(root)
	props, err := r.Properties(typeName, types)
	require.NoError(t, err, "Properties(%s) should succeed", typeName)
	return r, props, types
}

// objectExpr digs the object literal out of `const x = {...};`.
func objectExpr(t *testing.T, root *ts.Node) *ts.Node {
	t.Helper()
	for _, stmt := range NamedChildren(root) {
		if stmt.Kind() != "lexical_declaration" {
			continue
		}
		for _, declarator := range NamedChildren(stmt) {
			if declarator.Kind() != "variable_declarator" {
				continue
			}
			if value := declarator.ChildByFieldName("value"); value != nil {
				return value
			}
		}
	}
	t.Fatal("no object literal found in snippet")
	return nil
}

func TestTypesCollectsTopLevelDeclarations(t *testing.T) {
	source := `
interface NativeProps { enabled: boolean; }
export interface DragEvent { x: number; }
type Mode = 'fast' | 'slow';
export type Alias = NativeProps;
enum Direction { Up, Down }
const notAType = 1;
`
	root := parseSource(t, source)
	r := New([]byte(source))
	types := r.Types(root)

	assert.Len(t, types, 5)
	for _, name := range []string{"NativeProps", "DragEvent", "Mode", "Alias", "Direction"} {
		assert.Contains(t, types, name, "should collect %s", name)
	}
	assert.NotContains(t, types, "notAType")
}

func TestTypesLooksThroughExportStatements(t *testing.T) {
	source := `export interface SliderNativeState { value: number; }`
	root := parseSource(t, source)
	r := New([]byte(source))
	types := r.Types(root)

	decl, ok := types["SliderNativeState"]
	require.True(t, ok)
	assert.Equal(t, "interface_declaration", decl.Kind())
}

func TestTypesEmptyForNilRoot(t *testing.T) {
	r := New(nil)
	assert.Empty(t, r.Types(nil))
}

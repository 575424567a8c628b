package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/nativegen/pkg/schema"
)

// resolveProps parses a snippet, resolves NativeProps, and runs Props.
func resolveProps(t *testing.T, source string) []schema.Prop {
	t.Helper()
	r, properties, types := resolveType(t, source, "NativeProps")
	props, err := r.Props(properties, types)
	require.NoError(t, err, "Props should succeed")
	return props
}

func propByName(t *testing.T, props []schema.Prop, name string) schema.Prop {
	t.Helper()
	for _, prop := range props {
		if prop.Name == name {
			return prop
		}
	}
	t.Fatalf("prop %s not found", name)
	return schema.Prop{}
}

func TestPropsPrimitiveTypes(t *testing.T) {
	source := `
interface NativeProps {
  enabled: boolean;
  label: string;
  opacity: number;
  thumbSize: Float;
  progress: Double;
  count: Int32;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 6)

	assert.Equal(t, schema.TypeBoolean, propByName(t, props, "enabled").TypeAnnotation.Type)
	assert.Equal(t, schema.TypeString, propByName(t, props, "label").TypeAnnotation.Type)
	assert.Equal(t, schema.TypeDouble, propByName(t, props, "opacity").TypeAnnotation.Type)
	assert.Equal(t, schema.TypeFloat, propByName(t, props, "thumbSize").TypeAnnotation.Type)
	assert.Equal(t, schema.TypeDouble, propByName(t, props, "progress").TypeAnnotation.Type)
	assert.Equal(t, schema.TypeInt32, propByName(t, props, "count").TypeAnnotation.Type)
}

func TestPropsReservedTypes(t *testing.T) {
	source := `
interface NativeProps {
  tintColor: ColorValue;
  icon: ImageSource;
  anchor: PointValue;
  insets: EdgeInsetsValue;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 4)

	tint := propByName(t, props, "tintColor").TypeAnnotation
	assert.Equal(t, schema.TypeReserved, tint.Type)
	assert.Equal(t, schema.ReservedColor, tint.Name)

	assert.Equal(t, schema.ReservedImageSource, propByName(t, props, "icon").TypeAnnotation.Name)
	assert.Equal(t, schema.ReservedPoint, propByName(t, props, "anchor").TypeAnnotation.Name)
	assert.Equal(t, schema.ReservedEdgeInsets, propByName(t, props, "insets").TypeAnnotation.Name)
}

func TestPropsWithDefault(t *testing.T) {
	source := `
interface NativeProps {
  enabled?: WithDefault<boolean, true>;
  step?: WithDefault<Float, 0.5>;
  count?: WithDefault<Int32, -1>;
  mode?: WithDefault<'fast' | 'slow', 'fast'>;
  name?: WithDefault<string, 'thumb'>;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 5)

	enabled := propByName(t, props, "enabled").TypeAnnotation
	assert.Equal(t, schema.TypeBoolean, enabled.Type)
	assert.Equal(t, true, enabled.Default)

	step := propByName(t, props, "step").TypeAnnotation
	assert.Equal(t, schema.TypeFloat, step.Type)
	assert.Equal(t, 0.5, step.Default)

	count := propByName(t, props, "count").TypeAnnotation
	assert.Equal(t, schema.TypeInt32, count.Type)
	assert.Equal(t, int64(-1), count.Default)

	mode := propByName(t, props, "mode").TypeAnnotation
	assert.Equal(t, schema.TypeStringEnum, mode.Type)
	assert.Equal(t, []string{"fast", "slow"}, mode.Options)
	assert.Equal(t, "fast", mode.Default)

	assert.Equal(t, "thumb", propByName(t, props, "name").TypeAnnotation.Default)
}

func TestPropsStringEnums(t *testing.T) {
	source := `
interface NativeProps {
  single: 'only';
  union: 'a' | 'b' | 'c';
  nullable: 'x' | 'y' | null;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 3)

	single := propByName(t, props, "single").TypeAnnotation
	assert.Equal(t, schema.TypeStringEnum, single.Type)
	assert.Equal(t, []string{"only"}, single.Options)

	union := propByName(t, props, "union").TypeAnnotation
	assert.Equal(t, []string{"a", "b", "c"}, union.Options)

	// null members drop out of the enumeration.
	nullable := propByName(t, props, "nullable").TypeAnnotation
	assert.Equal(t, []string{"x", "y"}, nullable.Options)
}

func TestPropsNullableNonLiteralUnion(t *testing.T) {
	source := `
interface NativeProps {
  size: Float | null;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 1)
	assert.Equal(t, schema.TypeFloat, props[0].TypeAnnotation.Type)
}

func TestPropsArrays(t *testing.T) {
	source := `
interface NativeProps {
  values: Float[];
  names: ReadonlyArray<string>;
  nested: ReadonlyArray<ReadonlyArray<Int32>>;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 3)

	values := propByName(t, props, "values").TypeAnnotation
	assert.Equal(t, schema.TypeArray, values.Type)
	require.NotNil(t, values.ElementType)
	assert.Equal(t, schema.TypeFloat, values.ElementType.Type)

	names := propByName(t, props, "names").TypeAnnotation
	assert.Equal(t, schema.TypeArray, names.Type)
	assert.Equal(t, schema.TypeString, names.ElementType.Type)

	nested := propByName(t, props, "nested").TypeAnnotation
	require.NotNil(t, nested.ElementType)
	assert.Equal(t, schema.TypeArray, nested.ElementType.Type)
	assert.Equal(t, schema.TypeInt32, nested.ElementType.ElementType.Type)
}

func TestPropsObjects(t *testing.T) {
	source := `
interface Region {
  latitude: Double;
  longitude: Double;
}
interface NativeProps {
  inline: { width: Float; height?: Float };
  named: Region;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 2)

	inline := propByName(t, props, "inline").TypeAnnotation
	assert.Equal(t, schema.TypeObject, inline.Type)
	require.Len(t, inline.Properties, 2)
	assert.Equal(t, "width", inline.Properties[0].Name)
	assert.True(t, inline.Properties[1].Optional)

	named := propByName(t, props, "named").TypeAnnotation
	assert.Equal(t, schema.TypeObject, named.Type)
	require.Len(t, named.Properties, 2)
	assert.Equal(t, schema.TypeDouble, named.Properties[0].TypeAnnotation.Type)
}

func TestPropsEnumDeclaration(t *testing.T) {
	source := `
enum Alignment {
  Start = 'start',
  End = 'end',
}
enum Bare { One, Two }
interface NativeProps {
  alignment: Alignment;
  bare: Bare;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 2)

	alignment := propByName(t, props, "alignment").TypeAnnotation
	assert.Equal(t, schema.TypeStringEnum, alignment.Type)
	assert.Equal(t, []string{"start", "end"}, alignment.Options)

	// Members without initializers enumerate by name.
	bare := propByName(t, props, "bare").TypeAnnotation
	assert.Equal(t, []string{"One", "Two"}, bare.Options)
}

func TestPropsSkipsEventHandlers(t *testing.T) {
	source := `
interface NativeProps {
  enabled: boolean;
  onChange?: BubblingEventHandler<{ value: Float }>;
  onScroll?: DirectEventHandler<{ y: Double }> | null;
}
`
	props := resolveProps(t, source)
	require.Len(t, props, 1)
	assert.Equal(t, "enabled", props[0].Name)
}

func TestPropsRejectsMethods(t *testing.T) {
	source := `
interface NativeProps {
  doThing(): void;
}
`
	r, properties, types := resolveType(t, source, "NativeProps")
	_, err := r.Props(properties, types)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "methods are not allowed on props types")
}

func TestPropsUnknownTypeFails(t *testing.T) {
	source := `
interface NativeProps {
  mystery: SomethingImported;
}
`
	r, properties, types := resolveType(t, source, "NativeProps")
	_, err := r.Props(properties, types)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find type SomethingImported")
}

func TestStateProperties(t *testing.T) {
	source := `
interface SliderNativeState {
  value: Double;
  focused?: boolean;
}
`
	r, properties, types := resolveType(t, source, "SliderNativeState")
	state, err := r.State(properties, types)
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Len(t, state.Properties, 2)
	assert.Equal(t, "value", state.Properties[0].Name)
	assert.Equal(t, schema.TypeDouble, state.Properties[0].TypeAnnotation.Type)
	assert.True(t, state.Properties[1].Optional)
}

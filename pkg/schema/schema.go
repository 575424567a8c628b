// Package schema defines the normalized, language-agnostic component schema
// produced from a native component spec file. The schema is a fresh value:
// it holds no references back into the parsed syntax tree, so downstream
// generators can keep it after the tree is closed.
package schema

// ComponentSchema describes one native component declared in one spec file.
type ComponentSchema struct {
	Filename      string        `json:"filename"`
	ComponentName string        `json:"componentName"`
	Options       Options       `json:"options"`
	ExtendsProps  []ExtendsProp `json:"extendsProps"`
	Events        []Event       `json:"events"`
	Props         []Prop        `json:"props"`
	Commands      []Command     `json:"commands"`

	// State is only present when the spec file declares a NativeState type.
	State *State `json:"state,omitempty"`
}

// Options carries per-component codegen options from the second argument of
// the component declaration call.
type Options struct {
	InterfaceOnly                bool     `json:"interfaceOnly,omitempty"`
	PaperComponentName           string   `json:"paperComponentName,omitempty"`
	PaperComponentNameDeprecated string   `json:"paperComponentNameDeprecated,omitempty"`
	ExcludedPlatforms            []string `json:"excludedPlatforms,omitempty"`
}

// ExtendsProp records a prop group inherited from a common base property set
// rather than declared locally.
type ExtendsProp struct {
	Type          string `json:"type"`
	KnownTypeName string `json:"knownTypeName"`
}

// Known extends-prop constants. ViewProps is the only base prop set the
// convention currently defines.
const (
	ExtendsTypeBuiltIn     = "ReactNativeBuiltInType"
	KnownTypeCoreViewProps = "ReactNativeCoreViewProps"
)

// TypeAnnotation is the normalized type of a prop, command parameter, state
// property, or event payload field.
type TypeAnnotation struct {
	Type string `json:"type"`

	// Name identifies the reserved primitive for ReservedTypeAnnotation
	// (e.g. "ColorPrimitive").
	Name string `json:"name,omitempty"`

	// Default is the literal default declared via WithDefault<>.
	Default any `json:"default,omitempty"`

	// Options lists the allowed values of a StringEnumTypeAnnotation.
	Options []string `json:"options,omitempty"`

	// ElementType is set for ArrayTypeAnnotation.
	ElementType *TypeAnnotation `json:"elementType,omitempty"`

	// Properties is set for ObjectTypeAnnotation.
	Properties []Prop `json:"properties,omitempty"`
}

// TypeAnnotation.Type values.
const (
	TypeBoolean    = "BooleanTypeAnnotation"
	TypeString     = "StringTypeAnnotation"
	TypeFloat      = "FloatTypeAnnotation"
	TypeDouble     = "DoubleTypeAnnotation"
	TypeInt32      = "Int32TypeAnnotation"
	TypeStringEnum = "StringEnumTypeAnnotation"
	TypeArray      = "ArrayTypeAnnotation"
	TypeObject     = "ObjectTypeAnnotation"
	TypeReserved   = "ReservedTypeAnnotation"
)

// Reserved primitive names for TypeReserved annotations.
const (
	ReservedColor       = "ColorPrimitive"
	ReservedImageSource = "ImageSourcePrimitive"
	ReservedPoint       = "PointPrimitive"
	ReservedEdgeInsets  = "EdgeInsetsPrimitive"
)

// Prop is one declared component property.
type Prop struct {
	Name           string         `json:"name"`
	Optional       bool           `json:"optional"`
	TypeAnnotation TypeAnnotation `json:"typeAnnotation"`
}

// Event is one component event, identified in the props type by the
// BubblingEventHandler / DirectEventHandler naming convention.
type Event struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
	// BubblingType is "direct" or "bubble".
	BubblingType string `json:"bubblingType"`
	// PaperTopLevelNameDeprecated carries the legacy top-level event name
	// when the spec declares one as a second type argument.
	PaperTopLevelNameDeprecated string `json:"paperTopLevelNameDeprecated,omitempty"`
	Payload                     []Prop `json:"payload"`
}

// Event bubbling types.
const (
	BubblingTypeDirect = "direct"
	BubblingTypeBubble = "bubble"
)

// Command is one imperative operation invokable on a component instance.
type Command struct {
	Name     string         `json:"name"`
	Optional bool           `json:"optional"`
	Params   []CommandParam `json:"params"`
}

// CommandParam is one command parameter (the view ref receiver excluded).
type CommandParam struct {
	Name           string         `json:"name"`
	Optional       bool           `json:"optional"`
	TypeAnnotation TypeAnnotation `json:"typeAnnotation"`
}

// State describes the persisted native-side component state.
type State struct {
	Properties []Prop `json:"properties"`
}

// Library is the combined output of a generation run: every component
// schema keyed by spec filename (without extension).
type Library struct {
	Modules map[string]*ComponentSchema `json:"modules"`
}

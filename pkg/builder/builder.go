// Package builder locates the component declaration in a parsed spec file
// and assembles the normalized component schema from it.
package builder

import (
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/resolver"
	"github.com/gnana997/nativegen/pkg/schema"
)

// Resolver is the capability set the assembler needs from a type
// resolution implementation. *resolver.TS is the production implementation;
// tests inject fakes.
type Resolver interface {
	Types(root *ts.Node) resolver.TypeMap
	Properties(typeName string, types resolver.TypeMap) ([]resolver.Property, error)
	ExtendsProps(props []resolver.Property, types resolver.TypeMap) ([]schema.ExtendsProp, error)
	RemoveKnownExtends(props []resolver.Property, types resolver.TypeMap) []resolver.Property
	Options(expr *ts.Node) (schema.Options, error)
	CommandOptions(expr *ts.Node) (*resolver.CommandOptions, error)
	Props(props []resolver.Property, types resolver.TypeMap) ([]schema.Prop, error)
	Events(props []resolver.Property, types resolver.TypeMap) ([]schema.Event, error)
	Commands(props []resolver.Property, types resolver.TypeMap) ([]schema.Command, error)
	State(props []resolver.Property, types resolver.TypeMap) (*schema.State, error)
}

// Build assembles the component schema for one parsed spec file. filename
// is the module name recorded in the schema (by convention the spec file's
// base name without extension).
//
// The resolution steps run in dependency order: properties are resolved
// before events, commands, and extends groups, since those are all derived
// from the property list. Any locator or resolver error aborts the build;
// there are no partial schemas.
func Build(filename string, root *ts.Node, source []byte, res Resolver) (*schema.ComponentSchema, error) {
	config, err := FindComponentConfig(root, source)
	if err != nil {
		return nil, err
	}

	types := res.Types(root)

	propProperties, err := res.Properties(config.PropsTypeName, types)
	if err != nil {
		return nil, err
	}

	commandOptions, err := res.CommandOptions(config.CommandOptionsExpr)
	if err != nil {
		return nil, err
	}

	commandProperties, err := resolveCommandProperties(config, types, commandOptions, res)
	if err != nil {
		return nil, err
	}

	extendsProps, err := res.ExtendsProps(propProperties, types)
	if err != nil {
		return nil, err
	}
	nonExtendsProperties := res.RemoveKnownExtends(propProperties, types)

	options, err := res.Options(config.OptionsExpr)
	if err != nil {
		return nil, err
	}

	props, err := res.Props(nonExtendsProperties, types)
	if err != nil {
		return nil, err
	}

	events, err := res.Events(propProperties, types)
	if err != nil {
		return nil, err
	}

	commands, err := res.Commands(commandProperties, types)
	if err != nil {
		return nil, err
	}

	componentSchema := &schema.ComponentSchema{
		Filename:      filename,
		ComponentName: config.ComponentName,
		Options:       options,
		ExtendsProps:  extendsProps,
		Events:        events,
		Props:         props,
		Commands:      commands,
	}

	if config.StateTypeName != "" {
		stateProperties, err := res.Properties(config.StateTypeName, types)
		if err != nil {
			return nil, err
		}
		state, err := res.State(stateProperties, types)
		if err != nil {
			return nil, err
		}
		componentSchema.State = state
	}

	return componentSchema, nil
}

// resolveCommandProperties validates the command type and cross-checks its
// members against the declared supportedCommands list. No command type
// means no commands.
func resolveCommandProperties(
	config *ComponentConfig,
	types resolver.TypeMap,
	commandOptions *resolver.CommandOptions,
	res Resolver,
) ([]resolver.Property, error) {
	if config.CommandTypeName == "" {
		return nil, nil
	}

	decl, ok := types[config.CommandTypeName]
	if !ok {
		return nil, malformedInputErrorf(
			"could not find a valid type definition for %s, check that the codegen file is valid",
			config.CommandTypeName)
	}
	if decl.Kind() != "interface_declaration" {
		return nil, shapeMismatchErrorf(
			"expected the command type %s to be an interface declaration, found %s",
			config.CommandTypeName, decl.Kind())
	}

	properties, err := res.Properties(config.CommandTypeName, types)
	if err != nil {
		return nil, malformedInputErrorf(
			"could not find a valid type definition for %s, check that the codegen file is valid",
			config.CommandTypeName)
	}

	var supported []string
	if commandOptions != nil {
		supported = commandOptions.SupportedCommands
	}
	if err := crossValidateCommands(config.CommandTypeName, properties, supported); err != nil {
		return nil, err
	}
	return properties, nil
}

// crossValidateCommands requires the interface's member names and the
// supportedCommands list to match exactly: same count, same set.
func crossValidateCommands(typeName string, properties []resolver.Property, supported []string) error {
	declared := make([]string, 0, len(properties))
	declaredSet := make(map[string]bool, len(properties))
	for _, prop := range properties {
		declared = append(declared, prop.Name)
		declaredSet[prop.Name] = true
	}

	supportedSet := make(map[string]bool, len(supported))
	for _, name := range supported {
		supportedSet[name] = true
	}

	matches := len(supported) == len(declared)
	if matches {
		for _, name := range supported {
			if !declaredSet[name] {
				matches = false
				break
			}
		}
		for _, name := range declared {
			if !supportedSet[name] {
				matches = false
				break
			}
		}
	}
	if matches {
		return nil
	}

	sort.Strings(declared)
	return shapeMismatchErrorf(
		"codegenNativeCommands expected the same supportedCommands as declared in the %s interface: %v (got %v)",
		typeName, declared, supported)
}

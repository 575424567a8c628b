package resolver

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/nativegen/pkg/schema"
)

// Events extracts event schema entries from the full property list. An
// event is any member typed BubblingEventHandler<Payload> or
// DirectEventHandler<Payload>; everything else is ignored here.
//
// The payload is the first type argument: an inline object type or a
// file-local named type. An optional second string-literal type argument is
// the deprecated paper top-level event name.
func (r *TS) Events(props []Property, types TypeMap) ([]schema.Event, error) {
	events := make([]schema.Event, 0)
	for _, prop := range props {
		if prop.Kind != PropertyMember {
			continue
		}
		handler, ok := r.eventHandlerType(annotatedType(prop.Node, "type"))
		if !ok {
			continue
		}

		event := schema.Event{
			Name:     prop.Name,
			Optional: prop.Optional,
		}
		switch genericTypeName(handler, r.source) {
		case "BubblingEventHandler":
			event.BubblingType = schema.BubblingTypeBubble
		case "DirectEventHandler":
			event.BubblingType = schema.BubblingTypeDirect
		}

		args := genericTypeArguments(handler)
		if len(args) == 0 {
			return nil, fmt.Errorf("event %s: missing payload type argument", prop.Name)
		}
		payload, err := r.eventPayload(prop.Name, args[0], types)
		if err != nil {
			return nil, err
		}
		event.Payload = payload

		if len(args) > 1 {
			paperName, err := r.paperTopLevelName(prop.Name, args[1])
			if err != nil {
				return nil, err
			}
			event.PaperTopLevelNameDeprecated = paperName
		}

		events = append(events, event)
	}
	return events, nil
}

// eventPayload resolves the payload type argument into its property list.
// `null` payloads declare an event without arguments.
func (r *TS) eventPayload(eventName string, payload *ts.Node, types TypeMap) ([]schema.Prop, error) {
	switch payload.Kind() {
	case "object_type":
		props, err := r.objectProperties(payload, types)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", eventName, err)
		}
		return props, nil
	case "type_identifier":
		annotation, err := r.resolveNamedType(r.text(payload), types)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", eventName, err)
		}
		if annotation.Type != schema.TypeObject {
			return nil, fmt.Errorf("event %s: payload type %s is not an object type", eventName, r.text(payload))
		}
		return annotation.Properties, nil
	case "literal_type":
		inner := payload.NamedChild(0)
		if inner != nil && inner.Kind() == "null" {
			return []schema.Prop{}, nil
		}
	}
	return nil, fmt.Errorf("event %s: unsupported payload type %s", eventName, payload.Kind())
}

// paperTopLevelName reads the deprecated paper event name from the second
// type argument, which must be a string literal type.
func (r *TS) paperTopLevelName(eventName string, arg *ts.Node) (string, error) {
	if arg.Kind() == "literal_type" {
		if value, ok := StringLiteralValue(arg.NamedChild(0), r.source); ok {
			return value, nil
		}
	}
	return "", fmt.Errorf("event %s: paper top-level name must be a string literal", eventName)
}

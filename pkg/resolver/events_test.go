package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/nativegen/pkg/schema"
)

func resolveEvents(t *testing.T, source string) []schema.Event {
	t.Helper()
	r, properties, types := resolveType(t, source, "NativeProps")
	events, err := r.Events(properties, types)
	require.NoError(t, err, "Events should succeed")
	return events
}

func TestEventsBubblingTypes(t *testing.T) {
	source := `
interface NativeProps {
  onChange?: BubblingEventHandler<{ value: Float }>;
  onScrollEnd: DirectEventHandler<{ y: Double }>;
}
`
	events := resolveEvents(t, source)
	require.Len(t, events, 2)

	assert.Equal(t, "onChange", events[0].Name)
	assert.Equal(t, schema.BubblingTypeBubble, events[0].BubblingType)
	assert.True(t, events[0].Optional)
	require.Len(t, events[0].Payload, 1)
	assert.Equal(t, "value", events[0].Payload[0].Name)
	assert.Equal(t, schema.TypeFloat, events[0].Payload[0].TypeAnnotation.Type)

	assert.Equal(t, "onScrollEnd", events[1].Name)
	assert.Equal(t, schema.BubblingTypeDirect, events[1].BubblingType)
	assert.False(t, events[1].Optional)
}

func TestEventsNamedPayloadType(t *testing.T) {
	source := `
interface ChangeEvent {
  value: Float;
  fromUser: boolean;
}
interface NativeProps {
  onChange?: DirectEventHandler<ChangeEvent>;
}
`
	events := resolveEvents(t, source)
	require.Len(t, events, 1)
	require.Len(t, events[0].Payload, 2)
	assert.Equal(t, "value", events[0].Payload[0].Name)
	assert.Equal(t, "fromUser", events[0].Payload[1].Name)
}

func TestEventsNullPayload(t *testing.T) {
	source := `
interface NativeProps {
  onClose?: DirectEventHandler<null>;
}
`
	events := resolveEvents(t, source)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Payload)
	assert.NotNil(t, events[0].Payload)
}

func TestEventsPaperTopLevelName(t *testing.T) {
	source := `
interface NativeProps {
  onChange?: BubblingEventHandler<{ value: Float }, 'paperValueChange'>;
}
`
	events := resolveEvents(t, source)
	require.Len(t, events, 1)
	assert.Equal(t, "paperValueChange", events[0].PaperTopLevelNameDeprecated)
}

func TestEventsNullableHandler(t *testing.T) {
	source := `
interface NativeProps {
  onChange?: BubblingEventHandler<{ value: Float }> | null;
}
`
	events := resolveEvents(t, source)
	require.Len(t, events, 1)
	assert.Equal(t, "onChange", events[0].Name)
	assert.Equal(t, schema.BubblingTypeBubble, events[0].BubblingType)
}

func TestEventsNonObjectNamedPayloadFails(t *testing.T) {
	source := `
type NotAnObject = 'a' | 'b';
interface NativeProps {
  onChange?: DirectEventHandler<NotAnObject>;
}
`
	r, properties, types := resolveType(t, source, "NativeProps")
	_, err := r.Events(properties, types)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object type")
}

func TestEventsIgnoresPlainProps(t *testing.T) {
	source := `
interface NativeProps {
  enabled: boolean;
  label: string;
}
`
	events := resolveEvents(t, source)
	assert.Empty(t, events)
}

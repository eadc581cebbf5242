package device

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingFor(origin Origin) *DeviceBinding {
	b := NewDeviceBinding(origin, nil, IOTypeInput)
	b.IsBound = true
	return b
}

func TestAddDeviceBindingSameBindingTwice(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	origin := Origin{PluginID: uuid.New(), PluginTitle: "Throttle map", ProfileID: uuid.New()}
	b := bindingFor(origin)

	assert.True(t, d.AddDeviceBinding(b))
	assert.True(t, d.AddDeviceBinding(b))

	got := d.Subscriptions(origin.PluginID)
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
}

func TestAddDeviceBindingProfileOverride(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	plugin := uuid.New()
	parent := Origin{PluginID: plugin, PluginTitle: "Map", ProfileID: uuid.New()}
	child := Origin{PluginID: plugin, PluginTitle: "Map", ProfileID: uuid.New()}

	a := bindingFor(parent)
	b := bindingFor(child)

	d.AddDeviceBinding(a)
	d.AddDeviceBinding(b)

	got := d.Subscriptions(plugin)
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])
}

func TestAddDeviceBindingSameProfileAccumulates(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	origin := Origin{PluginID: uuid.New(), PluginTitle: "Map", ProfileID: uuid.New()}
	a, b, c := bindingFor(origin), bindingFor(origin), bindingFor(origin)

	d.AddDeviceBinding(a)
	d.AddDeviceBinding(b)
	assert.Equal(t, []*DeviceBinding{a, b}, d.Subscriptions(origin.PluginID))

	// Re-registering a moves it to the end.
	d.AddDeviceBinding(c)
	d.AddDeviceBinding(a)
	assert.Equal(t, []*DeviceBinding{b, c, a}, d.Subscriptions(origin.PluginID))
}

func TestAddDeviceBindingPluginsAreIndependent(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	profile := uuid.New()
	first := Origin{PluginID: uuid.New(), PluginTitle: "Same title", ProfileID: profile}
	second := Origin{PluginID: uuid.New(), PluginTitle: "Same title", ProfileID: uuid.New()}

	d.AddDeviceBinding(bindingFor(first))
	d.AddDeviceBinding(bindingFor(second))

	assert.Equal(t, []uuid.UUID{first.PluginID, second.PluginID}, d.PluginKeys())
	assert.Len(t, d.Subscriptions(first.PluginID), 1)
	assert.Len(t, d.Subscriptions(second.PluginID), 1)
	assert.Equal(t, 2, d.SubscriptionCount())
}

func TestSubscriptionsReturnsCopy(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	origin := Origin{PluginID: uuid.New(), ProfileID: uuid.New()}
	d.AddDeviceBinding(bindingFor(origin))

	got := d.Subscriptions(origin.PluginID)
	got[0] = nil
	assert.NotNil(t, d.Subscriptions(origin.PluginID)[0])

	assert.Nil(t, d.Subscriptions(uuid.New()))
}

func TestClearSubscriptions(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	d.AddDeviceBinding(bindingFor(Origin{PluginID: uuid.New(), ProfileID: uuid.New()}))

	d.ClearSubscriptions()
	assert.Zero(t, d.SubscriptionCount())
	assert.Empty(t, d.PluginKeys())
}

package device

import "github.com/google/uuid"

// subscriptionTable holds, per plugin, the bindings currently active on a
// device. All entries under one plugin originate from the same profile.
//
// Entries are keyed by the stable plugin ID rather than the plugin title,
// which is a mutable display string. Plugin order is kept so batch
// operations visit plugins in registration order.
type subscriptionTable struct {
	entries map[uuid.UUID][]*DeviceBinding
	order   []uuid.UUID
}

func newSubscriptionTable() *subscriptionTable {
	return &subscriptionTable{
		entries: make(map[uuid.UUID][]*DeviceBinding),
	}
}

// register applies the override rule and reports success.
func (t *subscriptionTable) register(b *DeviceBinding) bool {
	key := b.Origin.PluginID
	current, known := t.entries[key]
	if !known {
		t.order = append(t.order, key)
	}

	if len(current) == 0 {
		t.entries[key] = []*DeviceBinding{b}
		return true
	}

	// A later profile supersedes every claim an earlier profile made on
	// this plugin slot.
	if current[0].Origin.ProfileID != b.Origin.ProfileID {
		t.entries[key] = []*DeviceBinding{b}
		return true
	}

	kept := current[:0]
	for _, existing := range current {
		if existing.ID != b.ID {
			kept = append(kept, existing)
		}
	}
	t.entries[key] = append(kept, b)
	return true
}

// each visits every binding of every plugin in registration order.
func (t *subscriptionTable) each(fn func(b *DeviceBinding)) {
	for _, key := range t.order {
		for _, b := range t.entries[key] {
			fn(b)
		}
	}
}

func (t *subscriptionTable) get(pluginID uuid.UUID) []*DeviceBinding {
	current := t.entries[pluginID]
	if len(current) == 0 {
		return nil
	}
	cpy := make([]*DeviceBinding, len(current))
	copy(cpy, current)
	return cpy
}

func (t *subscriptionTable) keys() []uuid.UUID {
	cpy := make([]uuid.UUID, len(t.order))
	copy(cpy, t.order)
	return cpy
}

func (t *subscriptionTable) len() int {
	n := 0
	for _, bindings := range t.entries {
		n += len(bindings)
	}
	return n
}

// AddDeviceBinding registers b as an active binding for its plugin.
//
// If the plugin has no entries, the list becomes [b]. If the existing
// entries come from another profile, the whole list is replaced by [b].
// Otherwise any entry with b's identity is removed and b is appended.
// It always reports true.
func (d *Device) AddDeviceBinding(b *DeviceBinding) bool {
	ok := d.subscriptions.register(b)
	d.logger.Debug("device binding registered",
		"device_id", d.ID,
		"plugin", b.Origin.PluginTitle,
		"binding_id", b.ID,
		"profile_id", b.Origin.ProfileID,
	)
	return ok
}

// Subscriptions returns the active bindings registered for a plugin.
// The returned slice is a copy; the bindings themselves are shared.
func (d *Device) Subscriptions(pluginID uuid.UUID) []*DeviceBinding {
	return d.subscriptions.get(pluginID)
}

// PluginKeys returns the plugins with registrations, in registration order.
func (d *Device) PluginKeys() []uuid.UUID {
	return d.subscriptions.keys()
}

// SubscriptionCount returns the number of registered bindings across all plugins.
func (d *Device) SubscriptionCount() int {
	return d.subscriptions.len()
}

// ClearSubscriptions drops every registration without calling the backend.
func (d *Device) ClearSubscriptions() {
	d.subscriptions = newSubscriptionTable()
}

package device

import "github.com/Stopfield/UCR/internal/backend"

// SubscribeDeviceBindings subscribes every registered binding of every
// plugin. Each binding is attempted even after a failure; the result is
// true only if all attempts succeeded.
func (d *Device) SubscribeDeviceBindings(c backend.Controller) bool {
	success := true
	d.subscriptions.each(func(b *DeviceBinding) {
		ok := d.SubscribeDeviceBindingInput(c, b)
		success = success && ok
	})
	if !success {
		d.logger.Warn("not all device bindings subscribed", "device_id", d.ID, "title", d.Title)
	}
	return success
}

// UnsubscribeDeviceBindings unsubscribes every registered binding of every
// plugin, with the same aggregation as SubscribeDeviceBindings.
func (d *Device) UnsubscribeDeviceBindings(c backend.Controller) bool {
	success := true
	d.subscriptions.each(func(b *DeviceBinding) {
		ok := d.UnsubscribeDeviceBindingInput(c, b)
		success = success && ok
	})
	if !success {
		d.logger.Warn("not all device bindings unsubscribed", "device_id", d.ID, "title", d.Title)
	}
	return success
}

// SubscribeDeviceBindingInput subscribes b with the backend.
// An unbound binding is unsubscribed instead, which clears any stale
// registration left from an earlier binding of the same slot.
func (d *Device) SubscribeDeviceBindingInput(c backend.Controller, b *DeviceBinding) bool {
	if !d.hasBackendAddress() {
		d.logger.Warn("cannot subscribe input: provider name or device handle missing",
			"device_id", d.ID,
			"binding_id", b.ID,
		)
		return false
	}
	if !b.IsBound {
		return d.UnsubscribeDeviceBindingInput(c, b)
	}
	return c.SubscribeInput(d.InputSubscriptionRequest(b))
}

// UnsubscribeDeviceBindingInput removes b's subscription from the backend.
// Like SubscribeDeviceBindingInput it fails locally when the provider name
// or device handle is empty.
func (d *Device) UnsubscribeDeviceBindingInput(c backend.Controller, b *DeviceBinding) bool {
	if !d.hasBackendAddress() {
		d.logger.Warn("cannot unsubscribe input: provider name or device handle missing",
			"device_id", d.ID,
			"binding_id", b.ID,
		)
		return false
	}
	return c.UnsubscribeInput(d.InputSubscriptionRequest(b))
}

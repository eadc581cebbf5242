package device

import "github.com/Stopfield/UCR/internal/backend"

// SubscribeOutput acquires this device as an output.
//
// It fails locally, without contacting the backend, when the provider
// name or device handle is empty. Acquiring an acquired device is a no-op
// that reports true. On a real transition the device is marked acquired
// before the backend answers, so a backend failure leaves it marked.
func (d *Device) SubscribeOutput(c backend.Controller) bool {
	if !d.hasBackendAddress() {
		d.logger.Warn("cannot acquire output: provider name or device handle missing",
			"device_id", d.ID,
			"title", d.Title,
		)
		return false
	}
	if d.acquired {
		return true
	}
	d.acquired = true
	return c.SubscribeOutput(d.OutputSubscriptionRequest())
}

// UnsubscribeOutput releases this device as an output, mirroring
// SubscribeOutput: releasing a device that is not acquired reports true
// without a backend call, and the flag is cleared before the backend answers.
func (d *Device) UnsubscribeOutput(c backend.Controller) bool {
	if !d.hasBackendAddress() {
		d.logger.Warn("cannot release output: provider name or device handle missing",
			"device_id", d.ID,
			"title", d.Title,
		)
		return false
	}
	if !d.acquired {
		return true
	}
	d.acquired = false
	return c.UnsubscribeOutput(d.OutputSubscriptionRequest())
}

// IsAcquired reports the local output lease flag.
func (d *Device) IsAcquired() bool {
	return d.acquired
}

// WriteOutput sends value to the control bound by b.
//
// Nothing is sent when the provider name or device handle is empty, and
// false is returned. The value is narrowed to the backend's int width.
func (d *Device) WriteOutput(c backend.Controller, b *DeviceBinding, value int64) bool {
	if !d.hasBackendAddress() {
		return false
	}
	c.SetOutputState(d.OutputSubscriptionRequest(), BindingDescriptor(b), int(value))
	return true
}

func (d *Device) hasBackendAddress() bool {
	return d.ProviderName != "" && d.DeviceHandle != ""
}

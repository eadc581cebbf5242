package device

import "github.com/Stopfield/UCR/internal/backend"

// Descriptor factory: pure translation of device and binding state into the
// request shapes of the backend contract.

func (d *Device) providerDescriptor() backend.ProviderDescriptor {
	return backend.ProviderDescriptor{ProviderName: d.ProviderName}
}

func (d *Device) deviceDescriptor() backend.DeviceDescriptor {
	return backend.DeviceDescriptor{DeviceHandle: d.DeviceHandle}
}

func (d *Device) subscriptionDescriptor() backend.SubscriptionDescriptor {
	return backend.SubscriptionDescriptor{
		SubscriberID: d.ID,
		ProfileID:    d.parentProfile,
	}
}

// BindingDescriptor converts the key triple of b into a backend descriptor.
func BindingDescriptor(b *DeviceBinding) backend.BindingDescriptor {
	return backend.BindingDescriptor{
		Type:     backend.BindingType(b.KeyType),
		Index:    b.KeyValue,
		SubIndex: b.KeySubValue,
	}
}

// InputSubscriptionRequest builds the request used to subscribe or
// unsubscribe b. The binding's handler is carried verbatim.
func (d *Device) InputSubscriptionRequest(b *DeviceBinding) backend.InputSubscriptionRequest {
	return backend.InputSubscriptionRequest{
		Provider:     d.providerDescriptor(),
		Device:       d.deviceDescriptor(),
		Subscription: d.subscriptionDescriptor(),
		Binding:      BindingDescriptor(b),
		BindingID:    b.ID,
		Handler:      b.Handler,
	}
}

// OutputSubscriptionRequest builds the request used to lease, release and
// write to this device as an output.
func (d *Device) OutputSubscriptionRequest() backend.OutputSubscriptionRequest {
	return backend.OutputSubscriptionRequest{
		Provider:     d.providerDescriptor(),
		Device:       d.deviceDescriptor(),
		Subscription: d.subscriptionDescriptor(),
	}
}

package backend

import "github.com/google/uuid"

// BindingType is the numeric control class of a physical control.
//
// The code is a cross-cutting identifier shared with providers. The core
// passes it through unchanged and never interprets it.
type BindingType int

// Well-known binding types reported by the bundled providers.
const (
	BindingTypeAxis   BindingType = 0
	BindingTypeButton BindingType = 1
	BindingTypePOV    BindingType = 2
)

// BindingCategory is the value category a provider reports for a control.
type BindingCategory int

// Provider-side binding categories.
const (
	BindingCategoryMomentary BindingCategory = iota
	BindingCategoryEvent
	BindingCategorySigned
	BindingCategoryUnsigned
	BindingCategoryDelta
)

// String returns the lower-case name of the category.
func (c BindingCategory) String() string {
	switch c {
	case BindingCategoryMomentary:
		return "momentary"
	case BindingCategoryEvent:
		return "event"
	case BindingCategorySigned:
		return "signed"
	case BindingCategoryUnsigned:
		return "unsigned"
	case BindingCategoryDelta:
		return "delta"
	default:
		return "unknown"
	}
}

// ProviderDescriptor identifies a backend provider plugin.
type ProviderDescriptor struct {
	ProviderName string `json:"provider_name" cbor:"provider_name"`
}

// DeviceDescriptor identifies one device instance within a provider.
type DeviceDescriptor struct {
	DeviceHandle string `json:"device_handle" cbor:"device_handle"`
}

// SubscriptionDescriptor identifies who holds a subscription.
//
// SubscriberID is the subscribing device entity; ProfileID scopes the
// subscription to the profile the device is attached to.
type SubscriptionDescriptor struct {
	SubscriberID uuid.UUID `json:"subscriber_id" cbor:"subscriber_id"`
	ProfileID    uuid.UUID `json:"profile_id" cbor:"profile_id"`
}

// BindingDescriptor identifies a physical control on a device.
type BindingDescriptor struct {
	Type     BindingType `json:"type" cbor:"type"`
	Index    int         `json:"index" cbor:"index"`
	SubIndex int         `json:"sub_index" cbor:"sub_index"`
}

// InputHandler receives input events for one subscribed binding.
//
// The core never invokes, wraps or filters the handler; it is registered
// with the backend exactly as the caller supplied it.
type InputHandler func(value int64)

// InputSubscriptionRequest asks the backend to deliver events for a binding.
//
// BindingID identifies the logical binding, so two bindings of one device
// and profile on the same physical control stay distinct.
type InputSubscriptionRequest struct {
	Provider     ProviderDescriptor
	Device       DeviceDescriptor
	Subscription SubscriptionDescriptor
	Binding      BindingDescriptor
	BindingID    uuid.UUID
	Handler      InputHandler
}

// OutputSubscriptionRequest asks the backend to lease an output device.
type OutputSubscriptionRequest struct {
	Provider     ProviderDescriptor
	Device       DeviceDescriptor
	Subscription SubscriptionDescriptor
}

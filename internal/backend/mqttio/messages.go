package mqttio

import "github.com/Stopfield/UCR/internal/backend"

// Control operations published on a device's control topic.
const (
	OpSubscribeInput    = "subscribe_input"
	OpUnsubscribeInput  = "unsubscribe_input"
	OpSubscribeOutput   = "subscribe_output"
	OpUnsubscribeOutput = "unsubscribe_output"
)

// ControlRequest asks a provider to start or stop serving a device.
// Binding is set for input operations only.
type ControlRequest struct {
	Op           string                         `json:"op" cbor:"op"`
	Subscription backend.SubscriptionDescriptor `json:"subscription" cbor:"subscription"`
	Binding      *backend.BindingDescriptor     `json:"binding,omitempty" cbor:"binding,omitempty"`
}

// InputEvent is one value reported by a provider for an input control.
type InputEvent struct {
	Value int64 `json:"value" cbor:"value"`
}

// OutputValue is one value written to an output control.
type OutputValue struct {
	Subscription backend.SubscriptionDescriptor `json:"subscription" cbor:"subscription"`
	Value        int                            `json:"value" cbor:"value"`
}

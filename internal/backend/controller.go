package backend

// Controller is the I/O backend for one or more providers.
//
// Every operation is synchronous and reports plain pass/fail. Retry policy
// belongs to the caller.
type Controller interface {
	// SubscribeInput registers req.Handler for events on req.Binding.
	SubscribeInput(req InputSubscriptionRequest) bool

	// UnsubscribeInput removes a previously registered input subscription.
	UnsubscribeInput(req InputSubscriptionRequest) bool

	// SubscribeOutput leases the output device named by req.
	SubscribeOutput(req OutputSubscriptionRequest) bool

	// UnsubscribeOutput releases an output lease.
	UnsubscribeOutput(req OutputSubscriptionRequest) bool

	// SetOutputState writes value to one control of a leased output device.
	SetOutputState(req OutputSubscriptionRequest, binding BindingDescriptor, value int)

	// GetInputList returns the capability reports of all input providers.
	GetInputList() ProviderList

	// GetOutputList returns the capability reports of all output providers.
	GetOutputList() ProviderList
}

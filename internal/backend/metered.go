package backend

import "strconv"

// Measurement names written by Metered.
const (
	measurementOutputWrite  = "ucr_output_write"
	measurementSubscription = "ucr_subscription"
)

// PointWriter writes a single time-series point.
// This interface is satisfied by *influxdb.Client.
type PointWriter interface {
	WritePoint(measurement string, tags map[string]string, fields map[string]interface{})
}

// Metered decorates a Controller and records every output write and
// subscription outcome as a time-series point. Results from the wrapped
// controller are returned unchanged.
type Metered struct {
	next   Controller
	points PointWriter
}

// NewMetered wraps next. A nil points writer disables recording.
func NewMetered(next Controller, points PointWriter) *Metered {
	return &Metered{next: next, points: points}
}

// SubscribeInput forwards to the wrapped controller and records the outcome.
func (m *Metered) SubscribeInput(req InputSubscriptionRequest) bool {
	ok := m.next.SubscribeInput(req)
	m.recordSubscription("subscribe_input", req.Provider, req.Device, ok)
	return ok
}

// UnsubscribeInput forwards to the wrapped controller and records the outcome.
func (m *Metered) UnsubscribeInput(req InputSubscriptionRequest) bool {
	ok := m.next.UnsubscribeInput(req)
	m.recordSubscription("unsubscribe_input", req.Provider, req.Device, ok)
	return ok
}

// SubscribeOutput forwards to the wrapped controller and records the outcome.
func (m *Metered) SubscribeOutput(req OutputSubscriptionRequest) bool {
	ok := m.next.SubscribeOutput(req)
	m.recordSubscription("subscribe_output", req.Provider, req.Device, ok)
	return ok
}

// UnsubscribeOutput forwards to the wrapped controller and records the outcome.
func (m *Metered) UnsubscribeOutput(req OutputSubscriptionRequest) bool {
	ok := m.next.UnsubscribeOutput(req)
	m.recordSubscription("unsubscribe_output", req.Provider, req.Device, ok)
	return ok
}

// SetOutputState forwards the write and records the value sent.
func (m *Metered) SetOutputState(req OutputSubscriptionRequest, binding BindingDescriptor, value int) {
	m.next.SetOutputState(req, binding, value)
	if m.points == nil {
		return
	}
	m.points.WritePoint(measurementOutputWrite,
		map[string]string{
			"provider":  req.Provider.ProviderName,
			"device":    req.Device.DeviceHandle,
			"type":      strconv.Itoa(int(binding.Type)),
			"index":     strconv.Itoa(binding.Index),
			"sub_index": strconv.Itoa(binding.SubIndex),
		},
		map[string]interface{}{
			"value": value,
		},
	)
}

// GetInputList forwards to the wrapped controller.
func (m *Metered) GetInputList() ProviderList {
	return m.next.GetInputList()
}

// GetOutputList forwards to the wrapped controller.
func (m *Metered) GetOutputList() ProviderList {
	return m.next.GetOutputList()
}

func (m *Metered) recordSubscription(op string, provider ProviderDescriptor, dev DeviceDescriptor, ok bool) {
	if m.points == nil {
		return
	}
	m.points.WritePoint(measurementSubscription,
		map[string]string{
			"op":       op,
			"provider": provider.ProviderName,
			"device":   dev.DeviceHandle,
		},
		map[string]interface{}{
			"success": ok,
		},
	)
}

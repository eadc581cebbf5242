// Package backend defines the I/O backend contract consumed by the UCR core.
//
// A backend delivers input events from physical devices and accepts output
// writes for one device instance. The core never talks to hardware itself:
// it builds requests from its own state and hands them to a Controller.
//
// # Architecture
//
//	┌──────────────┐   requests    ┌─────────────────┐   bus/driver   ┌──────────┐
//	│ device.Device│ ─────────────▶│   Controller    │ ──────────────▶│ provider │
//	│ (core)       │◀───── bool ───│ (mqttio, ...)   │◀── events ─────│ bridges  │
//	└──────────────┘               └─────────────────┘                └──────────┘
//
// # Key Types
//
//   - Controller: subscribe/unsubscribe input and output, write output state,
//     list the capability reports of connected providers
//   - InputSubscriptionRequest / OutputSubscriptionRequest: request shapes
//   - BindingDescriptor: identifies a physical control (type, index, sub-index)
//   - ProviderReport / DeviceReport / DeviceReportNode: raw capability reports
//   - InputHandler: opaque callback forwarded verbatim to the backend
//
// # Thread Safety
//
// Controller implementations must be safe for concurrent use. Input handlers
// are invoked on the backend's own goroutines, never on the caller's.
package backend

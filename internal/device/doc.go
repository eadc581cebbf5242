// Package device provides the device binding and subscription engine for UCR.
//
// A Device is one physical device instance known to a backend provider. It
// owns the navigable capability tree built from the provider's raw report,
// tracks which logical bindings currently own a device slot per plugin, and
// drives subscribe/unsubscribe calls against the I/O backend.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────────────┐
//	│                               Device                                    │
//	│                                                                         │
//	│  ┌──────────────────┐  ┌──────────────────┐  ┌──────────────────────┐   │
//	│  │ Subscription     │  │ Capability tree  │  │ Output lease         │   │
//	│  │ table            │  │ (tree.go)        │  │ (output.go)          │   │
//	│  │ (subscriptions.go│  │ • build          │  │ • acquire / release  │   │
//	│  │ • override rule  │  │ • name resolver  │  │ • write output       │   │
//	│  └────────┬─────────┘  └──────────────────┘  └──────────┬───────────┘   │
//	│           │          Descriptor factory (descriptors.go) │              │
//	└───────────│──────────────────────┬───────────────────────│──────────────┘
//	            ▼                      ▼                       ▼
//	               backend.Controller (subscribe / unsubscribe / write)
//
// # Override Rule
//
// Profiles are activated root first and active profile last. When a binding
// is registered for a plugin whose current entries come from a different
// profile, the whole list is replaced: the more specific profile supersedes
// the more general one. Within one profile several bindings may coexist for
// a plugin, and re-registering a binding by identity is idempotent.
//
// # Key Types
//
//   - Device: the aggregate exposing the public contract to profile callers
//   - DeviceBinding: maps a plugin slot to a physical control
//   - DeviceBindingNode / BindingTree: group and leaf nodes of a capability tree
//   - Registry / Repository: the persisted device-selection list
//
// # Thread Safety
//
// A Device is not internally synchronised. Registration, subscription and
// output lease operations must run on the goroutine that drives profile
// activation (profile.Manager serialises them). The Registry is safe for
// concurrent use.
//
// Input events are delivered by the backend on its own goroutines. This
// package only forwards the caller's handler and never dispatches events.
package device

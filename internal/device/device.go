package device

import (
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/backend"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Device is one physical device instance of a backend provider.
//
// Title, ProviderName, DeviceHandle and IOType are the persisted fields.
// The capability tree, subscription table, output lease and parent
// profile are runtime state.
type Device struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ProviderName string    `json:"provider_name"`
	DeviceHandle string    `json:"device_handle"`
	IOType       IOType    `json:"io_type"`

	// parentProfile is the profile this device is attached to. Only the
	// identifier is held; it scopes backend subscriptions.
	parentProfile uuid.UUID

	tree          BindingTree
	subscriptions *subscriptionTable
	acquired      bool
	logger        Logger
}

// New creates a device with a fresh identity.
func New(title, providerName, deviceHandle string, ioType IOType) *Device {
	return NewWithID(uuid.Nil, title, providerName, deviceHandle, ioType)
}

// NewWithID creates a device with the given identity.
// A nil id is replaced by a fresh one.
func NewWithID(id uuid.UUID, title, providerName, deviceHandle string, ioType IOType) *Device {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Device{
		ID:            id,
		Title:         title,
		ProviderName:  providerName,
		DeviceHandle:  deviceHandle,
		IOType:        ioType,
		subscriptions: newSubscriptionTable(),
		logger:        noopLogger{},
	}
}

// FromReport creates a device from a provider's capability report and
// builds its capability tree immediately.
func FromReport(report backend.DeviceReport, provider backend.ProviderReport, ioType IOType) *Device {
	d := New(report.DeviceName,
		provider.ProviderDescriptor.ProviderName,
		report.DeviceDescriptor.DeviceHandle,
		ioType,
	)
	d.tree, _ = BuildBindingTree(report.Nodes, d.IOType)
	return d
}

// Copy returns an identity-preserving copy of d for attaching to a profile.
//
// The copy shares d's identity and persisted fields and gets its own
// deep-copied capability tree. Its subscription table starts empty, the
// output lease is not held and no parent profile is set.
func (d *Device) Copy() *Device {
	cpy := NewWithID(d.ID, d.Title, d.ProviderName, d.DeviceHandle, d.IOType)
	cpy.tree = d.tree.Clone()
	cpy.logger = d.logger
	return cpy
}

// CopyDeviceList returns a new list holding the same devices.
// A nil list yields an empty list.
func CopyDeviceList(devices []*Device) []*Device {
	result := make([]*Device, 0, len(devices))
	return append(result, devices...)
}

// SetLogger sets the logger for the device.
func (d *Device) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	d.logger = logger
}

// SetParentProfile attaches the device to a profile by identifier.
func (d *Device) SetParentProfile(profileID uuid.UUID) {
	d.parentProfile = profileID
}

// ParentProfile returns the identifier of the profile the device is attached to.
func (d *Device) ParentProfile() uuid.UUID {
	return d.parentProfile
}

// BindingTree returns the device's capability tree, building it from the
// backend's input or output list, chosen by d.IOType, on first use.
//
// When the provider or device handle is not present in the list, a single
// "Device not connected" node is returned and nothing is cached, so a
// later call retries once the device is connected.
func (d *Device) BindingTree(c backend.Controller) BindingTree {
	if len(d.tree) > 0 {
		return d.tree
	}

	var list backend.ProviderList
	if d.IOType == IOTypeInput {
		list = c.GetInputList()
	} else {
		list = c.GetOutputList()
	}

	report, ok := list.Lookup(d.ProviderName, d.DeviceHandle)
	if !ok {
		d.logger.Debug("device not connected",
			"device_id", d.ID,
			"provider", d.ProviderName,
			"handle", d.DeviceHandle,
		)
		return notConnectedTree()
	}

	d.tree, _ = BuildBindingTree(report.Nodes, d.IOType)
	return d.tree
}

// Tree returns the cached capability tree without contacting the backend.
// It is nil until the tree has been built.
func (d *Device) Tree() BindingTree {
	return d.tree
}

// SetTree replaces the cached capability tree.
func (d *Device) SetTree(tree BindingTree) {
	d.tree = tree
}

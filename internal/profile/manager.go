package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/backend"
	"github.com/Stopfield/UCR/internal/device"
)

// DeviceSource resolves device IDs to the shared device entities.
// It is satisfied by *device.Registry.
type DeviceSource interface {
	GetDevice(ctx context.Context, id uuid.UUID) (*device.Device, error)
}

// HandlerFactory returns the input handler for a binding of plugin in p.
// It is consulted on activation for bindings that carry no handler.
type HandlerFactory func(p *Profile, plugin *Plugin, b *device.DeviceBinding) backend.InputHandler

// ActiveProfileCallback is invoked after the active profile changes.
// prev or next is nil when no profile was or is active.
type ActiveProfileCallback func(prev, next *Profile)

// Manager activates and deactivates profiles against a backend.
//
// Thread Safety: all methods are safe for concurrent use; activation and
// deactivation are serialized.
type Manager struct {
	mu       sync.Mutex
	profiles *Registry
	devices  DeviceSource
	backend  backend.Controller
	logger   Logger

	handlers HandlerFactory
	onChange ActiveProfileCallback

	active  *Profile
	inputs  []*device.Device
	outputs []*device.Device
}

// NewManager creates a profile manager.
func NewManager(profiles *Registry, devices DeviceSource, c backend.Controller, logger Logger) *Manager {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Manager{
		profiles: profiles,
		devices:  devices,
		backend:  c,
		logger:   logger,
	}
}

// SetHandlerFactory sets the factory for input handlers.
func (m *Manager) SetHandlerFactory(f HandlerFactory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = f
}

// SetActiveProfileCallback sets the function notified on profile changes.
func (m *Manager) SetActiveProfileCallback(fn ActiveProfileCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Active returns the active profile, or nil.
func (m *Manager) Active() *Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// View runs fn while no activation or deactivation is in progress.
// Device runtime state (trees, subscription tables) must only be read
// inside fn.
func (m *Manager) View(fn func(active *Profile)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.active)
}

// Activate makes id the active profile.
//
// The previous profile is deactivated first. The error is non-nil when
// the profile or one of its devices cannot be resolved, in which case no
// profile is active afterwards. Otherwise the boolean reports whether
// every backend subscription and output lease succeeded; the profile is
// active either way.
func (m *Manager) Activate(ctx context.Context, id uuid.UUID) (bool, error) {
	chain, err := m.profiles.Chain(id)
	if err != nil {
		return false, err
	}
	target := chain[len(chain)-1]

	m.mu.Lock()
	prev := m.active
	if prev != nil {
		m.deactivateLocked()
	}

	inputs, outputs, err := m.register(ctx, chain, target)
	if err != nil {
		for _, d := range inputs {
			d.ClearSubscriptions()
			d.SetParentProfile(uuid.Nil)
		}
		for _, d := range outputs {
			d.SetParentProfile(uuid.Nil)
		}
		m.mu.Unlock()
		m.notify(prev, nil)
		return false, err
	}

	success := true
	for _, d := range inputs {
		ok := d.SubscribeDeviceBindings(m.backend)
		success = success && ok
	}
	for _, d := range outputs {
		ok := d.SubscribeOutput(m.backend)
		success = success && ok
	}

	m.active = target
	m.inputs = inputs
	m.outputs = outputs
	m.mu.Unlock()

	if success {
		m.logger.Info("profile activated", "profile_id", target.ID, "title", target.Title,
			"inputs", len(inputs), "outputs", len(outputs))
	} else {
		m.logger.Warn("profile activated with backend failures", "profile_id", target.ID, "title", target.Title)
	}
	m.notify(prev, target)
	return success, nil
}

// register walks the chain root first and registers every assignment
// into its device. It returns the input and output devices involved, each
// attached to target. On error the devices touched so far are returned.
func (m *Manager) register(ctx context.Context, chain []*Profile, target *Profile) (inputs, outputs []*device.Device, err error) {
	seenIn := make(map[uuid.UUID]bool)
	seenOut := make(map[uuid.UUID]bool)

	resolve := func(id uuid.UUID, io device.IOType) (*device.Device, error) {
		d, err := m.devices.GetDevice(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving device %s: %w", id, err)
		}
		d.SetParentProfile(target.ID)
		switch {
		case io == device.IOTypeInput && !seenIn[id]:
			seenIn[id] = true
			inputs = append(inputs, d)
		case io == device.IOTypeOutput && !seenOut[id]:
			seenOut[id] = true
			outputs = append(outputs, d)
		}
		return d, nil
	}

	for _, p := range chain {
		for _, id := range p.InputDevices {
			if _, err := resolve(id, device.IOTypeInput); err != nil {
				return inputs, outputs, err
			}
		}
		for _, id := range p.OutputDevices {
			if _, err := resolve(id, device.IOTypeOutput); err != nil {
				return inputs, outputs, err
			}
		}
		for _, plugin := range p.Plugins {
			for _, a := range plugin.Assignments {
				d, err := resolve(a.DeviceID, a.Binding.IOType)
				if err != nil {
					return inputs, outputs, err
				}
				if a.Binding.IOType != device.IOTypeInput {
					continue
				}
				if a.Binding.Handler == nil && m.handlers != nil {
					a.Binding.Handler = m.handlers(p, plugin, a.Binding)
				}
				d.AddDeviceBinding(a.Binding)
			}
		}
	}
	return inputs, outputs, nil
}

// Deactivate releases the active profile. It reports true when there was
// nothing to release or every backend call succeeded.
func (m *Manager) Deactivate() bool {
	m.mu.Lock()
	prev := m.active
	if prev == nil {
		m.mu.Unlock()
		return true
	}
	success := m.deactivateLocked()
	m.mu.Unlock()

	m.logger.Info("profile deactivated", "profile_id", prev.ID, "title", prev.Title, "success", success)
	m.notify(prev, nil)
	return success
}

func (m *Manager) deactivateLocked() bool {
	success := true
	for _, d := range m.inputs {
		ok := d.UnsubscribeDeviceBindings(m.backend)
		success = success && ok
		d.ClearSubscriptions()
		d.SetParentProfile(uuid.Nil)
	}
	for _, d := range m.outputs {
		ok := d.UnsubscribeOutput(m.backend)
		success = success && ok
		d.SetParentProfile(uuid.Nil)
	}
	m.active = nil
	m.inputs = nil
	m.outputs = nil
	return success
}

func (m *Manager) notify(prev, next *Profile) {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil && prev != next {
		fn(prev, next)
	}
}

// WriteOutput sends value to the control b of output device deviceID, which
// must belong to the active profile.
func (m *Manager) WriteOutput(deviceID uuid.UUID, b *device.DeviceBinding, value int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.outputs {
		if d.ID == deviceID {
			return d.WriteOutput(m.backend, b, value)
		}
	}
	m.logger.Warn("output write to device outside the active profile", "device_id", deviceID)
	return false
}

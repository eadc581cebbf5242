package device

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry is the device list of the core: every device the user has
// configured, loaded from a Repository and cached in memory.
//
// Cached entries are shared *Device values, not copies. A device's
// capability tree, output lease and subscription table are runtime state,
// and every holder of the device must observe the same state.
//
// All public methods are thread-safe. Device methods themselves are not;
// callers serialize access to a single device.
type Registry struct {
	repo    Repository
	cache   map[uuid.UUID]*Device
	cacheMu sync.RWMutex
	logger  Logger
}

// NewRegistry creates a new device registry backed by repo.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[uuid.UUID]*Device),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry and for devices it loads.
func (r *Registry) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// RefreshCache reloads all devices from the repository into the cache.
// This should be called on application startup.
//
// Devices already cached keep their runtime state; only their persisted
// fields are refreshed.
func (r *Registry) RefreshCache(ctx context.Context) error {
	devices, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	next := make(map[uuid.UUID]*Device, len(devices))
	for _, d := range devices {
		if existing, ok := r.cache[d.ID]; ok {
			existing.Title = d.Title
			existing.ProviderName = d.ProviderName
			existing.DeviceHandle = d.DeviceHandle
			existing.IOType = d.IOType
			next[d.ID] = existing
			continue
		}
		d.SetLogger(r.logger)
		next[d.ID] = d
	}
	r.cache = next

	r.logger.Info("device cache refreshed", "count", len(devices))
	return nil
}

// GetDevice retrieves a device by ID.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) GetDevice(ctx context.Context, id uuid.UUID) (*Device, error) {
	r.cacheMu.RLock()
	cached, ok := r.cache[id]
	r.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	// Fall back to repository (might be a device added out of band)
	d, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	if existing, ok := r.cache[id]; ok {
		return existing, nil
	}
	d.SetLogger(r.logger)
	r.cache[id] = d
	return d, nil
}

// ListDevices returns all devices ordered by title.
func (r *Registry) ListDevices(ctx context.Context) ([]*Device, error) {
	return r.list(ctx, func(*Device) bool { return true })
}

// ListByIOType returns the input or output devices ordered by title.
func (r *Registry) ListByIOType(ctx context.Context, ioType IOType) ([]*Device, error) {
	if !ioType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIOType, ioType)
	}
	return r.list(ctx, func(d *Device) bool { return d.IOType == ioType })
}

func (r *Registry) list(ctx context.Context, keep func(*Device) bool) ([]*Device, error) {
	r.cacheMu.RLock()
	empty := len(r.cache) == 0
	r.cacheMu.RUnlock()

	if empty {
		if err := r.RefreshCache(ctx); err != nil {
			return nil, err
		}
	}

	r.cacheMu.RLock()
	devices := make([]*Device, 0, len(r.cache))
	for _, d := range r.cache {
		if keep(d) {
			devices = append(devices, d)
		}
	}
	r.cacheMu.RUnlock()

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Title != devices[j].Title {
			return devices[i].Title < devices[j].Title
		}
		return devices[i].ID.String() < devices[j].ID.String()
	})
	return devices, nil
}

// CreateDevice validates and persists d, then caches it.
func (r *Registry) CreateDevice(ctx context.Context, d *Device) error {
	if err := validateDevice(d); err != nil {
		return err
	}

	if err := r.repo.Create(ctx, d); err != nil {
		return err
	}

	d.SetLogger(r.logger)
	r.cacheMu.Lock()
	r.cache[d.ID] = d
	r.cacheMu.Unlock()

	r.logger.Info("device created",
		"id", d.ID,
		"title", d.Title,
		"provider", d.ProviderName,
		"io_type", d.IOType,
	)
	return nil
}

// UpdateDevice persists the persisted fields of d.
// The cached entry is updated in place.
func (r *Registry) UpdateDevice(ctx context.Context, d *Device) error {
	if err := validateDevice(d); err != nil {
		return err
	}

	if err := r.repo.Update(ctx, d); err != nil {
		return err
	}

	r.cacheMu.Lock()
	if existing, ok := r.cache[d.ID]; ok && existing != d {
		existing.Title = d.Title
		existing.ProviderName = d.ProviderName
		existing.DeviceHandle = d.DeviceHandle
		existing.IOType = d.IOType
	} else if !ok {
		r.cache[d.ID] = d
	}
	r.cacheMu.Unlock()

	r.logger.Info("device updated", "id", d.ID, "title", d.Title)
	return nil
}

// DeleteDevice removes a device by ID.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, id)
	r.cacheMu.Unlock()

	r.logger.Info("device deleted", "id", id)
	return nil
}

// GetDeviceCount returns the number of cached devices.
func (r *Registry) GetDeviceCount() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}

func validateDevice(d *Device) error {
	if d == nil {
		return fmt.Errorf("%w: nil device", ErrInvalidDevice)
	}
	if d.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidDevice)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDevice)
	}
	if !d.IOType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidIOType, d.IOType)
	}
	return nil
}

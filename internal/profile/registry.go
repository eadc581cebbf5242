package profile

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/device"
)

// Logger defines the logging interface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// BreadcrumbSeparator joins profile titles from root to leaf.
const BreadcrumbSeparator = " > "

// Registry holds the profile tree in memory.
//
// All public methods are thread-safe. Profiles must not be mutated after
// they have been added.
type Registry struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*Profile
	order    []uuid.UUID
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[uuid.UUID]*Profile)}
}

// Add validates p and inserts it. The parent, if any, must already be present.
//
// Every assignment's binding is stamped with its origin (plugin and
// profile) and given an identity if it has none. Bindings without a
// direction default to input.
func (r *Registry) Add(p *Profile) error {
	if p == nil || p.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalidProfile)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidProfile)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrProfileExists, p.ID)
	}
	if !p.IsRoot() {
		if _, ok := r.profiles[p.ParentID]; !ok {
			return fmt.Errorf("%w: parent %s of %q", ErrProfileNotFound, p.ParentID, p.Title)
		}
	}

	seen := make(map[uuid.UUID]bool, len(p.Plugins))
	for _, plugin := range p.Plugins {
		if plugin == nil || plugin.ID == uuid.Nil {
			return fmt.Errorf("%w: plugin without id in %q", ErrInvalidProfile, p.Title)
		}
		if seen[plugin.ID] {
			return fmt.Errorf("%w: duplicate plugin %s in %q", ErrInvalidProfile, plugin.ID, p.Title)
		}
		seen[plugin.ID] = true
		for i := range plugin.Assignments {
			if err := stampAssignment(p, plugin, &plugin.Assignments[i]); err != nil {
				return err
			}
		}
	}

	r.profiles[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func stampAssignment(p *Profile, plugin *Plugin, a *Assignment) error {
	if a.DeviceID == uuid.Nil {
		return fmt.Errorf("%w: assignment without device in plugin %q", ErrInvalidProfile, plugin.Title)
	}
	if a.Binding == nil {
		a.Binding = &device.DeviceBinding{}
	}
	b := a.Binding
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.IOType == "" {
		b.IOType = device.IOTypeInput
	}
	if !b.IOType.Valid() {
		return fmt.Errorf("%w: %q in plugin %q", device.ErrInvalidIOType, b.IOType, plugin.Title)
	}
	b.Origin = device.Origin{
		PluginID:    plugin.ID,
		PluginTitle: plugin.Title,
		ProfileID:   p.ID,
	}
	return nil
}

// Get returns the profile with the given ID.
func (r *Registry) Get(id uuid.UUID) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p, nil
}

// List returns every profile in insertion order.
func (r *Registry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// Children returns the direct children of id, sorted by title.
func (r *Registry) Children(id uuid.UUID) []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Profile
	for _, pid := range r.order {
		if p := r.profiles[pid]; p.ParentID == id && p.ID != id {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// Chain returns the profiles from the root down to id, inclusive.
func (r *Registry) Chain(id uuid.UUID) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var chain []*Profile
	visited := make(map[uuid.UUID]bool)
	for cur := id; ; {
		p, ok := r.profiles[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, cur)
		}
		if visited[cur] {
			return nil, fmt.Errorf("%w: at %q", ErrProfileCycle, p.Title)
		}
		visited[cur] = true
		chain = append(chain, p)
		if p.IsRoot() {
			break
		}
		cur = p.ParentID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Breadcrumbs returns the titles of the chain to id, e.g. "Default > Flight > Combat".
func (r *Registry) Breadcrumbs(id uuid.UUID) (string, error) {
	chain, err := r.Chain(id)
	if err != nil {
		return "", err
	}
	titles := make([]string, len(chain))
	for i, p := range chain {
		titles[i] = p.Title
	}
	return strings.Join(titles, BreadcrumbSeparator), nil
}

// Find resolves ref as a profile ID, a breadcrumb path or a unique title.
func (r *Registry) Find(ref string) (*Profile, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return r.Get(id)
	}

	var byTitle []*Profile
	for _, p := range r.List() {
		if crumbs, err := r.Breadcrumbs(p.ID); err == nil && crumbs == ref {
			return p, nil
		}
		if p.Title == ref {
			byTitle = append(byTitle, p)
		}
	}
	switch len(byTitle) {
	case 1:
		return byTitle[0], nil
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, ref)
	default:
		return nil, fmt.Errorf("%w: title %q is ambiguous, use the full path", ErrInvalidProfile, ref)
	}
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

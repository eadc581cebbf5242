package device

import (
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/backend"
)

// IOType is the direction of a device or binding.
type IOType string

// I/O directions.
const (
	IOTypeInput  IOType = "input"
	IOTypeOutput IOType = "output"
)

// Valid reports whether t is a known direction.
func (t IOType) Valid() bool {
	return t == IOTypeInput || t == IOTypeOutput
}

// BindingCategory is how the core treats the values of a control.
type BindingCategory string

// Binding categories.
const (
	CategoryMomentary BindingCategory = "momentary"
	CategoryEvent     BindingCategory = "event"
	CategoryRange     BindingCategory = "range"
	CategoryDelta     BindingCategory = "delta"
)

// MapCategory converts a provider category to the core category.
// Signed and unsigned axes both map to CategoryRange.
func MapCategory(c backend.BindingCategory) BindingCategory {
	switch c {
	case backend.BindingCategoryEvent:
		return CategoryEvent
	case backend.BindingCategorySigned, backend.BindingCategoryUnsigned:
		return CategoryRange
	case backend.BindingCategoryDelta:
		return CategoryDelta
	default:
		return CategoryMomentary
	}
}

// Origin identifies the plugin that owns a binding and the profile the
// plugin belongs to.
//
// It holds identifiers only, so a binding never keeps its plugin or
// profile alive. Titles are carried for logging and display.
type Origin struct {
	PluginID    uuid.UUID `json:"plugin_id"`
	PluginTitle string    `json:"plugin_title"`
	ProfileID   uuid.UUID `json:"profile_id"`
}

// DeviceBinding maps a logical plugin slot to a physical control.
//
// The key triple (KeyType, KeyValue, KeySubValue) identifies the control:
// control class, index and optional sub-index. KeyType is an opaque
// provider code.
type DeviceBinding struct {
	ID          uuid.UUID       `json:"id"`
	KeyType     int             `json:"key_type"`
	KeyValue    int             `json:"key_value"`
	KeySubValue int             `json:"key_sub_value"`
	IsBound     bool            `json:"is_bound"`
	IOType      IOType          `json:"io_type"`
	Category    BindingCategory `json:"category"`
	Origin      Origin          `json:"origin"`

	// Handler receives input events. Only used for input bindings.
	Handler backend.InputHandler `json:"-"`
}

// NewDeviceBinding creates an unbound binding with a fresh identity.
func NewDeviceBinding(origin Origin, handler backend.InputHandler, ioType IOType) *DeviceBinding {
	return &DeviceBinding{
		ID:      uuid.New(),
		IOType:  ioType,
		Origin:  origin,
		Handler: handler,
	}
}

// Clone returns a copy of b with the same identity.
func (b *DeviceBinding) Clone() *DeviceBinding {
	if b == nil {
		return nil
	}
	cpy := *b
	return &cpy
}

// NodeKind distinguishes group nodes from leaf nodes in a capability tree.
type NodeKind string

// Node kinds.
const (
	NodeGroup   NodeKind = "group"
	NodeBinding NodeKind = "binding"
)

// DeviceBindingNode is one node of a capability tree.
//
// A group node owns an ordered list of children and no binding. A leaf
// node owns exactly one binding and no children.
type DeviceBindingNode struct {
	Title    string               `json:"title"`
	Kind     NodeKind             `json:"kind"`
	Children []*DeviceBindingNode `json:"children,omitempty"`
	Binding  *DeviceBinding       `json:"binding,omitempty"`
}

// NewGroupNode creates a group node with the given children.
func NewGroupNode(title string, children ...*DeviceBindingNode) *DeviceBindingNode {
	if children == nil {
		children = []*DeviceBindingNode{}
	}
	return &DeviceBindingNode{
		Title:    title,
		Kind:     NodeGroup,
		Children: children,
	}
}

// NewBindingNode creates a leaf node owning binding.
func NewBindingNode(title string, binding *DeviceBinding) *DeviceBindingNode {
	return &DeviceBindingNode{
		Title:   title,
		Kind:    NodeBinding,
		Binding: binding,
	}
}

// IsBinding reports whether n is a leaf node.
func (n *DeviceBindingNode) IsBinding() bool {
	return n.Kind == NodeBinding
}

package device

import "github.com/Stopfield/UCR/internal/backend"

// notConnectedTitle is the title of the placeholder node returned when a
// device is missing from the backend's capability lists.
const notConnectedTitle = "Device not connected"

// BindingTree is the top-level node list of a capability tree.
type BindingTree []*DeviceBindingNode

// BuildBindingTree builds a capability tree from a raw device report.
//
// Each raw node becomes a group node with the same title. Its nested
// groups are built first, then one unbound leaf is appended per raw
// binding, with the key triple and category copied and the direction set
// to ioType. Nodes are never merged, deduplicated or reordered.
//
// The second return value is false when nodes is empty, which callers use
// to tell "no tree" apart from a tree of empty groups.
func BuildBindingTree(nodes []backend.DeviceReportNode, ioType IOType) (BindingTree, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	return buildNodes(nodes, ioType), true
}

func buildNodes(nodes []backend.DeviceReportNode, ioType IOType) BindingTree {
	result := make(BindingTree, 0, len(nodes))
	for _, raw := range nodes {
		group := NewGroupNode(raw.Title, buildNodes(raw.Nodes, ioType)...)

		for _, info := range raw.Bindings {
			binding := &DeviceBinding{
				IsBound:     false,
				KeyType:     int(info.Descriptor.Type),
				KeyValue:    info.Descriptor.Index,
				KeySubValue: info.Descriptor.SubIndex,
				IOType:      ioType,
				Category:    MapCategory(info.Category),
			}
			group.Children = append(group.Children, NewBindingNode(info.Title, binding))
		}

		result = append(result, group)
	}
	return result
}

// Clone returns a deep copy of the tree.
func (t BindingTree) Clone() BindingTree {
	if t == nil {
		return nil
	}
	cpy := make(BindingTree, len(t))
	for i, n := range t {
		cpy[i] = n.clone()
	}
	return cpy
}

func (n *DeviceBindingNode) clone() *DeviceBindingNode {
	cpy := &DeviceBindingNode{
		Title:   n.Title,
		Kind:    n.Kind,
		Binding: n.Binding.Clone(),
	}
	if n.Children != nil {
		cpy.Children = BindingTree(n.Children).Clone()
	}
	return cpy
}

// Count returns the total number of nodes in the tree.
func (t BindingTree) Count() int {
	count := 0
	for _, n := range t {
		count += 1 + BindingTree(n.Children).Count()
	}
	return count
}

// notConnectedTree returns the single-node placeholder tree.
func notConnectedTree() BindingTree {
	return BindingTree{NewGroupNode(notConnectedTitle)}
}

package device

// Fallback names returned by BindingName.
const (
	NameNotBound     = "Not bound"
	NameUnknownInput = "Unknown input"
)

// breadcrumbSeparator joins group titles to the resolved inner name.
const breadcrumbSeparator = ", "

// BindingName returns a human breadcrumb for b, read outer to inner.
//
// The capability tree is searched depth first for a leaf with the same key
// type and key value; the sub value is not compared. The first match in
// traversal order wins, and every enclosing group title is prefixed.
func (d *Device) BindingName(b *DeviceBinding) string {
	if b == nil || !b.IsBound {
		return NameNotBound
	}
	if name, ok := d.tree.resolveName(b); ok {
		return name
	}
	return NameUnknownInput
}

// ResolveName searches the tree for b and returns its breadcrumb.
func (t BindingTree) ResolveName(b *DeviceBinding) (string, bool) {
	return t.resolveName(b)
}

func (t BindingTree) resolveName(b *DeviceBinding) (string, bool) {
	for _, node := range t {
		if node.IsBinding() && node.Binding != nil &&
			node.Binding.KeyType == b.KeyType && node.Binding.KeyValue == b.KeyValue {
			return node.Title, true
		}
		if name, ok := BindingTree(node.Children).resolveName(b); ok {
			return node.Title + breadcrumbSeparator + name, true
		}
	}
	return "", false
}

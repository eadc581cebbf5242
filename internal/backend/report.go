package backend

// ProviderList maps provider names to the provider's capability report.
type ProviderList map[string]ProviderReport

// ProviderReport is the capability report of one provider.
type ProviderReport struct {
	Title              string                  `json:"title" cbor:"title"`
	ProviderDescriptor ProviderDescriptor      `json:"provider" cbor:"provider"`
	Devices            map[string]DeviceReport `json:"devices" cbor:"devices"`
}

// DeviceReport is the raw capability report of one device instance.
type DeviceReport struct {
	DeviceName       string             `json:"device_name" cbor:"device_name"`
	DeviceDescriptor DeviceDescriptor   `json:"device" cbor:"device"`
	Nodes            []DeviceReportNode `json:"nodes,omitempty" cbor:"nodes,omitempty"`
}

// DeviceReportNode is a group in a raw capability report.
//
// A node holds nested groups and the bindings that belong directly to it.
type DeviceReportNode struct {
	Title    string             `json:"title" cbor:"title"`
	Nodes    []DeviceReportNode `json:"nodes,omitempty" cbor:"nodes,omitempty"`
	Bindings []BindingReport    `json:"bindings,omitempty" cbor:"bindings,omitempty"`
}

// BindingReport describes one physical control in a raw capability report.
type BindingReport struct {
	Title      string            `json:"title" cbor:"title"`
	Category   BindingCategory   `json:"category" cbor:"category"`
	Descriptor BindingDescriptor `json:"descriptor" cbor:"descriptor"`
}

// Lookup returns the report for a provider/handle pair.
// The second return value is false when either the provider or the device
// is not present in the list.
func (l ProviderList) Lookup(providerName, deviceHandle string) (DeviceReport, bool) {
	provider, ok := l[providerName]
	if !ok {
		return DeviceReport{}, false
	}
	dev, ok := provider.Devices[deviceHandle]
	if !ok {
		return DeviceReport{}, false
	}
	return dev, true
}

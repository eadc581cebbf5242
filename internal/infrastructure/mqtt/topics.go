package mqtt

import (
	"strconv"
	"strings"
)

// Report directions used in report topics.
const (
	ReportInput  = "input"
	ReportOutput = "output"
)

// Topics builds the topic names shared by the core and the providers.
//
//	topics := mqtt.Topics{Prefix: "ucr"}
//	topics.DeviceControl("DirectInput", "{A1B2}")
//	// Returns: "ucr/DirectInput/{A1B2}/control"
//
// Provider names and device handles are escaped so that '/', '+' and '#'
// inside them never change the topic structure.
type Topics struct {
	Prefix string
}

var segmentEscaper = strings.NewReplacer("%", "%25", "/", "%2F", "+", "%2B", "#", "%23")

// Segment escapes s for use as a single topic level.
func Segment(s string) string {
	return segmentEscaper.Replace(s)
}

func (t Topics) join(levels ...string) string {
	return t.Prefix + "/" + strings.Join(levels, "/")
}

// ProviderReport returns the retained capability report topic of a provider.
func (t Topics) ProviderReport(provider, direction string) string {
	return t.join(Segment(provider), "report", direction)
}

// AllProviderReports matches the reports of every provider in one direction.
func (t Topics) AllProviderReports(direction string) string {
	return t.join("+", "report", direction)
}

// DeviceControl returns the topic on which a provider receives subscription
// requests for one device.
func (t Topics) DeviceControl(provider, handle string) string {
	return t.join(Segment(provider), Segment(handle), "control")
}

// InputEvent returns the topic on which a provider publishes the values of
// one input control.
func (t Topics) InputEvent(provider, handle string, bindingType, index, subIndex int) string {
	return t.join(Segment(provider), Segment(handle), "input",
		strconv.Itoa(bindingType), strconv.Itoa(index), strconv.Itoa(subIndex))
}

// OutputState returns the topic on which the core writes one output control.
func (t Topics) OutputState(provider, handle string, bindingType, index, subIndex int) string {
	return t.join(Segment(provider), Segment(handle), "output",
		strconv.Itoa(bindingType), strconv.Itoa(index), strconv.Itoa(subIndex))
}

// CoreStatus returns the retained online/offline status topic of the core.
func (t Topics) CoreStatus() string {
	return t.join("core", "status")
}

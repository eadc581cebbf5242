package profile

import (
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/device"
)

// Profile is a named set of plugin assignments and the devices it uses.
// A nil ParentID marks a root profile.
type Profile struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	ParentID      uuid.UUID   `json:"parent_id"`
	Plugins       []*Plugin   `json:"plugins"`
	InputDevices  []uuid.UUID `json:"input_devices"`
	OutputDevices []uuid.UUID `json:"output_devices"`
}

// IsRoot reports whether p has no parent.
func (p *Profile) IsRoot() bool {
	return p.ParentID == uuid.Nil
}

// Plugin is one mapping unit of a profile. A descendant profile that
// declares a plugin with the same ID replaces the ancestor's plugin on
// every device both of them bind.
type Plugin struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Assignments []Assignment `json:"assignments"`
}

// Assignment binds one plugin slot to a control of a device.
type Assignment struct {
	DeviceID uuid.UUID             `json:"device_id"`
	Binding  *device.DeviceBinding `json:"binding"`
}

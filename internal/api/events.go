package api

import (
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/backend"
	"github.com/Stopfield/UCR/internal/device"
	"github.com/Stopfield/UCR/internal/profile"
)

// ProfileChangedEvent is broadcast on ChannelProfileChanged. Prev and Next
// are nil when no profile was or is active.
type ProfileChangedEvent struct {
	Prev *uuid.UUID `json:"prev"`
	Next *uuid.UUID `json:"next"`
	Path string     `json:"path,omitempty"`
}

// InputEvent is broadcast on ChannelInput for each value a bound input
// control reports.
type InputEvent struct {
	ProfileID uuid.UUID `json:"profile_id"`
	PluginID  uuid.UUID `json:"plugin_id"`
	BindingID uuid.UUID `json:"binding_id"`
	Value     int64     `json:"value"`
}

// NotifyProfileChanges returns a callback that broadcasts active profile
// changes on hub.
func NotifyProfileChanges(hub *Hub, profiles *profile.Registry) profile.ActiveProfileCallback {
	return func(prev, next *profile.Profile) {
		var ev ProfileChangedEvent
		if prev != nil {
			id := prev.ID
			ev.Prev = &id
		}
		if next != nil {
			id := next.ID
			ev.Next = &id
			if path, err := profiles.Breadcrumbs(next.ID); err == nil {
				ev.Path = path
			}
		}
		hub.Broadcast(ChannelProfileChanged, ev)
	}
}

// InputEventHandlers returns a handler factory whose handlers forward every
// input value to hub.
func InputEventHandlers(hub *Hub) profile.HandlerFactory {
	return func(p *profile.Profile, plugin *profile.Plugin, b *device.DeviceBinding) backend.InputHandler {
		ev := InputEvent{ProfileID: p.ID, PluginID: plugin.ID, BindingID: b.ID}
		return func(value int64) {
			e := ev
			e.Value = value
			hub.Broadcast(ChannelInput, e)
		}
	}
}

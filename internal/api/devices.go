package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/device"
	"github.com/Stopfield/UCR/internal/profile"
)

// deviceRequest is the body of POST /devices.
type deviceRequest struct {
	ID           string        `json:"id,omitempty"`
	Title        string        `json:"title"`
	ProviderName string        `json:"provider_name"`
	DeviceHandle string        `json:"device_handle"`
	IOType       device.IOType `json:"io_type"`
}

// subscriptionEntry is one plugin's row in a device subscription table.
type subscriptionEntry struct {
	PluginID    uuid.UUID          `json:"plugin_id"`
	PluginTitle string             `json:"plugin_title"`
	ProfileID   uuid.UUID          `json:"profile_id"`
	Bindings    []subscriptionItem `json:"bindings"`
}

type subscriptionItem struct {
	*device.DeviceBinding
	Name string `json:"name"`
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	var (
		devices []*device.Device
		err     error
	)
	if io := r.URL.Query().Get("io"); io != "" {
		devices, err = s.devices.ListByIOType(r.Context(), device.IOType(io))
	} else {
		devices, err = s.devices.ListDevices(r.Context())
	}
	if errors.Is(err, device.ErrInvalidIOType) {
		writeBadRequest(w, "io must be input or output")
		return
	}
	if err != nil {
		s.logger.Error("listing devices failed", "error", err)
		writeInternalError(w, "failed to list devices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id := uuid.Nil
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			writeBadRequest(w, "id must be a UUID")
			return
		}
		id = parsed
	}

	d := device.NewWithID(id, req.Title, req.ProviderName, req.DeviceHandle, req.IOType)
	if err := s.devices.CreateDevice(r.Context(), d); err != nil {
		switch {
		case errors.Is(err, device.ErrInvalidDevice), errors.Is(err, device.ErrInvalidIOType):
			writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		case errors.Is(err, device.ErrDeviceExists):
			writeConflict(w, "device already exists")
		default:
			s.logger.Error("creating device failed", "error", err)
			writeInternalError(w, "failed to create device")
		}
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// lookupDevice resolves the {id} URL parameter, writing the error response
// itself when it fails.
func (s *Server) lookupDevice(w http.ResponseWriter, r *http.Request) (*device.Device, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "device id must be a UUID")
		return nil, false
	}
	d, err := s.devices.GetDevice(r.Context(), id)
	if errors.Is(err, device.ErrDeviceNotFound) {
		writeNotFound(w, "device not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("getting device failed", "device_id", id, "error", err)
		writeInternalError(w, "failed to get device")
		return nil, false
	}
	return d, true
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookupDevice(w, r)
	if !ok {
		return
	}
	var parent uuid.UUID
	s.manager.View(func(*profile.Profile) { parent = d.ParentProfile() })
	writeJSON(w, http.StatusOK, map[string]any{
		"device":         d,
		"parent_profile": parent,
	})
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookupDevice(w, r)
	if !ok {
		return
	}

	var attached bool
	s.manager.View(func(*profile.Profile) { attached = d.ParentProfile() != uuid.Nil })
	if attached {
		writeConflict(w, "device is attached to the active profile")
		return
	}

	if err := s.devices.DeleteDevice(r.Context(), d.ID); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("deleting device failed", "device_id", d.ID, "error", err)
		writeInternalError(w, "failed to delete device")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetDeviceTree returns the capability tree, building it from the
// backend on first use. A device missing from the backend's lists gets the
// not-connected placeholder.
func (s *Server) handleGetDeviceTree(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookupDevice(w, r)
	if !ok {
		return
	}

	var (
		tree      device.BindingTree
		connected bool
	)
	s.manager.View(func(*profile.Profile) {
		tree = d.BindingTree(s.backend).Clone()
		connected = d.Tree() != nil
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": d.ID,
		"connected": connected,
		"tree":      tree,
	})
}

// handleGetDeviceSubscriptions returns the device's subscription table with
// a display name for every binding.
func (s *Server) handleGetDeviceSubscriptions(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookupDevice(w, r)
	if !ok {
		return
	}

	var entries []subscriptionEntry
	s.manager.View(func(*profile.Profile) {
		d.BindingTree(s.backend)
		for _, key := range d.PluginKeys() {
			bindings := d.Subscriptions(key)
			if len(bindings) == 0 {
				continue
			}
			entry := subscriptionEntry{
				PluginID:    key,
				PluginTitle: bindings[0].Origin.PluginTitle,
				ProfileID:   bindings[0].Origin.ProfileID,
			}
			for _, b := range bindings {
				entry.Bindings = append(entry.Bindings, subscriptionItem{
					DeviceBinding: b.Clone(),
					Name:          d.BindingName(b),
				})
			}
			entries = append(entries, entry)
		}
	})
	if entries == nil {
		entries = []subscriptionEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":     d.ID,
		"subscriptions": entries,
	})
}

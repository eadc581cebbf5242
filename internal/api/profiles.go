package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/profile"
)

// profileView is a profile with its breadcrumb path.
type profileView struct {
	*profile.Profile
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

func (s *Server) view(p *profile.Profile, active *profile.Profile) profileView {
	path, err := s.profiles.Breadcrumbs(p.ID)
	if err != nil {
		path = p.Title
	}
	return profileView{Profile: p, Path: path, Active: active != nil && active.ID == p.ID}
}

func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	active := s.manager.Active()
	profiles := s.profiles.List()
	views := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, s.view(p, active))
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": views, "count": len(views)})
}

// findProfile resolves the {ref} URL parameter, writing the error response
// itself when it fails.
func (s *Server) findProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, bool) {
	p, err := s.profiles.Find(chi.URLParam(r, "ref"))
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		writeNotFound(w, "profile not found")
		return nil, false
	case errors.Is(err, profile.ErrInvalidProfile):
		writeBadRequest(w, err.Error())
		return nil, false
	case err != nil:
		writeInternalError(w, "failed to find profile")
		return nil, false
	}
	return p, true
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.view(p, s.manager.Active()))
}

func (s *Server) handleGetActiveProfile(w http.ResponseWriter, _ *http.Request) {
	active := s.manager.Active()
	if active == nil {
		writeJSON(w, http.StatusOK, map[string]any{"active": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": s.view(active, active)})
}

// handleActivateProfile activates a profile. A 200 response carries
// success=false when some backend subscriptions failed; the profile is
// active regardless.
func (s *Server) handleActivateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.findProfile(w, r)
	if !ok {
		return
	}

	success, err := s.manager.Activate(r.Context(), p.ID)
	if err != nil {
		s.logger.Warn("profile activation failed", "profile_id", p.ID, "error", err)
		writeConflict(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile": s.view(p, p),
		"success": success,
	})
}

func (s *Server) handleDeactivateProfile(w http.ResponseWriter, _ *http.Request) {
	prev := s.manager.Active()
	success := s.manager.Deactivate()

	var prevID *uuid.UUID
	if prev != nil {
		prevID = &prev.ID
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deactivated": prevID,
		"success":     success,
	})
}

package api

import (
	"errors"
	"net/http"

	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/Goofygiraffe06/authpanel/internal/panel"
	"github.com/Goofygiraffe06/authpanel/store/ephemeral"
	"github.com/google/uuid"
)

// MountPanelHandler creates a panel session. Login is shown unless the body
// asks for signup.
func MountPanelHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.MountPanelRequest
		if !d.decode(w, r, &req, true) {
			return
		}

		start := form.KindLogin
		if k, ok := form.ParseKind(req.Mode); ok {
			start = k
		}

		id := uuid.NewString()
		p := panel.New(id, start, d.Factory, d.Registry)
		if err := d.Panels.Set(id, p, d.TTL); err != nil {
			p.Close()
			logging.WarnLog("Panel mount failed: %v", err)
			if errors.Is(err, ephemeral.ErrStoreFull) {
				respondError(w, http.StatusServiceUnavailable, "Server busy, try again later")
				return
			}
			respondError(w, http.StatusInternalServerError, "Internal error")
			return
		}

		f, _ := p.Form()
		logging.InfoLog("Panel mounted [%s] mode=%s", id, start)
		respondJSON(w, http.StatusCreated, d.render(p, f))
	}
}

// GetPanelHandler renders the mounted form.
func GetPanelHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, f, ok := d.activeForm(w, r)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, d.render(p, f))
	}
}

// SwitchPanelHandler handles panelSwitchRequested.
func SwitchPanelHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.lookup(w, r)
		if !ok {
			return
		}
		if _, err := p.Switch(); err != nil {
			respondError(w, http.StatusNotFound, "Panel not found")
			return
		}
		f, err := p.Form()
		if err != nil {
			respondError(w, http.StatusNotFound, "Panel not found")
			return
		}
		respondJSON(w, http.StatusOK, d.render(p, f))
	}
}

// DeletePanelHandler tears a panel down; a pending submission is abandoned.
func DeletePanelHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.lookup(w, r)
		if !ok {
			return
		}
		// The store's eviction hook closes the panel.
		d.Panels.Delete(p.ID())
		respondJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	}
}

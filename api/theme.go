package api

import (
	"net/http"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/Goofygiraffe06/authpanel/internal/theme"
)

func GetThemeHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, models.ThemeResponse{Mode: string(d.Theme.Mode())})
	}
}

func ToggleThemeHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := d.Theme.Toggle(r.Context())
		if err != nil {
			logging.ErrorLog("Theme toggle failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to save theme")
			return
		}
		respondJSON(w, http.StatusOK, models.ThemeResponse{Mode: string(m)})
	}
}

func SetThemeHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ThemeRequest
		if !d.decode(w, r, &req, false) {
			return
		}
		m, _ := theme.ParseMode(req.Mode)
		if err := d.Theme.Set(r.Context(), m); err != nil {
			logging.ErrorLog("Theme update failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to save theme")
			return
		}
		respondJSON(w, http.StatusOK, models.ThemeResponse{Mode: string(m)})
	}
}

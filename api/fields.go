package api

import (
	"errors"
	"net/http"

	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/models"
)

// FieldChangeHandler handles fieldChanged(name, value).
func FieldChangeHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, f, ok := d.activeForm(w, r)
		if !ok {
			return
		}

		var req models.FieldChangeRequest
		if !d.decode(w, r, &req, false) {
			return
		}

		if err := f.SetField(form.Field(req.Field), req.Value); err != nil {
			respondFormError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, d.render(p, f))
	}
}

// VisibilityHandler handles visibilityToggled(field).
func VisibilityHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, f, ok := d.activeForm(w, r)
		if !ok {
			return
		}

		var req models.VisibilityRequest
		if !d.decode(w, r, &req, false) {
			return
		}

		on, err := f.ToggleVisibility(form.Field(req.Field))
		if err != nil {
			respondFormError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, models.VisibilityResponse{Field: req.Field, Visible: on})
	}
}

func respondFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrUnknownField):
		respondError(w, http.StatusBadRequest, "Field not on this form")
	case errors.Is(err, form.ErrInputLocked), errors.Is(err, form.ErrSubmitting):
		respondError(w, http.StatusConflict, "Submission in progress")
	case errors.Is(err, form.ErrClosed):
		respondError(w, http.StatusNotFound, "Panel not found")
	default:
		respondError(w, http.StatusInternalServerError, "Internal error")
	}
}

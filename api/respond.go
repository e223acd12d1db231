package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/config"
	"github.com/Goofygiraffe06/authpanel/internal/controller"
	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/Goofygiraffe06/authpanel/internal/panel"
	"github.com/Goofygiraffe06/authpanel/internal/theme"
	"github.com/Goofygiraffe06/authpanel/store/ephemeral"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Deps is what the panel handlers share.
type Deps struct {
	Panels   *ephemeral.Store[*panel.Panel]
	Factory  panel.Factory
	Registry *controller.Registry
	Theme    *theme.Preference
	TTL      time.Duration
	MaxBody  int64
}

func (d *Deps) maxBody() int64 {
	if d.MaxBody > 0 {
		return d.MaxBody
	}
	return config.MaxRequestBodyBytes()
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.ErrorLog("JSON encoding failed: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, models.ErrorResponse{Error: msg})
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set.
func (d *Deps) decode(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, d.maxBody())
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			respondError(w, http.StatusBadRequest, "Invalid JSON")
			return false
		}
	}
	if err := validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed")
		return false
	}
	return true
}

// lookup resolves the {id} URL parameter to a live panel and renews it.
func (d *Deps) lookup(w http.ResponseWriter, r *http.Request) (*panel.Panel, bool) {
	id := chi.URLParam(r, "id")
	p, ok := d.Panels.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Panel not found")
		return nil, false
	}
	d.Panels.Touch(id, d.TTL)
	return p, true
}

// activeForm is lookup plus the mounted form.
func (d *Deps) activeForm(w http.ResponseWriter, r *http.Request) (*panel.Panel, *form.Form, bool) {
	p, ok := d.lookup(w, r)
	if !ok {
		return nil, nil, false
	}
	f, err := p.Form()
	if err != nil {
		respondError(w, http.StatusNotFound, "Panel not found")
		return nil, nil, false
	}
	return p, f, true
}

func issuesJSON(issues map[form.Field]form.Issue) map[string]models.FieldIssue {
	out := make(map[string]models.FieldIssue, len(issues))
	for f, is := range issues {
		out[string(f)] = models.FieldIssue{Kind: is.Kind.String(), Message: is.Message}
	}
	return out
}

// render builds the panel view. Password-type values are echoed only while
// their visibility flag is on.
func (d *Deps) render(p *panel.Panel, f *form.Form) models.PanelResponse {
	v := f.View()
	resp := models.PanelResponse{
		ID:         p.ID(),
		Mode:       v.Kind.String(),
		Theme:      string(d.Theme.Mode()),
		Fields:     make(map[string]string, len(v.Values)),
		Errors:     issuesJSON(v.Errors),
		State:      v.State.String(),
		Submission: v.Submission.String(),
		Visible:    make(map[string]bool, len(v.Visible)),
	}
	for field, val := range v.Values {
		if visible, masked := v.Visible[field]; masked && !visible {
			val = ""
		}
		resp.Fields[string(field)] = val
	}
	for field, on := range v.Visible {
		resp.Visible[string(field)] = on
	}
	if v.Kind == form.KindSignup {
		resp.Strength = &models.StrengthView{Score: v.Strength, Label: v.Rating.Label, Color: v.Rating.Color}
	}
	return resp
}

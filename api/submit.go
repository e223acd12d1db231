package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/controller"
	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/go-chi/chi/v5"
)

const (
	defaultEventsWait = 25 * time.Second
	maxEventsWait     = 30 * time.Second
)

// SubmitHandler handles submitRequested. Validation failures answer 422 with
// the error map; an accepted submission answers 202 and its outcome is
// delivered through the events endpoint.
func SubmitHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, f, ok := d.activeForm(w, r)
		if !ok {
			return
		}

		_, err := f.Submit()
		var verr *form.ValidationError
		switch {
		case errors.As(err, &verr):
			respondJSON(w, http.StatusUnprocessableEntity, models.RejectedResponse{
				Errors: issuesJSON(verr.Issues),
				Shake:  true,
			})
			return
		case err != nil:
			respondFormError(w, err)
			return
		}

		logging.DebugLog("Panel submit accepted [%s] mode=%s", p.ID(), f.Kind())
		respondJSON(w, http.StatusAccepted, d.render(p, f))
	}
}

// EventsHandler long-polls the panel's mailbox. ?timeout= bounds the wait.
func EventsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.lookup(w, r); !ok {
			return
		}

		wait := defaultEventsWait
		if raw := r.URL.Query().Get("timeout"); raw != "" {
			v, err := time.ParseDuration(raw)
			if err != nil || v <= 0 {
				respondError(w, http.StatusBadRequest, "Invalid timeout")
				return
			}
			wait = min(v, maxEventsWait)
		}

		ctx, cancel := context.WithTimeout(r.Context(), wait)
		defer cancel()

		ev, err := d.Registry.Wait(ctx, id)
		switch {
		case err == nil:
			respondJSON(w, http.StatusOK, models.EventResponse{
				Type:    ev.Type,
				Mode:    ev.Mode,
				Message: ev.Message,
				Token:   ev.Token,
			})
		case errors.Is(err, context.DeadlineExceeded):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, controller.ErrNotRegistered):
			respondError(w, http.StatusNotFound, "Panel not found")
		default:
			// Client went away.
			logging.DebugLog("Events wait ended [%s]: %v", id, err)
		}
	}
}

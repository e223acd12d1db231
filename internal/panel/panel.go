// Package panel is the container that decides which form is mounted.
package panel

import (
	"errors"
	"sync"

	"github.com/Goofygiraffe06/authpanel/internal/controller"
	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/logging"
)

var ErrClosed = errors.New("panel: closed")

// Factory mounts a form that reports to obs.
type Factory func(kind form.Kind, obs form.Observer) *form.Form

// NewFactory mounts forms backed by auth.
func NewFactory(auth form.Authenticator, opts ...form.Option) Factory {
	return func(kind form.Kind, obs form.Observer) *form.Form {
		all := make([]form.Option, 0, len(opts)+1)
		all = append(all, opts...)
		return form.New(kind, auth, append(all, form.WithObserver(obs))...)
	}
}

// Panel shows exactly one form at a time. Switching unmounts the current form
// and mounts a fresh instance of the other one, so input is not carried over
// and any pending submission of the old form is abandoned.
type Panel struct {
	id       string
	factory  Factory
	registry *controller.Registry

	mu     sync.Mutex
	active *form.Form
	closed bool
}

// New mounts a panel showing the start form and opens its mailbox.
func New(id string, start form.Kind, factory Factory, registry *controller.Registry) *Panel {
	p := &Panel{id: id, factory: factory, registry: registry}
	registry.Register(id)
	p.active = p.mount(start)
	logging.DebugLog("Panel mounted [%s] mode=%s", id, start)
	return p
}

func (p *Panel) mount(kind form.Kind) *form.Form {
	return p.factory(kind, &forwarder{id: p.id, registry: p.registry})
}

func (p *Panel) ID() string { return p.id }

// Form returns the mounted form.
func (p *Panel) Form() (*form.Form, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return p.active, nil
}

// Mode reports which form is mounted.
func (p *Panel) Mode() form.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active.Kind()
}

// Switch handles panelSwitchRequested and returns the newly mounted kind.
func (p *Panel) Switch() (form.Kind, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrClosed
	}
	next := form.KindSignup
	if p.active.Kind() == form.KindSignup {
		next = form.KindLogin
	}
	p.active.Close()
	p.active = p.mount(next)

	logging.DebugLog("Panel switched [%s] mode=%s", p.id, next)
	return next, nil
}

// Close unmounts the form, abandoning any pending submission, and closes the
// mailbox. Close is idempotent.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.active.Close()
	p.registry.Delete(p.id)
	logging.DebugLog("Panel closed [%s]", p.id)
}

const (
	EventRejected = "rejected"
	EventSuccess  = "success"
	EventFailure  = "failure"
)

// forwarder turns form outcomes into mailbox events.
type forwarder struct {
	form.NopObserver
	id       string
	registry *controller.Registry
}

func (f *forwarder) Rejected(kind form.Kind, issues map[form.Field]form.Issue) {
	f.registry.Notify(f.id, controller.Event{
		Type:    EventRejected,
		Mode:    kind.String(),
		Message: "Please fix the highlighted fields",
	})
}

func (f *forwarder) Succeeded(n form.Notification) {
	f.registry.Notify(f.id, controller.Event{
		Type:    EventSuccess,
		Mode:    n.Kind.String(),
		Message: n.Message,
		Token:   n.Grant.Token,
	})
}

func (f *forwarder) Failed(kind form.Kind, issue form.Issue) {
	f.registry.Notify(f.id, controller.Event{
		Type:    EventFailure,
		Mode:    kind.String(),
		Message: issue.Message,
	})
}

package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Option configures a Form.
type Option func(*Form)

// WithObserver routes form events to o.
func WithObserver(o Observer) Option {
	return func(f *Form) {
		if o != nil {
			f.observer = o
		}
	}
}

// WithTimeout bounds each authentication call.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// Form is one mounted login or signup form. Every method is safe for
// concurrent use; the authentication call is the only work done off the
// caller's goroutine.
type Form struct {
	kind     Kind
	auth     Authenticator
	observer Observer
	timeout  time.Duration

	mu       sync.Mutex
	values   Values
	errs     *FieldErrors
	state    State
	strength int
	visible  map[Field]bool
	inflight *Attempt
	closed   bool

	// emitMu serializes observer dispatch in the order events were produced.
	emitMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

// New mounts a form of the given kind with empty inputs.
func New(kind Kind, auth Authenticator, opts ...Option) *Form {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		kind:     kind,
		auth:     auth,
		observer: NopObserver{},
		timeout:  defaultTimeout,
		values:   make(Values),
		errs:     NewFieldErrors(kind),
		visible:  make(map[Field]bool),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, field := range kind.Fields() {
		f.values[field] = ""
	}
	for _, field := range kind.maskedFields() {
		f.visible[field] = false
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Kind reports which form this is.
func (f *Form) Kind() Kind { return f.kind }

// SetField handles a fieldChanged event. It clears the error of the edited
// field only. Inputs are locked while a submission is in flight.
func (f *Form) SetField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if !f.kind.has(field) {
		return ErrUnknownField
	}
	if f.state == StateSubmitting {
		return ErrInputLocked
	}

	f.values[field] = value
	f.errs.ClearField(field)
	if f.kind == KindSignup && field == FieldPassword {
		f.strength = PasswordStrength(value)
	}
	return nil
}

// ToggleVisibility flips the masked/plain flag of a password-type field and
// returns the new value.
func (f *Form) ToggleVisibility(field Field) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false, ErrClosed
	}
	v, ok := f.visible[field]
	if !ok {
		return false, ErrUnknownField
	}
	f.visible[field] = !v
	return !v, nil
}

// Submit handles a submitRequested event. Validation runs synchronously; on
// rejection a *ValidationError is returned. On acceptance the authentication
// call is started and its Attempt returned. While an attempt is in flight,
// Submit returns the running attempt with ErrSubmitting and starts nothing.
func (f *Form) Submit() (*Attempt, error) {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.state == StateSubmitting {
		a := f.inflight
		f.mu.Unlock()
		return a, ErrSubmitting
	}

	var events []func()
	events = f.transition(events, StateValidating)

	f.errs.RebuildAll(Check(f.kind, f.values))
	if f.errs.Len() > 0 {
		issues := f.errs.Snapshot()
		events = f.transition(events, StateRejected)
		events = append(events, func() { f.observer.Rejected(f.kind, issues) })
		events = f.transition(events, StateEditing)
		f.dispatch(events)

		logging.Debug("Form submit rejected",
			zap.String("form", f.kind.String()),
			zap.Int("errors", len(issues)))
		return nil, &ValidationError{Issues: issues}
	}

	events = f.transition(events, StateAccepted)
	events = f.transition(events, StateSubmitting)

	a := newAttempt()
	f.inflight = a
	creds := credentialsFrom(f.kind, f.values)
	ctx, cancel := context.WithTimeout(f.ctx, f.timeout)
	f.dispatch(events)

	logging.Debug("Form submit accepted", zap.String("form", f.kind.String()))
	go f.run(ctx, cancel, a, creds)
	return a, nil
}

func (f *Form) run(ctx context.Context, cancel context.CancelFunc, a *Attempt, creds Credentials) {
	defer cancel()
	start := time.Now()

	grant, err := f.auth.Authenticate(ctx, creds)

	f.mu.Lock()
	if f.closed || f.inflight != a {
		f.mu.Unlock()
		logging.Debug("Form submission abandoned", zap.String("form", f.kind.String()))
		a.finish(Notification{}, ErrClosed)
		return
	}
	f.inflight = nil

	var events []func()
	if err != nil {
		issue := Issue{Kind: RemoteFailure, Message: failureMessage(f.kind)}
		var fail *Failure
		if errors.As(err, &fail) && fail.Reason != "" {
			issue.Message = fail.Reason
		}
		_ = f.errs.Set(FieldGeneral, issue.Kind, issue.Message)
		events = f.transition(events, StateEditing)
		events = append(events, func() { f.observer.Failed(f.kind, issue) })
		f.dispatch(events)

		logging.Warn("Form submission failed",
			zap.String("form", f.kind.String()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		a.finish(Notification{}, err)
		return
	}

	n := Notification{Kind: f.kind, Message: successMessage(f.kind), Grant: grant}
	events = f.transition(events, StateCompleted)
	events = append(events, func() { f.observer.Succeeded(n) })
	events = f.transition(events, StateEditing)
	f.dispatch(events)

	logging.Info("Form submission completed",
		zap.String("form", f.kind.String()),
		zap.Duration("took", time.Since(start)))
	a.finish(n, nil)
}

// transition must be called with mu held.
func (f *Form) transition(events []func(), to State) []func() {
	from := f.state
	f.state = to
	return append(events, func() { f.observer.StateChanged(f.kind, from, to) })
}

// dispatch releases mu and runs events in order. emitMu is taken before mu
// is released so a later holder of mu cannot overtake these events.
func (f *Form) dispatch(events []func()) {
	f.emitMu.Lock()
	f.mu.Unlock()
	defer f.emitMu.Unlock()
	for _, ev := range events {
		ev()
	}
}

// Close tears the form down. A pending authentication call is cancelled and
// its result discarded. Close is idempotent.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.inflight = nil
	f.cancel()
}

// View is a point-in-time copy of everything the presentation layer renders.
type View struct {
	Kind       Kind
	Values     Values
	Errors     map[Field]Issue
	State      State
	Submission Submission
	Strength   int
	Rating     Rating
	Visible    map[Field]bool
}

// View returns a snapshot of the form.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		Kind:       f.kind,
		Values:     f.values.clone(),
		Errors:     f.errs.Snapshot(),
		State:      f.state,
		Submission: Idle,
		Strength:   f.strength,
		Rating:     Classify(f.strength),
		Visible:    make(map[Field]bool, len(f.visible)),
	}
	if f.state == StateSubmitting {
		v.Submission = Submitting
	}
	for k, b := range f.visible {
		v.Visible[k] = b
	}
	return v
}

// Attempt is one accepted submission.
type Attempt struct {
	done chan struct{}
	n    Notification
	err  error
}

func newAttempt() *Attempt {
	return &Attempt{done: make(chan struct{})}
}

func (a *Attempt) finish(n Notification, err error) {
	a.n, a.err = n, err
	close(a.done)
}

// Done is closed once the attempt has completed, failed or been abandoned.
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Wait blocks until the attempt finishes or ctx is done.
func (a *Attempt) Wait(ctx context.Context) (Notification, error) {
	select {
	case <-a.done:
		return a.n, a.err
	case <-ctx.Done():
		return Notification{}, ctx.Err()
	}
}

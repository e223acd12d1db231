package form

// State is a step of the per-form submission cycle.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateRejected
	StateAccepted
	StateSubmitting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateAccepted:
		return "accepted"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Submission is the coarse flag the view uses to disable the submit control.
type Submission int

const (
	Idle Submission = iota
	Submitting
)

func (s Submission) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Notification is emitted once per successful submission.
type Notification struct {
	Kind    Kind
	Message string
	Grant   Grant
}

// Observer receives form events. Calls are serialized per form and happen
// outside the form's lock, but an observer must not call Submit on the same
// form from inside a callback.
type Observer interface {
	StateChanged(kind Kind, from, to State)
	Rejected(kind Kind, issues map[Field]Issue)
	Succeeded(n Notification)
	Failed(kind Kind, issue Issue)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StateChanged(Kind, State, State) {}
func (NopObserver) Rejected(Kind, map[Field]Issue) {}
func (NopObserver) Succeeded(Notification) {}
func (NopObserver) Failed(Kind, Issue) {}

func successMessage(k Kind) string {
	if k == KindSignup {
		return "Account created successfully! Welcome!"
	}
	return "Login successful! Welcome back!"
}

func failureMessage(k Kind) string {
	if k == KindSignup {
		return "Registration failed. Please try again."
	}
	return "Login failed. Please try again."
}

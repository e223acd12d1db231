package form

// Field names a single input of a form.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"

	// FieldGeneral is reserved for errors not attributable to one input.
	FieldGeneral Field = "general"
)

// Kind selects which form a Form instance implements.
type Kind int

const (
	KindLogin Kind = iota
	KindSignup
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindSignup:
		return "signup"
	default:
		return "unknown"
	}
}

// ParseKind maps "login"/"signup" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "login":
		return KindLogin, true
	case "signup":
		return KindSignup, true
	}
	return 0, false
}

// Fields returns the input fields of the form kind, in display order.
func (k Kind) Fields() []Field {
	if k == KindSignup {
		return []Field{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}
	}
	return []Field{FieldEmail, FieldPassword}
}

// maskedFields are the inputs that carry a visibility toggle.
func (k Kind) maskedFields() []Field {
	if k == KindSignup {
		return []Field{FieldPassword, FieldConfirmPassword}
	}
	return []Field{FieldPassword}
}

func (k Kind) has(f Field) bool {
	for _, x := range k.Fields() {
		if x == f {
			return true
		}
	}
	return false
}

// Values is the current content of a form's inputs.
type Values map[Field]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

package form

const (
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Please enter a valid email"
	msgPasswordRequired = "Password is required"
	msgPasswordShort    = "Password must be at least 6 characters"
	msgPasswordWeak     = "Password must be at least 8 characters with uppercase, lowercase, number, and special character"
	msgNameRequired     = "Name is required"
	msgNameShort        = "Name must be at least 2 characters"
	msgConfirmRequired  = "Please confirm your password"
	msgConfirmMismatch  = "Passwords do not match"
)

// Check runs every validator of the form kind over values and returns the
// failing fields only. Passing fields have no entry.
func Check(kind Kind, values Values) map[Field]Issue {
	issues := make(map[Field]Issue)

	if kind == KindSignup {
		switch name := values[FieldName]; {
		case name == "":
			issues[FieldName] = Issue{FieldRequired, msgNameRequired}
		case !ValidateName(name):
			issues[FieldName] = Issue{FieldTooShort, msgNameShort}
		}
	}

	switch email := values[FieldEmail]; {
	case email == "":
		issues[FieldEmail] = Issue{FieldRequired, msgEmailRequired}
	case !ValidateEmail(email):
		issues[FieldEmail] = Issue{FieldFormatInvalid, msgEmailInvalid}
	}

	password := values[FieldPassword]
	switch {
	case password == "":
		issues[FieldPassword] = Issue{FieldRequired, msgPasswordRequired}
	case kind == KindLogin && !ValidateLoginPassword(password):
		issues[FieldPassword] = Issue{FieldTooShort, msgPasswordShort}
	case kind == KindSignup:
		if ok, _ := ValidateSignupPassword(password); !ok {
			issues[FieldPassword] = Issue{FieldTooWeak, msgPasswordWeak}
		}
	}

	if kind == KindSignup {
		// Required takes precedence over mismatch.
		switch confirm := values[FieldConfirmPassword]; {
		case confirm == "":
			issues[FieldConfirmPassword] = Issue{FieldRequired, msgConfirmRequired}
		case confirm != password:
			issues[FieldConfirmPassword] = Issue{FieldMismatch, msgConfirmMismatch}
		}
	}

	return issues
}

package form

import (
	"context"
	"strings"
	"time"
)

// Credentials is what a form hands to its Authenticator. Name is empty for
// login.
type Credentials struct {
	Kind     Kind
	Name     string
	Email    string
	Password string
}

// Grant is returned on successful authentication.
type Grant struct {
	Subject string
	Token   string
}

// Authenticator performs the remote half of a submission. A *Failure error
// carries a reason shown to the user; any other error is reported with a
// generic message.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Grant, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds Credentials) (Grant, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, creds Credentials) (Grant, error) {
	return f(ctx, creds)
}

// Simulated stands in for a real backend: it waits a fixed latency per form
// kind and then succeeds.
type Simulated struct {
	LoginDelay  time.Duration
	SignupDelay time.Duration
}

// NewSimulated returns a Simulated authenticator with the given latencies.
func NewSimulated(login, signup time.Duration) *Simulated {
	return &Simulated{LoginDelay: login, SignupDelay: signup}
}

func (s *Simulated) Authenticate(ctx context.Context, creds Credentials) (Grant, error) {
	d := s.LoginDelay
	if creds.Kind == KindSignup {
		d = s.SignupDelay
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return Grant{}, ctx.Err()
	case <-t.C:
	}
	return Grant{Subject: creds.Email}, nil
}

func credentialsFrom(kind Kind, v Values) Credentials {
	c := Credentials{
		Kind:     kind,
		Email:    strings.ToLower(strings.TrimSpace(v[FieldEmail])),
		Password: v[FieldPassword],
	}
	if kind == KindSignup {
		c.Name = strings.TrimSpace(v[FieldName])
	}
	return c
}

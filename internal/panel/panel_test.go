package panel_test

import (
	"context"
	"testing"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/controller"
	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/Goofygiraffe06/authpanel/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blocking never returns until its context ends.
var blocking = form.AuthenticatorFunc(func(ctx context.Context, _ form.Credentials) (form.Grant, error) {
	<-ctx.Done()
	return form.Grant{}, ctx.Err()
})

func waitEvent(t *testing.T, r *controller.Registry, id string) controller.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := r.Wait(ctx, id)
	require.NoError(t, err)
	return ev
}

func TestPanelStartsOnRequestedForm(t *testing.T) {
	reg := controller.NewRegistry()
	p := panel.New("p1", form.KindLogin, panel.NewFactory(blocking), reg)
	defer p.Close()

	assert.Equal(t, form.KindLogin, p.Mode())
	assert.Equal(t, 1, reg.Count())
}

func TestSwitchResetsInput(t *testing.T) {
	reg := controller.NewRegistry()
	p := panel.New("p1", form.KindLogin, panel.NewFactory(blocking), reg)
	defer p.Close()

	f, err := p.Form()
	require.NoError(t, err)
	require.NoError(t, f.SetField(form.FieldEmail, "jo@x.com"))

	kind, err := p.Switch()
	require.NoError(t, err)
	assert.Equal(t, form.KindSignup, kind)

	kind, err = p.Switch()
	require.NoError(t, err)
	assert.Equal(t, form.KindLogin, kind)

	f2, err := p.Form()
	require.NoError(t, err)
	assert.NotSame(t, f, f2)
	assert.Empty(t, f2.View().Values[form.FieldEmail])

	// The unmounted form is torn down.
	assert.ErrorIs(t, f.SetField(form.FieldEmail, "x"), form.ErrClosed)
}

func TestSwitchAbandonsPendingSubmission(t *testing.T) {
	reg := controller.NewRegistry()
	p := panel.New("p1", form.KindLogin, panel.NewFactory(blocking), reg)
	defer p.Close()

	f, _ := p.Form()
	require.NoError(t, f.SetField(form.FieldEmail, "jo@x.com"))
	require.NoError(t, f.SetField(form.FieldPassword, "123456"))
	a, err := f.Submit()
	require.NoError(t, err)

	_, err = p.Switch()
	require.NoError(t, err)

	_, err = a.Wait(context.Background())
	assert.ErrorIs(t, err, form.ErrClosed)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = reg.Wait(ctx, "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded, "abandoned submission must not emit events")
}

func TestOutcomesReachMailbox(t *testing.T) {
	reg := controller.NewRegistry()
	auth := form.AuthenticatorFunc(func(_ context.Context, c form.Credentials) (form.Grant, error) {
		if c.Password == "Wrong1!!" {
			return form.Grant{}, form.NewFailure("Invalid email or password")
		}
		return form.Grant{Subject: c.Email, Token: "tok"}, nil
	})
	p := panel.New("p1", form.KindLogin, panel.NewFactory(auth), reg)
	defer p.Close()
	f, _ := p.Form()

	_, err := f.Submit()
	require.Error(t, err)
	assert.Equal(t, panel.EventRejected, waitEvent(t, reg, "p1").Type)

	require.NoError(t, f.SetField(form.FieldEmail, "jo@x.com"))
	require.NoError(t, f.SetField(form.FieldPassword, "Wrong1!!"))
	_, err = f.Submit()
	require.NoError(t, err)
	ev := waitEvent(t, reg, "p1")
	assert.Equal(t, panel.EventFailure, ev.Type)
	assert.Equal(t, "Invalid email or password", ev.Message)

	require.NoError(t, f.SetField(form.FieldPassword, "Right1!!"))
	_, err = f.Submit()
	require.NoError(t, err)
	ev = waitEvent(t, reg, "p1")
	assert.Equal(t, panel.EventSuccess, ev.Type)
	assert.Equal(t, "login", ev.Mode)
	assert.Equal(t, "tok", ev.Token)
	assert.Equal(t, "Login successful! Welcome back!", ev.Message)
}

func TestCloseIsIdempotent(t *testing.T) {
	reg := controller.NewRegistry()
	p := panel.New("p1", form.KindSignup, panel.NewFactory(blocking), reg)

	p.Close()
	p.Close()

	_, err := p.Form()
	assert.ErrorIs(t, err, panel.ErrClosed)
	_, err = p.Switch()
	assert.ErrorIs(t, err, panel.ErrClosed)
	assert.Zero(t, reg.Count())
}

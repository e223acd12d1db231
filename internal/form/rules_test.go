package form_test

import (
	"testing"

	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLogin(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		issues := form.Check(form.KindLogin, form.Values{})
		require.Len(t, issues, 2)
		assert.Equal(t, form.FieldRequired, issues[form.FieldEmail].Kind)
		assert.Equal(t, form.FieldRequired, issues[form.FieldPassword].Kind)
	})

	t.Run("invalid formats", func(t *testing.T) {
		issues := form.Check(form.KindLogin, form.Values{
			form.FieldEmail:    "a@b",
			form.FieldPassword: "12345",
		})
		assert.Equal(t, form.FieldFormatInvalid, issues[form.FieldEmail].Kind)
		assert.Equal(t, "Please enter a valid email", issues[form.FieldEmail].Message)
		assert.Equal(t, form.FieldTooShort, issues[form.FieldPassword].Kind)
	})

	t.Run("valid has no entries", func(t *testing.T) {
		issues := form.Check(form.KindLogin, form.Values{
			form.FieldEmail:    "a@b.c",
			form.FieldPassword: "123456",
		})
		assert.Empty(t, issues)
	})
}

func TestCheckSignup(t *testing.T) {
	t.Run("confirm required wins over mismatch", func(t *testing.T) {
		issues := form.Check(form.KindSignup, form.Values{
			form.FieldPassword: "Abcdef1!",
		})
		assert.Equal(t, form.FieldRequired, issues[form.FieldConfirmPassword].Kind)
		assert.Equal(t, "Please confirm your password", issues[form.FieldConfirmPassword].Message)
	})

	t.Run("confirm required when password also empty", func(t *testing.T) {
		issues := form.Check(form.KindSignup, form.Values{})
		assert.Equal(t, form.FieldRequired, issues[form.FieldConfirmPassword].Kind)
		assert.Equal(t, form.FieldRequired, issues[form.FieldPassword].Kind)
	})

	t.Run("mismatch", func(t *testing.T) {
		issues := form.Check(form.KindSignup, form.Values{
			form.FieldName:            "Jo",
			form.FieldEmail:           "jo@x.com",
			form.FieldPassword:        "Abcdef1!",
			form.FieldConfirmPassword: "Abcdef1?",
		})
		require.Len(t, issues, 1)
		assert.Equal(t, form.FieldMismatch, issues[form.FieldConfirmPassword].Kind)
	})

	t.Run("weak password and short name", func(t *testing.T) {
		issues := form.Check(form.KindSignup, form.Values{
			form.FieldName:            " J",
			form.FieldEmail:           "jo@x.com",
			form.FieldPassword:        "abcdefgh",
			form.FieldConfirmPassword: "abcdefgh",
		})
		assert.Equal(t, form.FieldTooShort, issues[form.FieldName].Kind)
		assert.Equal(t, form.FieldTooWeak, issues[form.FieldPassword].Kind)
		assert.NotContains(t, issues, form.FieldConfirmPassword)
	})

	t.Run("four of five criteria accepted", func(t *testing.T) {
		issues := form.Check(form.KindSignup, form.Values{
			form.FieldName:            "Jo",
			form.FieldEmail:           "jo@x.com",
			form.FieldPassword:        "Abcdefg1",
			form.FieldConfirmPassword: "Abcdefg1",
		})
		assert.Empty(t, issues)
	})
}

func TestFieldErrors(t *testing.T) {
	errs := form.NewFieldErrors(form.KindLogin)

	require.NoError(t, errs.Set(form.FieldEmail, form.FieldRequired, "Email is required"))
	require.NoError(t, errs.Set(form.FieldGeneral, form.RemoteFailure, "nope"))
	assert.ErrorIs(t, errs.Set(form.FieldName, form.FieldRequired, "x"), form.ErrUnknownField)
	assert.Equal(t, 2, errs.Len())

	// Empty messages never make it into the mapping.
	require.NoError(t, errs.Set(form.FieldEmail, form.FieldRequired, ""))
	_, ok := errs.Get(form.FieldEmail)
	assert.False(t, ok)

	errs.RebuildAll(map[form.Field]form.Issue{
		form.FieldPassword: {Kind: form.FieldTooShort, Message: "short"},
		form.FieldName:     {Kind: form.FieldRequired, Message: "dropped"},
	})
	assert.Equal(t, map[form.Field]form.Issue{
		form.FieldPassword: {Kind: form.FieldTooShort, Message: "short"},
	}, errs.Snapshot())

	errs.ClearField(form.FieldPassword)
	assert.Zero(t, errs.Len())

	_ = errs.Set(form.FieldGeneral, form.RemoteFailure, "x")
	errs.Clear()
	assert.Zero(t, errs.Len())
}

package form_test

import (
	"testing"

	"github.com/Goofygiraffe06/authpanel/internal/form"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.c", true},
		{"jo@x.com", true},
		{"First.Last@Example.ORG", true},
		{"a@b", false},
		{"", false},
		{"a b@c.d", false},
		{"a@@b.c", false},
		{"@b.c", false},
		{"a@.c", false},
		{"a@b.", false},
		{"a\vb@c.d", false},
		{"a\u00a0b@c.d", false},
		{"a@b\u2003x.c", false},
		{"a@b.c\u3000", false},
		{"a\u2028b@c.d", false},
		{"\ufeffa@b.c", false},
		{"jö@exämple.de", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, form.ValidateEmail(tt.in))
		})
	}
}

func TestValidateLoginPassword(t *testing.T) {
	assert.False(t, form.ValidateLoginPassword(""))
	assert.False(t, form.ValidateLoginPassword("12345"))
	assert.True(t, form.ValidateLoginPassword("123456"))

	t.Run("astral characters count as two units", func(t *testing.T) {
		assert.True(t, form.ValidateLoginPassword("😀😀😀"))
		assert.False(t, form.ValidateLoginPassword("😀😀"))
		assert.False(t, form.ValidateLoginPassword("éééé"))
	})
}

func TestValidateName(t *testing.T) {
	assert.False(t, form.ValidateName(""))
	assert.False(t, form.ValidateName(" J "))
	assert.True(t, form.ValidateName("Jo"))
	assert.True(t, form.ValidateName("  Jo  "))
	assert.True(t, form.ValidateName("😀"))
}

func TestValidateSignupPassword(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		valid    bool
		strength int
	}{
		{"empty", "", false, 0},
		{"lower and length", "abcdefgh", false, 2},
		{"all five", "Abcdef1!", true, 5},
		// Accepted with four of five criteria: no special character.
		{"boundary missing special char", "Abcdefg1", true, 4},
		{"boundary short but complex", "Ab1!", true, 4},
		{"three criteria", "abcdefg1", false, 3},
		{"end to end password", "Weak1!!!", true, 5},
		// Length is measured in UTF-16 units: three emoji are six.
		{"astral characters reach length", "Ab1😀😀😀", true, 4},
		{"bmp characters count once", "Ab1ééééé", true, 4},
		{"bmp characters short", "Ab1éééé", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, strength := form.ValidateSignupPassword(tt.in)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.strength, strength)
		})
	}
}

func TestPasswordStrengthSpecialChars(t *testing.T) {
	for _, r := range form.SpecialChars {
		assert.Equal(t, 1, form.PasswordStrength(string(r)), "special char %q", r)
	}
	assert.Equal(t, 0, form.PasswordStrength("~"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		strength int
		want     form.Rating
	}{
		{-1, form.RatingWeak},
		{0, form.RatingWeak},
		{2, form.RatingWeak},
		{3, form.RatingFair},
		{4, form.RatingGood},
		{5, form.RatingStrong},
		{9, form.RatingStrong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, form.Classify(tt.strength), "strength %d", tt.strength)
	}
	assert.Equal(t, "#059669", form.Classify(5).Color)
}

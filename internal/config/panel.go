package config

import (
	"strings"
	"time"
)

const (
	AuthModeAccounts  = "accounts"
	AuthModeSimulated = "simulated"
)

// AuthMode selects the authenticator behind the forms.
func AuthMode() string {
	switch m := strings.ToLower(GetEnv("AUTH_MODE", AuthModeAccounts)); m {
	case AuthModeSimulated:
		return m
	default:
		return AuthModeAccounts
	}
}

// LoginDelay is the latency of the simulated login call.
func LoginDelay() time.Duration {
	return MustParseDuration("LOGIN_DELAY", "1500ms")
}

// SignupDelay is the latency of the simulated signup call.
func SignupDelay() time.Duration {
	return MustParseDuration("SIGNUP_DELAY", "2000ms")
}

// SubmitTimeout bounds one authentication call.
func SubmitTimeout() time.Duration {
	return MustParseDuration("SUBMIT_TIMEOUT", "10s")
}

// PanelTTL is how long an idle panel session is kept.
func PanelTTL() time.Duration {
	return MustParseDuration("PANEL_TTL", "30m")
}

// SystemPrefersDark is the OS-level theme fallback used when no preference
// has been stored yet.
func SystemPrefersDark() bool {
	return strings.EqualFold(GetEnv("SYSTEM_COLOR_SCHEME", "light"), "dark")
}

func TokenIssuer() string {
	return GetEnv("TOKEN_ISSUER", "authpanel")
}

func TokenExpiresIn() time.Duration {
	return MustParseDuration("TOKEN_EXPIRES_IN", "15m")
}

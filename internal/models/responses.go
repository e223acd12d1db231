package models

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldIssue is one entry of a form's error map.
type FieldIssue struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StrengthView is the password meter of the signup form.
type StrengthView struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// PanelResponse renders everything the presentation layer needs. Masked
// password fields are sent empty.
type PanelResponse struct {
	ID         string                `json:"id"`
	Mode       string                `json:"mode"`
	Theme      string                `json:"theme"`
	Fields     map[string]string     `json:"fields"`
	Errors     map[string]FieldIssue `json:"errors"`
	State      string                `json:"state"`
	Submission string                `json:"submission"`
	Strength   *StrengthView         `json:"strength,omitempty"`
	Visible    map[string]bool       `json:"visible"`
}

// RejectedResponse is returned when a submit fails validation. Shake cues
// the view's failure effect.
type RejectedResponse struct {
	Errors map[string]FieldIssue `json:"errors"`
	Shake  bool                  `json:"shake"`
}

// VisibilityResponse reports the new flag.
type VisibilityResponse struct {
	Field   string `json:"field"`
	Visible bool   `json:"visible"`
}

// EventResponse is delivered to long-polling clients.
type EventResponse struct {
	Type    string `json:"type"`
	Mode    string `json:"mode"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type ThemeResponse struct {
	Mode string `json:"mode"`
}

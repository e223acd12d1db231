package models

// MountPanelRequest optionally picks the form shown first.
type MountPanelRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=login signup"`
}

// FieldChangeRequest carries a fieldChanged event.
type FieldChangeRequest struct {
	Field string `json:"field" validate:"required,oneof=name email password confirmPassword"`
	Value string `json:"value" validate:"max=1024"`
}

// VisibilityRequest carries a visibilityToggled event.
type VisibilityRequest struct {
	Field string `json:"field" validate:"required,oneof=password confirmPassword"`
}

// ThemeRequest sets the theme explicitly.
type ThemeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=light dark"`
}

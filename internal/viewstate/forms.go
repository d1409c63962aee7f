package viewstate

import "strings"

// FormField is one input of a submitted form, as reported by the page.
type FormField struct {
	Name     string `json:"name" validate:"required"`
	Required bool   `json:"required"`
	Value    string `json:"value"`
}

// FormReadiness reports whether the loading overlay may be shown.
type FormReadiness struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing,omitempty"`
}

// CheckFormReadiness reports whether every required field carries a
// non-blank value. The overlay only appears for forms that will actually
// submit; a half-filled form keeps the page interactive.
func CheckFormReadiness(fields []FormField) FormReadiness {
	var missing []string
	for _, field := range fields {
		if field.Required && strings.TrimSpace(field.Value) == "" {
			missing = append(missing, field.Name)
		}
	}
	return FormReadiness{Ready: len(missing) == 0, Missing: missing}
}

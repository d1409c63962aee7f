package controllers

import (
	"net/http"

	"github.com/Gubchik123/LapZone/api/responses"
	"github.com/Gubchik123/LapZone/api/validators"
	"github.com/Gubchik123/LapZone/internal/viewstate"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

type formReadinessRequest struct {
	Fields []viewstate.FormField `json:"fields" validate:"required,dive"`
}

// FormReadiness gates the full-screen loading overlay: it only appears for
// forms that will actually submit.
func FormReadiness(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload formReadinessRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewstate.CheckFormReadiness(payload.Fields))
	}
}

package controllers

import (
	"net/http"

	"github.com/Gubchik123/LapZone/api/middleware"
	"github.com/Gubchik123/LapZone/api/responses"
	"github.com/Gubchik123/LapZone/internal/likes"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

// ToggleLike proxies a like click and returns the icon to render.
func ToggleLike(svc likes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "likes service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		csrfToken := middleware.CSRFTokenFromContext(r.Context())
		result, err := svc.Toggle(r.Context(), csrfToken, userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

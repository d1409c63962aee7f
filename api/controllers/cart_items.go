package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Gubchik123/LapZone/api/middleware"
	"github.com/Gubchik123/LapZone/api/responses"
	"github.com/Gubchik123/LapZone/api/validators"
	"github.com/Gubchik123/LapZone/internal/cartsession"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  *int  `json:"quantity,omitempty"`
}

// AddCartItem proxies an add-to-cart click through the page session.
func AddCartItem(svc cartsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		csrfToken := middleware.CSRFTokenFromContext(r.Context())
		result, err := svc.AddItem(r.Context(), sessionID, csrfToken, payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// RemoveCartItem proxies a remove-from-cart click through the page session.
func RemoveCartItem(svc cartsession.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session service unavailable"))
			return
		}

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		csrfToken := middleware.CSRFTokenFromContext(r.Context())
		result, err := svc.RemoveItem(r.Context(), sessionID, csrfToken, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func productIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productID")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return productID, nil
}

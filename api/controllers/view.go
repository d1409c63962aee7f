package controllers

import (
	"net/http"
	"strconv"

	"github.com/Gubchik123/LapZone/api/responses"
	"github.com/Gubchik123/LapZone/internal/viewstate"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

// SortOptions marks the active entry of the ordering dropdown for the
// supplied query params.
func SortOptions(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		options, err := viewstate.MarkActiveSortOption(
			viewstate.DefaultSortOptions,
			query.Get("orderby"),
			query.Get("orderdir"),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

// Layout reports the responsive decisions for a viewport width.
func Layout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width, err := queryInt(r, "width")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, viewstate.LayoutFor(width))
	}
}

// Pagination computes the windowed pagination strip for a viewport width.
func Pagination(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := queryInt(r, "page")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := queryInt(r, "total")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		width, err := queryInt(r, "width")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		window, err := viewstate.PageWindow(current, total, width)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, window)
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" query param is required")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name+" query param")
	}
	return value, nil
}

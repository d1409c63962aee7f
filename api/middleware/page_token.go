package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gubchik123/LapZone/api/responses"
	pkgauth "github.com/Gubchik123/LapZone/pkg/auth"
	"github.com/Gubchik123/LapZone/pkg/config"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

const pageTokenHeader = "X-Page-Token"

// PageToken validates the token the render layer mints per page and seeds
// the request context with the user id and anti-forgery token it carries.
func PageToken(cfg config.PageTokenConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(pageTokenHeader))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing page token"))
				return
			}

			claims, err := pkgauth.ParsePageToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid page token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithCSRFToken(ctx, claims.CSRFToken)

			if logg != nil {
				ctx = logg.WithUserID(ctx, strconv.FormatInt(claims.UserID, 10))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package auth

import "github.com/golang-jwt/jwt/v5"

// PageTokenPayload is the data the render layer seeds into each page token.
type PageTokenPayload struct {
	UserID    int64
	CSRFToken string
	JTI       string
}

// PageTokenClaims is the JWT claim set carried by a rendered storefront page.
// The CSRF token is forwarded verbatim to the legacy endpoints on every submit.
type PageTokenClaims struct {
	UserID    int64  `json:"user_id"`
	CSRFToken string `json:"csrf_token"`
	jwt.RegisteredClaims
}

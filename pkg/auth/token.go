package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Gubchik123/LapZone/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintPageToken issues a signed JWT for the provided payload using the configured TTL.
func MintPageToken(cfg config.PageTokenConfig, now time.Time, payload PageTokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("page token secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("page token issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("page token expiration minutes must be positive")
	}
	if payload.UserID <= 0 {
		return "", fmt.Errorf("user id must be positive")
	}
	if strings.TrimSpace(payload.CSRFToken) == "" {
		return "", fmt.Errorf("csrf token is required")
	}

	issuedAt := jwt.NewNumericDate(now)
	expiry := jwt.NewNumericDate(now.Add(cfg.TTL()))

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := PageTokenClaims{
		UserID:    payload.UserID,
		CSRFToken: payload.CSRFToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  issuedAt,
			ExpiresAt: expiry,
			ID:        jti,
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParsePageToken validates the JWT string and returns typed claims.
func ParsePageToken(cfg config.PageTokenConfig, tokenString string) (*PageTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("page token secret is required")
	}

	claims := &PageTokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/Gubchik123/LapZone/pkg/auth"
	"github.com/Gubchik123/LapZone/pkg/config"
)

func testPageTokenConfig() config.PageTokenConfig {
	return config.PageTokenConfig{
		Secret:            "test-secret-test-secret-test-secret!",
		Issuer:            "lapzone",
		ExpirationMinutes: 15,
	}
}

func TestPageTokenSeedsContext(t *testing.T) {
	cfg := testPageTokenConfig()
	token, err := pkgauth.MintPageToken(cfg, time.Now(), pkgauth.PageTokenPayload{
		UserID:    42,
		CSRFToken: "csrf-value",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotUserID int64
	var gotCSRF string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotCSRF = CSRFTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sessions", nil)
	req.Header.Set(pageTokenHeader, token)
	resp := httptest.NewRecorder()
	PageToken(cfg, nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUserID != 42 {
		t.Fatalf("expected user id 42, got %d", gotUserID)
	}
	if gotCSRF != "csrf-value" {
		t.Fatalf("expected csrf token seeded, got %q", gotCSRF)
	}
}

func TestPageTokenRejectsMissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sessions", nil)
	resp := httptest.NewRecorder()
	PageToken(testPageTokenConfig(), nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPageTokenRejectsInvalidToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	for _, token := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sessions", nil)
		req.Header.Set(pageTokenHeader, token)
		resp := httptest.NewRecorder()
		PageToken(testPageTokenConfig(), nil)(handler).ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %q, got %d", token, resp.Code)
		}
	}
}

func TestPageTokenRejectsExpiredToken(t *testing.T) {
	cfg := testPageTokenConfig()
	token, err := pkgauth.MintPageToken(cfg, time.Now().Add(-time.Hour), pkgauth.PageTokenPayload{
		UserID:    42,
		CSRFToken: "csrf-value",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sessions", nil)
	req.Header.Set(pageTokenHeader, token)
	resp := httptest.NewRecorder()
	PageToken(cfg, nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

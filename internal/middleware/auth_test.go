package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func adminClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "64f0c0ffee0000000000abcd",
		"role":  "admin",
		"email": "admin@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func serveAdminRoute(header string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminID": c.GetString("adminID")})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret, adminClaims())

	w := serveAdminRoute("Bearer " + token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "64f0c0ffee0000000000abcd") {
		t.Fatalf("adminID claim not exposed to the handler: %s", w.Body.String())
	}
}

func TestAdminAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Token abc", "abc"} {
		w := serveAdminRoute(header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, "some-other-secret", adminClaims())

	if w := serveAdminRoute("Bearer " + token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	claims := adminClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

	if w := serveAdminRoute("Bearer " + token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAdminAuthRejectsNonHS256Token(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS512, testSecret, adminClaims())

	if w := serveAdminRoute("Bearer " + token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for HS512 token, got %d", w.Code)
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	claims := adminClaims()
	claims["role"] = "customer"
	token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

	if w := serveAdminRoute("Bearer " + token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", w.Code)
	}
}

func TestAdminAuthRejectsMissingSubject(t *testing.T) {
	claims := adminClaims()
	delete(claims, "sub")
	token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)

	if w := serveAdminRoute("Bearer " + token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing sub, got %d", w.Code)
	}
}

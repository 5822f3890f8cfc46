package auth

import (
	"net/http"
	"strings"
)

// ExtractSessionToken pulls the session token off a request. The web
// client keeps it in a cookie; other callers send a bearer header.
func ExtractSessionToken(r *http.Request) string {
	if cookie, err := r.Cookie("session_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

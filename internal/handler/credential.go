package handler

import (
	"net/http"
	"strings"

	"github.com/carspot/backend/internal/service"
)

const bearerScheme = "bearer"

// ExtractCredential returns the raw session token of a request.
// A Bearer Authorization header wins over the session cookie.
func ExtractCredential(r *http.Request) (string, error) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, bearerScheme) {
			if token = strings.TrimSpace(token); token != "" {
				return token, nil
			}
		}
	}

	if cookie, err := r.Cookie(service.SessionCookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token, nil
		}
	}

	return "", service.ErrMissingCredential
}

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"cs2-inventory-api/pkg/apierror"
	"cs2-inventory-api/pkg/response"
)

// APIKeyAuth only lets requests through that carry one of keys in X-API-Key
// or an Authorization Bearer header. With no keys configured every request
// is rejected.
func APIKeyAuth(keys []string) func(http.Handler) http.Handler {
	valid := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			valid = append(valid, k)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					apiKey = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if apiKey == "" {
				response.Error(w, apierror.Unauthorized("Authentication required. Use X-API-Key header."))
				return
			}
			if !isValidKey(apiKey, valid) {
				response.Error(w, apierror.Unauthorized("Invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isValidKey(key string, validKeys []string) bool {
	for _, v := range validKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(v)) == 1 {
			return true
		}
	}
	return false
}

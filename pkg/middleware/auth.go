package middleware

import (
	"net/http"

	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RequireSecret rejects requests whose header does not match the bcrypt hash.
// An empty hash locks the route entirely.
func RequireSecret(header, hash string, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "auth"), zap.String("header", header))
	if hash == "" {
		log.Warn("No secret hash configured, routes behind this header are locked")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := r.Header.Get(header)
			if secret == "" {
				utils.ResponseUnauthorized(w, "Missing "+header+" header")
				return
			}

			if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
				log.Warn("Rejected request with invalid secret",
					zap.String("path", r.URL.Path),
					zap.String("ip", clientIP(r)),
				)
				utils.ResponseUnauthorized(w, "Invalid "+header+" header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

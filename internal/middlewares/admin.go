package middlewares

import (
	"net/http"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader carries the plain admin key.
const AdminKeyHeader = "X-Admin-Key"

// AdminMiddleware admits only requests whose X-Admin-Key matches the bcrypt
// hash. An empty hash rejects every request.
func AdminMiddleware(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromContext(r.Context())

			if keyHash == "" {
				logger.Log.Warnw("admin request rejected: admin key not configured", "request_id", reqID)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				logger.Log.Warnw("admin request rejected: missing key", "request_id", reqID)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				logger.Log.Warnw("admin request rejected: invalid key", "request_id", reqID, "err", err)
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

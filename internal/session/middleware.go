package session

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Middleware resolves the Authorization header into a Session on every
// request. Requests without a token proceed anonymously; the dashboard
// decides per view what anonymous users may see.
func Middleware(secret []byte, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := Anonymous

			header := r.Header.Get("Authorization")
			if header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					s, err := FromToken(parts[1], secret)
					if err != nil {
						logger.WithError(err).Debug("rejected bearer token")
					} else {
						sess = s
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
		})
	}
}

// RequireAuth guards an endpoint so only live sessions reach it.
// Expired sessions get 401 with a distinct message so the client can
// prompt re-login instead of a plain sign-in.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch FromContext(r.Context()).State {
		case StateAuthenticated:
			next.ServeHTTP(w, r)
		case StateExpired:
			http.Error(w, "session expired", http.StatusUnauthorized)
		default:
			http.Error(w, "authentication required", http.StatusUnauthorized)
		}
	})
}

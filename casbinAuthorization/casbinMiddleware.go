package casbinAuthorization

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"

	"inspection_service/authorization"
)

func extractRole(r *http.Request) (string, error) {
	tokenString := authorization.ExtractBearerToken(r.Header.Get("Authorization"))
	if tokenString == "" {
		return "Unauthenticated", nil
	}

	token, err := authorization.GetToken(tokenString)
	if err != nil {
		return "", err
	}

	claims := authorization.GetMapClaims(token.Bytes())
	return claims["role"], nil
}

func CasbinMiddleware(e *casbin.Enforcer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			role, err := extractRole(r)
			if err != nil {
				logger.Error("Unauthorized access attempt")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := e.EnforceSafe(role, r.URL.Path, r.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy")
				http.Error(w, "unauthorized user", http.StatusUnauthorized)
				return
			}

			if res {
				next.ServeHTTP(w, r)
			} else {
				logger.WithFields(logrus.Fields{
					"role": role,
					"path": r.URL.Path,
				}).Warn("Unauthorized access attempt: forbidden")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		return http.HandlerFunc(fn)
	}
}

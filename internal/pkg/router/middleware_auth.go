package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
)

func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[path]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, map[string]string{"message": "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			ctx := jwt.SetAuth(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MiddlewareAdminOnly rejects requests whose token does not carry the admin role.
//
// It must run after the authentication middleware has stored claims in the context.
func MiddlewareAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clm := jwt.GetAuth(r.Context())
		if clm == nil {
			writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
			return
		}
		if !clm.IsAdmin() {
			writeJSON(w, map[string]string{"message": "Account not allowed"}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

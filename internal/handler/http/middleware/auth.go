package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/tempreco/ponto-backend-go/internal/domain/auth"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

type contextKey struct{ name string }

var (
	employeeIDKey = &contextKey{"employee_id"}
	roleKey       = &contextKey{"role"}
)

// AuthRequired accepts access tokens only and stores the caller's identity
// in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				switch {
				case errors.Is(err, jwtauth.ErrNoTokenFound):
					response.HandleError(w, auth.ErrMissingToken)
				case errors.Is(err, jwtauth.ErrExpired):
					response.HandleError(w, auth.ErrTokenExpired)
				default:
					response.Unauthorized(w, err.Error())
				}
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || !validator.IsValidUUID(employeeID) {
				response.HandleError(w, auth.ErrEmployeeIdentityMissing)
				return
			}

			role, _ := claims["role"].(string)
			if role == "" {
				role = string(jwt.RoleEmployee)
			}

			ctx := context.WithValue(r.Context(), employeeIDKey, employeeID)
			ctx = context.WithValue(ctx, roleKey, jwt.Role(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeID returns the authenticated employee, or "" outside AuthRequired.
func EmployeeID(ctx context.Context) string {
	id, _ := ctx.Value(employeeIDKey).(string)
	return id
}

func RoleFromContext(ctx context.Context) jwt.Role {
	role, _ := ctx.Value(roleKey).(jwt.Role)
	return role
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/tempreco/ponto-backend-go/internal/domain/auth"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
)

// Directory resolves the employee record behind a token.
type Directory interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

// AdminOnly must run after AuthRequired. The role claim alone is not
// enough: the caller must still be flagged as admin in the directory, so
// a demotion takes effect before the token expires.
func AdminOnly(directory Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != jwt.RoleAdmin {
				response.HandleError(w, auth.ErrAdminPrivilegeRequired)
				return
			}

			emp, err := directory.GetByID(r.Context(), EmployeeID(r.Context()))
			if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
				response.HandleError(w, err)
				return
			}
			if err != nil || !emp.IsAdmin {
				response.HandleError(w, auth.ErrAdminPrivilegeRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

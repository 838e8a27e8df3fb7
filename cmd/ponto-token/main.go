// Command ponto-token mints access tokens for the API.
//
//	ponto-token -employee 0190a1b2-c3d4-7e5f-8a6b-000000000003 -role admin
//	ponto-token -demo pedro
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/fixtures"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	employeeID := flag.String("employee", "", "employee ID (UUID)")
	role := flag.String("role", string(jwt.RoleEmployee), "admin or employee")
	demo := flag.String("demo", "", "first name of a demo employee (joao, maria, pedro, ana)")
	secret := flag.String("secret", os.Getenv("JWT_SECRET_KEY"), "signing secret, defaults to JWT_SECRET_KEY")
	expiration := flag.String("exp", envOr("JWT_ACCESS_EXPIRATION_TIME", "12h"), "token lifetime")
	flag.Parse()

	if *demo != "" {
		emp, ok := demoEmployee(*demo)
		if !ok {
			fail("unknown demo employee %q", *demo)
		}
		*employeeID = emp.ID
		if emp.IsAdmin {
			*role = string(jwt.RoleAdmin)
		}
	}

	if !validator.IsValidUUID(*employeeID) {
		fail("-employee must be a valid UUID")
	}
	if *role != string(jwt.RoleAdmin) && *role != string(jwt.RoleEmployee) {
		fail("-role must be admin or employee")
	}
	if *secret == "" {
		fail("a signing secret is required (-secret or JWT_SECRET_KEY)")
	}

	svc, err := jwt.NewJWTService(*secret, *expiration)
	if err != nil {
		fail("%v", err)
	}
	token, expiresAt, err := svc.GenerateAccessToken(*employeeID, jwt.Role(*role))
	if err != nil {
		fail("failed to sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}

func demoEmployee(firstName string) (employee.Employee, bool) {
	fold := strings.NewReplacer("ã", "a", "á", "a", "é", "e", "í", "i", "ó", "o")
	want := strings.ToLower(firstName)
	for _, emp := range fixtures.DemoEmployees() {
		first := fold.Replace(strings.ToLower(strings.Fields(emp.Name)[0]))
		if first == want {
			return emp, true
		}
	}
	return employee.Employee{}, false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ponto-token: "+format+"\n", args...)
	os.Exit(2)
}

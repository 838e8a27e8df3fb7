package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
	"github.com/tempreco/ponto-backend-go/internal/repository/memory"
)

func newService() employee.EmployeeService {
	return NewEmployeeService(memory.NewStore().Employees(), logger.Discard())
}

func validRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:       "Ana Lima",
		Email:      "Ana@TempPreco.com",
		Role:       "Analista",
		Department: "TI",
		Age:        26,
		Gender:     "Female",
	}
}

func TestCreateEmployee(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validRequest())
	require.NoError(t, err)

	assert.True(t, validator.IsValidUUID(created.ID))
	assert.Equal(t, "ana@temppreco.com", created.Email)
	assert.Equal(t, "female", created.Gender)

	got, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, validRequest())
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreateEmployee_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *employee.CreateEmployeeRequest)
		field  string
	}{
		{"missing name", func(r *employee.CreateEmployeeRequest) { r.Name = " " }, "name"},
		{"bad email", func(r *employee.CreateEmployeeRequest) { r.Email = "ana" }, "email"},
		{"too young", func(r *employee.CreateEmployeeRequest) { r.Age = 13 }, "age"},
		{"bad gender", func(r *employee.CreateEmployeeRequest) { r.Gender = "x" }, "gender"},
		{"missing department", func(r *employee.CreateEmployeeRequest) { r.Department = "" }, "department"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := newService().CreateEmployee(context.Background(), req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestUpdateEmployee(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	ana, err := svc.CreateEmployee(ctx, validRequest())
	require.NoError(t, err)
	other := validRequest()
	other.Email = "joao@temppreco.com"
	_, err = svc.CreateEmployee(ctx, other)
	require.NoError(t, err)

	dept := "RH"
	admin := true
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: ana.ID, Department: &dept, IsAdmin: &admin})
	require.NoError(t, err)
	assert.Equal(t, "RH", updated.Department)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "Ana Lima", updated.Name)

	taken := "JOAO@temppreco.com"
	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: ana.ID, Email: &taken})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "0190a1b2-0000-7000-8000-00000000ffff", Department: &dept})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListEmployees(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, email := range []string{"a@temppreco.com", "b@temppreco.com", "c@temppreco.com"} {
		req := validRequest()
		req.Email = email
		_, err := svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.TotalCount)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, "3-3 of 3", list.Showing)
	assert.Len(t, list.Employees, 1)

	_, err = svc.ListEmployees(ctx, employee.EmployeeFilter{Limit: 500})
	assert.Error(t, err)
}

package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/auth"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
	"github.com/tempreco/ponto-backend-go/internal/repository/memory"
)

const (
	joaoID  = "0190a1b2-0000-7000-8000-000000000001"
	mariaID = "0190a1b2-0000-7000-8000-000000000002"
	pedroID = "0190a1b2-0000-7000-8000-000000000003"
)

func newService(t *testing.T) (leave.LeaveService, *clock.Manual) {
	t.Helper()
	store := memory.NewStore()
	for _, emp := range []employee.Employee{
		{ID: joaoID, Name: "João Silva", Email: "joao@tempreco.com"},
		{ID: mariaID, Name: "Maria Santos", Email: "maria@tempreco.com"},
		{ID: pedroID, Name: "Pedro Costa", Email: "pedro@tempreco.com", IsAdmin: true},
	} {
		emp.Role, emp.Department, emp.Age, emp.Gender = "Vendedor", "Vendas", 30, employee.Male
		_, err := store.Employees().Create(context.Background(), emp)
		require.NoError(t, err)
	}

	clk := clock.NewManual(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	svc := NewLeaveService(store.LeaveRequests(), store.Employees(), store.TxManager(), clk, logger.Discard())
	return svc, clk
}

func strPtr(s string) *string { return &s }

func vacation() leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		RequestType: "vacation",
		StartDate:   strPtr("2024-07-01"),
		EndDate:     strPtr("2024-07-15"),
		Description: "Férias de julho",
	}
}

func TestCreateRequest_Vacation(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateRequest(context.Background(), joaoID, vacation())
	require.NoError(t, err)

	assert.True(t, validator.IsValidUUID(created.ID))
	assert.Equal(t, joaoID, created.EmployeeID)
	assert.Equal(t, joaoID, created.CreatedBy)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "2024-07-01", *created.StartDate)
	assert.Equal(t, "2024-07-15", *created.EndDate)
	require.NotNil(t, created.EmployeeName)
	assert.Equal(t, "João Silva", *created.EmployeeName)
}

func TestCreateRequest_JustificationDropsDates(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateRequest(context.Background(), joaoID, leave.CreateLeaveRequestRequest{
		RequestType: "Justification",
		StartDate:   strPtr("2024-07-01"),
		Description: "Consulta médica",
	})
	require.NoError(t, err)
	assert.Equal(t, "justification", created.RequestType)
	assert.Nil(t, created.StartDate)
	assert.Nil(t, created.EndDate)
}

func TestCreateRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*leave.CreateLeaveRequestRequest)
		field  string
	}{
		{"missing description", func(r *leave.CreateLeaveRequestRequest) { r.Description = " " }, "description"},
		{"unknown type", func(r *leave.CreateLeaveRequestRequest) { r.RequestType = "sick" }, "request_type"},
		{"vacation without start", func(r *leave.CreateLeaveRequestRequest) { r.StartDate = nil }, "start_date"},
		{"bad end date", func(r *leave.CreateLeaveRequestRequest) { r.EndDate = strPtr("15/07/2024") }, "end_date"},
		{"end before start", func(r *leave.CreateLeaveRequestRequest) { r.EndDate = strPtr("2024-06-30") }, "end_date"},
		{"bad employee id", func(r *leave.CreateLeaveRequestRequest) { r.EmployeeID = strPtr("abc") }, "employee_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)
			req := vacation()
			tt.mutate(&req)

			_, err := svc.CreateRequest(context.Background(), joaoID, req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestCreateRequest_OnBehalf(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	req := vacation()
	req.EmployeeID = strPtr(mariaID)

	_, err := svc.CreateRequest(ctx, joaoID, req)
	assert.ErrorIs(t, err, auth.ErrAdminPrivilegeRequired)

	created, err := svc.CreateRequest(ctx, pedroID, req)
	require.NoError(t, err)
	assert.Equal(t, mariaID, created.EmployeeID)
	assert.Equal(t, pedroID, created.CreatedBy)
	assert.Equal(t, "Maria Santos", *created.EmployeeName)

	req.EmployeeID = strPtr("0190a1b2-0000-7000-8000-0000000000ff")
	_, err = svc.CreateRequest(ctx, pedroID, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApproveAndReject(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	first, err := svc.CreateRequest(ctx, joaoID, vacation())
	require.NoError(t, err)
	second, err := svc.CreateRequest(ctx, mariaID, vacation())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, joaoID, first.ID)
	assert.ErrorIs(t, err, auth.ErrAdminPrivilegeRequired)

	clk.Set(time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC))
	approved, err := svc.Approve(ctx, pedroID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, pedroID, *approved.ReviewedBy)
	assert.Equal(t, "2024-06-04T10:00:00Z", *approved.ReviewedAt)
	assert.Nil(t, approved.RejectionReason)

	_, err = svc.Reject(ctx, pedroID, leave.RejectLeaveRequestRequest{ID: first.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	rejected, err := svc.Reject(ctx, pedroID, leave.RejectLeaveRequestRequest{ID: second.ID, Reason: strPtr(" Período de inventário ")})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "Período de inventário", *rejected.RejectionReason)

	_, err = svc.Approve(ctx, pedroID, "0190a1b2-0000-7000-8000-0000000000ff")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestUpdateRequest(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, joaoID, vacation())
	require.NoError(t, err)

	_, err = svc.UpdateRequest(ctx, mariaID, leave.UpdateLeaveRequestRequest{ID: created.ID, Description: strPtr("outra")})
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)

	_, err = svc.UpdateRequest(ctx, joaoID, leave.UpdateLeaveRequestRequest{ID: created.ID, EndDate: strPtr("2024-06-01")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")

	updated, err := svc.UpdateRequest(ctx, joaoID, leave.UpdateLeaveRequestRequest{
		ID:          created.ID,
		RequestType: strPtr("justification"),
		Description: strPtr("Atestado médico"),
	})
	require.NoError(t, err)
	assert.Equal(t, "justification", updated.RequestType)
	assert.Equal(t, "Atestado médico", updated.Description)
	assert.Nil(t, updated.StartDate)

	// back to vacation needs a date range again
	_, err = svc.UpdateRequest(ctx, joaoID, leave.UpdateLeaveRequestRequest{ID: created.ID, RequestType: strPtr("vacation")})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_date")

	_, err = svc.Approve(ctx, pedroID, created.ID)
	require.NoError(t, err)
	_, err = svc.UpdateRequest(ctx, joaoID, leave.UpdateLeaveRequestRequest{ID: created.ID, Description: strPtr("tarde demais")})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestDeleteRequest(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	own, err := svc.CreateRequest(ctx, joaoID, vacation())
	require.NoError(t, err)
	other, err := svc.CreateRequest(ctx, mariaID, vacation())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRequest(ctx, joaoID, other.ID), leave.ErrNotRequestOwner)

	_, err = svc.Approve(ctx, pedroID, own.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteRequest(ctx, joaoID, own.ID), leave.ErrLeaveRequestAlreadyProcessed)

	// admins may remove processed requests of anyone
	require.NoError(t, svc.DeleteRequest(ctx, pedroID, own.ID))
	require.NoError(t, svc.DeleteRequest(ctx, mariaID, other.ID))

	list, err := svc.ListRequests(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", list.Showing)
}

func TestListRequests(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRequest(ctx, joaoID, vacation())
		require.NoError(t, err)
	}
	_, err := svc.CreateRequest(ctx, mariaID, leave.CreateLeaveRequestRequest{RequestType: "justification", Description: "Atraso no ônibus"})
	require.NoError(t, err)

	mine, err := svc.MyRequests(ctx, joaoID, leave.LeaveRequestFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, mine.TotalCount)
	assert.Equal(t, 2, mine.TotalPages)
	assert.Equal(t, "1-2 of 3", mine.Showing)

	// the caller cannot widen their own listing
	mine, err = svc.MyRequests(ctx, mariaID, leave.LeaveRequestFilter{EmployeeID: strPtr(joaoID)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.TotalCount)

	all, err := svc.ListRequests(ctx, leave.LeaveRequestFilter{RequestType: strPtr("justification")})
	require.NoError(t, err)
	require.Len(t, all.Requests, 1)
	assert.Equal(t, mariaID, all.Requests[0].EmployeeID)

	_, err = svc.ListRequests(ctx, leave.LeaveRequestFilter{Status: strPtr("cancelled")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "status")
}

package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
)

// Fixed IDs keep demo tokens valid across restarts.
const (
	JoaoSilvaID   = "0190a1b2-c3d4-7e5f-8a6b-000000000001"
	MariaSantosID = "0190a1b2-c3d4-7e5f-8a6b-000000000002"
	PedroCostaID  = "0190a1b2-c3d4-7e5f-8a6b-000000000003"
	AnaLimaID     = "0190a1b2-c3d4-7e5f-8a6b-000000000004"
)

// DemoEmployees is the staff of the demo store. Pedro Costa manages it.
func DemoEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: JoaoSilvaID, Name: "João Silva", Email: "joao.silva@tempreco.com.br", Role: "Vendedor", Department: "Vendas", Age: 28, Gender: employee.Male},
		{ID: MariaSantosID, Name: "Maria Santos", Email: "maria.santos@tempreco.com.br", Role: "Caixa", Department: "Frente de Loja", Age: 34, Gender: employee.Female},
		{ID: PedroCostaID, Name: "Pedro Costa", Email: "pedro.costa@tempreco.com.br", Role: "Gerente", Department: "Administração", Age: 41, Gender: employee.Male, IsAdmin: true},
		{ID: AnaLimaID, Name: "Ana Lima", Email: "ana.lima@tempreco.com.br", Role: "Estoquista", Department: "Estoque", Age: 22, Gender: employee.Female},
	}
}

// SeedDemo adds the demo employees that are not in the directory yet.
func SeedDemo(ctx context.Context, repo employee.EmployeeRepository, logger *slog.Logger) error {
	for _, emp := range DemoEmployees() {
		exists, err := repo.ExistsByEmail(ctx, emp.Email, nil)
		if err != nil {
			return fmt.Errorf("failed to check demo employee %s: %w", emp.Name, err)
		}
		if exists {
			continue
		}

		if _, err := repo.Create(ctx, emp); err != nil {
			return fmt.Errorf("failed to seed demo employee %s: %w", emp.Name, err)
		}
		logger.Info("demo employee seeded", "employee_id", emp.ID, "name", emp.Name, "admin", emp.IsAdmin)
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var employees []employee.Employee
	for _, id := range ids {
		if emp, ok := r.store.employees[id]; ok {
			employees = append(employees, emp)
		}
	}
	sortByName(employees)
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, emp := range r.store.employees {
		if strings.EqualFold(emp.Email, newEmployee.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	now := time.Now()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.store.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, updated employee.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.employees[updated.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.store.employees[updated.ID] = updated
	return nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, emp := range r.store.employees {
		if excludeID != nil && emp.ID == *excludeID {
			continue
		}
		if strings.EqualFold(emp.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []employee.Employee
	for _, emp := range r.store.employees {
		if filter.Search != nil && *filter.Search != "" {
			search := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(emp.Name), search) && !strings.Contains(strings.ToLower(emp.Email), search) {
				continue
			}
		}
		if filter.Department != nil && *filter.Department != "" && emp.Department != *filter.Department {
			continue
		}
		matched = append(matched, emp)
	}
	sortByName(matched)

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepository) ListAll(ctx context.Context) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.store.employees))
	for _, emp := range r.store.employees {
		employees = append(employees, emp)
	}
	sortByName(employees)
	return employees, nil
}

func sortByName(employees []employee.Employee) {
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name == employees[j].Name {
			return employees[i].ID < employees[j].ID
		}
		return employees[i].Name < employees[j].Name
	})
}

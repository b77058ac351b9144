package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/stretchr/testify/require"
)

func newEmployeeService(t *testing.T) (EmployeeService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewEmployeeService(env.employeeRepo)
	return svc, env
}

func TestCreateEmployee(t *testing.T) {
	svc, _ := newEmployeeService(t)

	employee := &model.Employee{
		Name:  "Line Cook",
		Email: "cook@example.com",
		Role:  model.RoleEmployee,
	}
	require.NoError(t, svc.Create(employee, "kitchen1", staffActor()))
	require.True(t, employee.IsActive)
	require.True(t, employee.CheckPassword("kitchen1"))

	dup := &model.Employee{Name: "Another", Email: "cook@example.com", Role: model.RoleEmployee}
	require.ErrorIs(t, svc.Create(dup, "whatever1", staffActor()), ErrEmailExists)
}

func TestCreateEmployeeShortPassword(t *testing.T) {
	svc, _ := newEmployeeService(t)

	employee := &model.Employee{Name: "X", Email: "short@example.com", Role: model.RoleEmployee}
	require.Error(t, svc.Create(employee, "abc", staffActor()))
}

func TestDeactivateEmployee(t *testing.T) {
	svc, _ := newEmployeeService(t)

	employee := &model.Employee{Name: "Temp", Email: "temp@example.com", Role: model.RoleEmployee}
	require.NoError(t, svc.Create(employee, "temppass", staffActor()))

	require.NoError(t, svc.Deactivate(employee.ID, staffActor()))

	loaded, err := svc.GetByID(employee.ID)
	require.NoError(t, err)
	require.False(t, loaded.IsActive)
}

func TestUpdateEmployeeRole(t *testing.T) {
	svc, _ := newEmployeeService(t)

	employee := &model.Employee{Name: "Riser", Email: "riser@example.com", Role: model.RoleEmployee}
	require.NoError(t, svc.Create(employee, "risepass", staffActor()))

	updated, err := svc.Update(employee.ID, &model.Employee{
		Name:     "Riser",
		Email:    employee.Email,
		Role:     model.RoleManager,
		IsActive: true,
	}, staffActor())
	require.NoError(t, err)
	require.Equal(t, model.RoleManager, updated.Role)
}

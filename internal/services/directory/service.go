package directory

import (
	"context"
	"log/slog"

	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/storage"
)

// Service exposes employee operations behind the authorization gate.
// Both the REST and GraphQL surfaces call through it.
type Service struct {
	storage storage.DirectoryStore
	logger  *slog.Logger
}

// New creates a new directory Service
func New(store storage.DirectoryStore, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// List returns all employees matching filter in insertion order
func (s *Service) List(ctx context.Context, filter model.EmployeeFilter) ([]*model.Employee, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	return s.storage.ListEmployees(ctx, filter)
}

// Get returns a single employee
func (s *Service) Get(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	return s.storage.GetEmployee(ctx, id)
}

// ListPaginated returns one page of the filtered listing along with the filtered total.
// Out-of-range pages are empty rather than errors.
func (s *Service) ListPaginated(ctx context.Context, page, limit int, filter model.EmployeeFilter) (model.EmployeePage, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return model.EmployeePage{}, err
	}
	return s.storage.ListEmployeesPaginated(ctx, page, limit, filter)
}

// Create adds an employee. Admin only.
func (s *Service) Create(ctx context.Context, input model.NewEmployee) (*model.Employee, error) {
	claims, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateNew(input); err != nil {
		return nil, err
	}

	employee, err := s.storage.CreateEmployee(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", employee.ID,
		"code", employee.Code,
		"by", claims.Username,
	)
	return employee, nil
}

// Update merges the supplied fields into an employee. Admin only.
func (s *Service) Update(ctx context.Context, id model.EmployeeID, input model.EmployeeUpdate) (*model.Employee, error) {
	claims, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	employee, err := s.storage.UpdateEmployee(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", employee.ID, "by", claims.Username)
	return employee, nil
}

// Delete removes an employee. Admin only. Unknown ids are NotFound.
func (s *Service) Delete(ctx context.Context, id model.EmployeeID) error {
	claims, err := auth.RequireAdmin(ctx)
	if err != nil {
		return err
	}

	removed, err := s.storage.DeleteEmployee(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return model.ErrEmployeeNotFound
	}

	s.logger.Info("employee deleted", "employee_id", id, "by", claims.Username)
	return nil
}

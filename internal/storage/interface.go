package storage

import (
	"context"

	"github.com/mcoot/staffdir/internal/model"
)

// DirectoryStore owns the account and employee collections.
//
// Lookups that find nothing return model.ErrAccountNotFound or
// model.ErrEmployeeNotFound. Uniqueness of account username/email and
// employee code/email is enforced by the store itself, atomically with the
// write, and reported as a model conflict error with nothing written.
type DirectoryStore interface {
	// Account operations
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateAccount(ctx context.Context, candidate model.NewAccount) (*model.Account, error)

	// Employee operations
	ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]*model.Employee, error)
	GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error)
	GetEmployeeByCode(ctx context.Context, code string) (*model.Employee, error)
	CreateEmployee(ctx context.Context, candidate model.NewEmployee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id model.EmployeeID, update model.EmployeeUpdate) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id model.EmployeeID) (bool, error)
	ListEmployeesPaginated(ctx context.Context, page, pageSize int, filter model.EmployeeFilter) (model.EmployeePage, error)
}

package memory

import (
	"context"
	"sync"

	"github.com/mcoot/staffdir/internal/dependencies/clock"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
)

// Storage is an in-memory implementation of the directory store
type Storage struct {
	clock clock.Clock

	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	emailIndex    map[string]model.AccountID
	nextAccountID model.AccountID

	employees          map[model.EmployeeID]*model.Employee
	employeeOrder      []model.EmployeeID // insertion order
	codeIndex          map[string]model.EmployeeID
	employeeEmailIndex map[string]model.EmployeeID
	nextEmployeeID     model.EmployeeID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:              clk,
		accounts:           make(map[model.AccountID]*model.Account),
		usernameIndex:      make(map[string]model.AccountID),
		emailIndex:         make(map[string]model.AccountID),
		nextAccountID:      1,
		employees:          make(map[model.EmployeeID]*model.Employee),
		codeIndex:          make(map[string]model.EmployeeID),
		employeeEmailIndex: make(map[string]model.EmployeeID),
		nextEmployeeID:     1,
	}
}

// Ensure Storage implements the interface
var _ storage.DirectoryStore = (*Storage)(nil)

// Account operations

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	c := *account
	return &c, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	id, ok := s.usernameIndex[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return s.GetAccount(ctx, id)
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	id, ok := s.emailIndex[email]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return s.GetAccount(ctx, id)
}

func (s *Storage) CreateAccount(ctx context.Context, candidate model.NewAccount) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernameIndex[candidate.Username]; taken {
		return nil, model.ErrUsernameTaken
	}
	if _, taken := s.emailIndex[candidate.Email]; taken {
		return nil, model.ErrEmailTaken
	}

	role := candidate.Role
	if role == "" {
		role = model.RoleEmployee
	}

	account := &model.Account{
		ID:           s.nextAccountID,
		Username:     candidate.Username,
		Email:        candidate.Email,
		PasswordHash: candidate.PasswordHash,
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}
	s.nextAccountID++

	s.accounts[account.ID] = account
	s.usernameIndex[account.Username] = account.ID
	s.emailIndex[account.Email] = account.ID

	c := *account
	return &c, nil
}

// Employee operations

func (s *Storage) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(filter), nil
}

func (s *Storage) GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return employee.Clone(), nil
}

func (s *Storage) GetEmployeeByCode(ctx context.Context, code string) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return s.employees[id].Clone(), nil
}

func (s *Storage) CreateEmployee(ctx context.Context, candidate model.NewEmployee) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codeIndex[candidate.Code]; taken {
		return nil, model.ErrEmployeeCodeTaken
	}
	if _, taken := s.employeeEmailIndex[candidate.Email]; taken {
		return nil, model.ErrEmployeeEmailTaken
	}

	employee := candidate.Build(s.clock.Now())
	employee.ID = s.nextEmployeeID
	s.nextEmployeeID++

	s.employees[employee.ID] = employee
	s.employeeOrder = append(s.employeeOrder, employee.ID)
	s.codeIndex[employee.Code] = employee.ID
	s.employeeEmailIndex[employee.Email] = employee.ID

	return employee.Clone(), nil
}

func (s *Storage) UpdateEmployee(ctx context.Context, id model.EmployeeID, update model.EmployeeUpdate) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.employees[id]
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}

	if update.Code != nil {
		if owner, taken := s.codeIndex[*update.Code]; taken && owner != id {
			return nil, model.ErrEmployeeCodeTaken
		}
	}
	if update.Email != nil {
		if owner, taken := s.employeeEmailIndex[*update.Email]; taken && owner != id {
			return nil, model.ErrEmployeeEmailTaken
		}
	}

	updated := update.Apply(existing, s.clock.Now())

	delete(s.codeIndex, existing.Code)
	delete(s.employeeEmailIndex, existing.Email)
	s.codeIndex[updated.Code] = id
	s.employeeEmailIndex[updated.Email] = id
	s.employees[id] = updated

	return updated.Clone(), nil
}

func (s *Storage) DeleteEmployee(ctx context.Context, id model.EmployeeID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok {
		return false, nil
	}

	delete(s.employees, id)
	delete(s.codeIndex, employee.Code)
	delete(s.employeeEmailIndex, employee.Email)
	for i, eid := range s.employeeOrder {
		if eid == id {
			s.employeeOrder = append(s.employeeOrder[:i], s.employeeOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Storage) ListEmployeesPaginated(ctx context.Context, page, pageSize int, filter model.EmployeeFilter) (model.EmployeePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Paginate(s.listLocked(filter), page, pageSize), nil
}

// listLocked returns copies of the matching employees in insertion order.
// Caller must hold s.mu.
func (s *Storage) listLocked(filter model.EmployeeFilter) []*model.Employee {
	out := make([]*model.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		employee := s.employees[id]
		if storage.MatchesFilter(employee, filter) {
			out = append(out, employee.Clone())
		}
	}
	return out
}

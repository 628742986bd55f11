// Package storagetest holds the behavioral suite every DirectoryStore
// implementation must pass.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/staffdir/internal/dependencies/mocks"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
)

// StartTime is the mock clock's initial time
var StartTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Suite runs the shared DirectoryStore tests. Embedders set NewStore.
type Suite struct {
	suite.Suite

	// NewStore builds a fresh, empty store driven by the given clock
	NewStore func(clk *mocks.MockClock) storage.DirectoryStore

	Clock *mocks.MockClock
	Store storage.DirectoryStore
	Ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.Clock = mocks.NewMockClock(StartTime)
	s.Store = s.NewStore(s.Clock)
	s.Ctx = context.Background()
}

func ptr[T any](v T) *T { return &v }

// SampleEmployee returns a complete candidate with the given code
func SampleEmployee(code, name, department string) model.NewEmployee {
	return model.NewEmployee{
		Code:       code,
		Name:       name,
		Email:      code + "@company.com",
		Department: department,
		Position:   "Engineer",
	}
}

func (s *Suite) seedSix() []*model.Employee {
	candidates := []model.NewEmployee{
		SampleEmployee("EMP001", "Sarah Johnson", "Engineering"),
		SampleEmployee("EMP002", "Michael Chen", "Product"),
		SampleEmployee("EMP003", "Emma Rodriguez", "Marketing"),
		SampleEmployee("EMP004", "David Kim", "Engineering"),
		SampleEmployee("EMP005", "Lisa Thompson", "Human Resources"),
		SampleEmployee("EMP006", "James Wilson", "Sales"),
	}
	candidates[3].Status = model.StatusOnLeave

	out := make([]*model.Employee, 0, len(candidates))
	for _, c := range candidates {
		e, err := s.Store.CreateEmployee(s.Ctx, c)
		s.Require().NoError(err)
		out = append(out, e)
	}
	return out
}

// Account tests

func (s *Suite) TestCreateAndGetAccount() {
	account, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{
		Username:     "alice",
		Email:        "alice@company.com",
		PasswordHash: "hash",
	})
	s.Require().NoError(err)
	s.Equal(model.AccountID(1), account.ID)
	s.Equal(model.RoleEmployee, account.Role)
	s.Equal(StartTime, account.CreatedAt)

	byID, err := s.Store.GetAccount(s.Ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)
	s.Equal("hash", byID.PasswordHash)

	byName, err := s.Store.GetAccountByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal(account.ID, byName.ID)

	byEmail, err := s.Store.GetAccountByEmail(s.Ctx, "alice@company.com")
	s.Require().NoError(err)
	s.Equal(account.ID, byEmail.ID)
}

func (s *Suite) TestCreateAccountKeepsRole() {
	account, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{
		Username: "root", Email: "root@company.com", PasswordHash: "h", Role: model.RoleAdmin,
	})
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, account.Role)
}

func (s *Suite) TestAccountIDsIncrease() {
	a, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "a", Email: "a@x.com", PasswordHash: "h"})
	s.Require().NoError(err)
	b, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "b", Email: "b@x.com", PasswordHash: "h"})
	s.Require().NoError(err)
	s.Equal(a.ID+1, b.ID)
}

func (s *Suite) TestGetAccountNotFound() {
	_, err := s.Store.GetAccount(s.Ctx, 42)
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.Store.GetAccountByUsername(s.Ctx, "nobody")
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.Store.GetAccountByEmail(s.Ctx, "nobody@x.com")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *Suite) TestCreateAccountDuplicateUsername() {
	_, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "alice", Email: "a1@x.com", PasswordHash: "h"})
	s.Require().NoError(err)

	_, err = s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "alice", Email: "a2@x.com", PasswordHash: "h"})
	s.ErrorIs(err, model.ErrUsernameTaken)
	s.ErrorIs(err, model.ErrConflict)

	_, err = s.Store.GetAccountByEmail(s.Ctx, "a2@x.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *Suite) TestCreateAccountDuplicateEmail() {
	_, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	s.Require().NoError(err)

	_, err = s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "bob", Email: "a@x.com", PasswordHash: "h"})
	s.ErrorIs(err, model.ErrEmailTaken)

	_, err = s.Store.GetAccountByUsername(s.Ctx, "bob")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Employee tests

func (s *Suite) TestCreateEmployeeAppliesDefaults() {
	e, err := s.Store.CreateEmployee(s.Ctx, SampleEmployee("EMP100", "Ada Lovelace", "Engineering"))
	s.Require().NoError(err)

	s.Equal(model.EmployeeID(1), e.ID)
	s.Equal(model.StatusActive, e.Status)
	s.Nil(e.Phone)
	s.Nil(e.Salary)
	s.Nil(e.StartDate)
	s.Nil(e.Avatar)
	s.Nil(e.Address)
	s.Nil(e.DateOfBirth)
	s.Nil(e.EmergencyContact)
	s.NotNil(e.Skills)
	s.Empty(e.Skills)
	s.NotNil(e.Projects)
	s.Empty(e.Projects)
	s.Equal(e.CreatedAt, e.UpdatedAt)
}

func (s *Suite) TestCreateEmployeeKeepsOptionalFields() {
	candidate := SampleEmployee("EMP100", "Ada Lovelace", "Engineering")
	candidate.Phone = ptr("+1 555")
	candidate.Salary = ptr("85000.50")
	candidate.StartDate = ptr(time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC))
	candidate.Skills = []string{"Go", "GraphQL"}
	candidate.Projects = []string{"Directory"}

	created, err := s.Store.CreateEmployee(s.Ctx, candidate)
	s.Require().NoError(err)

	got, err := s.Store.GetEmployee(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("+1 555", *got.Phone)
	s.Equal("85000.50", *got.Salary)
	s.True(candidate.StartDate.Equal(*got.StartDate))
	s.Equal([]string{"Go", "GraphQL"}, got.Skills)
	s.Equal([]string{"Directory"}, got.Projects)
}

func (s *Suite) TestGetEmployeeByCode() {
	created, err := s.Store.CreateEmployee(s.Ctx, SampleEmployee("EMP100", "Ada Lovelace", "Engineering"))
	s.Require().NoError(err)

	got, err := s.Store.GetEmployeeByCode(s.Ctx, "EMP100")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)

	_, err = s.Store.GetEmployeeByCode(s.Ctx, "EMP999")
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *Suite) TestGetEmployeeNotFound() {
	_, err := s.Store.GetEmployee(s.Ctx, 99)
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *Suite) TestCreateEmployeeDuplicateCodeLeavesStoreUnchanged() {
	s.seedSix()

	dup := SampleEmployee("EMP001", "Someone Else", "Sales")
	dup.Email = "someone.else@company.com"
	_, err := s.Store.CreateEmployee(s.Ctx, dup)
	s.ErrorIs(err, model.ErrEmployeeCodeTaken)

	all, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Len(all, 6)

	original, err := s.Store.GetEmployeeByCode(s.Ctx, "EMP001")
	s.Require().NoError(err)
	s.Equal("Sarah Johnson", original.Name)
}

func (s *Suite) TestCreateEmployeeDuplicateEmail() {
	s.seedSix()

	dup := SampleEmployee("EMP100", "Someone Else", "Sales")
	dup.Email = "EMP001@company.com"
	_, err := s.Store.CreateEmployee(s.Ctx, dup)
	s.ErrorIs(err, model.ErrConflict)

	_, err = s.Store.GetEmployeeByCode(s.Ctx, "EMP100")
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *Suite) TestListEmployeesInsertionOrder() {
	seeded := s.seedSix()

	all, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 6)
	for i := range seeded {
		s.Equal(seeded[i].ID, all[i].ID)
	}
}

func (s *Suite) TestListEmployeesDepartmentIsCaseInsensitive() {
	s.seedSix()

	got, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Department: "engineering"})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("EMP001", got[0].Code)
	s.Equal("EMP004", got[1].Code)
}

func (s *Suite) TestListEmployeesDepartmentIsExact() {
	s.seedSix()

	got, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Department: "Engineer"})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestListEmployeesStatus() {
	s.seedSix()

	got, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Status: "on_leave"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("David Kim", got[0].Name)
}

func (s *Suite) TestListEmployeesSearchMatchesAnyField() {
	s.seedSix()

	byName, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Search: "CHEN"})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("EMP002", byName[0].Code)

	byCode, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Search: "emp00"})
	s.Require().NoError(err)
	s.Len(byCode, 6)

	byDepartment, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Search: "resources"})
	s.Require().NoError(err)
	s.Require().Len(byDepartment, 1)
	s.Equal("Lisa Thompson", byDepartment[0].Name)
}

func (s *Suite) TestListEmployeesFiltersCompose() {
	s.seedSix()

	got, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Department: "Engineering", Status: "active"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("Sarah Johnson", got[0].Name)

	got, err = s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{Department: "Engineering", Search: "kim"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("EMP004", got[0].Code)
}

func (s *Suite) TestPaginateSecondPage() {
	seeded := s.seedSix()

	page, err := s.Store.ListEmployeesPaginated(s.Ctx, 2, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(6, page.Total)
	s.Require().Len(page.Employees, 2)
	s.Equal(seeded[2].ID, page.Employees[0].ID)
	s.Equal(seeded[3].ID, page.Employees[1].ID)
}

func (s *Suite) TestPaginatePartialLastPage() {
	s.seedSix()

	page, err := s.Store.ListEmployeesPaginated(s.Ctx, 2, 4, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(6, page.Total)
	s.Len(page.Employees, 2)
}

func (s *Suite) TestPaginatePastEndIsEmpty() {
	s.seedSix()

	page, err := s.Store.ListEmployeesPaginated(s.Ctx, 10, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(6, page.Total)
	s.NotNil(page.Employees)
	s.Empty(page.Employees)
}

func (s *Suite) TestPaginatePageZeroIsEmpty() {
	s.seedSix()

	page, err := s.Store.ListEmployeesPaginated(s.Ctx, 0, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(6, page.Total)
	s.Empty(page.Employees)
}

func (s *Suite) TestPaginateTotalIsFiltered() {
	s.seedSix()

	page, err := s.Store.ListEmployeesPaginated(s.Ctx, 1, 1, model.EmployeeFilter{Department: "ENGINEERING"})
	s.Require().NoError(err)
	s.Equal(2, page.Total)
	s.Require().Len(page.Employees, 1)
	s.Equal("EMP001", page.Employees[0].Code)
}

func (s *Suite) TestUpdateEmployeeChangesOnlySuppliedFields() {
	seeded := s.seedSix()
	before := seeded[0]

	s.Clock.Advance(time.Hour)
	status := model.StatusOnLeave
	updated, err := s.Store.UpdateEmployee(s.Ctx, before.ID, model.EmployeeUpdate{Status: &status})
	s.Require().NoError(err)

	s.Equal(model.StatusOnLeave, updated.Status)
	s.True(updated.UpdatedAt.After(before.UpdatedAt))

	// Everything else is untouched
	expected := before.Clone()
	expected.Status = updated.Status
	expected.UpdatedAt = updated.UpdatedAt
	s.Equal(expected.Code, updated.Code)
	s.Equal(expected.Name, updated.Name)
	s.Equal(expected.Email, updated.Email)
	s.Equal(expected.Department, updated.Department)
	s.Equal(expected.Position, updated.Position)
	s.True(expected.CreatedAt.Equal(updated.CreatedAt))
	s.Equal(expected.Skills, updated.Skills)
	s.Equal(expected.Projects, updated.Projects)

	stored, err := s.Store.GetEmployee(s.Ctx, before.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusOnLeave, stored.Status)
}

func (s *Suite) TestUpdateEmployeeNotFound() {
	_, err := s.Store.UpdateEmployee(s.Ctx, 99, model.EmployeeUpdate{Name: ptr("x")})
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

func (s *Suite) TestUpdateEmployeeCodeConflict() {
	seeded := s.seedSix()

	_, err := s.Store.UpdateEmployee(s.Ctx, seeded[0].ID, model.EmployeeUpdate{Code: ptr("EMP002")})
	s.ErrorIs(err, model.ErrEmployeeCodeTaken)

	stored, err := s.Store.GetEmployee(s.Ctx, seeded[0].ID)
	s.Require().NoError(err)
	s.Equal("EMP001", stored.Code)
}

func (s *Suite) TestUpdateEmployeeCodeMovesIndex() {
	seeded := s.seedSix()

	_, err := s.Store.UpdateEmployee(s.Ctx, seeded[0].ID, model.EmployeeUpdate{Code: ptr("EMP100")})
	s.Require().NoError(err)

	_, err = s.Store.GetEmployeeByCode(s.Ctx, "EMP001")
	s.ErrorIs(err, model.ErrEmployeeNotFound)

	got, err := s.Store.GetEmployeeByCode(s.Ctx, "EMP100")
	s.Require().NoError(err)
	s.Equal(seeded[0].ID, got.ID)

	// The old code is free again
	hire := SampleEmployee("EMP001", "New Hire", "Sales")
	hire.Email = "new.hire@company.com"
	_, err = s.Store.CreateEmployee(s.Ctx, hire)
	s.Require().NoError(err)
}

func (s *Suite) TestUpdateEmployeeEmptyOptionalStoredAsNil() {
	in := SampleEmployee("EMP001", "Sarah Johnson", "Engineering")
	in.Phone = ptr("+1 555")
	created, err := s.Store.CreateEmployee(s.Ctx, in)
	s.Require().NoError(err)
	s.Require().NotNil(created.Phone)

	updated, err := s.Store.UpdateEmployee(s.Ctx, created.ID, model.EmployeeUpdate{Phone: ptr("")})
	s.Require().NoError(err)
	s.Nil(updated.Phone)

	stored, err := s.Store.GetEmployee(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(stored.Phone)
}

func (s *Suite) TestUpdateEmployeeKeepingOwnCode() {
	seeded := s.seedSix()

	updated, err := s.Store.UpdateEmployee(s.Ctx, seeded[0].ID, model.EmployeeUpdate{
		Code: ptr("EMP001"),
		Name: ptr("Sarah J."),
	})
	s.Require().NoError(err)
	s.Equal("Sarah J.", updated.Name)
}

func (s *Suite) TestDeleteEmployee() {
	seeded := s.seedSix()

	deleted, err := s.Store.DeleteEmployee(s.Ctx, seeded[1].ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.Store.DeleteEmployee(s.Ctx, seeded[1].ID)
	s.Require().NoError(err)
	s.False(deleted)

	_, err = s.Store.GetEmployee(s.Ctx, seeded[1].ID)
	s.ErrorIs(err, model.ErrEmployeeNotFound)

	all, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Len(all, 5)
	s.Equal(seeded[2].ID, all[1].ID)
}

func (s *Suite) TestDeletedIDsAreNotReused() {
	seeded := s.seedSix()
	last := seeded[len(seeded)-1]

	_, err := s.Store.DeleteEmployee(s.Ctx, last.ID)
	s.Require().NoError(err)

	created, err := s.Store.CreateEmployee(s.Ctx, SampleEmployee("EMP100", "New Hire", "Sales"))
	s.Require().NoError(err)
	s.Equal(last.ID+1, created.ID)
}

func (s *Suite) TestUpdateThenDelete() {
	seeded := s.seedSix()
	id := seeded[4].ID

	status := model.StatusOnLeave
	_, err := s.Store.UpdateEmployee(s.Ctx, id, model.EmployeeUpdate{Status: &status})
	s.Require().NoError(err)

	deleted, err := s.Store.DeleteEmployee(s.Ctx, id)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.Store.DeleteEmployee(s.Ctx, id)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *Suite) TestReturnedRecordsAreCopies() {
	created, err := s.Store.CreateEmployee(s.Ctx, SampleEmployee("EMP100", "Ada Lovelace", "Engineering"))
	s.Require().NoError(err)

	created.Name = "Mutated"
	created.Skills = append(created.Skills, "Injected")

	got, err := s.Store.GetEmployee(s.Ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", got.Name)
	s.Empty(got.Skills)
}

package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/staffdir/internal/dependencies/mocks"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/storage/memory"
	"github.com/mcoot/staffdir/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service

	anonymous context.Context
	employee  context.Context
	admin     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New(s.clock)
	s.service = New(s.storage, testutil.NopLogger())

	s.anonymous = context.Background()
	s.employee = auth.WithClaims(s.anonymous, &auth.Claims{UserID: 2, Username: "employee", Role: model.RoleEmployee})
	s.admin = auth.WithClaims(s.anonymous, &auth.Claims{UserID: 1, Username: "admin", Role: model.RoleAdmin})
}

func ptr[T any](v T) *T { return &v }

func candidate(code, name, department string) model.NewEmployee {
	return model.NewEmployee{
		Code:       code,
		Name:       name,
		Email:      code + "@company.com",
		Department: department,
		Position:   "Engineer",
	}
}

func (s *ServiceSuite) createSeed() {
	for _, c := range []model.NewEmployee{
		candidate("EMP001", "Sarah Johnson", "Engineering"),
		candidate("EMP002", "Michael Chen", "Product"),
		candidate("EMP003", "Emma Rodriguez", "Marketing"),
	} {
		_, err := s.service.Create(s.admin, c)
		s.Require().NoError(err)
	}
}

// Gate tests

func (s *ServiceSuite) TestReadsRequireAuthentication() {
	_, err := s.service.List(s.anonymous, model.EmployeeFilter{})
	s.ErrorIs(err, model.ErrAuthenticationRequired)

	_, err = s.service.Get(s.anonymous, 1)
	s.ErrorIs(err, model.ErrAuthenticationRequired)

	_, err = s.service.ListPaginated(s.anonymous, 1, 10, model.EmployeeFilter{})
	s.ErrorIs(err, model.ErrAuthenticationRequired)
}

func (s *ServiceSuite) TestMutationsRequireAdmin() {
	_, err := s.service.Create(s.anonymous, candidate("EMP001", "Sarah", "Engineering"))
	s.ErrorIs(err, model.ErrAuthenticationRequired)

	_, err = s.service.Create(s.employee, candidate("EMP001", "Sarah", "Engineering"))
	s.ErrorIs(err, model.ErrAdminRequired)

	_, err = s.service.Update(s.employee, 1, model.EmployeeUpdate{Name: ptr("X")})
	s.ErrorIs(err, model.ErrAdminRequired)

	err = s.service.Delete(s.employee, 1)
	s.ErrorIs(err, model.ErrAdminRequired)

	err = s.service.Delete(s.anonymous, 1)
	s.ErrorIs(err, model.ErrAuthenticationRequired)

	all, err := s.storage.ListEmployees(s.anonymous, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *ServiceSuite) TestEmployeeCanRead() {
	s.createSeed()

	all, err := s.service.List(s.employee, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	one, err := s.service.Get(s.employee, all[1].ID)
	s.Require().NoError(err)
	s.Equal("EMP002", one.Code)
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	in := candidate("EMP010", "Ada Lovelace", "Engineering")
	in.Salary = ptr("85000.50")
	in.Skills = []string{"Go"}

	created, err := s.service.Create(s.admin, in)
	s.Require().NoError(err)
	s.Equal(model.StatusActive, created.Status)
	s.Equal("85000.50", *created.Salary)
	s.Equal([]string{"Go"}, created.Skills)
}

func (s *ServiceSuite) TestCreateValidatesInput() {
	cases := map[string]func(*model.NewEmployee){
		"missing code":     func(n *model.NewEmployee) { n.Code = "" },
		"blank name":       func(n *model.NewEmployee) { n.Name = "   " },
		"bad email":        func(n *model.NewEmployee) { n.Email = "not-an-email" },
		"display email":    func(n *model.NewEmployee) { n.Email = "Sarah <sarah@company.com>" },
		"missing position": func(n *model.NewEmployee) { n.Position = "" },
		"bad status":       func(n *model.NewEmployee) { n.Status = "retired" },
		"bad salary":       func(n *model.NewEmployee) { n.Salary = ptr("lots") },
		"negative salary":  func(n *model.NewEmployee) { n.Salary = ptr("-1") },
	}
	for name, mutate := range cases {
		in := candidate("EMP001", "Sarah", "Engineering")
		mutate(&in)
		_, err := s.service.Create(s.admin, in)
		s.ErrorIs(err, model.ErrValidation, name)
	}
}

func (s *ServiceSuite) TestCreateDuplicateCodeConflicts() {
	s.createSeed()

	in := candidate("EMP001", "Someone Else", "Sales")
	in.Email = "someone@company.com"
	_, err := s.service.Create(s.admin, in)
	s.ErrorIs(err, model.ErrEmployeeCodeTaken)
}

// Update tests

func (s *ServiceSuite) TestUpdateChangesSuppliedFields() {
	s.createSeed()
	s.clock.Advance(time.Hour)

	updated, err := s.service.Update(s.admin, 1, model.EmployeeUpdate{Status: ptr(model.StatusOnLeave)})
	s.Require().NoError(err)
	s.Equal(model.StatusOnLeave, updated.Status)
	s.Equal("Sarah Johnson", updated.Name)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (s *ServiceSuite) TestUpdateValidatesInput() {
	s.createSeed()

	_, err := s.service.Update(s.admin, 1, model.EmployeeUpdate{Name: ptr("")})
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.service.Update(s.admin, 1, model.EmployeeUpdate{Email: ptr("nope")})
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.service.Update(s.admin, 1, model.EmployeeUpdate{Status: ptr(model.EmployeeStatus("gone"))})
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.service.Update(s.admin, 1, model.EmployeeUpdate{Salary: ptr("-5")})
	s.ErrorIs(err, model.ErrValidation)
}

func (s *ServiceSuite) TestValidationMessagesUseFieldNames() {
	in := candidate("EMP010", "Ada", "Engineering")
	in.Code = "  "
	_, err := s.service.Create(s.admin, in)
	s.EqualError(err, "employeeId cannot be blank")

	in = candidate("EMP010", "Ada", "Engineering")
	in.Status = "retired"
	_, err = s.service.Create(s.admin, in)
	s.EqualError(err, "status retired is not one of active, inactive, on_leave, terminated")
}

func (s *ServiceSuite) TestUpdateEmptyOptionalClears() {
	s.createSeed()

	in := candidate("EMP010", "Ada", "Engineering")
	in.Phone = ptr("+1 555")
	in.Salary = ptr("1000")
	created, err := s.service.Create(s.admin, in)
	s.Require().NoError(err)
	s.Require().NotNil(created.Phone)

	updated, err := s.service.Update(s.admin, created.ID, model.EmployeeUpdate{Phone: ptr(""), Salary: ptr("")})
	s.Require().NoError(err)
	s.Nil(updated.Phone)
	s.Nil(updated.Salary)
}

func (s *ServiceSuite) TestUpdateUnknownIsNotFound() {
	_, err := s.service.Update(s.admin, 99, model.EmployeeUpdate{Name: ptr("X")})
	s.ErrorIs(err, model.ErrEmployeeNotFound)
}

// Delete tests

func (s *ServiceSuite) TestDeleteThenNotFound() {
	s.createSeed()

	s.Require().NoError(s.service.Delete(s.admin, 2))

	err := s.service.Delete(s.admin, 2)
	s.ErrorIs(err, model.ErrEmployeeNotFound)

	_, err = s.service.Get(s.employee, 2)
	s.ErrorIs(err, model.ErrNotFound)
}

// Pagination tests

func (s *ServiceSuite) TestListPaginated() {
	s.createSeed()

	page, err := s.service.ListPaginated(s.employee, 2, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(3, page.Total)
	s.Require().Len(page.Employees, 1)
	s.Equal("EMP003", page.Employees[0].Code)

	page, err = s.service.ListPaginated(s.employee, 5, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(3, page.Total)
	s.Empty(page.Employees)
}

func (s *ServiceSuite) TestListPaginatedOutOfRangeIsEmpty() {
	s.createSeed()

	page, err := s.service.ListPaginated(s.employee, 0, 2, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(3, page.Total)
	s.Empty(page.Employees)

	page, err = s.service.ListPaginated(s.employee, 1, 0, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(3, page.Total)
	s.Empty(page.Employees)
}

func (s *ServiceSuite) TestListPaginatedLargeLimitReturnsAll() {
	s.createSeed()

	page, err := s.service.ListPaginated(s.employee, 1, 500, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Equal(3, page.Total)
	s.Len(page.Employees, 3)
}

func (s *ServiceSuite) TestListFilters() {
	s.createSeed()

	found, err := s.service.List(s.employee, model.EmployeeFilter{Search: "chen"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Michael Chen", found[0].Name)

	found, err = s.service.List(s.employee, model.EmployeeFilter{Department: "marketing"})
	s.Require().NoError(err)
	s.Len(found, 1)
}

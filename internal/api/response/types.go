package response

import (
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/services/auth"
)

// User represents an account in API responses. It has no password field.
type User struct {
	ID        model.AccountID `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      model.Role      `json:"role"`
	CreatedAt string          `json:"createdAt"`
}

// UserFromModel converts a model.Account to a response User
func UserFromModel(a *model.Account) User {
	return User{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: model.FormatDate(a.CreatedAt),
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token: s.Token,
		User:  UserFromModel(s.Account),
	}
}

// Employee represents an employee in API responses
type Employee struct {
	ID               model.EmployeeID `json:"id"`
	EmployeeID       string           `json:"employeeId"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            *string          `json:"phone"`
	Department       string           `json:"department"`
	Position         string           `json:"position"`
	Salary           *string          `json:"salary"`
	StartDate        *string          `json:"startDate"`
	Status           string           `json:"status"`
	Avatar           *string          `json:"avatar"`
	Address          *string          `json:"address"`
	DateOfBirth      *string          `json:"dateOfBirth"`
	EmergencyContact *string          `json:"emergencyContact"`
	Skills           []string         `json:"skills"`
	Projects         []string         `json:"projects"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

// EmployeeFromModel converts a model.Employee to a response Employee
func EmployeeFromModel(e *model.Employee) Employee {
	out := Employee{
		ID:               e.ID,
		EmployeeID:       e.Code,
		Name:             e.Name,
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Position:         e.Position,
		Salary:           e.Salary,
		Status:           string(e.Status),
		Avatar:           e.Avatar,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		Skills:           e.Skills,
		Projects:         e.Projects,
		CreatedAt:        model.FormatDate(e.CreatedAt),
		UpdatedAt:        model.FormatDate(e.UpdatedAt),
	}
	if e.StartDate != nil {
		s := model.FormatDate(*e.StartDate)
		out.StartDate = &s
	}
	if e.DateOfBirth != nil {
		s := model.FormatDate(*e.DateOfBirth)
		out.DateOfBirth = &s
	}
	return out
}

// EmployeesFromModel converts a slice of employees
func EmployeesFromModel(employees []*model.Employee) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeFromModel(e))
	}
	return out
}

// EmployeesResponse is one page of employees with the filtered total
type EmployeesResponse struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

// Health is the response for the health check
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

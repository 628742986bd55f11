package request

import (
	"encoding/json"
	"time"

	"github.com/mcoot/staffdir/internal/model"
)

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Date accepts the same ISO-8601 forms as the GraphQL Date scalar
type Date struct {
	time.Time
}

// UnmarshalJSON parses an ISO-8601 string
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *Date) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// EmployeeRequest is the request body for creating an employee
type EmployeeRequest struct {
	EmployeeID       string   `json:"employeeId"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            *string  `json:"phone"`
	Department       string   `json:"department"`
	Position         string   `json:"position"`
	Salary           *string  `json:"salary"`
	StartDate        *Date    `json:"startDate"`
	Status           string   `json:"status"`
	Avatar           *string  `json:"avatar"`
	Address          *string  `json:"address"`
	DateOfBirth      *Date    `json:"dateOfBirth"`
	EmergencyContact *string  `json:"emergencyContact"`
	Skills           []string `json:"skills"`
	Projects         []string `json:"projects"`
}

// ToModel converts the request into a store candidate
func (r EmployeeRequest) ToModel() model.NewEmployee {
	return model.NewEmployee{
		Code:             r.EmployeeID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Department:       r.Department,
		Position:         r.Position,
		Salary:           r.Salary,
		StartDate:        r.StartDate.ptr(),
		Status:           model.EmployeeStatus(r.Status),
		Avatar:           r.Avatar,
		Address:          r.Address,
		DateOfBirth:      r.DateOfBirth.ptr(),
		EmergencyContact: r.EmergencyContact,
		Skills:           r.Skills,
		Projects:         r.Projects,
	}
}

// UpdateEmployeeRequest is the request body for a partial employee update.
// Absent fields are left unchanged. Null clears an optional field and is
// ignored for required ones.
type UpdateEmployeeRequest struct {
	EmployeeID       *string  `json:"employeeId"`
	Name             *string  `json:"name"`
	Email            *string  `json:"email"`
	Phone            *string  `json:"phone"`
	Department       *string  `json:"department"`
	Position         *string  `json:"position"`
	Salary           *string  `json:"salary"`
	StartDate        *Date    `json:"startDate"`
	Status           *string  `json:"status"`
	Avatar           *string  `json:"avatar"`
	Address          *string  `json:"address"`
	DateOfBirth      *Date    `json:"dateOfBirth"`
	EmergencyContact *string  `json:"emergencyContact"`
	Skills           []string `json:"skills"`
	Projects         []string `json:"projects"`

	nulls map[string]bool
}

// UnmarshalJSON decodes the body and remembers which keys were null
func (r *UpdateEmployeeRequest) UnmarshalJSON(b []byte) error {
	type fields UpdateEmployeeRequest
	if err := json.Unmarshal(b, (*fields)(r)); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.nulls = make(map[string]bool)
	for key, value := range raw {
		if string(value) == "null" {
			r.nulls[key] = true
		}
	}
	return nil
}

// clearable returns value, or an empty string when key was sent as null
func (r UpdateEmployeeRequest) clearable(key string, value *string) *string {
	if r.nulls[key] {
		empty := ""
		return &empty
	}
	return value
}

func (r UpdateEmployeeRequest) list(key string, value []string) []string {
	if r.nulls[key] {
		return []string{}
	}
	return value
}

// ToModel converts the request into a store update
func (r UpdateEmployeeRequest) ToModel() model.EmployeeUpdate {
	var status *model.EmployeeStatus
	if r.Status != nil {
		s := model.EmployeeStatus(*r.Status)
		status = &s
	}
	return model.EmployeeUpdate{
		Code:             r.EmployeeID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.clearable("phone", r.Phone),
		Department:       r.Department,
		Position:         r.Position,
		Salary:           r.clearable("salary", r.Salary),
		StartDate:        r.StartDate.ptr(),
		ClearStartDate:   r.nulls["startDate"],
		Status:           status,
		Avatar:           r.clearable("avatar", r.Avatar),
		Address:          r.clearable("address", r.Address),
		DateOfBirth:      r.DateOfBirth.ptr(),
		ClearDateOfBirth: r.nulls["dateOfBirth"],
		EmergencyContact: r.clearable("emergencyContact", r.EmergencyContact),
		Skills:           r.list("skills", r.Skills),
		Projects:         r.list("projects", r.Projects),
	}
}

package model

import "time"

// EmployeeID uniquely identifies an employee record
type EmployeeID int64

// EmployeeStatus is the employment state of a directory entry
type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusInactive   EmployeeStatus = "inactive"
	StatusOnLeave    EmployeeStatus = "on_leave"
	StatusTerminated EmployeeStatus = "terminated"
)

// Valid reports whether s is a known status
func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

// Employee is a directory entry describing a staff member.
// Optional scalar fields are nil when unset.
type Employee struct {
	ID               EmployeeID     `json:"id"`
	Code             string         `json:"code"` // external employee code, e.g. EMP001
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            *string        `json:"phone"`
	Department       string         `json:"department"`
	Position         string         `json:"position"`
	Salary           *string        `json:"salary"` // decimal string
	StartDate        *time.Time     `json:"start_date"`
	Status           EmployeeStatus `json:"status"`
	Avatar           *string        `json:"avatar"`
	Address          *string        `json:"address"`
	DateOfBirth      *time.Time     `json:"date_of_birth"`
	EmergencyContact *string        `json:"emergency_contact"`
	Skills           []string       `json:"skills"`
	Projects         []string       `json:"projects"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Clone returns a deep copy so stores can hand out records without sharing state
func (e *Employee) Clone() *Employee {
	c := *e
	c.Phone = cloneString(e.Phone)
	c.Salary = cloneString(e.Salary)
	c.Avatar = cloneString(e.Avatar)
	c.Address = cloneString(e.Address)
	c.EmergencyContact = cloneString(e.EmergencyContact)
	c.StartDate = cloneTime(e.StartDate)
	c.DateOfBirth = cloneTime(e.DateOfBirth)
	c.Skills = append([]string{}, e.Skills...)
	c.Projects = append([]string{}, e.Projects...)
	return &c
}

// NewEmployee is the input for creating an employee record.
// JSON names match the public API and label validation failures.
type NewEmployee struct {
	Code             string         `json:"employeeId" validate:"notblank"`
	Name             string         `json:"name" validate:"notblank"`
	Email            string         `json:"email" validate:"notblank,email"`
	Phone            *string        `json:"phone"`
	Department       string         `json:"department" validate:"notblank"`
	Position         string         `json:"position" validate:"notblank"`
	Salary           *string        `json:"salary" validate:"omitnil,salary"`
	StartDate        *time.Time     `json:"startDate"`
	Status           EmployeeStatus `json:"status" validate:"omitempty,status"` // Defaults to StatusActive when empty
	Avatar           *string        `json:"avatar"`
	Address          *string        `json:"address"`
	DateOfBirth      *time.Time     `json:"dateOfBirth"`
	EmergencyContact *string        `json:"emergencyContact"`
	Skills           []string       `json:"skills"`
	Projects         []string       `json:"projects"`
}

// Build materializes the candidate into a record with defaults applied.
// Empty optional strings are stored as nil. ID is left for the store to assign.
func (n NewEmployee) Build(now time.Time) *Employee {
	status := n.Status
	if status == "" {
		status = StatusActive
	}
	return &Employee{
		Code:             n.Code,
		Name:             n.Name,
		Email:            n.Email,
		Phone:            nonEmpty(n.Phone),
		Department:       n.Department,
		Position:         n.Position,
		Salary:           nonEmpty(n.Salary),
		StartDate:        cloneTime(n.StartDate),
		Status:           status,
		Avatar:           nonEmpty(n.Avatar),
		Address:          nonEmpty(n.Address),
		DateOfBirth:      cloneTime(n.DateOfBirth),
		EmergencyContact: nonEmpty(n.EmergencyContact),
		Skills:           append([]string{}, n.Skills...),
		Projects:         append([]string{}, n.Projects...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// EmployeeUpdate is a partial update; nil fields are left unchanged.
// An empty optional string clears that field back to nil, as do the
// Clear flags for the dates.
type EmployeeUpdate struct {
	Code             *string         `json:"employeeId" validate:"omitnil,notblank"`
	Name             *string         `json:"name" validate:"omitnil,notblank"`
	Email            *string         `json:"email" validate:"omitnil,notblank,email"`
	Phone            *string         `json:"phone"`
	Department       *string         `json:"department" validate:"omitnil,notblank"`
	Position         *string         `json:"position" validate:"omitnil,notblank"`
	Salary           *string         `json:"salary" validate:"omitnil,salary"`
	StartDate        *time.Time      `json:"startDate"`
	ClearStartDate   bool            `json:"-"`
	Status           *EmployeeStatus `json:"status" validate:"omitnil,status"`
	Avatar           *string         `json:"avatar"`
	Address          *string         `json:"address"`
	DateOfBirth      *time.Time      `json:"dateOfBirth"`
	ClearDateOfBirth bool            `json:"-"`
	EmergencyContact *string         `json:"emergencyContact"`
	Skills           []string        `json:"skills"` // nil means unchanged, empty clears
	Projects         []string        `json:"projects"`
}

// Apply returns a copy of e with the supplied fields merged in and UpdatedAt set to now
func (u EmployeeUpdate) Apply(e *Employee, now time.Time) *Employee {
	out := e.Clone()
	if u.Code != nil {
		out.Code = *u.Code
	}
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Email != nil {
		out.Email = *u.Email
	}
	if u.Phone != nil {
		out.Phone = nonEmpty(u.Phone)
	}
	if u.Department != nil {
		out.Department = *u.Department
	}
	if u.Position != nil {
		out.Position = *u.Position
	}
	if u.Salary != nil {
		out.Salary = nonEmpty(u.Salary)
	}
	if u.StartDate != nil {
		out.StartDate = cloneTime(u.StartDate)
	} else if u.ClearStartDate {
		out.StartDate = nil
	}
	if u.Status != nil {
		out.Status = *u.Status
	}
	if u.Avatar != nil {
		out.Avatar = nonEmpty(u.Avatar)
	}
	if u.Address != nil {
		out.Address = nonEmpty(u.Address)
	}
	if u.DateOfBirth != nil {
		out.DateOfBirth = cloneTime(u.DateOfBirth)
	} else if u.ClearDateOfBirth {
		out.DateOfBirth = nil
	}
	if u.EmergencyContact != nil {
		out.EmergencyContact = nonEmpty(u.EmergencyContact)
	}
	if u.Skills != nil {
		out.Skills = append([]string{}, u.Skills...)
	}
	if u.Projects != nil {
		out.Projects = append([]string{}, u.Projects...)
	}
	out.UpdatedAt = now
	return out
}

// EmployeeFilter narrows employee listings. Empty fields are ignored.
type EmployeeFilter struct {
	Department string // case-insensitive exact match
	Status     string // exact match
	Search     string // case-insensitive substring over name, email, code, department, position
}

// EmployeePage is one page of a filtered listing
type EmployeePage struct {
	Employees []*Employee
	Total     int
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return cloneString(s)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

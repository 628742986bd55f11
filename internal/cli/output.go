package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Employee:
		o.printEmployee(v)
	case []Employee:
		o.printEmployeeTable(v)
	case EmployeePage:
		o.printEmployeeTable(v.Employees)
		_, _ = fmt.Fprintf(o.w, "Showing %d of %d\n", len(v.Employees), v.Total)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResult combines the account and its token
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Employee response type
type Employee struct {
	ID               int64    `json:"id"`
	EmployeeID       string   `json:"employeeId"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            *string  `json:"phone"`
	Department       string   `json:"department"`
	Position         string   `json:"position"`
	Salary           *string  `json:"salary"`
	StartDate        *string  `json:"startDate"`
	Status           string   `json:"status"`
	Avatar           *string  `json:"avatar"`
	Address          *string  `json:"address"`
	DateOfBirth      *string  `json:"dateOfBirth"`
	EmergencyContact *string  `json:"emergencyContact"`
	Skills           []string `json:"skills"`
	Projects         []string `json:"projects"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// EmployeePage is one page of a paginated listing
type EmployeePage struct {
	Employees []Employee `json:"employees"`
	Total     int        `json:"total"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (o *Output) printUser(u User) {
	_, _ = fmt.Fprintf(o.w, "User: %s (%d)\n", u.Username, u.ID)
	_, _ = fmt.Fprintf(o.w, "Email: %s\n", u.Email)
	_, _ = fmt.Fprintf(o.w, "Role: %s\n", u.Role)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	_, _ = fmt.Fprintf(o.w, "Token: %s\n", a.Token)
}

func (o *Output) printEmployee(e Employee) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", label, value)
	}
	row("ID", fmt.Sprint(e.ID))
	row("Employee ID", e.EmployeeID)
	row("Name", e.Name)
	row("Email", e.Email)
	row("Phone", deref(e.Phone))
	row("Department", e.Department)
	row("Position", e.Position)
	row("Status", e.Status)
	row("Salary", deref(e.Salary))
	row("Start Date", dateOnly(e.StartDate))
	row("Date of Birth", dateOnly(e.DateOfBirth))
	row("Address", deref(e.Address))
	row("Emergency Contact", deref(e.EmergencyContact))
	row("Skills", strings.Join(e.Skills, ", "))
	row("Projects", strings.Join(e.Projects, ", "))
	_ = tw.Flush()
}

func (o *Output) printEmployeeTable(employees []Employee) {
	if len(employees) == 0 {
		_, _ = fmt.Fprintln(o.w, "No employees found")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tEMPLOYEE ID\tNAME\tDEPARTMENT\tPOSITION\tSTATUS")
	for _, e := range employees {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.EmployeeID, e.Name, e.Department, e.Position, e.Status)
	}
	_ = tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	_, _ = fmt.Fprintf(o.w, "Time: %s\n", h.Timestamp)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// dateOnly trims an ISO timestamp to its calendar date
func dateOnly(s *string) string {
	if s == nil {
		return "-"
	}
	date, _, _ := strings.Cut(*s, "T")
	return date
}

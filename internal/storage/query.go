package storage

import (
	"strings"

	"github.com/mcoot/staffdir/internal/model"
)

// MatchesFilter reports whether e satisfies every non-empty field of f
func MatchesFilter(e *model.Employee, f model.EmployeeFilter) bool {
	if f.Department != "" && !strings.EqualFold(e.Department, f.Department) {
		return false
	}
	if f.Status != "" && string(e.Status) != f.Status {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		fields := []string{e.Name, e.Email, e.Code, e.Department, e.Position}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
	return true
}

// FilterEmployees returns the employees matching f, preserving order
func FilterEmployees(employees []*model.Employee, f model.EmployeeFilter) []*model.Employee {
	out := make([]*model.Employee, 0, len(employees))
	for _, e := range employees {
		if MatchesFilter(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// Paginate returns the 1-based page of items along with the total count.
// Pages outside 1..n and a pageSize < 1 yield an empty page.
func Paginate(items []*model.Employee, page, pageSize int) model.EmployeePage {
	total := len(items)
	if page < 1 || pageSize < 1 {
		return model.EmployeePage{Employees: []*model.Employee{}, Total: total}
	}

	start := (page - 1) * pageSize
	if start >= total {
		return model.EmployeePage{Employees: []*model.Employee{}, Total: total}
	}
	end := min(start+pageSize, total)

	return model.EmployeePage{Employees: items[start:end], Total: total}
}

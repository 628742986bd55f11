package gql

import (
	"errors"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/services/auth"
	"github.com/mcoot/staffdir/internal/services/directory"
)

// Resolver binds the schema to the auth and directory services.
// Errors are returned unwrapped so their Extensions reach the client.
type Resolver struct {
	auth      *auth.Service
	directory *directory.Service
}

// NewResolver creates a new Resolver
func NewResolver(authService *auth.Service, directoryService *directory.Service) *Resolver {
	return &Resolver{
		auth:      authService,
		directory: directoryService,
	}
}

// Queries

// Me resolves to null when the token names an account that no longer exists
func (r *Resolver) Me(p graphql.ResolveParams) (interface{}, error) {
	account, err := r.auth.Me(p.Context)
	if errors.Is(err, model.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userResult(account), nil
}

func (r *Resolver) Employees(p graphql.ResolveParams) (interface{}, error) {
	employees, err := r.directory.List(p.Context, filtersArg(p.Args))
	if err != nil {
		return nil, err
	}
	return employeeResults(employees), nil
}

func (r *Resolver) Employee(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p.Args)
	if err != nil {
		return nil, err
	}
	employee, err := r.directory.Get(p.Context, id)
	if err != nil {
		return nil, err
	}
	return employeeResult(employee), nil
}

func (r *Resolver) EmployeesPaginated(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)
	limit, _ := p.Args["limit"].(int)
	result, err := r.directory.ListPaginated(p.Context, page, limit, filtersArg(p.Args))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"employees": employeeResults(result.Employees),
		"total":     result.Total,
	}, nil
}

// Mutations

func (r *Resolver) Login(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	session, err := r.auth.Login(p.Context, auth.LoginInput{
		Username: stringField(in, "username"),
		Password: stringField(in, "password"),
	})
	if err != nil {
		return nil, err
	}
	return authResult(session), nil
}

func (r *Resolver) Register(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p.Args)
	session, err := r.auth.Register(p.Context, auth.RegisterInput{
		Username: stringField(in, "username"),
		Email:    stringField(in, "email"),
		Password: stringField(in, "password"),
		Role:     model.Role(stringField(in, "role")),
	})
	if err != nil {
		return nil, err
	}
	return authResult(session), nil
}

func (r *Resolver) CreateEmployee(p graphql.ResolveParams) (interface{}, error) {
	employee, err := r.directory.Create(p.Context, newEmployeeInput(inputArg(p.Args)))
	if err != nil {
		return nil, err
	}
	return employeeResult(employee), nil
}

func (r *Resolver) UpdateEmployee(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p.Args)
	if err != nil {
		return nil, err
	}
	input := employeeUpdateInput(inputArg(p.Args), nulledFields(p, "input"))
	employee, err := r.directory.Update(p.Context, id, input)
	if err != nil {
		return nil, err
	}
	return employeeResult(employee), nil
}

func (r *Resolver) DeleteEmployee(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p.Args)
	if err != nil {
		return nil, err
	}
	if err := r.directory.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return true, nil
}

// Argument decoding

func inputArg(args map[string]interface{}) map[string]interface{} {
	in, _ := args["input"].(map[string]interface{})
	return in
}

func idArg(args map[string]interface{}) (model.EmployeeID, error) {
	raw, _ := args["id"].(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.ValidationError("invalid employee id")
	}
	return model.EmployeeID(id), nil
}

func filtersArg(args map[string]interface{}) model.EmployeeFilter {
	in, _ := args["filters"].(map[string]interface{})
	return model.EmployeeFilter{
		Department: stringField(in, "department"),
		Status:     stringField(in, "status"),
		Search:     stringField(in, "search"),
	}
}

func newEmployeeInput(in map[string]interface{}) model.NewEmployee {
	return model.NewEmployee{
		Code:             stringField(in, "employeeId"),
		Name:             stringField(in, "name"),
		Email:            stringField(in, "email"),
		Phone:            optionalString(in, "phone"),
		Department:       stringField(in, "department"),
		Position:         stringField(in, "position"),
		Salary:           optionalString(in, "salary"),
		StartDate:        optionalTime(in, "startDate"),
		Status:           model.EmployeeStatus(stringField(in, "status")),
		Avatar:           optionalString(in, "avatar"),
		Address:          optionalString(in, "address"),
		DateOfBirth:      optionalTime(in, "dateOfBirth"),
		EmergencyContact: optionalString(in, "emergencyContact"),
		Skills:           stringList(in, "skills"),
		Projects:         stringList(in, "projects"),
	}
}

// employeeUpdateInput maps the update input. Optional fields named in nulls
// are cleared; required fields set to null are left unchanged.
func employeeUpdateInput(in map[string]interface{}, nulls map[string]bool) model.EmployeeUpdate {
	var status *model.EmployeeStatus
	if s := optionalString(in, "status"); s != nil {
		v := model.EmployeeStatus(*s)
		status = &v
	}
	clearable := func(key string) *string {
		if nulls[key] {
			empty := ""
			return &empty
		}
		return optionalString(in, key)
	}
	list := func(key string) []string {
		if nulls[key] {
			return []string{}
		}
		return stringList(in, key)
	}
	return model.EmployeeUpdate{
		Code:             optionalString(in, "employeeId"),
		Name:             optionalString(in, "name"),
		Email:            optionalString(in, "email"),
		Phone:            clearable("phone"),
		Department:       optionalString(in, "department"),
		Position:         optionalString(in, "position"),
		Salary:           clearable("salary"),
		StartDate:        optionalTime(in, "startDate"),
		ClearStartDate:   nulls["startDate"],
		Status:           status,
		Avatar:           clearable("avatar"),
		Address:          clearable("address"),
		DateOfBirth:      optionalTime(in, "dateOfBirth"),
		ClearDateOfBirth: nulls["dateOfBirth"],
		EmergencyContact: clearable("emergencyContact"),
		Skills:           list("skills"),
		Projects:         list("projects"),
	}
}

// nulledFields lists the fields of an input object argument that the client
// explicitly set to null, read from the raw request variables
func nulledFields(p graphql.ResolveParams, arg string) map[string]bool {
	out := map[string]bool{}
	vars := rawVariables(p.Context)
	if vars == nil || len(p.Info.FieldASTs) == 0 {
		return out
	}

	for _, a := range p.Info.FieldASTs[0].Arguments {
		if a.Name == nil || a.Name.Value != arg {
			continue
		}
		switch v := a.Value.(type) {
		case *ast.Variable:
			obj, _ := vars[v.Name.Value].(map[string]interface{})
			for key, value := range obj {
				if value == nil {
					out[key] = true
				}
			}
		case *ast.ObjectValue:
			for _, f := range v.Fields {
				ref, ok := f.Value.(*ast.Variable)
				if !ok || f.Name == nil {
					continue
				}
				if value, present := vars[ref.Name.Value]; present && value == nil {
					out[f.Name.Value] = true
				}
			}
		}
	}
	return out
}

func stringField(in map[string]interface{}, key string) string {
	s, _ := in[key].(string)
	return s
}

func optionalString(in map[string]interface{}, key string) *string {
	s, ok := in[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optionalTime(in map[string]interface{}, key string) *time.Time {
	t, ok := in[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// stringList returns nil when the key is absent so updates leave the list alone
func stringList(in map[string]interface{}, key string) []string {
	raw, ok := in[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Result shaping

func userResult(a *model.Account) map[string]interface{} {
	return map[string]interface{}{
		"id":        strconv.FormatInt(int64(a.ID), 10),
		"username":  a.Username,
		"email":     a.Email,
		"role":      string(a.Role),
		"createdAt": a.CreatedAt,
	}
}

func authResult(s *auth.Session) map[string]interface{} {
	return map[string]interface{}{
		"token": s.Token,
		"user":  userResult(s.Account),
	}
}

func employeeResult(e *model.Employee) map[string]interface{} {
	return map[string]interface{}{
		"id":               strconv.FormatInt(int64(e.ID), 10),
		"employeeId":       e.Code,
		"name":             e.Name,
		"email":            e.Email,
		"phone":            nullable(e.Phone),
		"department":       e.Department,
		"position":         e.Position,
		"salary":           nullable(e.Salary),
		"startDate":        nullableTime(e.StartDate),
		"status":           string(e.Status),
		"avatar":           nullable(e.Avatar),
		"address":          nullable(e.Address),
		"dateOfBirth":      nullableTime(e.DateOfBirth),
		"emergencyContact": nullable(e.EmergencyContact),
		"skills":           e.Skills,
		"projects":         e.Projects,
		"createdAt":        e.CreatedAt,
		"updatedAt":        e.UpdatedAt,
	}
}

func employeeResults(employees []*model.Employee) []interface{} {
	out := make([]interface{}, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResult(e))
	}
	return out
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

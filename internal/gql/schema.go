package gql

import (
	"github.com/graphql-go/graphql"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(Date)},
	},
})

var stringListType = graphql.NewList(graphql.NewNonNull(graphql.String))

var employeeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Employee",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"employeeId":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone":            &graphql.Field{Type: graphql.String},
		"department":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"position":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"salary":           &graphql.Field{Type: graphql.String},
		"startDate":        &graphql.Field{Type: Date},
		"status":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"avatar":           &graphql.Field{Type: graphql.String},
		"address":          &graphql.Field{Type: graphql.String},
		"dateOfBirth":      &graphql.Field{Type: Date},
		"emergencyContact": &graphql.Field{Type: graphql.String},
		"skills":           &graphql.Field{Type: stringListType},
		"projects":         &graphql.Field{Type: stringListType},
		"createdAt":        &graphql.Field{Type: graphql.NewNonNull(Date)},
		"updatedAt":        &graphql.Field{Type: graphql.NewNonNull(Date)},
	},
})

var employeesResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EmployeesResponse",
	Fields: graphql.Fields{
		"employees": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType)))},
		"total":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var authResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthResponse",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
	},
})

var loginInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LoginInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var registerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RegisterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"role":     &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// employeeInputFields builds the shared field map of the two employee inputs.
// required marks the fields that are non-null on create.
func employeeInputFields(required bool) graphql.InputObjectConfigFieldMap {
	req := func(t graphql.Input) graphql.Input {
		if required {
			return graphql.NewNonNull(t)
		}
		return t
	}
	return graphql.InputObjectConfigFieldMap{
		"employeeId":       &graphql.InputObjectFieldConfig{Type: req(graphql.String)},
		"name":             &graphql.InputObjectFieldConfig{Type: req(graphql.String)},
		"email":            &graphql.InputObjectFieldConfig{Type: req(graphql.String)},
		"phone":            &graphql.InputObjectFieldConfig{Type: graphql.String},
		"department":       &graphql.InputObjectFieldConfig{Type: req(graphql.String)},
		"position":         &graphql.InputObjectFieldConfig{Type: req(graphql.String)},
		"salary":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"startDate":        &graphql.InputObjectFieldConfig{Type: Date},
		"status":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"avatar":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"address":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"dateOfBirth":      &graphql.InputObjectFieldConfig{Type: Date},
		"emergencyContact": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"skills":           &graphql.InputObjectFieldConfig{Type: stringListType},
		"projects":         &graphql.InputObjectFieldConfig{Type: stringListType},
	}
}

var employeeInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name:   "EmployeeInput",
	Fields: employeeInputFields(true),
})

var updateEmployeeInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name:   "UpdateEmployeeInput",
	Fields: employeeInputFields(false),
})

var employeeFiltersType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "EmployeeFilters",
	Fields: graphql.InputObjectConfigFieldMap{
		"department": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"status":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"search":     &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// NewSchema builds the directory schema with resolvers bound to r
func NewSchema(r *Resolver) (graphql.Schema, error) {
	filtersArg := &graphql.ArgumentConfig{Type: employeeFiltersType}
	idArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.Me,
			},
			"employees": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType))),
				Args:    graphql.FieldConfigArgument{"filters": filtersArg},
				Resolve: r.Employees,
			},
			"employee": &graphql.Field{
				Type:    employeeType,
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.Employee,
			},
			"employeesPaginated": &graphql.Field{
				Type: graphql.NewNonNull(employeesResponseType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"limit":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"filters": filtersArg,
				},
				Resolve: r.EmployeesPaginated,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type:    graphql.NewNonNull(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(loginInputType)}},
				Resolve: r.Login,
			},
			"register": &graphql.Field{
				Type:    graphql.NewNonNull(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(registerInputType)}},
				Resolve: r.Register,
			},
			"createEmployee": &graphql.Field{
				Type:    graphql.NewNonNull(employeeType),
				Args:    graphql.FieldConfigArgument{"input": {Type: graphql.NewNonNull(employeeInputType)}},
				Resolve: r.CreateEmployee,
			},
			"updateEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": {Type: graphql.NewNonNull(updateEmployeeInputType)},
				},
				Resolve: r.UpdateEmployee,
			},
			"deleteEmployee": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.DeleteEmployee,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Browse and manage directory entries",
	}

	cmd.AddCommand(newEmployeeListCmd())
	cmd.AddCommand(newEmployeeGetCmd())
	cmd.AddCommand(newEmployeeCreateCmd())
	cmd.AddCommand(newEmployeeUpdateCmd())
	cmd.AddCommand(newEmployeeDeleteCmd())

	return cmd
}

func newEmployeeListCmd() *cobra.Command {
	var department, status, search string
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, optionally filtered or paginated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if department != "" {
				query.Set("department", department)
			}
			if status != "" {
				query.Set("status", status)
			}
			if search != "" {
				query.Set("search", search)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			if !cmd.Flags().Changed("page") && !cmd.Flags().Changed("limit") {
				var result []Employee
				if err := client.Get(cmd.Context(), "/api/employees", query, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			query.Set("page", strconv.Itoa(page))
			query.Set("limit", strconv.Itoa(limit))
			var result EmployeePage
			if err := client.Get(cmd.Context(), "/api/employees", query, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Only this department")
	cmd.Flags().StringVar(&status, "status", "", "Only this status (active, inactive, on_leave, terminated)")
	cmd.Flags().StringVar(&search, "search", "", "Match name, email, employee ID, department or position")
	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 10, "Page size")

	return cmd
}

func newEmployeeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Employee

			if err := client.Get(cmd.Context(), employeePath(args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

// employeeFlags binds the writable employee fields to flags
type employeeFlags struct {
	code, name, email, phone, department, position string
	salary, startDate, status, avatar, address     string
	dateOfBirth, emergencyContact                  string
	skills, projects                               []string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.code, "employee-id", "", "Employee ID, e.g. EMP007")
	fs.StringVar(&f.name, "name", "", "Full name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.phone, "phone", "", "Phone number")
	fs.StringVar(&f.department, "department", "", "Department")
	fs.StringVar(&f.position, "position", "", "Job title")
	fs.StringVar(&f.salary, "salary", "", "Salary as a decimal, e.g. 95000.00")
	fs.StringVar(&f.startDate, "start-date", "", "Start date, YYYY-MM-DD or ISO-8601")
	fs.StringVar(&f.status, "status", "", "active, inactive, on_leave or terminated")
	fs.StringVar(&f.avatar, "avatar", "", "Avatar URL")
	fs.StringVar(&f.address, "address", "", "Postal address")
	fs.StringVar(&f.dateOfBirth, "date-of-birth", "", "Date of birth, YYYY-MM-DD or ISO-8601")
	fs.StringVar(&f.emergencyContact, "emergency-contact", "", "Emergency contact")
	fs.StringSliceVar(&f.skills, "skills", nil, "Comma-separated skills")
	fs.StringSliceVar(&f.projects, "projects", nil, "Comma-separated projects")
}

// body returns the request fields for every flag the user set
func (f *employeeFlags) body(cmd *cobra.Command) map[string]any {
	fields := []struct {
		flag, field string
		value       any
	}{
		{"employee-id", "employeeId", f.code},
		{"name", "name", f.name},
		{"email", "email", f.email},
		{"phone", "phone", f.phone},
		{"department", "department", f.department},
		{"position", "position", f.position},
		{"salary", "salary", f.salary},
		{"start-date", "startDate", f.startDate},
		{"status", "status", f.status},
		{"avatar", "avatar", f.avatar},
		{"address", "address", f.address},
		{"date-of-birth", "dateOfBirth", f.dateOfBirth},
		{"emergency-contact", "emergencyContact", f.emergencyContact},
		{"skills", "skills", f.skills},
		{"projects", "projects", f.projects},
	}

	body := map[string]any{}
	for _, fl := range fields {
		if cmd.Flags().Changed(fl.flag) {
			body[fl.field] = fl.value
		}
	}
	return body
}

func newEmployeeCreateCmd() *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Employee

			if err := client.Post(cmd.Context(), "/api/employees", flags.body(cmd), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)
	for _, name := range []string{"employee-id", "name", "email", "department", "position"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newEmployeeUpdateCmd() *cobra.Command {
	var flags employeeFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an employee (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := flags.body(cmd)
			if len(body) == 0 {
				return fmt.Errorf("nothing to update: set at least one field flag")
			}

			var result Employee
			if err := client.Patch(cmd.Context(), employeePath(args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newEmployeeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), employeePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted employee %s", args[0]))
			return nil
		},
	}
}

func employeePath(id string) string {
	return "/api/employees/" + url.PathEscape(id)
}

// Package seed populates a fresh directory with bootstrap accounts and
// sample employees.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
)

// Hasher produces password hashes for the bootstrap accounts
type Hasher interface {
	HashPassword(plain string) (string, error)
}

// BootstrapAccount is an account created at startup
type BootstrapAccount struct {
	Username string
	Email    string
	Password string
	Role     model.Role
}

// Accounts are the default login identities
var Accounts = []BootstrapAccount{
	{Username: "admin", Email: "admin@company.com", Password: "admin123", Role: model.RoleAdmin},
	{Username: "employee", Email: "employee@company.com", Password: "employee123", Role: model.RoleEmployee},
}

// Run creates the bootstrap accounts and sample employees. It is a no-op
// when the first bootstrap account already exists.
func Run(ctx context.Context, store storage.DirectoryStore, hasher Hasher, logger *slog.Logger) error {
	if _, err := store.GetAccountByUsername(ctx, Accounts[0].Username); err == nil {
		logger.Info("directory already seeded")
		return nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("check seed state: %w", err)
	}

	for _, a := range Accounts {
		hash, err := hasher.HashPassword(a.Password)
		if err != nil {
			return err
		}
		if _, err := store.CreateAccount(ctx, model.NewAccount{
			Username:     a.Username,
			Email:        a.Email,
			PasswordHash: hash,
			Role:         a.Role,
		}); err != nil {
			return fmt.Errorf("seed account %s: %w", a.Username, err)
		}
	}

	for _, e := range Employees() {
		if _, err := store.CreateEmployee(ctx, e); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Code, err)
		}
	}

	logger.Info("directory seeded", "accounts", len(Accounts), "employees", len(Employees()))
	return nil
}

// Employees returns the sample roster
func Employees() []model.NewEmployee {
	return []model.NewEmployee{
		{
			Code:             "EMP001",
			Name:             "Sarah Johnson",
			Email:            "sarah.johnson@company.com",
			Phone:            ptr("+1 (555) 123-4567"),
			Department:       "Engineering",
			Position:         "Frontend Lead",
			Salary:           ptr("85000"),
			StartDate:        date("2022-01-15"),
			Status:           model.StatusActive,
			Avatar:           ptr(avatarURL("photo-1494790108755-2616b612b8c5")),
			Address:          ptr("123 Tech Street, San Francisco, CA 94105"),
			DateOfBirth:      date("1990-05-12"),
			EmergencyContact: ptr("John Johnson - +1 (555) 987-6543"),
			Skills:           []string{"React", "JavaScript", "TypeScript", "Node.js", "GraphQL"},
			Projects:         []string{"E-commerce Platform", "Mobile App", "Dashboard Redesign"},
		},
		{
			Code:             "EMP002",
			Name:             "Michael Chen",
			Email:            "michael.chen@company.com",
			Phone:            ptr("+1 (555) 234-5678"),
			Department:       "Product",
			Position:         "Senior PM",
			Salary:           ptr("95000"),
			StartDate:        date("2021-08-20"),
			Status:           model.StatusActive,
			Avatar:           ptr(avatarURL("photo-1472099645785-5658abf4ff4e")),
			Address:          ptr("456 Innovation Ave, Austin, TX 78701"),
			DateOfBirth:      date("1988-09-23"),
			EmergencyContact: ptr("Lisa Chen - +1 (555) 876-5432"),
			Skills:           []string{"Product Strategy", "Data Analysis", "User Research", "Agile", "Roadmapping"},
			Projects:         []string{"Product Roadmap 2024", "User Analytics", "Market Research"},
		},
		{
			Code:             "EMP003",
			Name:             "Emma Rodriguez",
			Email:            "emma.rodriguez@company.com",
			Phone:            ptr("+1 (555) 345-6789"),
			Department:       "Marketing",
			Position:         "Growth Lead",
			Salary:           ptr("78000"),
			StartDate:        date("2022-03-10"),
			Status:           model.StatusActive,
			Avatar:           ptr(avatarURL("photo-1580489944761-15a19d654956")),
			Address:          ptr("789 Marketing Blvd, New York, NY 10001"),
			DateOfBirth:      date("1992-11-07"),
			EmergencyContact: ptr("Carlos Rodriguez - +1 (555) 765-4321"),
			Skills:           []string{"Digital Marketing", "SEO", "Content Strategy", "Social Media", "Analytics"},
			Projects:         []string{"Brand Campaign", "SEO Optimization", "Social Media Strategy"},
		},
		{
			Code:             "EMP004",
			Name:             "David Kim",
			Email:            "david.kim@company.com",
			Phone:            ptr("+1 (555) 456-7890"),
			Department:       "Engineering",
			Position:         "Full Stack",
			Salary:           ptr("82000"),
			StartDate:        date("2021-11-05"),
			Status:           model.StatusOnLeave,
			Avatar:           ptr(avatarURL("photo-1519085360753-af0119f7cbe7")),
			Address:          ptr("321 Code Lane, Seattle, WA 98101"),
			DateOfBirth:      date("1991-03-18"),
			EmergencyContact: ptr("Jenny Kim - +1 (555) 654-3210"),
			Skills:           []string{"Node.js", "Python", "PostgreSQL", "AWS", "Docker"},
			Projects:         []string{"API Development", "Database Migration", "Cloud Infrastructure"},
		},
		{
			Code:             "EMP005",
			Name:             "Lisa Thompson",
			Email:            "lisa.thompson@company.com",
			Phone:            ptr("+1 (555) 567-8901"),
			Department:       "Human Resources",
			Position:         "Senior HR",
			Salary:           ptr("72000"),
			StartDate:        date("2020-05-12"),
			Status:           model.StatusActive,
			Avatar:           ptr(avatarURL("photo-1438761681033-6461ffad8d80")),
			Address:          ptr("654 People Street, Chicago, IL 60601"),
			DateOfBirth:      date("1987-07-25"),
			EmergencyContact: ptr("Mark Thompson - +1 (555) 543-2109"),
			Skills:           []string{"Recruitment", "Employee Relations", "Performance Management", "Policy Development"},
			Projects:         []string{"Hiring Process", "Employee Handbook", "Performance Reviews"},
		},
		{
			Code:             "EMP006",
			Name:             "James Wilson",
			Email:            "james.wilson@company.com",
			Phone:            ptr("+1 (555) 678-9012"),
			Department:       "Sales",
			Position:         "Regional Lead",
			Salary:           ptr("105000"),
			StartDate:        date("2019-09-18"),
			Status:           model.StatusActive,
			Avatar:           ptr(avatarURL("photo-1500648767791-00dcc994a43e")),
			Address:          ptr("987 Sales Plaza, Miami, FL 33101"),
			DateOfBirth:      date("1985-12-14"),
			EmergencyContact: ptr("Susan Wilson - +1 (555) 432-1098"),
			Skills:           []string{"Sales Strategy", "Client Relations", "Negotiation", "Team Leadership"},
			Projects:         []string{"Q4 Sales Campaign", "Client Onboarding", "Territory Expansion"},
		},
	}
}

func avatarURL(photo string) string {
	return "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&w=150&h=150"
}

func ptr(s string) *string { return &s }

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatchesKindSentinel(t *testing.T) {
	assert.ErrorIs(t, ErrEmployeeNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrUsernameTaken, ErrConflict)
	assert.ErrorIs(t, ErrAdminRequired, ErrAuthorization)
	assert.NotErrorIs(t, ErrEmployeeNotFound, ErrConflict)

	// Specific errors do not match each other
	assert.False(t, errors.Is(ErrUsernameTaken, ErrEmailTaken))

	wrapped := fmt.Errorf("store: %w", ErrEmployeeCodeTaken)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.ErrorIs(t, wrapped, ErrEmployeeCodeTaken)
}

func TestErrorMessageAndCode(t *testing.T) {
	err := ValidationError("name is required")
	assert.Equal(t, "name is required", err.Error())
	assert.Equal(t, map[string]interface{}{"code": "BAD_USER_INPUT"}, err.Extensions())

	assert.Equal(t, "UNAUTHENTICATED", KindAuthentication.Code())
	assert.Equal(t, "FORBIDDEN", KindAuthorization.Code())
	assert.Equal(t, "NOT_FOUND", KindNotFound.Code())
	assert.Equal(t, "CONFLICT", KindConflict.Code())
	assert.Equal(t, "INTERNAL_SERVER_ERROR", ErrorKind("other").Code())
	assert.Equal(t, "not_found", ErrNotFound.Error())
}

func TestBuildAppliesDefaults(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	empty := ""

	e := NewEmployee{Code: "EMP001", Name: "Sarah", Phone: &empty}.Build(now)

	assert.Equal(t, StatusActive, e.Status)
	assert.Nil(t, e.Phone)
	assert.Nil(t, e.Salary)
	assert.NotNil(t, e.Skills)
	assert.Empty(t, e.Skills)
	assert.NotNil(t, e.Projects)
	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestApplyChangesOnlySuppliedFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	phone := "+1 555"
	original := NewEmployee{
		Code:   "EMP001",
		Name:   "Sarah",
		Phone:  &phone,
		Skills: []string{"Go"},
	}.Build(created)

	status := StatusOnLeave
	updated := EmployeeUpdate{Status: &status}.Apply(original, later)

	assert.Equal(t, StatusOnLeave, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "Sarah", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+1 555", *updated.Phone)
	assert.Equal(t, []string{"Go"}, updated.Skills)

	// Original untouched
	assert.Equal(t, StatusActive, original.Status)
}

func TestApplyEmptySliceClears(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := NewEmployee{Skills: []string{"Go", "SQL"}}.Build(now)

	updated := EmployeeUpdate{Skills: []string{}}.Apply(original, now)
	assert.Empty(t, updated.Skills)
	assert.Len(t, original.Skills, 2)
}

func TestApplyClearsOptionalFields(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	phone, salary := "+1 555", "1000"
	start := now.AddDate(-1, 0, 0)
	original := NewEmployee{Phone: &phone, Salary: &salary, StartDate: &start, DateOfBirth: &start}.Build(now)

	empty := ""
	updated := EmployeeUpdate{
		Phone:            &empty,
		Salary:           &empty,
		ClearStartDate:   true,
		ClearDateOfBirth: true,
	}.Apply(original, now)

	assert.Nil(t, updated.Phone)
	assert.Nil(t, updated.Salary)
	assert.Nil(t, updated.StartDate)
	assert.Nil(t, updated.DateOfBirth)
	require.NotNil(t, original.Phone)
	require.NotNil(t, original.StartDate)
}

func TestApplyDatePrefersValueOverClear(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := NewEmployee{}.Build(now)

	updated := EmployeeUpdate{StartDate: &now, ClearStartDate: true}.Apply(original, now)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, now, *updated.StartDate)
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	phone := "+1 555"
	original := NewEmployee{Phone: &phone, Skills: []string{"Go"}}.Build(now)

	c := original.Clone()
	*c.Phone = "changed"
	c.Skills[0] = "Rust"

	assert.Equal(t, "+1 555", *original.Phone)
	assert.Equal(t, "Go", original.Skills[0])
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.True(t, StatusTerminated.Valid())
	assert.False(t, EmployeeStatus("retired").Valid())
}

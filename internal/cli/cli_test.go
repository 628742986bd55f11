package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/staffdir/internal/api"
	"github.com/mcoot/staffdir/internal/cli"
	"github.com/mcoot/staffdir/internal/factory"
	"github.com/mcoot/staffdir/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	app := factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		Clock:            app.Clock,
		AuthService:      app.AuthService,
		DirectoryService: app.DirectoryService,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI in-process and returns stdout
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--server", s.server.URL,
		"--token-file", s.tokenFile,
	}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func (s *CLISuite) runJSON(result any, args ...string) {
	out, err := s.run(append([]string{"-o", "json"}, args...)...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), result), out)
}

func (s *CLISuite) TestHealth() {
	var result cli.HealthResult
	s.runJSON(&result, "health")
	s.Equal("OK", result.Status)
}

func (s *CLISuite) TestLoginSavesToken() {
	var result cli.AuthResult
	s.runJSON(&result, "auth", "login", "--user", "admin", "--pass", "admin123")
	s.Equal("admin", result.User.Role)

	saved, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.Equal(result.Token, string(saved))

	var me cli.User
	s.runJSON(&me, "auth", "me")
	s.Equal("admin", me.Username)
}

func (s *CLISuite) TestLogoutForgetsToken() {
	_, err := s.run("auth", "login", "--user", "employee", "--pass", "employee123")
	s.Require().NoError(err)

	out, err := s.run("auth", "logout")
	s.Require().NoError(err)
	s.Contains(out, "Logged out")
	s.NoFileExists(s.tokenFile)

	_, err = s.run("auth", "me")
	s.Require().Error(err)
	s.Contains(err.Error(), "UNAUTHENTICATED")
}

func (s *CLISuite) TestRegister() {
	var result cli.AuthResult
	s.runJSON(&result, "auth", "register", "--user", "zoe", "--email", "zoe@company.com", "--pass", "secret123")
	s.Equal("zoe", result.User.Username)
	s.Equal("employee", result.User.Role)
}

func (s *CLISuite) TestListAsTable() {
	_, err := s.run("auth", "login", "--user", "employee", "--pass", "employee123")
	s.Require().NoError(err)

	out, err := s.run("employee", "list", "--department", "Engineering")
	s.Require().NoError(err)
	s.Contains(out, "EMPLOYEE ID")
	s.Contains(out, "EMP001")
	s.NotContains(out, "Marketing")
}

func (s *CLISuite) TestListPaginated() {
	_, err := s.run("auth", "login", "--user", "employee", "--pass", "employee123")
	s.Require().NoError(err)

	var page cli.EmployeePage
	s.runJSON(&page, "employee", "list", "--page", "2", "--limit", "5")
	s.Equal(6, page.Total)
	s.Require().Len(page.Employees, 1)
	s.Equal("EMP006", page.Employees[0].EmployeeID)
}

func (s *CLISuite) TestAdminLifecycle() {
	_, err := s.run("auth", "login", "--user", "admin", "--pass", "admin123")
	s.Require().NoError(err)

	var created cli.Employee
	s.runJSON(&created, "employee", "create",
		"--employee-id", "EMP100",
		"--name", "Grace Hopper",
		"--email", "grace@company.com",
		"--department", "Engineering",
		"--position", "Engineer",
		"--start-date", "2024-03-01",
		"--skills", "COBOL,Compilers",
	)
	s.Equal("active", created.Status)
	s.Equal([]string{"COBOL", "Compilers"}, created.Skills)
	id := strconv.FormatInt(created.ID, 10)

	var updated cli.Employee
	s.runJSON(&updated, "employee", "update", id, "--status", "inactive")
	s.Equal("inactive", updated.Status)
	s.Equal("Grace Hopper", updated.Name)

	out, err := s.run("employee", "get", id)
	s.Require().NoError(err)
	s.Contains(out, "2024-03-01")

	_, err = s.run("employee", "delete", id)
	s.Require().NoError(err)

	_, err = s.run("employee", "get", id)
	s.Require().Error(err)
	s.Contains(err.Error(), "Employee not found")
}

func (s *CLISuite) TestUpdateNeedsAField() {
	_, err := s.run("employee", "update", "1")
	s.Require().Error(err)
	s.Contains(err.Error(), "nothing to update")
}

func (s *CLISuite) TestEmployeeCannotCreate() {
	_, err := s.run("auth", "login", "--user", "employee", "--pass", "employee123")
	s.Require().NoError(err)

	_, err = s.run("employee", "create",
		"--employee-id", "EMP100",
		"--name", "Nope",
		"--email", "nope@company.com",
		"--department", "Engineering",
		"--position", "Engineer",
	)
	s.Require().Error(err)

	var apiErr *cli.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(403, apiErr.Status)
	s.Equal("FORBIDDEN", apiErr.Code)
}

func (s *CLISuite) TestRejectsUnknownOutputFormat() {
	_, err := s.run("-o", "yaml", "health")
	s.ErrorContains(err, "unknown output format")
}

func (s *CLISuite) TestRejectsBadServerURL() {
	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--server", "localhost:8080", "--token-file", s.tokenFile, "health"})
	s.ErrorContains(cmd.Execute(), "invalid server URL")
}

func (s *CLISuite) TestVerboseTracesRequests() {
	cmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--server", s.server.URL, "--token-file", s.tokenFile, "-v", "health"})
	s.Require().NoError(cmd.Execute())
	s.Contains(stderr.String(), "GET /api/health -> 200")
}

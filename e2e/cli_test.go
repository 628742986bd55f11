package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/staffdir/internal/api"
	"github.com/mcoot/staffdir/internal/factory"
	"github.com/mcoot/staffdir/internal/services/auth"
	redisstorage "github.com/mcoot/staffdir/internal/storage/redis"
	"github.com/mcoot/staffdir/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "staffdir-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/staffdir")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = cleanEnv()
	output, err := cmd.Output()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = cleanEnv()
	output, err := cmd.Output()
	return string(output), err
}

// cleanEnv drops STAFFDIR_* variables so the developer's own session
// does not leak into the tests
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "STAFFDIR_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer serves the full application on a random local port until
// the test ends
func startTestServer(t *testing.T, cfg factory.Config) string {
	t.Helper()

	cfg.AuthConfig = auth.Config{Secret: []byte("e2e-secret"), HashCost: bcrypt.MinCost}
	cfg.Logger = testutil.NopLogger()

	ctx, cancel := context.WithCancel(context.Background())
	app, err := factory.New(ctx, cfg)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:           cfg.Logger,
		Clock:            app.Clock,
		AuthService:      app.AuthService,
		DirectoryService: app.DirectoryService,
		GraphQL:          app.GraphQL,
	})
	server := api.NewServer(router, api.DefaultServerConfig(), cfg.Logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, listener)
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Logf("server error: %v", err)
		}
		_ = app.Close()
	})

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// backends returns a factory config per storage backend
func backends(t *testing.T) map[string]factory.Config {
	t.Helper()

	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()
	redisCfg.Prefix = "e2e"

	return map[string]factory.Config{
		factory.StorageTypeMemory: {StorageType: factory.StorageTypeMemory},
		factory.StorageTypeRedis:  {StorageType: factory.StorageTypeRedis, RedisConfig: &redisCfg},
	}
}

// Response types for JSON parsing
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type employeeResponse struct {
	ID         int64    `json:"id"`
	EmployeeID string   `json:"employeeId"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Status     string   `json:"status"`
	StartDate  *string  `json:"startDate"`
	Skills     []string `json:"skills"`
}

type pageResponse struct {
	Employees []employeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	serverURL := startTestServer(t, factory.Config{})
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "OK", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	serverURL := startTestServer(t, factory.Config{})
	cli := newCLIRunner(t, serverURL)

	// Register (token should be saved in token file)
	output, err := cli.run("auth", "register", "--user", "alice", "--email", "alice@company.com", "--pass", "secret123")
	require.NoError(t, err, "output: %s", output)

	var registered authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registered))
	assert.Equal(t, "alice", registered.User.Username)
	assert.Equal(t, "employee", registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	output, err = cli.run("auth", "me")
	require.NoError(t, err, "output: %s", output)

	var me userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, registered.User.ID, me.ID)

	// Logout forgets the token
	output, err = cli.run("auth", "logout")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Logged out", msg.Message)

	_, err = cli.run("auth", "me")
	assert.Error(t, err)

	// Bad password
	_, err = cli.run("auth", "login", "--user", "alice", "--pass", "wrong")
	assert.Error(t, err)
}

func TestCLI_DirectoryFlow(t *testing.T) {
	for name, cfg := range backends(t) {
		t.Run(name, func(t *testing.T) {
			serverURL := startTestServer(t, cfg)
			cli := newCLIRunner(t, serverURL)

			// Seeded accounts
			output, err := cli.run("auth", "login", "--user", "employee", "--pass", "employee123")
			require.NoError(t, err, "output: %s", output)
			var viewer authResponse
			require.NoError(t, json.Unmarshal([]byte(output), &viewer))

			output, err = cli.run("auth", "login", "--user", "admin", "--pass", "admin123")
			require.NoError(t, err, "output: %s", output)

			// Seeded employees
			output, err = cli.run("employee", "list", "--status", "on_leave")
			require.NoError(t, err, "output: %s", output)
			var onLeave []employeeResponse
			require.NoError(t, json.Unmarshal([]byte(output), &onLeave))
			require.Len(t, onLeave, 1)
			assert.Equal(t, "EMP004", onLeave[0].EmployeeID)

			// Create
			output, err = cli.run("employee", "create",
				"--employee-id", "EMP007",
				"--name", "Ada Lovelace",
				"--email", "ada@company.com",
				"--department", "Engineering",
				"--position", "Analyst",
				"--start-date", "2024-05-06",
				"--skills", "Math,Engines",
			)
			require.NoError(t, err, "output: %s", output)
			var created employeeResponse
			require.NoError(t, json.Unmarshal([]byte(output), &created))
			assert.Equal(t, "active", created.Status)
			require.NotNil(t, created.StartDate)
			assert.Equal(t, "2024-05-06T00:00:00.000Z", *created.StartDate)
			id := strconv.FormatInt(created.ID, 10)

			// Duplicate employee code is rejected
			_, err = cli.run("employee", "create",
				"--employee-id", "EMP007",
				"--name", "Someone",
				"--email", "someone@company.com",
				"--department", "Engineering",
				"--position", "Analyst",
			)
			assert.Error(t, err)

			// The employee account can read but not write
			output, err = cli.runWithToken(viewer.Token, "employee", "get", id)
			require.NoError(t, err, "output: %s", output)
			var seen employeeResponse
			require.NoError(t, json.Unmarshal([]byte(output), &seen))
			assert.Equal(t, "Ada Lovelace", seen.Name)
			assert.Equal(t, []string{"Math", "Engines"}, seen.Skills)

			_, err = cli.runWithToken(viewer.Token, "employee", "delete", id)
			assert.Error(t, err)

			// Update
			output, err = cli.run("employee", "update", id, "--status", "on_leave")
			require.NoError(t, err, "output: %s", output)
			var updated employeeResponse
			require.NoError(t, json.Unmarshal([]byte(output), &updated))
			assert.Equal(t, "on_leave", updated.Status)
			assert.Equal(t, "Ada Lovelace", updated.Name)

			// Pagination sees seven records
			output, err = cli.run("employee", "list", "--page", "2", "--limit", "5")
			require.NoError(t, err, "output: %s", output)
			var page pageResponse
			require.NoError(t, json.Unmarshal([]byte(output), &page))
			assert.Equal(t, 7, page.Total)
			assert.Len(t, page.Employees, 2)

			// Delete
			_, err = cli.run("employee", "delete", id)
			require.NoError(t, err)
			_, err = cli.run("employee", "get", id)
			assert.Error(t, err)
		})
	}
}

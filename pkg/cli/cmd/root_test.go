package cmd_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/go-connections/nat"
	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/cmd"
	"github.com/saasfoundry/sf/pkg/cli/ui/errorhandler"
	"github.com/saasfoundry/sf/pkg/client/docker"
	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/di"
	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dockerAPI serves a healthy database container publishing 5432 on 5435.
type dockerAPI struct {
	networks []string
}

func (d *dockerAPI) NetworkInspect(_ context.Context, name string, _ network.InspectOptions) (network.Inspect, error) {
	return network.Inspect{}, fmt.Errorf("network %s: %w", name, cerrdefs.ErrNotFound)
}

func (d *dockerAPI) NetworkCreate(_ context.Context, name string, _ network.CreateOptions) (network.CreateResponse, error) {
	d.networks = append(d.networks, name)

	return network.CreateResponse{ID: name}, nil
}

func (d *dockerAPI) ContainerInspect(_ context.Context, _ string) (container.InspectResponse, error) {
	return container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			State: &container.State{Status: "running", Running: true},
		},
		NetworkSettings: &container.NetworkSettings{
			NetworkSettingsBase: container.NetworkSettingsBase{
				Ports: nat.PortMap{"5432/tcp": []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: "5435"}}},
			},
		},
	}, nil
}

func (d *dockerAPI) Close() error { return nil }

func settingsFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiet: true\n"), 0o600))

	return path
}

func newRoot(t *testing.T, input string, out *bytes.Buffer, args []string, modules ...di.Module) *cobra.Command {
	t.Helper()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2026-10-17", modules...)
	root.SetIn(strings.NewReader(input))
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append(args, "--config", settingsFile(t)))

	return root
}

func writeRecord(t *testing.T, mode v1alpha1.DatabaseMode) string {
	t.Helper()

	root := t.TempDir()
	project := &v1alpha1.Project{Name: "acme", Database: v1alpha1.Database{Mode: mode}}
	require.NoError(t, project.Finalize())
	require.NoError(t, pipeline.WriteRecord(root, pipeline.NewRecord(project)))

	return root
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", root.Version)
}

func TestExecuteShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute(root))

	assert.Contains(t, out.String(), "SaaSFoundry asks a few questions")
	assert.Contains(t, out.String(), "Create a new SaaSFoundry project")
	assert.Contains(t, out.String(), "Manage your development database")
	assert.Contains(t, out.String(), "--blueprints")
	assert.Contains(t, out.String(), "--verbose")
}

func TestNew_GeneratesManualProject(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	parent := t.TempDir()
	fake := runner.NewFakeRunner()
	answers := strings.Join([]string{"acme-app", "", "", "", "", "3", "1"}, "\n") + "\n"

	root := newRoot(t, answers, &out, []string{"new", "--dir", parent}, di.ProvideCommandRunner(fake))

	require.NoError(t, cmd.Execute(root))

	projectRoot := filepath.Join(parent, "acme-app")
	assert.FileExists(t, filepath.Join(projectRoot, "apps", "acme-app-api", "package.json"))
	assert.FileExists(t, filepath.Join(projectRoot, "apps", "acme-app-web", "package.json"))
	assert.NoDirExists(t, filepath.Join(projectRoot, "apps", "acme-app-db"))

	record, err := pipeline.ReadRecord(projectRoot)
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.DatabaseModeManual, record.DatabaseMode)

	calls := fake.Calls()
	assert.Contains(t, calls, "npm install --prefix "+filepath.Join(projectRoot, "apps", "acme-app-api"))
	assert.Contains(t, calls, `git commit -m Initial commit`)

	output := out.String()
	assert.Contains(t, output, "Project acme-app created")
	assert.Contains(t, output, "Project setup completed successfully")
	assert.Contains(t, output, `Your project "acme-app" has been successfully set up by SaaSFoundry!`)
}

func TestNew_RefusesExistingProject(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "acme"), 0o750))

	answers := strings.Join([]string{"acme", "", "", "", "", "3", "1"}, "\n") + "\n"
	root := newRoot(t, answers, &out, []string{"new", "--dir", parent},
		di.ProvideCommandRunner(runner.NewFakeRunner()))

	err := cmd.Execute(root)
	require.ErrorIs(t, err, pipeline.ErrProjectExists)

	var commandErr *errorhandler.CommandError
	require.ErrorAs(t, err, &commandErr)
	assert.Equal(t, "Choose another project name or remove the existing directory.", commandErr.Hint())
}

func TestDB_RequiresRecord(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := newRoot(t, "", &out, []string{"db", "stop", "--dir", t.TempDir()},
		di.ProvideCommandRunner(runner.NewFakeRunner()))

	require.ErrorIs(t, cmd.Execute(root), pipeline.ErrRecordNotFound)
}

func TestDB_RefusesProjectWithoutDockerDatabase(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := newRoot(t, "", &out, []string{"db", "stop", "--dir", writeRecord(t, v1alpha1.DatabaseModeManual)},
		di.ProvideCommandRunner(runner.NewFakeRunner()))

	require.ErrorIs(t, cmd.Execute(root), cmd.ErrNoDatabaseService)
}

func TestDB_Stop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	projectRoot := writeRecord(t, v1alpha1.DatabaseModeDocker)
	fake := runner.NewFakeRunner()

	root := newRoot(t, "", &out, []string{"db", "stop", "--dir", projectRoot}, di.ProvideCommandRunner(fake))

	require.NoError(t, cmd.Execute(root))

	assert.Equal(t, []string{"docker compose -f docker-compose.db.yml stop acme-db"}, fake.Calls())
	assert.Equal(t, filepath.Join(projectRoot, "apps", "acme-db"), fake.Commands()[0].Dir)
	assert.Contains(t, out.String(), "✔ Development database stopped successfully!")
}

func TestDB_StartPrintsPort(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	api := &dockerAPI{}
	engine, err := docker.NewEngine(api)
	require.NoError(t, err)

	fake := runner.NewFakeRunner()
	root := newRoot(t, "", &out,
		[]string{"db", "start", "--dir", writeRecord(t, v1alpha1.DatabaseModeDocker)},
		di.ProvideCommandRunner(fake), di.ProvideDockerEngine(engine))

	require.NoError(t, cmd.Execute(root))

	assert.Equal(t, []string{"acme-network"}, api.networks)
	assert.Equal(t, []string{"docker compose -f docker-compose.db.yml up -d acme-db"}, fake.Calls())
	assert.Contains(t, out.String(), "ℹ Database is running on port 5435")
}

func TestDB_ResetReportsFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	fake := runner.NewFakeRunner().On("docker compose -f docker-compose.db.yml down",
		runner.FakeResponse{Err: runner.ErrCommandFailed})
	root := newRoot(t, "", &out,
		[]string{"db", "reset", "--dir", writeRecord(t, v1alpha1.DatabaseModeDocker)},
		di.ProvideCommandRunner(fake))

	err := cmd.Execute(root)
	require.ErrorIs(t, err, runner.ErrCommandFailed)
	assert.Contains(t, out.String(), "✗ Failed to reset development database")
}

func TestNew_DiagnosticsGoToErrorStream(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	answers := strings.Join([]string{"acme", "", "", "", "", "3", "1"}, "\n") + "\n"

	root := cmd.NewRootCmd("1.2.3", "abc123", "2026-10-17", di.ProvideCommandRunner(runner.NewFakeRunner()))
	root.SetIn(strings.NewReader(answers))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"new", "--dir", t.TempDir(), "--verbose", "--config", settingsFile(t)})

	require.NoError(t, cmd.Execute(root))

	assert.Contains(t, stderr.String(), "bring-up finished")
	assert.NotContains(t, stdout.String(), "level=debug")
	assert.Contains(t, stdout.String(), "Project setup completed successfully")
}

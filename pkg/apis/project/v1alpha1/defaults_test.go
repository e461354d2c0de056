package v1alpha1_test

import (
	"testing"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalize_AppliesCredentialDefaultsForDocker(t *testing.T) {
	t.Parallel()

	project := &v1alpha1.Project{
		Name:     "acme-app",
		Database: v1alpha1.Database{Mode: v1alpha1.DatabaseModeDocker},
	}

	require.NoError(t, project.Finalize())

	creds, err := project.DatabaseCredentials()
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.Credentials{
		Engine:   v1alpha1.DatabaseEnginePostgreSQL,
		Host:     "localhost",
		Port:     "5435",
		User:     "db_dev_user",
		Password: "db_dev_password",
		Name:     "db_dev",
	}, creds)
	assert.Equal(t, "acme-app is just an amazing SaaSFoundry project", project.Description)
	assert.Equal(t, v1alpha1.BranchMain, project.Branch)
	assert.Equal(t, v1alpha1.TopologyMultirepo, project.Topology)
}

func TestFinalize_SQLServerPort(t *testing.T) {
	t.Parallel()

	project := &v1alpha1.Project{
		Name: "acme",
		Database: v1alpha1.Database{
			Mode:        v1alpha1.DatabaseModeCredentials,
			Credentials: &v1alpha1.Credentials{Engine: v1alpha1.DatabaseEngineSQLServer, Host: "db.internal"},
		},
	}

	require.NoError(t, project.Finalize())
	assert.Equal(t, "1433", project.Database.Credentials.Port)
	assert.Equal(t, "db.internal", project.Database.Credentials.Host)
}

func TestFinalize_ManualDropsCredentials(t *testing.T) {
	t.Parallel()

	project := &v1alpha1.Project{
		Name: "acme",
		Database: v1alpha1.Database{
			Mode:        v1alpha1.DatabaseModeManual,
			Credentials: &v1alpha1.Credentials{User: "leftover"},
		},
	}

	require.NoError(t, project.Finalize())

	_, err := project.DatabaseCredentials()
	require.ErrorIs(t, err, v1alpha1.ErrCredentialsMissing)
}

func TestFinalize_RunsOnlyOnce(t *testing.T) {
	t.Parallel()

	project := &v1alpha1.Project{
		Name:     "acme",
		Database: v1alpha1.Database{Mode: v1alpha1.DatabaseModeDocker},
	}

	require.NoError(t, project.Finalize())

	project.Database.Credentials.Port = ""

	require.NoError(t, project.Finalize())
	assert.True(t, project.Finalized())
	assert.Empty(t, project.Database.Credentials.Port)
}

func TestFinalize_EmailStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email v1alpha1.Email
		want  v1alpha1.EmailStatus
	}{
		{
			name: "no provider",
			want: v1alpha1.EmailStatusNone,
		},
		{
			name:  "provider without confirmation",
			email: v1alpha1.Email{Provider: v1alpha1.EmailProviderMailerSend, APIKey: "dropped"},
			want:  v1alpha1.EmailStatusSelectedUnconfigured,
		},
		{
			name: "configured provider",
			email: v1alpha1.Email{
				Provider:    v1alpha1.EmailProviderMailerSend,
				Status:      v1alpha1.EmailStatusConfigured,
				APIKey:      "mlsn.key",
				SenderEmail: "noreply@acme.com",
				SenderName:  "Acme",
			},
			want: v1alpha1.EmailStatusConfigured,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			project := &v1alpha1.Project{Name: "acme", Email: testCase.email}

			require.NoError(t, project.Finalize())
			assert.Equal(t, testCase.want, project.Email.Status)
			assert.Equal(t, testCase.want == v1alpha1.EmailStatusConfigured, project.Email.IsConfigured())

			if testCase.want != v1alpha1.EmailStatusConfigured {
				assert.Empty(t, project.Email.APIKey)
			}
		})
	}
}

func TestFreeze(t *testing.T) {
	t.Parallel()

	project := &v1alpha1.Project{
		Name:     "acme",
		Database: v1alpha1.Database{Mode: v1alpha1.DatabaseModeDocker},
	}

	_, err := project.Freeze()
	require.ErrorIs(t, err, v1alpha1.ErrNotFinalized)

	require.NoError(t, project.Finalize())

	frozen, err := project.Freeze()
	require.NoError(t, err)
	assert.True(t, frozen.Finalized())

	project.Database.Credentials.User = "mutated"

	assert.Equal(t, "db_dev_user", frozen.Database.Credentials.User)
}

func TestDefaultSenderHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "noreply@acme-app.com", v1alpha1.DefaultSenderEmail("acme-app"))
	assert.Equal(t, "Acme-app", v1alpha1.DefaultSenderName("acme-app"))
	assert.Empty(t, v1alpha1.DefaultSenderName(""))
}

package wizard

import (
	"fmt"

	"github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
)

// Destination fields of the project questions.
const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldBranch       = "branch"
	FieldTopology     = "topology"
	FieldRepoSetup    = "repository.setup"
	FieldMonorepoURL  = "repository.monorepoUrl"
	FieldBackendURL   = "repository.backendUrl"
	FieldFrontendURL  = "repository.frontendUrl"
	FieldDatabaseMode = "database.mode"
	FieldDBEngine     = "database.credentials.engine"
	FieldDBHost       = "database.credentials.host"
	FieldDBPort       = "database.credentials.port"
	FieldDBUser       = "database.credentials.user"
	FieldDBPassword   = "database.credentials.password"
	FieldDBName       = "database.credentials.name"
	FieldEmail        = "email.provider"
	FieldEmailStatus  = "email.status"
	FieldAPIKey       = "email.apiKey"
	FieldSenderEmail  = "email.senderEmail"
	FieldSenderName   = "email.senderName"
)

// Required rejects empty answers with "<label> is required".
func Required(label string) func(string, Answers) error {
	return func(value string, _ Answers) error {
		if value == "" {
			return fmt.Errorf("%s %w", label, ErrRequired)
		}

		return nil
	}
}

func isMonorepo(a Answers) bool {
	return a.Is(FieldTopology, string(v1alpha1.TopologyMonorepo))
}

func hasExistingRemote(a Answers) bool {
	return a.Is(FieldRepoSetup, string(v1alpha1.RepoSetupExisting))
}

func usesCredentialsMode(a Answers) bool {
	return a.Is(FieldDatabaseMode, string(v1alpha1.DatabaseModeCredentials))
}

func collectsCredentials(a Answers) bool {
	return v1alpha1.DatabaseMode(a.Get(FieldDatabaseMode)).RequiresCredentials()
}

// ProjectQuestions returns the ordered questions that describe a new project.
func ProjectQuestions() []Question {
	questions := []Question{
		{
			Name:    FieldName,
			Kind:    KindInput,
			Message: Literal("What is the name of your project?"),
			Validate: func(value string, _ Answers) error {
				return v1alpha1.ValidateProjectName(value)
			},
		},
		{
			Name:    FieldDescription,
			Kind:    KindInput,
			Message: Literal("What is the description of your project?"),
			Default: func(a Answers) string { return v1alpha1.DefaultDescription(a.Get(FieldName)) },
		},
		{
			Name:    FieldBranch,
			Kind:    KindSelect,
			Message: Literal("Which main branch name do you prefer?"),
			Choices: []prompt.Choice{
				{Label: "main", Value: string(v1alpha1.BranchMain)},
				{Label: "master", Value: string(v1alpha1.BranchMaster)},
			},
			Default: Literal(string(v1alpha1.BranchMain)),
		},
		{
			Name:    FieldTopology,
			Kind:    KindSelect,
			Message: Literal("How would you like to structure your project?"),
			Choices: []prompt.Choice{
				{
					Label:    "Monorepo: Single Git repository for Backend and Frontend (centralized management)",
					Value:    string(v1alpha1.TopologyMonorepo),
					Disabled: "coming soon",
				},
				{
					Label: "Multirepo: Separate Git repositories for Backend and Frontend (independent management)",
					Value: string(v1alpha1.TopologyMultirepo),
				},
			},
			Default: Literal(string(v1alpha1.TopologyMultirepo)),
		},
		{
			Name:    FieldRepoSetup,
			Kind:    KindSelect,
			Message: Literal("Do you have already a remote repository?"),
			Choices: []prompt.Choice{
				{Label: "Not yet, just setup on local", Value: string(v1alpha1.RepoSetupLocal)},
				{Label: "Yes, I'll give you the link", Value: string(v1alpha1.RepoSetupExisting)},
			},
			Default: Literal(string(v1alpha1.RepoSetupLocal)),
			When:    isMonorepo,
		},
		{
			Name:    FieldRepoSetup,
			Kind:    KindSelect,
			Message: Literal("Do you have already remote repositories?"),
			Choices: []prompt.Choice{
				{Label: "Not yet, just setup on local for both", Value: string(v1alpha1.RepoSetupLocal)},
				{Label: "Yes, I'll give you the links", Value: string(v1alpha1.RepoSetupExisting)},
			},
			Default: Literal(string(v1alpha1.RepoSetupLocal)),
			When:    func(a Answers) bool { return !isMonorepo(a) },
		},
		{
			Name:     FieldMonorepoURL,
			Kind:     KindInput,
			Message:  Literal("Enter your existing monorepo Git URL"),
			Validate: Required("Git URL"),
			When:     func(a Answers) bool { return isMonorepo(a) && hasExistingRemote(a) },
		},
		{
			Name:     FieldBackendURL,
			Kind:     KindInput,
			Message:  Literal("Enter your existing backend Git URL"),
			Validate: Required("Backend Git URL"),
			When:     func(a Answers) bool { return !isMonorepo(a) && hasExistingRemote(a) },
		},
		{
			Name:     FieldFrontendURL,
			Kind:     KindInput,
			Message:  Literal("Enter your existing frontend Git URL"),
			Validate: Required("Frontend Git URL"),
			When:     func(a Answers) bool { return !isMonorepo(a) && hasExistingRemote(a) },
		},
		{
			Name: FieldDatabaseMode,
			Kind: KindSelect,
			Message: Literal(
				"Do you want to set up a development database with Docker? (you must have docker installed)",
			),
			Choices: []prompt.Choice{
				{Label: "Yes (create a docker-compose.db.yml file)", Value: string(v1alpha1.DatabaseModeDocker)},
				{
					Label: "No, let's just connect api to my db following these credentials",
					Value: string(v1alpha1.DatabaseModeCredentials),
				},
				{Label: "No I'll do it later", Value: string(v1alpha1.DatabaseModeManual)},
			},
			Default: Literal(string(v1alpha1.DatabaseModeDocker)),
		},
		{
			Name:    FieldDBEngine,
			Kind:    KindSelect,
			Message: Literal("Which database technology are you using?"),
			Choices: []prompt.Choice{
				{Label: "PostgreSQL", Value: string(v1alpha1.DatabaseEnginePostgreSQL)},
				{Label: "SQL Server", Value: string(v1alpha1.DatabaseEngineSQLServer)},
			},
			Default: Literal(string(v1alpha1.DatabaseEnginePostgreSQL)),
			When:    usesCredentialsMode,
		},
		{
			Name:    FieldDBHost,
			Kind:    KindInput,
			Message: Literal("Database host"),
			When:    usesCredentialsMode,
		},
		{
			Name:    FieldDBPort,
			Kind:    KindInput,
			Message: Literal("Database port"),
			When:    usesCredentialsMode,
		},
		{
			Name:    FieldDBUser,
			Kind:    KindInput,
			Message: Literal("Database user"),
			Default: Literal(v1alpha1.DefaultDatabaseUser),
			When:    collectsCredentials,
		},
		{
			Name:    FieldDBPassword,
			Kind:    KindInput,
			Message: Literal("Database password"),
			Default: Literal(v1alpha1.DefaultDatabasePassword),
			When:    collectsCredentials,
		},
		{
			Name:    FieldDBName,
			Kind:    KindInput,
			Message: Literal("Database name"),
			Default: Literal(v1alpha1.DefaultDatabaseName),
			When:    collectsCredentials,
		},
		{
			Name: FieldEmail,
			Kind: KindSelect,
			Message: Literal(
				"For your transactional emails (account creation, password reset, etc.), " +
					"which service would you like to set up?",
			),
			Choices: []prompt.Choice{
				{Label: "None, just set up the logic", Value: string(v1alpha1.EmailProviderNone)},
				{Label: "MailerSend [free, 3000 emails/month]", Value: string(v1alpha1.EmailProviderMailerSend)},
			},
			Default: Literal(string(v1alpha1.EmailProviderMailerSend)),
		},
	}

	return questions
}

// MailerSendQuestions returns the credentials asked once the user is ready to configure MailerSend.
func MailerSendQuestions() []Question {
	return []Question{
		{
			Name:     FieldAPIKey,
			Kind:     KindInput,
			Message:  Literal("Enter your MailerSend API key"),
			Validate: Required("API key"),
		},
		{
			Name:    FieldSenderEmail,
			Kind:    KindInput,
			Message: Literal("Enter your MailerSend sender email"),
			Default: func(a Answers) string { return v1alpha1.DefaultSenderEmail(a.Get(FieldName)) },
			Validate: func(value string, answers Answers) error {
				err := Required("Sender email")(value, answers)
				if err != nil {
					return err
				}

				return v1alpha1.ValidateEmailAddress(value)
			},
		},
		{
			Name:     FieldSenderName,
			Kind:     KindInput,
			Message:  Literal("Enter your MailerSend sender name"),
			Default:  func(a Answers) string { return v1alpha1.DefaultSenderName(a.Get(FieldName)) },
			Validate: Required("Sender name"),
		},
	}
}

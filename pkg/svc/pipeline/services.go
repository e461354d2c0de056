package pipeline

import (
	"io"
	"io/fs"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/fsutil/materializer"
	"github.com/saasfoundry/sf/pkg/fsutil/mutate"
	"github.com/saasfoundry/sf/scaffolds"
)

const (
	envFile        = ".env"
	envTestFile    = ".env.test"
	composeGlob    = "docker-compose*.yml"
	dbComposeFile  = "docker-compose.db.yml"
	workflowFile   = ".github/workflows/deployment.yml"
	blueprintBrand = "BillMate"
	blueprintName  = "saasfoundry"

	mailerMarker       = "// TODO mailer-service-active: "
	mailerSendTarget   = "src/modules/email/services/mailersend.service.ts"
	emailModuleFile    = "src/modules/email/email.module.ts"
	disabledEmailSpec  = "src/modules/email/tests/unit/email.service.disabled-spec.ts"
	enabledEmailSpec   = "src/modules/email/tests/unit/email.service.spec.ts"
	translationImport  = "import { TranslationService } from '@modules/email/services/translation.service'"
	mailerSendImport   = "import { MailerSendService } from '@modules/email/services/mailersend.service'"
	emailProviders     = "providers: [EmailService, EnvConfig, TranslationService]"
	emailProvidersSend = "providers: [EmailService, EnvConfig, TranslationService, MailerSendService]"

	// TestMailerSendAPIKey is written to .env.test so the generated tests never reach MailerSend.
	TestMailerSendAPIKey = "ms_test_fake_key_12345abcdef67890ghijklmnopqrstuvwxyz"
)

func localeFiles() []string {
	return []string{"src/modules/email/locales/en.ts", "src/modules/email/locales/fr.ts"}
}

func mailerGuardedFiles() []string {
	return []string{
		"src/modules/auth/services/auth.service.ts",
		"src/configs/env/services/env.service.ts",
		"src/modules/email/services/email.service.ts",
	}
}

// ServiceOptions tunes the mutations of the service requests.
type ServiceOptions struct {
	SecretLength int
	// Random defaults to crypto/rand.
	Random io.Reader
}

// APIRequest builds the materialization request of the API service.
func APIRequest(project *v1alpha1.Project, ws Workspace, source fs.FS, opts ServiceOptions) materializer.Request {
	mutations := []mutate.Mutation{
		mutate.Manifest{
			Name:          project.ServiceName(v1alpha1.ServiceAPI),
			Description:   project.Description,
			RepositoryURL: project.ManifestRepositoryURL(v1alpha1.ServiceAPI),
			Keywords:      []string{project.Name, blueprintName, "backend", "nest", "prisma"},
		},
		mutate.Secrets{
			File:   envFile,
			Keys:   mutate.JWTSecretKeys(),
			Length: opts.SecretLength,
			Random: opts.Random,
		},
	}

	creds, err := project.DatabaseCredentials()
	if err == nil {
		mutations = append(mutations, mutate.SetEnv{
			File: envFile,
			Vars: []mutate.EnvVar{
				{Key: "DATABASE_URL", Value: creds.URL()},
				{Key: "DIRECT_URL", Value: creds.URL()},
			},
		})
	}

	mutations = append(mutations,
		mutate.Rewrite{
			Label: "rename brand in email locales",
			Files: localeFiles(),
			Rules: []mutate.Rule{mutate.Literal(blueprintBrand, project.BrandName())},
		},
		composeIdentifiers(project, v1alpha1.ServiceAPI),
	)

	if project.Email.IsConfigured() {
		mutations = append(mutations, mailerSendMutations(project, source)...)
	}

	return materializer.Request{
		Blueprint: scaffolds.Blueprint(string(v1alpha1.ServiceAPI)),
		Overlay:   scaffolds.Overlay(string(project.Topology), string(v1alpha1.ServiceAPI)),
		Target:    project.ServicePath(ws.Root, v1alpha1.ServiceAPI),
		Mutations: mutations,
		Install:   true,
		Git:       gitInit(project, v1alpha1.ServiceAPI),
	}
}

// DBRequest builds the materialization request of the development database.
func DBRequest(project *v1alpha1.Project, ws Workspace) materializer.Request {
	creds, _ := project.DatabaseCredentials()

	return materializer.Request{
		Blueprint: scaffolds.Blueprint(string(v1alpha1.ServiceDB)),
		Target:    project.ServicePath(ws.Root, v1alpha1.ServiceDB),
		Mutations: []mutate.Mutation{
			mutate.Rewrite{
				Label: "configure database container",
				Files: []string{dbComposeFile},
				Rules: []mutate.Rule{
					mutate.Literal(blueprintName+"-db-dev", project.DatabaseContainerName()),
					mutate.Literal(blueprintName+"-db:", project.ServiceName(v1alpha1.ServiceDB)+":"),
					mutate.Literal(blueprintName+"-network", project.NetworkName()),
					mutate.Line("POSTGRES_USER:", "POSTGRES_USER: "+creds.User),
					mutate.Line("POSTGRES_PASSWORD:", "POSTGRES_PASSWORD: "+creds.Password),
					mutate.Line("POSTGRES_DB:", "POSTGRES_DB: "+creds.Name),
					mutate.Line("test:", "test: ['CMD-SHELL', 'pg_isready -U "+creds.User+" -d "+creds.Name+"']"),
					mutate.Pattern(`'\d+:5432'`, "'"+creds.Port+":5432'"),
				},
				Required: true,
			},
		},
	}
}

// WebRequest builds the materialization request of the web client.
func WebRequest(project *v1alpha1.Project, ws Workspace) materializer.Request {
	return materializer.Request{
		Blueprint: scaffolds.Blueprint(string(v1alpha1.ServiceWeb)),
		Overlay:   scaffolds.Overlay(string(project.Topology), string(v1alpha1.ServiceWeb)),
		Target:    project.ServicePath(ws.Root, v1alpha1.ServiceWeb),
		Mutations: []mutate.Mutation{
			mutate.Manifest{
				Name:          project.ServiceName(v1alpha1.ServiceWeb),
				Description:   project.Description,
				RepositoryURL: project.ManifestRepositoryURL(v1alpha1.ServiceWeb),
				Keywords:      []string{project.Name, blueprintName, "frontend", "react", "vite"},
			},
			composeIdentifiers(project, v1alpha1.ServiceWeb),
		},
		Install: true,
		Git:     gitInit(project, v1alpha1.ServiceWeb),
	}
}

func composeIdentifiers(project *v1alpha1.Project, kind v1alpha1.ServiceKind) mutate.Rewrite {
	return mutate.Rewrite{
		Label: "rename compose identifiers",
		Files: []string{composeGlob},
		Rules: []mutate.Rule{
			mutate.Literal(blueprintName+"-network", project.NetworkName()),
			mutate.Literal(blueprintName+"-"+string(kind), project.ServiceName(kind)),
		},
	}
}

func gitInit(project *v1alpha1.Project, kind v1alpha1.ServiceKind) *materializer.GitInit {
	if project.Topology != v1alpha1.TopologyMultirepo {
		return nil
	}

	return &materializer.GitInit{
		Branch: string(project.Branch),
		Remote: project.RemoteURL(kind),
	}
}

func mailerSendMutations(project *v1alpha1.Project, source fs.FS) []mutate.Mutation {
	email := project.Email
	envVars := func(apiKey string) []mutate.EnvVar {
		return []mutate.EnvVar{
			{Key: "MAILERSEND_API_KEY", Value: apiKey},
			{Key: "MAILERSEND_SENDER_EMAIL", Value: email.SenderEmail},
			{Key: "MAILERSEND_SENDER_NAME", Value: email.SenderName},
		}
	}

	return []mutate.Mutation{
		mutate.CopyFile{Source: source, Name: scaffolds.MailerSendService, Target: mailerSendTarget},
		mutate.Rewrite{
			Label: "activate mailer service",
			Files: mailerGuardedFiles(),
			Rules: []mutate.Rule{
				mutate.Literal(mailerMarker, ""),
				mutate.Pattern(`(?m)^[ \t]*console\.log\('sendAccountConfirmationEmail', locale\)\n`, ""),
				mutate.Pattern(`(?m)^[ \t]*console\.log\('(html|text)', (html|text)\)\n`, ""),
			},
		},
		mutate.Rewrite{
			Label: "register mailer service",
			Files: []string{emailModuleFile},
			Rules: []mutate.Rule{
				mutate.Literal(translationImport, translationImport+"\n"+mailerSendImport),
				mutate.Literal(emailProviders, emailProvidersSend),
			},
			Required: true,
		},
		mutate.Rename{From: disabledEmailSpec, To: enabledEmailSpec},
		mutate.SetEnv{File: envFile, Vars: envVars(email.APIKey), Commented: true},
		mutate.SetEnv{File: envTestFile, Vars: envVars(TestMailerSendAPIKey), Commented: true},
		mutate.Rewrite{
			Label: "pass mailer secrets to deployment",
			Files: []string{workflowFile},
			Rules: []mutate.Rule{
				mutate.Line("# MAILERSEND_API_KEY=", `MAILERSEND_API_KEY="${{ secrets.MAILERSEND_API_KEY }}"`),
				mutate.Line("# MAILERSEND_SENDER_EMAIL=", `MAILERSEND_SENDER_EMAIL="`+email.SenderEmail+`"`),
				mutate.Line("# MAILERSEND_SENDER_NAME=", `MAILERSEND_SENDER_NAME="`+email.SenderName+`"`),
			},
		},
	}
}

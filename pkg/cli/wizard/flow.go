// Package wizard turns an interactive question-and-answer session into a finalized project.
package wizard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/utils/notify"
)

const (
	// MailerSendSignupURL is opened when the user picks MailerSend.
	MailerSendSignupURL = "https://www.mailersend.com/signup?ref=52o9lkySkTka"
	// DefaultSignupDelay leaves time to read the signup notice before the browser opens.
	DefaultSignupDelay = 4 * time.Second
)

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// Flow asks the project questions and binds the answers to a project.
type Flow struct {
	prompter    prompt.Prompter
	out         io.Writer
	browser     URLOpener
	signupDelay time.Duration
}

// Option configures a Flow.
type Option func(*Flow)

// WithSignupDelay waits before opening the provider signup page so the notice can be read.
func WithSignupDelay(delay time.Duration) Option {
	return func(f *Flow) {
		f.signupDelay = delay
	}
}

// NewFlow creates a Flow asking through prompter and printing notices to out.
func NewFlow(prompter prompt.Prompter, out io.Writer, browser URLOpener, opts ...Option) *Flow {
	flow := &Flow{prompter: prompter, out: out, browser: browser}

	for _, opt := range opts {
		opt(flow)
	}

	return flow
}

// Run asks every question and returns the finalized project.
func (f *Flow) Run(ctx context.Context) (*v1alpha1.Project, error) {
	answers := Answers{}

	err := Ask(f.prompter, f.out, ProjectQuestions(), answers)
	if err != nil {
		return nil, err
	}

	err = f.askEmailProvider(ctx, answers)
	if err != nil {
		return nil, err
	}

	return Bind(answers)
}

// Bind decodes answers into a project and finalizes it.
func Bind(answers Answers) (*v1alpha1.Project, error) {
	project := v1alpha1.NewProject()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           project,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create answer decoder: %w", err)
	}

	err = decoder.Decode(answers.Tree())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswers, err)
	}

	err = project.Finalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswers, err)
	}

	return project, nil
}

func (f *Flow) askEmailProvider(ctx context.Context, answers Answers) error {
	provider := v1alpha1.EmailProvider(answers.Get(FieldEmail))
	if provider == v1alpha1.EmailProviderNone || provider == "" {
		answers[FieldEmailStatus] = string(v1alpha1.EmailStatusNone)

		return nil
	}

	notify.Warningf(f.out,
		"You need to create an account on MailerSend to get your API key.\n"+
			"Note: The following link is an affiliate link. We appreciate your support of the "+
			"SaaSFoundry project by signing up through this link.\n"+
			"Opening %s in your browser...", MailerSendSignupURL)

	if f.signupDelay > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait before opening signup page: %w", ctx.Err())
		case <-time.After(f.signupDelay):
		}
	}

	if f.browser != nil {
		err := f.browser.Open(ctx, MailerSendSignupURL)
		if err != nil {
			notify.Warningf(f.out, "could not open a browser, navigate to %s", MailerSendSignupURL)
		}
	}

	ready, err := f.prompter.Confirm("Are you ready to configure your MailerSend credentials?", true)
	if err != nil {
		return fmt.Errorf("%s: %w", FieldEmail, err)
	}

	if !ready {
		answers[FieldEmailStatus] = string(v1alpha1.EmailStatusSelectedUnconfigured)

		notify.Warningf(f.out,
			"The email service logic will be set up but disabled until you implement your own service.")

		return nil
	}

	err = Ask(f.prompter, f.out, MailerSendQuestions(), answers)
	if err != nil {
		return err
	}

	answers[FieldEmailStatus] = string(v1alpha1.EmailStatusConfigured)

	return nil
}

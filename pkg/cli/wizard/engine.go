package wizard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/utils/notify"
)

// Kind is the way a question is asked.
type Kind int

const (
	// KindInput asks for free text.
	KindInput Kind = iota
	// KindSelect asks for one of a fixed list of choices.
	KindSelect
	// KindConfirm asks a yes/no question; the answer is stored as "true" or "false".
	KindConfirm
)

// Answers maps dotted destination fields (e.g. "database.credentials.host") to answers.
type Answers map[string]string

// Get returns the answer stored for name, or an empty string.
func (a Answers) Get(name string) string {
	return a[name]
}

// Is reports whether name was answered with value.
func (a Answers) Is(name, value string) bool {
	return a[name] == value
}

// Tree expands the dotted names into nested maps.
func (a Answers) Tree() map[string]any {
	root := map[string]any{}

	for name, value := range a {
		parts := strings.Split(name, ".")
		node := root

		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}

			node = child
		}

		node[parts[len(parts)-1]] = value
	}

	return root
}

// Question is one step of a decision flow.
// Message, Default and When may only look at answers given by earlier questions.
type Question struct {
	Name     string
	Kind     Kind
	Message  func(Answers) string
	Default  func(Answers) string
	Choices  []prompt.Choice
	Validate func(value string, answers Answers) error
	When     func(Answers) bool
}

// Literal returns a Message or Default function producing text.
func Literal(text string) func(Answers) string {
	return func(Answers) string { return text }
}

// Ask runs questions in order and stores each answer in answers.
// Hidden questions leave their field unset. An answer failing validation is reported
// on out and the question is asked again.
func Ask(prompter prompt.Prompter, out io.Writer, questions []Question, answers Answers) error {
	for _, question := range questions {
		if question.When != nil && !question.When(answers) {
			continue
		}

		value, err := askUntilValid(prompter, out, question, answers)
		if err != nil {
			return err
		}

		answers[question.Name] = value
	}

	return nil
}

func askUntilValid(prompter prompt.Prompter, out io.Writer, question Question, answers Answers) (string, error) {
	message := ""
	if question.Message != nil {
		message = question.Message(answers)
	}

	def := ""
	if question.Default != nil {
		def = question.Default(answers)
	}

	for {
		value, err := askOnce(prompter, question, message, def)
		if err != nil {
			return "", fmt.Errorf("%s: %w", question.Name, err)
		}

		if question.Validate == nil {
			return value, nil
		}

		validationErr := question.Validate(value, answers)
		if validationErr == nil {
			return value, nil
		}

		notify.Errorf(out, "%s", validationErr)
	}
}

func askOnce(prompter prompt.Prompter, question Question, message, def string) (string, error) {
	switch question.Kind {
	case KindSelect:
		return prompter.Select(message, question.Choices, def)
	case KindConfirm:
		defBool, _ := strconv.ParseBool(def)

		answer, err := prompter.Confirm(message, defBool)
		if err != nil {
			return "", err
		}

		return strconv.FormatBool(answer), nil
	case KindInput:
		return prompter.Input(message, def)
	default:
		return prompter.Input(message, def)
	}
}

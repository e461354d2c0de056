// Package prompt asks questions on a line-oriented console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/saasfoundry/sf/pkg/utils/notify"
)

// ErrAborted is returned when the input ends before a question is answered.
var ErrAborted = errors.New("prompt aborted")

// defaultWidth is the column at which long questions are wrapped.
const defaultWidth = 100

// Choice is one option of a select question.
type Choice struct {
	Label string
	Value string
	// Disabled, when set, is the reason the choice cannot be picked.
	Disabled string
}

// Prompter asks the three kinds of questions the decision flow needs.
type Prompter interface {
	Input(message, def string) (string, error)
	Select(message string, choices []Choice, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

// Console is a Prompter reading answers line by line.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	width uint
}

// NewConsole creates a Console reading from in and writing questions to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, width: defaultWidth}
}

// Input asks a free-text question. An empty answer selects def.
func (c *Console) Input(message, def string) (string, error) {
	c.ask(message, def)

	answer, err := c.readLine()
	if err != nil {
		return "", err
	}

	if answer == "" {
		return def, nil
	}

	return answer, nil
}

// Select asks for one of choices, by number or by value. An empty answer selects def.
// Disabled and unknown choices are refused and the question is asked again.
func (c *Console) Select(message string, choices []Choice, def string) (string, error) {
	for {
		c.ask(message, "")

		for index, choice := range choices {
			marker := " "
			if choice.Value == def {
				marker = ">"
			}

			if choice.Disabled != "" {
				_, _ = fmt.Fprintf(c.out, "%s -) %s (%s)\n", marker, choice.Label, choice.Disabled)

				continue
			}

			_, _ = fmt.Fprintf(c.out, "%s %d) %s\n", marker, index+1, choice.Label)
		}

		answer, err := c.readLine()
		if err != nil {
			return "", err
		}

		if answer == "" && def != "" {
			answer = def
		}

		choice, found := lookup(choices, answer)

		switch {
		case !found:
			notify.Warningf(c.out, "%q is not one of the choices", answer)
		case choice.Disabled != "":
			notify.Warningf(c.out, "%s is not available: %s", choice.Label, choice.Disabled)
		default:
			return choice.Value, nil
		}
	}
}

// Confirm asks a yes/no question. An empty answer selects def.
func (c *Console) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		c.ask(message+" ("+hint+")", "")

		answer, err := c.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			notify.Warningf(c.out, "please answer yes or no")
		}
	}
}

func (c *Console) ask(message, def string) {
	text := wordwrap.WrapString(message, c.width)
	if def != "" {
		text += " (" + def + ")"
	}

	_, _ = fmt.Fprintf(c.out, "? %s\n", text)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}

		return "", fmt.Errorf("read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func lookup(choices []Choice, answer string) (Choice, bool) {
	if number, err := strconv.Atoi(answer); err == nil {
		if number >= 1 && number <= len(choices) {
			return choices[number-1], true
		}

		return Choice{}, false
	}

	for _, choice := range choices {
		if strings.EqualFold(choice.Value, answer) {
			return choice, true
		}
	}

	return Choice{}, false
}

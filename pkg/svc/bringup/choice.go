package bringup

import (
	"fmt"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
)

// StartChoice selects the development servers started after the database.
type StartChoice string

const (
	// StartAll starts backend and frontend.
	StartAll StartChoice = "all"
	// StartBackend starts the backend only.
	StartBackend StartChoice = "backend"
	// StartFrontend starts the frontend only.
	StartFrontend StartChoice = "frontend"
	// StartNone starts nothing.
	StartNone StartChoice = "none"
)

// ParseStartChoice converts an answer into a StartChoice.
func ParseStartChoice(value string) (StartChoice, error) {
	switch choice := StartChoice(value); choice {
	case StartAll, StartBackend, StartFrontend, StartNone:
		return choice, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownStartChoice, value)
	}
}

// Starts reports whether the choice starts the server of kind.
func (c StartChoice) Starts(kind v1alpha1.ServiceKind) bool {
	switch kind {
	case v1alpha1.ServiceAPI:
		return c == StartAll || c == StartBackend
	case v1alpha1.ServiceWeb:
		return c == StartAll || c == StartFrontend
	default:
		return false
	}
}

func startChoices() []prompt.Choice {
	return []prompt.Choice{
		{Label: "Yes, start all", Value: string(StartAll)},
		{Label: "Yes, only backend", Value: string(StartBackend)},
		{Label: "Yes, only frontend", Value: string(StartFrontend)},
		{Label: "No, I'll do it myself", Value: string(StartNone)},
	}
}

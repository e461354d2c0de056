package v1alpha1

import (
	"fmt"
	"regexp"
)

var (
	projectNamePattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	emailAddressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateProjectName checks that name is non-empty and only holds lowercase letters, digits and hyphens.
func ValidateProjectName(name string) error {
	if name == "" {
		return ErrProjectNameRequired
	}

	if !projectNamePattern.MatchString(name) {
		return ErrProjectNameInvalid
	}

	return nil
}

// ValidateEmailAddress checks the x@y.z shape of a sender address.
func ValidateEmailAddress(address string) error {
	if !emailAddressPattern.MatchString(address) {
		return ErrEmailAddressInvalid
	}

	return nil
}

func (r Repository) validate(topology Topology) error {
	if topology == TopologyMonorepo {
		return ErrMonorepoUnsupported
	}

	if r.Setup != RepoSetupExisting {
		return nil
	}

	if r.BackendURL == "" {
		return fmt.Errorf("%w: backend", ErrRepositoryURLRequired)
	}

	if r.FrontendURL == "" {
		return fmt.Errorf("%w: frontend", ErrRepositoryURLRequired)
	}

	return nil
}

func (e Email) validate() error {
	if e.Status != EmailStatusConfigured {
		return nil
	}

	if e.APIKey == "" || e.SenderName == "" {
		return ErrEmailNotConfigured
	}

	return ValidateEmailAddress(e.SenderEmail)
}

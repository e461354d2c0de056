package mutate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Mutation rewrites files below a service root.
type Mutation interface {
	// Describe names the mutation in progress text and errors.
	Describe() string
	// Apply performs the mutation on the tree rooted at root.
	Apply(root string) error
}

// readRequired reads rel below root, mapping absence to ErrRequiredFileMissing.
func readRequired(root, rel string) (string, []byte, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	data, err := os.ReadFile(path) //nolint:gosec // path is inside the service tree
	if errors.Is(err, os.ErrNotExist) {
		return path, nil, fmt.Errorf("%w: %s", ErrRequiredFileMissing, rel)
	}

	if err != nil {
		return path, nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}

	return path, data, nil
}

package mutate

import (
	"fmt"

	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ManifestFile is the package manifest of every generated service.
const ManifestFile = "package.json"

// Manifest sets the identity fields of package.json.
// Existing key order is kept and the file is written with two-space indentation.
type Manifest struct {
	Name          string
	Description   string
	RepositoryURL string
	Keywords      []string
}

// Describe implements Mutation.
func (m Manifest) Describe() string {
	return "update " + ManifestFile
}

// Apply implements Mutation.
func (m Manifest) Apply(root string) error {
	path, data, err := readRequired(root, ManifestFile)
	if err != nil {
		return err
	}

	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: %s", ErrInvalidManifest, path)
	}

	updates := []struct {
		path  string
		value any
	}{
		{path: "name", value: m.Name},
		{path: "description", value: m.Description},
		{path: "repository.url", value: m.RepositoryURL},
		{path: "keywords", value: m.Keywords},
	}

	for _, update := range updates {
		if update.path == "repository.url" && !gjson.GetBytes(data, "repository").IsObject() {
			data, err = sjson.SetBytes(data, "repository", map[string]string{"type": "git"})
			if err != nil {
				return fmt.Errorf("failed to set repository in %s: %w", ManifestFile, err)
			}
		}

		data, err = sjson.SetBytes(data, update.path, update.value)
		if err != nil {
			return fmt.Errorf("failed to set %s in %s: %w", update.path, ManifestFile, err)
		}
	}

	formatted := pretty.PrettyOptions(data, &pretty.Options{Width: 0, Indent: "  "})

	_, err = fsutil.WriteIfChanged(path, formatted)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}

	return nil
}

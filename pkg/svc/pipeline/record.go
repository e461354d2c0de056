package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/fsutil"
	"sigs.k8s.io/yaml"
)

const (
	// RecordDir holds sf's own files inside a generated project.
	RecordDir = ".sf"
	// RecordFile is the project record inside RecordDir.
	RecordFile = "project.yaml"
)

// Record describes a generated project for later sf commands run from its root.
type Record struct {
	Name         string                          `json:"name"`
	Topology     v1alpha1.Topology               `json:"topology"`
	Branch       v1alpha1.Branch                 `json:"branch"`
	DatabaseMode v1alpha1.DatabaseMode           `json:"databaseMode"`
	Network      string                          `json:"network"`
	Services     map[v1alpha1.ServiceKind]string `json:"services"`
}

// NewRecord describes project; service paths are relative to the project root.
func NewRecord(project *v1alpha1.Project) Record {
	services := map[v1alpha1.ServiceKind]string{
		v1alpha1.ServiceAPI: project.ServiceDir(v1alpha1.ServiceAPI),
		v1alpha1.ServiceWeb: project.ServiceDir(v1alpha1.ServiceWeb),
	}

	if project.Database.Mode.IsContainerized() {
		services[v1alpha1.ServiceDB] = project.ServiceDir(v1alpha1.ServiceDB)
	}

	return Record{
		Name:         project.Name,
		Topology:     project.Topology,
		Branch:       project.Branch,
		DatabaseMode: project.Database.Mode,
		Network:      project.NetworkName(),
		Services:     services,
	}
}

// ServicePath returns the native path of a recorded service below root, or "" if absent.
func (r Record) ServicePath(root string, kind v1alpha1.ServiceKind) string {
	dir, ok := r.Services[kind]
	if !ok {
		return ""
	}

	return filepath.Join(root, filepath.FromSlash(dir))
}

// RecordPath returns the record location below root.
func RecordPath(root string) string {
	return filepath.Join(root, RecordDir, RecordFile)
}

// WriteRecord stores record below root.
func WriteRecord(root string, record Record) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode project record: %w", err)
	}

	err = fsutil.WriteFile(RecordPath(root), data)
	if err != nil {
		return fmt.Errorf("failed to write project record: %w", err)
	}

	return nil
}

// ReadRecord loads the record below root.
func ReadRecord(root string) (Record, error) {
	path := RecordPath(root)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the project root
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("%w in %s", ErrRecordNotFound, root)
	}

	if err != nil {
		return Record{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var record Record

	err = yaml.UnmarshalStrict(data, &record)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return record, nil
}

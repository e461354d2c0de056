package v1alpha1

import (
	"path"
	"path/filepath"
	"strings"
)

// AppsDir is the directory under the project root that holds every service.
const AppsDir = "apps"

// DefaultRepositoryURL is written to generated manifests that have no remote.
const DefaultRepositoryURL = "https://github.com/agachet/saasfoundry.git"

// ServiceDir returns the slash-separated path of a service relative to the project root.
func (p *Project) ServiceDir(kind ServiceKind) string {
	if p.Topology == TopologyMonorepo {
		return path.Join(AppsDir, string(kind))
	}

	return path.Join(AppsDir, p.Name+"-"+string(kind))
}

// ServicePath returns the native path of a service below root.
func (p *Project) ServicePath(root string, kind ServiceKind) string {
	return filepath.Join(root, filepath.FromSlash(p.ServiceDir(kind)))
}

// ServiceName returns the identifier used for a service in manifests and compose files.
func (p *Project) ServiceName(kind ServiceKind) string {
	return p.Name + "-" + string(kind)
}

// NetworkName returns the docker network shared by the project's containers.
func (p *Project) NetworkName() string {
	return p.Name + "-network"
}

// DatabaseContainerName returns the container name of the development database.
func (p *Project) DatabaseContainerName() string {
	return p.Name + "-db-dev"
}

// BrandName returns the project name as shown in email templates.
func (p *Project) BrandName() string {
	return strings.ToUpper(p.Name)
}

// RemoteURL returns the remote configured for a service, or an empty string.
func (p *Project) RemoteURL(kind ServiceKind) string {
	if p.Repository.Setup != RepoSetupExisting {
		return ""
	}

	if p.Topology == TopologyMonorepo {
		return p.Repository.MonorepoURL
	}

	switch kind {
	case ServiceAPI:
		return p.Repository.BackendURL
	case ServiceWeb:
		return p.Repository.FrontendURL
	case ServiceDB:
		return ""
	default:
		return ""
	}
}

// ManifestRepositoryURL returns the repository URL written to a service manifest.
func (p *Project) ManifestRepositoryURL(kind ServiceKind) string {
	if url := p.RemoteURL(kind); url != "" {
		return url
	}

	return DefaultRepositoryURL
}

// DatabaseCredentials returns the finalized credentials or ErrCredentialsMissing.
func (p *Project) DatabaseCredentials() (Credentials, error) {
	if p.Database.Credentials == nil {
		return Credentials{}, ErrCredentialsMissing
	}

	return *p.Database.Credentials, nil
}

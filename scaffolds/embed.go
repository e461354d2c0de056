// Package scaffolds embeds the blueprint and overlay trees that sf materializes into new projects.
//
// Blueprints hold one tree per service kind (api, db, web). Overlays are laid over a
// blueprint depending on the project topology, and modules/ holds optional files
// copied in when a feature is activated.
package scaffolds

import (
	"embed"
	"io/fs"
)

const (
	// BlueprintsDir is the root of the per-service blueprint trees.
	BlueprintsDir = "blueprints"
	// OverlaysDir is the root of the topology overlays and optional modules.
	OverlaysDir = "overlays"
	// MailerSendService is the provider service copied into the api when email is configured.
	MailerSendService = "overlays/modules/email/services/mailersend.service.ts"
)

//go:embed all:blueprints all:overlays
var files embed.FS

// FS returns the embedded scaffold tree.
func FS() fs.FS {
	return files
}

// Blueprint returns the directory of the blueprint for a service kind.
func Blueprint(kind string) string {
	return BlueprintsDir + "/" + kind
}

// Overlay returns the directory of the overlay for a topology and service kind.
func Overlay(topology, kind string) string {
	return OverlaysDir + "/" + topology + "/" + kind
}

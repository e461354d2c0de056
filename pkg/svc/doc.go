// Package svc provides the service layer of sf.
//
// Subpackages:
//   - pipeline: workspace, task runner and the project setup pipeline
//   - database: development database provisioning and initialization
//   - bringup: the interactive bring-up after generation
//   - readiness: polling helpers for HTTP and database readiness
//   - terminal: opening development terminals on each platform
//   - platform: host operating system detection
//   - browser: opening URLs in the default browser
package svc

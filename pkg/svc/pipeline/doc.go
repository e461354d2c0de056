// Package pipeline runs the ordered setup steps that turn a finalized project into service
// trees on disk.
//
// A Runner executes a plan of Steps, reports a single progress line with a percentage and
// applies a FailurePolicy when a step fails. Setup builds the plan for a project: create
// the project directory, then materialize the API, the database (docker mode only) and the
// web client.
package pipeline

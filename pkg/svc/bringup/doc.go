// Package bringup starts a freshly generated project: the database first, then the
// development servers in their own terminals, then the browser on each started service.
//
// Every failure after generation is reported and turns into a warning. Bring-up never
// fails the command that generated the project.
package bringup

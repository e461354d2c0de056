// Package v1alpha1 contains the configuration model of a generated SaaSFoundry project.
//
// A [Project] is created empty, filled incrementally by the decision flow,
// finalized once (engine-appropriate credential defaults are applied exactly
// one time) and then frozen into a read-only copy that is handed to the
// generation pipeline.
//
// Enumerations implement the pflag.Value interface so they can be bound to
// flags and decoded from prompt answers alike.
package v1alpha1

// Package apis provides the versioned types describing a SaaSFoundry project.
//
//   - project/v1alpha1: the answers of the decision flow, frozen before generation
package apis

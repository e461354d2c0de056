// Package mutate holds the targeted rewrites applied to a freshly copied service tree.
//
// Each Mutation works on paths relative to the service root. Text rewrites leave files
// they do not change byte-identical and skip optional files that are absent. Manifest and
// environment files are required: their absence fails the mutation.
package mutate

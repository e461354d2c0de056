// Package readiness provides bounded polling until a service becomes ready.
//
// Key features:
//   - Generic polling mechanism (PollForReadiness)
//   - HTTP endpoint probing (WaitForHTTP)
package readiness

// Package client wraps the external engines sf talks to.
//
//   - docker: networks, container health and published ports, plus docker compose
//     through the command runner
package client

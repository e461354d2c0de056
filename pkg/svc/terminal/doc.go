// Package terminal opens new terminal tabs or windows in a directory, optionally running a
// command there.
//
// Launchers are described as data: a Strategy names the emulator, how to tell whether it is
// installed and the argv that opens it. Strategies are grouped per platform and tried in
// order until one launches.
package terminal

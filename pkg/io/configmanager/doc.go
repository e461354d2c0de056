// Package configmanager loads the settings of the sf command line.
//
// Settings are read, from lowest to highest priority, from defaults, an optional sf.yaml
// file, SF_ prefixed environment variables and command line flags.
package configmanager

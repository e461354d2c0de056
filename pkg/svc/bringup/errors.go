package bringup

import "errors"

// ErrUnknownStartChoice is returned when a start answer names no known choice.
var ErrUnknownStartChoice = errors.New("unknown start choice")

// ErrTerminalNotOpened is returned when no terminal strategy could open a service directory.
var ErrTerminalNotOpened = errors.New("failed to open terminal")

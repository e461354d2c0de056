package configmanager

import "errors"

// ErrInvalidSettings is returned when loaded settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

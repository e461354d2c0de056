package mutate

import "errors"

// ErrRequiredFileMissing is returned when a required file is absent from the service tree.
var ErrRequiredFileMissing = errors.New("required file is missing")

// ErrInvalidManifest is returned when package.json is not valid JSON.
var ErrInvalidManifest = errors.New("invalid package manifest")

// ErrKeyNotFound is returned when a required environment key has no line to replace.
var ErrKeyNotFound = errors.New("environment key not found")

package wizard

import "errors"

// ErrRequired is returned by Required when an answer is empty.
var ErrRequired = errors.New("is required")

// ErrInvalidAnswers is returned when the collected answers cannot be bound to a project.
var ErrInvalidAnswers = errors.New("invalid answers")
